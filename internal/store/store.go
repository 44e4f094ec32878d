// Package store is the Postgres persistence layer. Lookups return a nil
// row (and nil error) when nothing matches; errors are only real store
// failures.
package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
