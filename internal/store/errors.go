package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateEmail reports a violation of the users.email uniqueness
// constraint. Both the Postgres store and test fakes return it so callers
// can classify without knowing the driver.
var ErrDuplicateEmail = errors.New("email already in use")

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return err
}
