package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"calendly-soap-api/internal/model"
)

const userColumns = `id, name, email, password, COALESCE(timezone, ''), COALESCE(token, '')`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Timezone, &u.Token)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password, timezone) VALUES ($1,$2,$3,$4, NULLIF($5,''))`,
		u.ID, u.Name, u.Email, u.Password, u.Timezone,
	)
	return mapUniqueViolation(err)
}

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *Store) UserByToken(ctx context.Context, token string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE token = $1`, token))
}

func (s *Store) ListUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Timezone, &u.Token); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateUser writes only the supplied fields and reports how many rows the
// write touched.
func (s *Store) UpdateUser(ctx context.Context, id string, p model.UserPatch) (int64, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != "" {
		add("name", p.Name)
	}
	if p.Email != "" {
		add("email", p.Email)
	}
	if p.Password != "" {
		add("password", p.Password)
	}
	if p.Timezone != "" {
		add("timezone", p.Timezone)
	}
	args = append(args, id)

	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)),
		args...,
	)
	if err != nil {
		return 0, mapUniqueViolation(err)
	}
	return tag.RowsAffected(), nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) SetToken(ctx context.Context, userID, token string) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET token = $1 WHERE id = $2`, token, userID)
	return err
}

// ClearToken succeeds even when the token matches no row.
func (s *Store) ClearToken(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET token = NULL WHERE token = $1`, token)
	return err
}
