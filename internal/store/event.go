package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"calendly-soap-api/internal/model"
)

const eventColumns = `id, name, duration, COALESCE(description, ''), COALESCE(color, ''), user_id`

func (s *Store) CreateEvent(ctx context.Context, e *model.Event) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO events (id, name, duration, description, color, user_id)
		 VALUES ($1,$2,$3, NULLIF($4,''), NULLIF($5,''), $6)`,
		e.ID, e.Name, e.Duration, e.Description, e.Color, e.UserID,
	)
	return err
}

func (s *Store) EventByID(ctx context.Context, id string) (*model.Event, error) {
	e := &model.Event{}
	err := s.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.Duration, &e.Description, &e.Color, &e.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) EventsByOwner(ctx context.Context, userID string) ([]model.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Duration, &e.Description, &e.Color, &e.UserID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) UpdateEvent(ctx context.Context, id string, p model.EventPatch) error {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != "" {
		add("name", p.Name)
	}
	if p.Duration > 0 {
		add("duration", p.Duration)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Color != "" {
		add("color", p.Color)
	}
	args = append(args, id)

	_, err := s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE events SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)),
		args...,
	)
	return err
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}
