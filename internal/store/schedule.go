package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"calendly-soap-api/internal/model"
)

// CreateSchedule inserts a schedule row and returns its store-assigned id.
// Availability arrives pre-serialized; this layer treats it as opaque.
func (s *Store) CreateSchedule(ctx context.Context, userID, availability string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO schedules (user_id, availability) VALUES ($1,$2) RETURNING id`,
		userID, availability,
	).Scan(&id)
	return id, err
}

func (s *Store) ScheduleByUser(ctx context.Context, userID string) (*model.ScheduleRow, error) {
	r := &model.ScheduleRow{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, availability FROM schedules WHERE user_id = $1`, userID,
	).Scan(&r.ID, &r.UserID, &r.Availability)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) SchedulesByUser(ctx context.Context, userID string) ([]model.ScheduleRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, availability FROM schedules WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ScheduleRow
	for rows.Next() {
		var r model.ScheduleRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.Availability); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateSchedule overwrites the availability blob and reports how many rows
// the write touched; zero means no schedule exists for the user yet.
func (s *Store) UpdateSchedule(ctx context.Context, userID, availability string) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE schedules SET availability = $1 WHERE user_id = $2`, availability, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) DeleteSchedule(ctx context.Context, userID string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM schedules WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
