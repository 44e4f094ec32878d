package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"calendly-soap-api/internal/model"
)

const appointmentColumns = `id, event_id, user_id, invitee_email, start_time, end_time, status`

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := row.Scan(&a.ID, &a.EventID, &a.UserID, &a.InviteeEmail, &a.StartTime, &a.EndTime, &a.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (id, event_id, user_id, invitee_email, start_time, end_time, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.EventID, a.UserID, a.InviteeEmail, a.StartTime, a.EndTime, a.Status,
	)
	return err
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	return scanAppointment(s.pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id))
}

// AppointmentByOwner filters ownership inside the query, so a non-owner
// cannot tell an existing appointment from a missing one.
func (s *Store) AppointmentByOwner(ctx context.Context, id, userID string) (*model.Appointment, error) {
	return scanAppointment(s.pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1 AND user_id = $2`, id, userID))
}

func (s *Store) AppointmentsByOwner(ctx context.Context, userID string) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.EventID, &a.UserID, &a.InviteeEmail, &a.StartTime, &a.EndTime, &a.Status); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) UpdateAppointment(ctx context.Context, id string, p model.AppointmentPatch) error {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.EventID != "" {
		add("event_id", p.EventID)
	}
	if p.InviteeEmail != "" {
		add("invitee_email", p.InviteeEmail)
	}
	if p.StartTime != "" {
		add("start_time", p.StartTime)
	}
	if p.EndTime != "" {
		add("end_time", p.EndTime)
	}
	if p.Status != "" {
		add("status", p.Status)
	}
	args = append(args, id)

	_, err := s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE appointments SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)),
		args...,
	)
	return err
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}
