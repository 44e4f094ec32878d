// Package service implements the operation handlers: every handler runs
// authenticate → ownership/existence → input validity → store write, and
// answers with a typed response or a fault from the shared taxonomy.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"calendly-soap-api/internal/fault"
	"calendly-soap-api/internal/model"
)

// Store is the persistence surface the handlers need. The Postgres
// implementation lives in internal/store; tests substitute the in-memory
// one from internal/store/memory.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByID(ctx context.Context, id string) (*model.User, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByToken(ctx context.Context, token string) (*model.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]model.User, error)
	UpdateUser(ctx context.Context, id string, p model.UserPatch) (int64, error)
	DeleteUser(ctx context.Context, id string) (int64, error)
	SetToken(ctx context.Context, userID, token string) error
	ClearToken(ctx context.Context, token string) error

	CreateEvent(ctx context.Context, e *model.Event) error
	EventByID(ctx context.Context, id string) (*model.Event, error)
	EventsByOwner(ctx context.Context, userID string) ([]model.Event, error)
	UpdateEvent(ctx context.Context, id string, p model.EventPatch) error
	DeleteEvent(ctx context.Context, id string) error

	CreateSchedule(ctx context.Context, userID, availability string) (int64, error)
	ScheduleByUser(ctx context.Context, userID string) (*model.ScheduleRow, error)
	SchedulesByUser(ctx context.Context, userID string) ([]model.ScheduleRow, error)
	UpdateSchedule(ctx context.Context, userID, availability string) (int64, error)
	DeleteSchedule(ctx context.Context, userID string) (int64, error)

	CreateAppointment(ctx context.Context, a *model.Appointment) error
	AppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	AppointmentByOwner(ctx context.Context, id, userID string) (*model.Appointment, error)
	AppointmentsByOwner(ctx context.Context, userID string) ([]model.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, p model.AppointmentPatch) error
	DeleteAppointment(ctx context.Context, id string) error
}

type Service struct {
	store Store
	log   *logrus.Logger
}

func New(st Store, log *logrus.Logger) *Service {
	return &Service{store: st, log: log}
}

// authenticate resolves a session token to its owning user. The result's
// id is the acting identity for every ownership check in the operation.
// Tokens never expire; they stay valid until the next login replaces them
// or logout clears them.
func (s *Service) authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, fault.Unauthorized("Invalid token")
	}
	u, err := s.store.UserByToken(ctx, token)
	if err != nil || u == nil {
		return nil, fault.Unauthorized("Invalid token")
	}
	return u, nil
}

// dbFault logs the store failure and hands the caller the opaque server
// fault; store errors are never inspected further.
func (s *Service) dbFault(op string, err error) error {
	s.log.WithError(err).WithField("op", op).Error("database error")
	return fault.Database()
}
