// Package memory is an in-memory implementation of the persistence layer,
// used in place of Postgres in tests.
package memory

import (
	"context"
	"sync"

	"calendly-soap-api/internal/model"
	"calendly-soap-api/internal/store"
)

type Store struct {
	mu           sync.Mutex
	users        []*model.User
	events       []*model.Event
	schedules    []*model.ScheduleRow
	appointments []*model.Appointment
	scheduleSeq  int64
}

func New() *Store {
	return &Store{}
}

// ----- users -----

func (s *Store) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.users {
		if e.Email == u.Email {
			return store.ErrDuplicateEmail
		}
	}
	cp := *u
	s.users = append(s.users, &cp)
	return nil
}

func (s *Store) UserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) UserByToken(_ context.Context, token string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Token != "" && u.Token == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) ListUsers(_ context.Context, limit, offset int) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.User
	for i := offset; i < len(s.users) && len(out) < limit; i++ {
		out = append(out, *s.users[i])
	}
	return out, nil
}

func (s *Store) UpdateUser(_ context.Context, id string, p model.UserPatch) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID != id {
			continue
		}
		if p.Email != "" && p.Email != u.Email {
			for _, other := range s.users {
				if other.Email == p.Email {
					return 0, store.ErrDuplicateEmail
				}
			}
		}
		if p.Name != "" {
			u.Name = p.Name
		}
		if p.Email != "" {
			u.Email = p.Email
		}
		if p.Password != "" {
			u.Password = p.Password
		}
		if p.Timezone != "" {
			u.Timezone = p.Timezone
		}
		return 1, nil
	}
	return 0, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *Store) SetToken(_ context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == userID {
			u.Token = token
		}
	}
	return nil
}

func (s *Store) ClearToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Token == token {
			u.Token = ""
		}
	}
	return nil
}

// ----- events -----

func (s *Store) CreateEvent(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	s.events = append(s.events, &cp)
	return nil
}

func (s *Store) EventByID(_ context.Context, id string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) EventsByOwner(_ context.Context, userID string) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Event
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *Store) UpdateEvent(_ context.Context, id string, p model.EventPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID != id {
			continue
		}
		if p.Name != "" {
			e.Name = p.Name
		}
		if p.Duration > 0 {
			e.Duration = p.Duration
		}
		if p.Description != nil {
			e.Description = *p.Description
		}
		if p.Color != "" {
			e.Color = p.Color
		}
	}
	return nil
}

func (s *Store) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.events {
		if e.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			break
		}
	}
	return nil
}

// ----- schedules -----

func (s *Store) CreateSchedule(_ context.Context, userID, availability string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduleSeq++
	s.schedules = append(s.schedules, &model.ScheduleRow{
		ID:           s.scheduleSeq,
		UserID:       userID,
		Availability: availability,
	})
	return s.scheduleSeq, nil
}

func (s *Store) ScheduleByUser(_ context.Context, userID string) (*model.ScheduleRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.schedules {
		if r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) SchedulesByUser(_ context.Context, userID string) ([]model.ScheduleRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ScheduleRow
	for _, r := range s.schedules {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *Store) UpdateSchedule(_ context.Context, userID, availability string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.schedules {
		if r.UserID == userID {
			r.Availability = availability
			n++
		}
	}
	return n, nil
}

func (s *Store) DeleteSchedule(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.schedules {
		if r.UserID == userID {
			s.schedules = append(s.schedules[:i], s.schedules[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// ----- appointments -----

func (s *Store) CreateAppointment(_ context.Context, a *model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.appointments = append(s.appointments, &cp)
	return nil
}

func (s *Store) AppointmentByID(_ context.Context, id string) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) AppointmentByOwner(_ context.Context, id, userID string) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ID == id && a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) AppointmentsByOwner(_ context.Context, userID string) ([]model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Appointment
	for _, a := range s.appointments {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *Store) UpdateAppointment(_ context.Context, id string, p model.AppointmentPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ID != id {
			continue
		}
		if p.EventID != "" {
			a.EventID = p.EventID
		}
		if p.InviteeEmail != "" {
			a.InviteeEmail = p.InviteeEmail
		}
		if p.StartTime != "" {
			a.StartTime = p.StartTime
		}
		if p.EndTime != "" {
			a.EndTime = p.EndTime
		}
		if p.Status != "" {
			a.Status = p.Status
		}
	}
	return nil
}

func (s *Store) DeleteAppointment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.appointments {
		if a.ID == id {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			break
		}
	}
	return nil
}
