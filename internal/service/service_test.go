package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"calendly-soap-api/internal/fault"
	"calendly-soap-api/internal/model"
	"calendly-soap-api/internal/service"
	"calendly-soap-api/internal/store/memory"
)

var _ service.Store = (*memory.Store)(nil)

func setup(t *testing.T) *service.Service {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return service.New(memory.New(), logger)
}

func wantFault(t *testing.T, err error, code fault.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s fault, got nil", code)
	}
	var f *fault.Fault
	if !errors.As(err, &f) {
		t.Fatalf("expected *fault.Fault, got %T: %v", err, err)
	}
	if f.Code != code {
		t.Errorf("expected %s, got %s (%s)", code, f.Code, f.Reason)
	}
}

func createUser(t *testing.T, svc *service.Service, name string) (id, email string) {
	t.Helper()
	email = fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	req := &service.CreateUserRequest{}
	req.User.Name = name
	req.User.Email = email
	req.User.Password = "testpass123"
	resp, err := svc.CreateUser(context.Background(), req)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return resp.User.ID, email
}

func login(t *testing.T, svc *service.Service, email string) string {
	t.Helper()
	resp, err := svc.CreateSession(context.Background(), &service.CreateSessionRequest{
		Email: email, Password: "testpass123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return resp.Token
}

func registerAndLogin(t *testing.T, svc *service.Service, name string) (id, token string) {
	t.Helper()
	id, email := createUser(t, svc, name)
	return id, login(t, svc, email)
}

func createEvent(t *testing.T, svc *service.Service, token, name string) service.EventView {
	t.Helper()
	req := &service.CreateEventRequest{Token: token}
	req.Event.Name = name
	req.Event.Duration = 30
	resp, err := svc.CreateEvent(context.Background(), req)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return resp.Event
}

func createAppointment(t *testing.T, svc *service.Service, token, eventID string) service.AppointmentView {
	t.Helper()
	req := &service.CreateAppointmentRequest{Token: token}
	req.Appointment.EventID = eventID
	req.Appointment.InviteeEmail = "invitee@test.com"
	req.Appointment.StartTime = "2026-09-01T10:00:00Z"
	req.Appointment.EndTime = "2026-09-01T10:30:00Z"
	resp, err := svc.CreateAppointment(context.Background(), req)
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	return resp.Appointment
}

func slots(days ...string) []model.AvailabilitySlot {
	var out []model.AvailabilitySlot
	for _, d := range days {
		out = append(out, model.AvailabilitySlot{Day: d, StartTime: "09:00", EndTime: "17:00"})
	}
	return out
}
