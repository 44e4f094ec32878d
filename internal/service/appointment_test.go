package service_test

import (
	"context"
	"testing"

	"calendly-soap-api/internal/fault"
	"calendly-soap-api/internal/service"
)

func TestCreateAppointment(t *testing.T) {
	svc := setup(t)
	owner, ownerToken := registerAndLogin(t, svc, "Owner")
	event := createEvent(t, svc, ownerToken, "Intro Call")

	a := createAppointment(t, svc, ownerToken, event.ID)
	if a.ID == "" {
		t.Error("expected a generated id")
	}
	if a.UserID != owner {
		t.Errorf("userId = %s, want caller %s", a.UserID, owner)
	}
	if a.Status != "scheduled" {
		t.Errorf("status = %q, want default scheduled", a.Status)
	}
}

func TestCreateAppointmentOnAnotherOwnersEvent(t *testing.T) {
	svc := setup(t)
	_, ownerToken := registerAndLogin(t, svc, "Owner")
	event := createEvent(t, svc, ownerToken, "Intro Call")
	booker, bookerToken := registerAndLogin(t, svc, "Booker")

	// booking someone else's event is allowed; the appointment belongs
	// to the booker, not the event owner
	a := createAppointment(t, svc, bookerToken, event.ID)
	if a.UserID != booker {
		t.Errorf("userId = %s, want %s", a.UserID, booker)
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	svc := setup(t)
	_, token := registerAndLogin(t, svc, "A")
	event := createEvent(t, svc, token, "Call")

	tests := []struct {
		name   string
		mutate func(*service.CreateAppointmentRequest)
		want   fault.Code
	}{
		{"missing eventId", func(r *service.CreateAppointmentRequest) { r.Appointment.EventID = "" }, fault.CodeBadRequest},
		{"missing invitee", func(r *service.CreateAppointmentRequest) { r.Appointment.InviteeEmail = "" }, fault.CodeBadRequest},
		{"missing startTime", func(r *service.CreateAppointmentRequest) { r.Appointment.StartTime = "" }, fault.CodeBadRequest},
		{"missing endTime", func(r *service.CreateAppointmentRequest) { r.Appointment.EndTime = "" }, fault.CodeBadRequest},
		{"bad invitee email", func(r *service.CreateAppointmentRequest) { r.Appointment.InviteeEmail = "not-an-email" }, fault.CodeBadRequest},
		{"unknown event", func(r *service.CreateAppointmentRequest) { r.Appointment.EventID = "missing" }, fault.CodeNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := &service.CreateAppointmentRequest{Token: token}
			req.Appointment.EventID = event.ID
			req.Appointment.InviteeEmail = "invitee@test.com"
			req.Appointment.StartTime = "2026-09-01T10:00:00Z"
			req.Appointment.EndTime = "2026-09-01T10:30:00Z"
			tc.mutate(req)
			_, err := svc.CreateAppointment(context.Background(), req)
			wantFault(t, err, tc.want)
		})
	}
}

func TestGetAppointmentsOwnerOnly(t *testing.T) {
	svc := setup(t)
	_, tokenA := registerAndLogin(t, svc, "A")
	_, tokenB := registerAndLogin(t, svc, "B")
	event := createEvent(t, svc, tokenA, "Call")
	createAppointment(t, svc, tokenA, event.ID)
	createAppointment(t, svc, tokenA, event.ID)
	createAppointment(t, svc, tokenB, event.ID)

	resp, err := svc.GetAppointments(context.Background(), &service.GetAppointmentsRequest{Token: tokenA})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Appointments) != 2 {
		t.Errorf("expected 2 appointments, got %d", len(resp.Appointments))
	}
}

// A non-owner looking up an appointment by id gets NotFound, never a
// hint that the row exists.
func TestGetAppointmentHidesOtherOwners(t *testing.T) {
	svc := setup(t)
	_, tokenA := registerAndLogin(t, svc, "A")
	_, tokenB := registerAndLogin(t, svc, "B")
	event := createEvent(t, svc, tokenA, "Call")
	a := createAppointment(t, svc, tokenA, event.ID)

	got, err := svc.GetAppointment(context.Background(), &service.GetAppointmentRequest{
		Token: tokenA, AppointmentID: a.ID,
	})
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got.Appointment.ID != a.ID {
		t.Errorf("id = %s", got.Appointment.ID)
	}

	_, err = svc.GetAppointment(context.Background(), &service.GetAppointmentRequest{
		Token: tokenB, AppointmentID: a.ID,
	})
	wantFault(t, err, fault.CodeNotFound)
}

func TestUpdateAppointment(t *testing.T) {
	svc := setup(t)
	_, token := registerAndLogin(t, svc, "A")
	event := createEvent(t, svc, token, "Call")
	a := createAppointment(t, svc, token, event.ID)

	resp, err := svc.UpdateAppointment(context.Background(), &service.UpdateAppointmentRequest{
		Token:         token,
		AppointmentID: a.ID,
		Status:        "cancelled",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Appointment.Status != "cancelled" {
		t.Errorf("status = %q", resp.Appointment.Status)
	}
	// untouched fields survive the partial update
	if resp.Appointment.InviteeEmail != a.InviteeEmail {
		t.Errorf("inviteeEmail = %q", resp.Appointment.InviteeEmail)
	}
	if resp.Appointment.StartTime != a.StartTime {
		t.Errorf("startTime = %q", resp.Appointment.StartTime)
	}

	got, err := svc.GetAppointment(context.Background(), &service.GetAppointmentRequest{
		Token: token, AppointmentID: a.ID,
	})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Appointment.Status != "cancelled" {
		t.Errorf("stored status = %q", got.Appointment.Status)
	}
}

func TestUpdateAppointmentReassignEvent(t *testing.T) {
	svc := setup(t)
	_, token := registerAndLogin(t, svc, "A")
	first := createEvent(t, svc, token, "First")
	second := createEvent(t, svc, token, "Second")
	a := createAppointment(t, svc, token, first.ID)

	resp, err := svc.UpdateAppointment(context.Background(), &service.UpdateAppointmentRequest{
		Token:         token,
		AppointmentID: a.ID,
		EventID:       second.ID,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Appointment.EventID != second.ID {
		t.Errorf("eventId = %s", resp.Appointment.EventID)
	}

	_, err = svc.UpdateAppointment(context.Background(), &service.UpdateAppointmentRequest{
		Token:         token,
		AppointmentID: a.ID,
		EventID:       "missing",
	})
	wantFault(t, err, fault.CodeNotFound)
}

func TestUpdateAppointmentOrdering(t *testing.T) {
	svc := setup(t)
	_, tokenA := registerAndLogin(t, svc, "A")
	_, tokenB := registerAndLogin(t, svc, "B")
	event := createEvent(t, svc, tokenA, "Call")
	a := createAppointment(t, svc, tokenA, event.ID)

	// a missing appointment is NotFound even for a caller who would
	// also fail the ownership check
	_, err := svc.UpdateAppointment(context.Background(), &service.UpdateAppointmentRequest{
		Token: tokenB, AppointmentID: "missing", Status: "cancelled",
	})
	wantFault(t, err, fault.CodeNotFound)

	_, err = svc.UpdateAppointment(context.Background(), &service.UpdateAppointmentRequest{
		Token: tokenB, AppointmentID: a.ID, Status: "cancelled",
	})
	wantFault(t, err, fault.CodeForbidden)

	// ownership passes, then the empty patch is rejected
	_, err = svc.UpdateAppointment(context.Background(), &service.UpdateAppointmentRequest{
		Token: tokenA, AppointmentID: a.ID,
	})
	wantFault(t, err, fault.CodeBadRequest)
}

func TestDeleteAppointment(t *testing.T) {
	svc := setup(t)
	_, token := registerAndLogin(t, svc, "A")
	event := createEvent(t, svc, token, "Call")
	a := createAppointment(t, svc, token, event.ID)

	resp, err := svc.DeleteAppointment(context.Background(), &service.DeleteAppointmentRequest{
		Token: token, AppointmentID: a.ID,
	})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}

	_, err = svc.GetAppointment(context.Background(), &service.GetAppointmentRequest{
		Token: token, AppointmentID: a.ID,
	})
	wantFault(t, err, fault.CodeNotFound)
}

func TestDeleteAppointmentOwnership(t *testing.T) {
	svc := setup(t)
	_, tokenA := registerAndLogin(t, svc, "A")
	_, tokenB := registerAndLogin(t, svc, "B")
	event := createEvent(t, svc, tokenA, "Call")
	a := createAppointment(t, svc, tokenA, event.ID)

	_, err := svc.DeleteAppointment(context.Background(), &service.DeleteAppointmentRequest{
		Token: tokenB, AppointmentID: a.ID,
	})
	wantFault(t, err, fault.CodeForbidden)

	_, err = svc.DeleteAppointment(context.Background(), &service.DeleteAppointmentRequest{
		Token: tokenB, AppointmentID: "missing",
	})
	wantFault(t, err, fault.CodeNotFound)
}
