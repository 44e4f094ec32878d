package service

import (
	"context"

	"github.com/google/uuid"

	"calendly-soap-api/internal/fault"
	"calendly-soap-api/internal/model"
	"calendly-soap-api/internal/validate"
)

type AppointmentView struct {
	ID           string `xml:"id"`
	EventID      string `xml:"eventId"`
	UserID       string `xml:"userId"`
	InviteeEmail string `xml:"inviteeEmail"`
	StartTime    string `xml:"startTime"`
	EndTime      string `xml:"endTime"`
	Status       string `xml:"status"`
}

func appointmentView(a *model.Appointment) AppointmentView {
	return AppointmentView{
		ID:           a.ID,
		EventID:      a.EventID,
		UserID:       a.UserID,
		InviteeEmail: a.InviteeEmail,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		Status:       a.Status,
	}
}

type CreateAppointmentRequest struct {
	Token       string `xml:"token"`
	Appointment struct {
		EventID      string `xml:"eventId"`
		InviteeEmail string `xml:"inviteeEmail"`
		StartTime    string `xml:"startTime"`
		EndTime      string `xml:"endTime"`
		Status       string `xml:"status"`
	} `xml:"appointment"`
}

type CreateAppointmentResponse struct {
	Appointment AppointmentView `xml:"appointment"`
}

func (s *Service) CreateAppointment(ctx context.Context, req *CreateAppointmentRequest) (*CreateAppointmentResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	in := req.Appointment
	if in.EventID == "" || in.InviteeEmail == "" || in.StartTime == "" || in.EndTime == "" {
		return nil, fault.BadRequest("EventId, inviteeEmail, startTime, and endTime are required")
	}
	if !validate.Email(in.InviteeEmail) {
		return nil, fault.BadRequest("Invalid invitee email format")
	}

	// any existing event is acceptable, ownership of it is not required
	e, err := s.store.EventByID(ctx, in.EventID)
	if err != nil {
		return nil, s.dbFault("CreateAppointment", err)
	}
	if e == nil {
		return nil, fault.NotFound("Event not found")
	}

	status := in.Status
	if status == "" {
		status = "scheduled"
	}
	a := &model.Appointment{
		ID:           uuid.New().String(),
		EventID:      in.EventID,
		UserID:       caller.ID,
		InviteeEmail: in.InviteeEmail,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Status:       status,
	}
	if err := s.store.CreateAppointment(ctx, a); err != nil {
		return nil, s.dbFault("CreateAppointment", err)
	}
	return &CreateAppointmentResponse{Appointment: appointmentView(a)}, nil
}

type GetAppointmentsRequest struct {
	Token string `xml:"token"`
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentView `xml:"appointments>appointment"`
}

func (s *Service) GetAppointments(ctx context.Context, req *GetAppointmentsRequest) (*GetAppointmentsResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.AppointmentsByOwner(ctx, caller.ID)
	if err != nil {
		return nil, s.dbFault("GetAppointments", err)
	}
	out := make([]AppointmentView, len(rows))
	for i := range rows {
		out[i] = appointmentView(&rows[i])
	}
	return &GetAppointmentsResponse{Appointments: out}, nil
}

type GetAppointmentRequest struct {
	Token         string `xml:"token"`
	AppointmentID string `xml:"appointmentId"`
}

type GetAppointmentResponse struct {
	Appointment AppointmentView `xml:"appointment"`
}

// GetAppointment filters by owner at the query level, so a non-owner gets
// NotFound rather than Forbidden.
func (s *Service) GetAppointment(ctx context.Context, req *GetAppointmentRequest) (*GetAppointmentResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	a, err := s.store.AppointmentByOwner(ctx, req.AppointmentID, caller.ID)
	if err != nil {
		return nil, s.dbFault("GetAppointment", err)
	}
	if a == nil {
		return nil, fault.NotFound("Appointment not found")
	}
	return &GetAppointmentResponse{Appointment: appointmentView(a)}, nil
}

type UpdateAppointmentRequest struct {
	Token         string `xml:"token"`
	AppointmentID string `xml:"appointmentId"`
	EventID       string `xml:"eventId"`
	InviteeEmail  string `xml:"inviteeEmail"`
	StartTime     string `xml:"startTime"`
	EndTime       string `xml:"endTime"`
	Status        string `xml:"status"`
}

type UpdateAppointmentResponse struct {
	Appointment AppointmentView `xml:"appointment"`
}

func (s *Service) UpdateAppointment(ctx context.Context, req *UpdateAppointmentRequest) (*UpdateAppointmentResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	a, err := s.store.AppointmentByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, s.dbFault("UpdateAppointment", err)
	}
	if a == nil {
		return nil, fault.NotFound("Appointment not found")
	}
	if a.UserID != caller.ID {
		return nil, fault.Forbidden("You can only modify your own appointments")
	}

	if req.EventID == "" && req.InviteeEmail == "" && req.StartTime == "" && req.EndTime == "" && req.Status == "" {
		return nil, fault.BadRequest("At least one field is required")
	}
	if req.InviteeEmail != "" && !validate.Email(req.InviteeEmail) {
		return nil, fault.BadRequest("Invalid invitee email format")
	}

	// a replacement event must exist before any field is written
	if req.EventID != "" {
		e, err := s.store.EventByID(ctx, req.EventID)
		if err != nil {
			return nil, s.dbFault("UpdateAppointment", err)
		}
		if e == nil {
			return nil, fault.NotFound("Event not found")
		}
	}

	err = s.store.UpdateAppointment(ctx, req.AppointmentID, model.AppointmentPatch{
		EventID:      req.EventID,
		InviteeEmail: req.InviteeEmail,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       req.Status,
	})
	if err != nil {
		return nil, s.dbFault("UpdateAppointment", err)
	}

	// merged view over the row read above; not re-read after the write
	out := appointmentView(a)
	if req.EventID != "" {
		out.EventID = req.EventID
	}
	if req.InviteeEmail != "" {
		out.InviteeEmail = req.InviteeEmail
	}
	if req.StartTime != "" {
		out.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		out.EndTime = req.EndTime
	}
	if req.Status != "" {
		out.Status = req.Status
	}
	out.UserID = caller.ID
	return &UpdateAppointmentResponse{Appointment: out}, nil
}

type DeleteAppointmentRequest struct {
	Token         string `xml:"token"`
	AppointmentID string `xml:"appointmentId"`
}

type DeleteAppointmentResponse struct {
	Success bool `xml:"success"`
}

func (s *Service) DeleteAppointment(ctx context.Context, req *DeleteAppointmentRequest) (*DeleteAppointmentResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	a, err := s.store.AppointmentByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, s.dbFault("DeleteAppointment", err)
	}
	if a == nil {
		return nil, fault.NotFound("Appointment not found")
	}
	if a.UserID != caller.ID {
		return nil, fault.Forbidden("You can only delete your own appointments")
	}

	if err := s.store.DeleteAppointment(ctx, req.AppointmentID); err != nil {
		return nil, s.dbFault("DeleteAppointment", err)
	}
	return &DeleteAppointmentResponse{Success: true}, nil
}
