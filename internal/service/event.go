package service

import (
	"context"

	"github.com/google/uuid"

	"calendly-soap-api/internal/fault"
	"calendly-soap-api/internal/model"
	"calendly-soap-api/internal/validate"
)

type EventView struct {
	ID          string `xml:"id"`
	Name        string `xml:"name"`
	Duration    int    `xml:"duration"`
	Description string `xml:"description,omitempty"`
	Color       string `xml:"color,omitempty"`
	UserID      string `xml:"userId"`
}

// OwnedEventView is EventView plus the isOwner flag computed relative to
// the caller; only GetEvent returns it.
type OwnedEventView struct {
	EventView
	IsOwner bool `xml:"isOwner"`
}

func eventView(e *model.Event) EventView {
	return EventView{
		ID:          e.ID,
		Name:        e.Name,
		Duration:    e.Duration,
		Description: e.Description,
		Color:       e.Color,
		UserID:      e.UserID,
	}
}

type CreateEventRequest struct {
	Token string `xml:"token"`
	Event struct {
		Name        string `xml:"name"`
		Duration    int    `xml:"duration"`
		Description string `xml:"description"`
		Color       string `xml:"color"`
	} `xml:"event"`
}

type CreateEventResponse struct {
	Event EventView `xml:"event"`
}

func (s *Service) CreateEvent(ctx context.Context, req *CreateEventRequest) (*CreateEventResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	in := req.Event
	if in.Name == "" || in.Duration <= 0 {
		return nil, fault.BadRequest("Name and duration are required")
	}
	if in.Color != "" && !validate.HexColor(in.Color) {
		return nil, fault.BadRequest("Color must be a valid hex color (e.g., #FF0000)")
	}

	// the owner is always the caller, never taken from the payload
	e := &model.Event{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Duration:    in.Duration,
		Description: in.Description,
		Color:       in.Color,
		UserID:      caller.ID,
	}
	if err := s.store.CreateEvent(ctx, e); err != nil {
		return nil, s.dbFault("CreateEvent", err)
	}
	return &CreateEventResponse{Event: eventView(e)}, nil
}

type GetEventsRequest struct {
	Token string `xml:"token"`
}

type GetEventsResponse struct {
	Events []EventView `xml:"events>event"`
}

func (s *Service) GetEvents(ctx context.Context, req *GetEventsRequest) (*GetEventsResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.EventsByOwner(ctx, caller.ID)
	if err != nil {
		return nil, s.dbFault("GetEvents", err)
	}
	events := make([]EventView, len(rows))
	for i := range rows {
		events[i] = eventView(&rows[i])
	}
	return &GetEventsResponse{Events: events}, nil
}

type GetEventRequest struct {
	Token   string `xml:"token"`
	EventID string `xml:"eventId"`
}

type GetEventResponse struct {
	Event OwnedEventView `xml:"event"`
}

// GetEvent is readable by any authenticated caller, not just the owner.
func (s *Service) GetEvent(ctx context.Context, req *GetEventRequest) (*GetEventResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	e, err := s.store.EventByID(ctx, req.EventID)
	if err != nil {
		return nil, s.dbFault("GetEvent", err)
	}
	if e == nil {
		return nil, fault.NotFound("Event not found")
	}
	return &GetEventResponse{Event: OwnedEventView{
		EventView: eventView(e),
		IsOwner:   e.UserID == caller.ID,
	}}, nil
}

type UpdateEventRequest struct {
	Token       string  `xml:"token"`
	EventID     string  `xml:"eventId"`
	Name        string  `xml:"name"`
	Duration    int     `xml:"duration"`
	Description *string `xml:"description"`
	Color       string  `xml:"color"`
}

type UpdateEventResponse struct {
	Event EventView `xml:"event"`
}

func (s *Service) UpdateEvent(ctx context.Context, req *UpdateEventRequest) (*UpdateEventResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	// existence before ownership
	e, err := s.store.EventByID(ctx, req.EventID)
	if err != nil {
		return nil, s.dbFault("UpdateEvent", err)
	}
	if e == nil {
		return nil, fault.NotFound("Event not found")
	}
	if e.UserID != caller.ID {
		return nil, fault.Forbidden("You can only modify your own events")
	}

	if req.Name == "" && req.Duration <= 0 && req.Description == nil && req.Color == "" {
		return nil, fault.BadRequest("At least one field is required")
	}
	if req.Color != "" && !validate.HexColor(req.Color) {
		return nil, fault.BadRequest("Color must be a valid hex color (e.g., #FF0000)")
	}

	err = s.store.UpdateEvent(ctx, req.EventID, model.EventPatch{
		Name:        req.Name,
		Duration:    req.Duration,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return nil, s.dbFault("UpdateEvent", err)
	}

	out := eventView(e)
	if req.Name != "" {
		out.Name = req.Name
	}
	if req.Duration > 0 {
		out.Duration = req.Duration
	}
	if req.Description != nil {
		out.Description = *req.Description
	}
	if req.Color != "" {
		out.Color = req.Color
	}
	out.UserID = caller.ID
	return &UpdateEventResponse{Event: out}, nil
}

type DeleteEventRequest struct {
	Token   string `xml:"token"`
	EventID string `xml:"eventId"`
}

type DeleteEventResponse struct {
	Success bool `xml:"success"`
}

func (s *Service) DeleteEvent(ctx context.Context, req *DeleteEventRequest) (*DeleteEventResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	e, err := s.store.EventByID(ctx, req.EventID)
	if err != nil {
		return nil, s.dbFault("DeleteEvent", err)
	}
	if e == nil {
		return nil, fault.NotFound("Event not found")
	}
	if e.UserID != caller.ID {
		return nil, fault.Forbidden("You can only delete your own events")
	}

	if err := s.store.DeleteEvent(ctx, req.EventID); err != nil {
		return nil, s.dbFault("DeleteEvent", err)
	}
	return &DeleteEventResponse{Success: true}, nil
}
