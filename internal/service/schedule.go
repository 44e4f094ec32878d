package service

import (
	"context"
	"encoding/json"

	"calendly-soap-api/internal/fault"
	"calendly-soap-api/internal/model"
)

type ScheduleView struct {
	ID           int64                    `xml:"id"`
	UserID       string                   `xml:"userId"`
	Availability []model.AvailabilitySlot `xml:"availability"`
}

func decodeScheduleRow(r *model.ScheduleRow) (*ScheduleView, error) {
	var slots []model.AvailabilitySlot
	if err := json.Unmarshal([]byte(r.Availability), &slots); err != nil {
		return nil, fault.Parsing()
	}
	return &ScheduleView{ID: r.ID, UserID: r.UserID, Availability: slots}, nil
}

type CreateScheduleRequest struct {
	Token    string `xml:"token"`
	Schedule struct {
		UserID       string                   `xml:"userId"`
		Availability []model.AvailabilitySlot `xml:"availability"`
	} `xml:"schedule"`
}

type CreateScheduleResponse struct {
	Schedule ScheduleView `xml:"schedule"`
}

func (s *Service) CreateSchedule(ctx context.Context, req *CreateScheduleRequest) (*CreateScheduleResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	in := req.Schedule
	if in.UserID == "" || len(in.Availability) == 0 {
		return nil, fault.BadRequest("UserId and availability are required")
	}
	if in.UserID != caller.ID {
		return nil, fault.Forbidden("You can only create schedules for yourself")
	}

	blob, err := json.Marshal(in.Availability)
	if err != nil {
		return nil, s.dbFault("CreateSchedule", err)
	}
	id, err := s.store.CreateSchedule(ctx, in.UserID, string(blob))
	if err != nil {
		return nil, s.dbFault("CreateSchedule", err)
	}

	return &CreateScheduleResponse{Schedule: ScheduleView{
		ID:           id,
		UserID:       in.UserID,
		Availability: in.Availability,
	}}, nil
}

type GetSchedulesRequest struct {
	Token string `xml:"token"`
}

type GetSchedulesResponse struct {
	Schedules []ScheduleView `xml:"schedules>schedule"`
}

func (s *Service) GetSchedules(ctx context.Context, req *GetSchedulesRequest) (*GetSchedulesResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.SchedulesByUser(ctx, caller.ID)
	if err != nil {
		return nil, s.dbFault("GetSchedules", err)
	}

	schedules := make([]ScheduleView, 0, len(rows))
	for i := range rows {
		v, err := decodeScheduleRow(&rows[i])
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *v)
	}
	return &GetSchedulesResponse{Schedules: schedules}, nil
}

type GetScheduleRequest struct {
	UserID string `xml:"userId"`
}

type GetScheduleResponse struct {
	Schedule ScheduleView `xml:"schedule"`
}

// GetSchedule is the one public operation: no token, so third parties can
// check an account's availability.
func (s *Service) GetSchedule(ctx context.Context, req *GetScheduleRequest) (*GetScheduleResponse, error) {
	row, err := s.store.ScheduleByUser(ctx, req.UserID)
	if err != nil {
		return nil, s.dbFault("GetSchedule", err)
	}
	if row == nil {
		return nil, fault.NotFound("Schedule not found")
	}
	v, err := decodeScheduleRow(row)
	if err != nil {
		return nil, err
	}
	return &GetScheduleResponse{Schedule: *v}, nil
}

type UpdateScheduleRequest struct {
	Token        string                   `xml:"token"`
	UserID       string                   `xml:"userId"`
	Availability []model.AvailabilitySlot `xml:"availability"`
}

type UpdateScheduleResponse struct {
	Schedule ScheduleView `xml:"schedule"`
}

// UpdateSchedule is insert-if-absent: an account with no schedule gets one
// created, otherwise the existing row is overwritten in place.
func (s *Service) UpdateSchedule(ctx context.Context, req *UpdateScheduleRequest) (*UpdateScheduleResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if caller.ID != req.UserID {
		return nil, fault.Forbidden("You can only update your own schedule")
	}
	if len(req.Availability) == 0 {
		return nil, fault.BadRequest("Availability is required")
	}

	blob, err := json.Marshal(req.Availability)
	if err != nil {
		return nil, s.dbFault("UpdateSchedule", err)
	}

	rows, err := s.store.UpdateSchedule(ctx, req.UserID, string(blob))
	if err != nil {
		return nil, s.dbFault("UpdateSchedule", err)
	}

	if rows == 0 {
		id, err := s.store.CreateSchedule(ctx, req.UserID, string(blob))
		if err != nil {
			return nil, s.dbFault("UpdateSchedule", err)
		}
		return &UpdateScheduleResponse{Schedule: ScheduleView{
			ID:           id,
			UserID:       req.UserID,
			Availability: req.Availability,
		}}, nil
	}

	row, err := s.store.ScheduleByUser(ctx, req.UserID)
	if err != nil || row == nil {
		return nil, s.dbFault("UpdateSchedule", err)
	}
	v, err := decodeScheduleRow(row)
	if err != nil {
		return nil, err
	}
	return &UpdateScheduleResponse{Schedule: *v}, nil
}

type DeleteScheduleRequest struct {
	Token  string `xml:"token"`
	UserID string `xml:"userId"`
}

type DeleteScheduleResponse struct {
	Success bool `xml:"success"`
}

func (s *Service) DeleteSchedule(ctx context.Context, req *DeleteScheduleRequest) (*DeleteScheduleResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if caller.ID != req.UserID {
		return nil, fault.Forbidden("You can only delete your own schedule")
	}

	rows, err := s.store.DeleteSchedule(ctx, req.UserID)
	if err != nil {
		return nil, s.dbFault("DeleteSchedule", err)
	}
	if rows == 0 {
		return nil, fault.NotFound("Schedule not found")
	}
	return &DeleteScheduleResponse{Success: true}, nil
}
