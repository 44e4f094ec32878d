package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"calendly-soap-api/internal/fault"
	"calendly-soap-api/internal/model"
	"calendly-soap-api/internal/store"
	"calendly-soap-api/internal/validate"
)

// UserView is a user as returned to callers: never carries the password.
type UserView struct {
	ID       string `xml:"id"`
	Name     string `xml:"name"`
	Email    string `xml:"email"`
	Timezone string `xml:"timezone,omitempty"`
}

// CreatedUser is the creation response only: it echoes the password back
// once, alongside the assigned id.
type CreatedUser struct {
	ID       string `xml:"id"`
	Name     string `xml:"name"`
	Email    string `xml:"email"`
	Password string `xml:"password"`
	Timezone string `xml:"timezone,omitempty"`
}

type Pagination struct {
	Page     int `xml:"page"`
	PageSize int `xml:"pageSize"`
	Total    int `xml:"total"`
}

func userView(u *model.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Timezone: u.Timezone}
}

type CreateUserRequest struct {
	User struct {
		Name     string `xml:"name"`
		Email    string `xml:"email"`
		Password string `xml:"password"`
		Timezone string `xml:"timezone"`
	} `xml:"user"`
}

type CreateUserResponse struct {
	User CreatedUser `xml:"user"`
}

func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest) (*CreateUserResponse, error) {
	in := req.User
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fault.BadRequest("Name, email, and password are required")
	}
	if !validate.Email(in.Email) {
		return nil, fault.BadRequest("Invalid email format")
	}

	u := &model.User{
		ID:       uuid.New().String(),
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Timezone: in.Timezone,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, fault.BadRequest("Email already in use")
		}
		return nil, s.dbFault("CreateUser", err)
	}

	return &CreateUserResponse{User: CreatedUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
		Timezone: u.Timezone,
	}}, nil
}

type GetUsersRequest struct {
	Token    string `xml:"token"`
	Page     int    `xml:"page"`
	PageSize int    `xml:"pageSize"`
}

type GetUsersResponse struct {
	Users      []UserView `xml:"users>user"`
	Pagination Pagination `xml:"pagination"`
}

func (s *Service) GetUsers(ctx context.Context, req *GetUsersRequest) (*GetUsersResponse, error) {
	if _, err := s.authenticate(ctx, req.Token); err != nil {
		return nil, err
	}

	page, pageSize := req.Page, req.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	rows, err := s.store.ListUsers(ctx, pageSize, offset)
	if err != nil {
		return nil, s.dbFault("GetUsers", err)
	}

	users := make([]UserView, len(rows))
	for i := range rows {
		users[i] = userView(&rows[i])
	}

	// total is the row count of this page, not the table size; the REST
	// mirror computes it the same way and the comparison suite pins it.
	return &GetUsersResponse{
		Users:      users,
		Pagination: Pagination{Page: page, PageSize: pageSize, Total: len(users)},
	}, nil
}

type GetUserRequest struct {
	Token  string `xml:"token"`
	UserID string `xml:"userId"`
}

type GetUserResponse struct {
	User UserView `xml:"user"`
}

func (s *Service) GetUser(ctx context.Context, req *GetUserRequest) (*GetUserResponse, error) {
	if _, err := s.authenticate(ctx, req.Token); err != nil {
		return nil, err
	}

	u, err := s.store.UserByID(ctx, req.UserID)
	if err != nil {
		return nil, s.dbFault("GetUser", err)
	}
	if u == nil {
		return nil, fault.NotFound("User not found")
	}
	return &GetUserResponse{User: userView(u)}, nil
}

type UpdateUserRequest struct {
	Token    string `xml:"token"`
	UserID   string `xml:"userId"`
	Name     string `xml:"name"`
	Email    string `xml:"email"`
	Password string `xml:"password"`
	Timezone string `xml:"timezone"`
}

type UpdateUserResponse struct {
	User UserView `xml:"user"`
}

func (s *Service) UpdateUser(ctx context.Context, req *UpdateUserRequest) (*UpdateUserResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if caller.ID != req.UserID {
		return nil, fault.Forbidden("You can only modify your own data")
	}
	if req.Name == "" && req.Email == "" && req.Password == "" && req.Timezone == "" {
		return nil, fault.BadRequest("At least one field is required")
	}
	if req.Email != "" && !validate.Email(req.Email) {
		return nil, fault.BadRequest("Invalid email format")
	}

	rows, err := s.store.UpdateUser(ctx, req.UserID, model.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Timezone: req.Timezone,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, fault.BadRequest("Email already in use")
		}
		return nil, s.dbFault("UpdateUser", err)
	}
	if rows == 0 {
		return nil, fault.NotFound("User not found")
	}

	// merged view of old and new fields; the store is not re-read
	out := userView(caller)
	out.ID = req.UserID
	if req.Name != "" {
		out.Name = req.Name
	}
	if req.Email != "" {
		out.Email = req.Email
	}
	if req.Timezone != "" {
		out.Timezone = req.Timezone
	}
	return &UpdateUserResponse{User: out}, nil
}

type DeleteUserRequest struct {
	Token  string `xml:"token"`
	UserID string `xml:"userId"`
}

type DeleteUserResponse struct {
	Success bool `xml:"success"`
}

func (s *Service) DeleteUser(ctx context.Context, req *DeleteUserRequest) (*DeleteUserResponse, error) {
	caller, err := s.authenticate(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if caller.ID != req.UserID {
		return nil, fault.Forbidden("You can only delete your own account")
	}

	rows, err := s.store.DeleteUser(ctx, req.UserID)
	if err != nil {
		return nil, s.dbFault("DeleteUser", err)
	}
	if rows == 0 {
		return nil, fault.NotFound("User not found")
	}
	return &DeleteUserResponse{Success: true}, nil
}
