package service

import (
	"context"

	"calendly-soap-api/internal/auth"
	"calendly-soap-api/internal/fault"
)

type CreateSessionRequest struct {
	Email    string `xml:"email"`
	Password string `xml:"password"`
}

type CreateSessionResponse struct {
	Token string   `xml:"token"`
	User  UserView `xml:"user"`
}

// CreateSession is login: verify credentials, mint a fresh token, persist
// it on the user row. Any prior token for the account stops working.
func (s *Service) CreateSession(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fault.BadRequest("Email and password are required")
	}

	u, err := s.store.UserByEmail(ctx, req.Email)
	if err != nil {
		return nil, s.dbFault("CreateSession", err)
	}
	if u == nil || u.Password != req.Password {
		return nil, fault.Unauthorized("Invalid credentials")
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, s.dbFault("CreateSession", err)
	}
	if err := s.store.SetToken(ctx, u.ID, token); err != nil {
		return nil, s.dbFault("CreateSession", err)
	}

	return &CreateSessionResponse{Token: token, User: userView(u)}, nil
}

type DeleteSessionRequest struct {
	Token string `xml:"token"`
}

type DeleteSessionResponse struct {
	Message string `xml:"message"`
}

// DeleteSession is logout. The token only has to be present, not currently
// valid: clearing a token that matches no row is still a success.
func (s *Service) DeleteSession(ctx context.Context, req *DeleteSessionRequest) (*DeleteSessionResponse, error) {
	if req.Token == "" {
		return nil, fault.BadRequest("No token provided")
	}
	if err := s.store.ClearToken(ctx, req.Token); err != nil {
		return nil, s.dbFault("DeleteSession", err)
	}
	return &DeleteSessionResponse{Message: "Logout successful"}, nil
}
