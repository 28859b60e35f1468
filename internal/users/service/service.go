// Package service implements user account management.
package service

import (
	"context"

	"leaddesk_backend/internal/auth/password"
	"leaddesk_backend/internal/users/repository"
	"leaddesk_backend/internal/users/transport"
	"leaddesk_backend/platform/apperr"

	"github.com/google/uuid"
)

// Repository defines the data access interface needed by the users service.
type Repository interface {
	Create(ctx context.Context, params repository.CreateUserParams) (repository.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.User, error)
	List(ctx context.Context) ([]repository.User, error)
	Update(ctx context.Context, id uuid.UUID, params repository.UpdateUserParams) (repository.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service handles account management operations.
type Service struct {
	repo Repository
}

// New creates a new users service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new account with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, req transport.CreateUserRequest) (transport.UserResponse, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	user, err := s.repo.Create(ctx, repository.CreateUserParams{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     active,
	})
	if err != nil {
		if err == repository.ErrDuplicateUsername {
			return transport.UserResponse{}, apperr.Conflict("username already taken")
		}
		return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create user", err)
	}

	return toResponse(user), nil
}

// List returns every account, newest first.
func (s *Service) List(ctx context.Context) (transport.UserListResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return transport.UserListResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list users", err)
	}

	items := make([]transport.UserResponse, len(users))
	for i, user := range users {
		items[i] = toResponse(user)
	}
	return transport.UserListResponse{Items: items}, nil
}

// Update applies a partial account update, re-hashing the password when
// one is supplied.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateUserRequest) (transport.UserResponse, error) {
	params := repository.UpdateUserParams{
		Username: req.Username,
		Role:     req.Role,
		IsActive: req.IsActive,
	}
	if req.Password != nil {
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
		}
		params.PasswordHash = &hash
	}

	user, err := s.repo.Update(ctx, id, params)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return transport.UserResponse{}, apperr.NotFound("user not found")
		case repository.ErrDuplicateUsername:
			return transport.UserResponse{}, apperr.Conflict("username already taken")
		}
		return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update user", err)
	}

	return toResponse(user), nil
}

// Delete removes an account. Accounts still owning leads cannot be
// deleted; deactivate them instead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrNotFound:
			return apperr.NotFound("user not found")
		case repository.ErrHasLeads:
			return apperr.Conflict("user still has assigned leads")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete user", err)
	}
	return nil
}

func toResponse(user repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
