// Package service implements the business logic layer between HTTP handlers
// and the storage/notification packages. All interfaces are designed for easy
// mocking in tests.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/notifyd/notifyd/internal/storage"
)

var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CreateUserRequest is the payload for creating a user preference record.
// The ID is assigned by the store.
type CreateUserRequest struct {
	Email       string                     `json:"email"`
	Telephone   string                     `json:"telephone"`
	Preferences storage.ChannelPreferences `json:"preferences"`
}

// UpdateByEmailRequest updates the record identified by Email. Telephone is
// optional: a nil pointer means "leave unchanged".
type UpdateByEmailRequest struct {
	Email       string                     `json:"email"`
	Telephone   *string                    `json:"telephone,omitempty"`
	Preferences storage.ChannelPreferences `json:"preferences"`
}

// UserService defines the business logic interface for managing user
// preference records.
type UserService interface {
	// List returns all stored records.
	List(ctx context.Context) []storage.User

	// Get returns the record with the given ID.
	Get(ctx context.Context, id int) (storage.User, error)

	// Create validates and inserts a new record, returning it with its
	// assigned ID.
	Create(ctx context.Context, req CreateUserRequest) (storage.User, error)

	// Update replaces the record with the given ID. The record's ID field is
	// forced to id regardless of input.
	Update(ctx context.Context, id int, user storage.User) (storage.User, error)

	// UpdateByEmail updates the preferences (and optionally telephone) of the
	// record identified by email.
	UpdateByEmail(ctx context.Context, req UpdateByEmailRequest) (storage.User, error)

	// Delete removes the record with the given ID.
	Delete(ctx context.Context, id int) error
}

// userService is the default implementation of UserService.
type userService struct {
	store  storage.UserStore
	logger *slog.Logger
}

// NewUserService returns a new UserService backed by the given UserStore.
func NewUserService(store storage.UserStore, logger *slog.Logger) UserService {
	return &userService{store: store, logger: logger}
}

func (s *userService) List(_ context.Context) []storage.User {
	return s.store.List()
}

func (s *userService) Get(_ context.Context, id int) (storage.User, error) {
	u, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return storage.User{}, &NotFoundError{Resource: "user", ID: strconv.Itoa(id)}
		}
		return storage.User{}, fmt.Errorf("getting user %d: %w", id, err)
	}
	return u, nil
}

func (s *userService) Create(_ context.Context, req CreateUserRequest) (storage.User, error) {
	if !emailRE.MatchString(req.Email) {
		return storage.User{}, &ValidationError{Field: "email", Message: fmt.Sprintf("invalid email address %q", req.Email)}
	}

	u, err := s.store.Create(storage.User{
		Email:       req.Email,
		Telephone:   req.Telephone,
		Preferences: req.Preferences,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return storage.User{}, &ConflictError{Resource: "user", ID: req.Email}
		}
		return storage.User{}, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "email", u.Email)
	return u, nil
}

func (s *userService) Update(_ context.Context, id int, user storage.User) (storage.User, error) {
	if !emailRE.MatchString(user.Email) {
		return storage.User{}, &ValidationError{Field: "email", Message: fmt.Sprintf("invalid email address %q", user.Email)}
	}

	updated, err := s.store.Update(id, user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			return storage.User{}, &NotFoundError{Resource: "user", ID: strconv.Itoa(id)}
		case errors.Is(err, storage.ErrDuplicateEmail):
			return storage.User{}, &ConflictError{Resource: "user", ID: user.Email}
		}
		return storage.User{}, fmt.Errorf("updating user %d: %w", id, err)
	}

	s.logger.Info("user updated", "user_id", id)
	return updated, nil
}

func (s *userService) UpdateByEmail(ctx context.Context, req UpdateByEmailRequest) (storage.User, error) {
	existing, err := s.store.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return storage.User{}, &NotFoundError{Resource: "user", ID: req.Email}
		}
		return storage.User{}, fmt.Errorf("looking up user by email: %w", err)
	}

	existing.Preferences = req.Preferences
	if req.Telephone != nil {
		existing.Telephone = *req.Telephone
	}

	return s.Update(ctx, existing.ID, existing)
}

func (s *userService) Delete(_ context.Context, id int) error {
	if !s.store.Delete(id) {
		return &NotFoundError{Resource: "user", ID: strconv.Itoa(id)}
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}
