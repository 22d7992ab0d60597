// Package mocks provides testify mocks for the service interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/notifyd/notifyd/internal/service"
	"github.com/notifyd/notifyd/internal/storage"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) []storage.User {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]storage.User)
}

func (m *MockUserService) Get(ctx context.Context, id int) (storage.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(storage.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, req service.CreateUserRequest) (storage.User, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(storage.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id int, user storage.User) (storage.User, error) {
	args := m.Called(ctx, id, user)
	return args.Get(0).(storage.User), args.Error(1)
}

func (m *MockUserService) UpdateByEmail(ctx context.Context, req service.UpdateByEmailRequest) (storage.User, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(storage.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
