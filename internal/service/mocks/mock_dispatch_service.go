package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/notifyd/notifyd/internal/service"
	"github.com/notifyd/notifyd/internal/storage"
)

// MockDispatchService is a mock implementation of service.DispatchService.
type MockDispatchService struct {
	mock.Mock
}

func (m *MockDispatchService) Send(ctx context.Context, req service.DispatchRequest) (service.DispatchResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(service.DispatchResult), args.Error(1)
}

func (m *MockDispatchService) ListDeliveries(ctx context.Context, limit int) ([]storage.DeliveryLogEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.DeliveryLogEntry), args.Error(1)
}
