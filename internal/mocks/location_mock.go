package mocks

import (
	"context"

	"github.com/benmeehan/iss-flyover/pkg/flyover"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of location.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GetLocation(ctx context.Context) (flyover.Coordinates, error) {
	args := m.Called(ctx)
	return args.Get(0).(flyover.Coordinates), args.Error(1)
}

func (m *MockProvider) Source() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProvider) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockPassFetcher is a mock implementation of services.PassFetcher
type MockPassFetcher struct {
	mock.Mock
}

func (m *MockPassFetcher) FetchISSFlyOverTimes(ctx context.Context, coords flyover.Coordinates) ([]flyover.Pass, error) {
	args := m.Called(ctx, coords)
	passes, _ := args.Get(0).([]flyover.Pass)
	return passes, args.Error(1)
}
