package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"countrystats/internal/model"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) All(ctx context.Context) ([]model.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Country), args.Error(1)
}

func (m *MockFetcher) SearchByName(ctx context.Context, name string) ([]model.Country, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Country), args.Error(1)
}
