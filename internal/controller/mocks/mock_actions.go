package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"countrystats/internal/controller"
)

// MockActions records triggers; use Run to drive the Display argument.
type MockActions struct {
	mock.Mock
}

func (m *MockActions) ShowAll(ctx context.Context, d controller.Display) {
	m.Called(ctx, d)
}

func (m *MockActions) Search(ctx context.Context, query string, d controller.Display) {
	m.Called(ctx, query, d)
}
