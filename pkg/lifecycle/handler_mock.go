package lifecycle

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockHandler struct {
	mock.Mock
}

func NewMockHandler() *MockHandler {
	return &MockHandler{}
}

func (m *MockHandler) Handle(ctx context.Context, fact DomainFact) error {
	args := m.Called(ctx, fact)
	return args.Error(0)
}
