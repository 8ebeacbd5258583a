package event

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockProducer struct {
	mock.Mock
}

func NewMockProducer() *MockProducer {
	return &MockProducer{}
}

func (m *MockProducer) SendClick(ctx context.Context, click ClickEvent) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}

func (m *MockProducer) SendLifecycle(ctx context.Context, notice LifecycleNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *MockProducer) Close() {
	m.Called()
}
