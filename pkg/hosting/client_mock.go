package hosting

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) GetDomain(ctx context.Context, slug string) (DomainStatus, int, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(DomainStatus), args.Int(1), args.Error(2)
}

func (m *MockClient) GetDomainConfig(ctx context.Context, slug string) (DomainConfig, int, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(DomainConfig), args.Int(1), args.Error(2)
}

func (m *MockClient) VerifyDomain(ctx context.Context, slug string) (DomainStatus, int, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(DomainStatus), args.Int(1), args.Error(2)
}
