package dao

import (
	"context"

	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/stretchr/testify/mock"
)

type MockLinkDao struct {
	mock.Mock
}

func NewMockLinkDao() *MockLinkDao {
	return &MockLinkDao{}
}

func (m *MockLinkDao) Create(ctx context.Context, request api.LinkRequest) (api.LinkResponse, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(api.LinkResponse), args.Error(1)
}

func (m *MockLinkDao) Fetch(ctx context.Context, domain string, key string) (api.LinkResponse, error) {
	args := m.Called(ctx, domain, key)
	return args.Get(0).(api.LinkResponse), args.Error(1)
}

func (m *MockLinkDao) List(ctx context.Context, domain string, pagination api.PaginationData) (api.LinkCollectionResponse, int64, error) {
	args := m.Called(ctx, domain, pagination)
	return args.Get(0).(api.LinkCollectionResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockLinkDao) Delete(ctx context.Context, domain string, key string) error {
	args := m.Called(ctx, domain, key)
	return args.Error(0)
}

func (m *MockLinkDao) IncrementClicks(ctx context.Context, domain string, key string) error {
	args := m.Called(ctx, domain, key)
	return args.Error(0)
}
