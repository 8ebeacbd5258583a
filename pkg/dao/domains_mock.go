package dao

import (
	"context"

	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/link-services/link-gateway-backend/pkg/models"
	"github.com/stretchr/testify/mock"
)

type MockDomainDao struct {
	mock.Mock
}

func NewMockDomainDao() *MockDomainDao {
	return &MockDomainDao{}
}

func (m *MockDomainDao) Create(ctx context.Context, request api.DomainRequest) (api.DomainResponse, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(api.DomainResponse), args.Error(1)
}

func (m *MockDomainDao) Fetch(ctx context.Context, slug string) (api.DomainResponse, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(api.DomainResponse), args.Error(1)
}

func (m *MockDomainDao) List(ctx context.Context, pagination api.PaginationData) (api.DomainCollectionResponse, int64, error) {
	args := m.Called(ctx, pagination)
	return args.Get(0).(api.DomainCollectionResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockDomainDao) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func (m *MockDomainDao) ListForVerification(ctx context.Context, limit int) ([]models.Domain, error) {
	args := m.Called(ctx, limit)
	var domains []models.Domain
	if v, ok := args.Get(0).([]models.Domain); ok {
		domains = v
	}
	return domains, args.Error(1)
}

func (m *MockDomainDao) UpdateVerification(ctx context.Context, slug string, update map[string]interface{}) error {
	args := m.Called(ctx, slug, update)
	return args.Error(0)
}

func (m *MockDomainDao) AppendSentNotification(ctx context.Context, slug string, notice string) error {
	args := m.Called(ctx, slug, notice)
	return args.Error(0)
}
