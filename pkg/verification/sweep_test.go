package verification

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/link-services/link-gateway-backend/pkg/dao"
	"github.com/link-services/link-gateway-backend/pkg/hosting"
	"github.com/link-services/link-gateway-backend/pkg/lifecycle"
	"github.com/link-services/link-gateway-backend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testSweeper(reg *dao.MockDaoRegistry, client hosting.Client, handler lifecycle.Handler) *Sweeper {
	return &Sweeper{
		daoReg:      reg.ToDaoRegistry(),
		client:      client,
		lifecycle:   handler,
		batchSize:   100,
		workerCount: 4,
	}
}

func apiDomainResponse(slug string, verified bool) api.DomainResponse {
	return api.DomainResponse{
		UUID:      slug + "-uuid",
		Slug:      slug,
		ProjectID: "proj-1",
		Verified:  verified,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
}

func domainFixture(slug string, verified bool) models.Domain {
	return models.Domain{
		Base:      models.Base{UUID: slug + "-uuid", CreatedAt: time.Now().Add(-48 * time.Hour)},
		Slug:      slug,
		ProjectID: "proj-1",
		Verified:  verified,
	}
}

func hasLastChecked(update map[string]interface{}) bool {
	v, ok := update["last_checked_at"]
	if !ok {
		return false
	}
	ts, ok := v.(*time.Time)
	return ok && ts != nil && !ts.IsZero()
}

func TestSweepBatchUpdatesEveryDomain(t *testing.T) {
	reg := dao.GetMockDaoRegistry()
	client := hosting.NewMockClient()
	handler := lifecycle.NewMockHandler()

	domains := []models.Domain{
		domainFixture("a.com", false),
		domainFixture("b.com", true),
		domainFixture("c.com", false),
	}
	reg.Domain.On("ListForVerification", mock.Anything, 100).Return(domains, nil)

	for _, d := range domains {
		client.On("GetDomain", mock.Anything, d.Slug).
			Return(hosting.DomainStatus{Verified: true}, http.StatusOK, nil)
		client.On("GetDomainConfig", mock.Anything, d.Slug).
			Return(hosting.DomainConfig{}, http.StatusOK, nil)
		reg.Domain.On("UpdateVerification", mock.Anything, d.Slug, mock.MatchedBy(hasLastChecked)).Return(nil)
	}
	handler.On("Handle", mock.Anything, mock.Anything).Return(nil).Times(3)

	result, err := testSweeper(reg, client, handler).SweepBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, result.Checked)
	assert.Equal(t, 3, result.Verified)
	assert.Equal(t, 0, result.Failed)
	reg.Domain.AssertExpectations(t)
	handler.AssertExpectations(t)
}

func TestSweepBatchFailureDoesNotAbortBatch(t *testing.T) {
	reg := dao.GetMockDaoRegistry()
	client := hosting.NewMockClient()
	handler := lifecycle.NewMockHandler()

	domains := []models.Domain{
		domainFixture("good.com", false),
		domainFixture("broken.com", true),
	}
	reg.Domain.On("ListForVerification", mock.Anything, 100).Return(domains, nil)

	client.On("GetDomain", mock.Anything, "good.com").
		Return(hosting.DomainStatus{Verified: true}, http.StatusOK, nil)
	client.On("GetDomainConfig", mock.Anything, "good.com").
		Return(hosting.DomainConfig{}, http.StatusOK, nil)
	client.On("GetDomain", mock.Anything, "broken.com").
		Return(hosting.DomainStatus{}, http.StatusBadGateway, errors.New("upstream broke"))
	client.On("GetDomainConfig", mock.Anything, "broken.com").
		Return(hosting.DomainConfig{}, http.StatusOK, nil)

	// Both domains still get their last-checked timestamp bumped.
	reg.Domain.On("UpdateVerification", mock.Anything, "good.com", mock.MatchedBy(hasLastChecked)).Return(nil)
	reg.Domain.On("UpdateVerification", mock.Anything, "broken.com", mock.MatchedBy(hasLastChecked)).Return(nil)

	handler.On("Handle", mock.Anything, mock.MatchedBy(func(fact lifecycle.DomainFact) bool {
		return fact.Slug == "good.com" && fact.Changed
	})).Return(nil).Once()

	result, err := testSweeper(reg, client, handler).SweepBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	assert.Equal(t, 1, result.Verified)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Failures, "broken.com")
	reg.Domain.AssertExpectations(t)
	handler.AssertExpectations(t)
	// Lifecycle never sees a domain whose reconciliation failed.
	handler.AssertNumberOfCalls(t, "Handle", 1)
}

func TestSweepBatchFailedUpdateDoesNotInvokeLifecycle(t *testing.T) {
	reg := dao.GetMockDaoRegistry()
	client := hosting.NewMockClient()
	handler := lifecycle.NewMockHandler()

	domains := []models.Domain{domainFixture("a.com", false)}
	reg.Domain.On("ListForVerification", mock.Anything, 100).Return(domains, nil)
	client.On("GetDomain", mock.Anything, "a.com").
		Return(hosting.DomainStatus{Verified: true}, http.StatusOK, nil)
	client.On("GetDomainConfig", mock.Anything, "a.com").
		Return(hosting.DomainConfig{}, http.StatusOK, nil)
	reg.Domain.On("UpdateVerification", mock.Anything, "a.com", mock.Anything).
		Return(errors.New("db down"))

	result, err := testSweeper(reg, client, handler).SweepBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCheckDomainsFetchesStoredState(t *testing.T) {
	reg := dao.GetMockDaoRegistry()
	client := hosting.NewMockClient()
	handler := lifecycle.NewMockHandler()

	reg.Domain.On("Fetch", mock.Anything, "foo.com").Return(
		apiDomainResponse("foo.com", false), nil)
	client.On("GetDomain", mock.Anything, "foo.com").
		Return(hosting.DomainStatus{Verified: true}, http.StatusOK, nil)
	client.On("GetDomainConfig", mock.Anything, "foo.com").
		Return(hosting.DomainConfig{}, http.StatusOK, nil)
	reg.Domain.On("UpdateVerification", mock.Anything, "foo.com", mock.MatchedBy(hasLastChecked)).Return(nil)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(fact lifecycle.DomainFact) bool {
		return fact.Slug == "foo.com" && fact.ProjectID == "proj-1" && fact.Verified
	})).Return(nil).Once()

	result := testSweeper(reg, client, handler).CheckDomains(context.Background(), []string{"Foo.COM"})

	assert.Equal(t, 1, result.Checked)
	assert.Equal(t, 1, result.Verified)
	assert.Equal(t, 0, result.Failed)
	handler.AssertExpectations(t)
}
