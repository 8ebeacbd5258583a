package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/link-services/link-gateway-backend/pkg/cache"
	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/link-services/link-gateway-backend/pkg/dao"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// memoryLinkCache is a map-backed cache.Cache so tests can observe
// evictions.
type memoryLinkCache struct {
	links map[string]*api.LinkResponse
}

func newMemoryLinkCache() *memoryLinkCache {
	return &memoryLinkCache{links: map[string]*api.LinkResponse{}}
}

func (m *memoryLinkCache) cacheKey(domain string, key string) string {
	return domain + "/" + key
}

func (m *memoryLinkCache) GetLink(ctx context.Context, domain string, key string) (*api.LinkResponse, error) {
	if link, ok := m.links[m.cacheKey(domain, key)]; ok {
		return link, nil
	}
	return nil, cache.NotFound
}

func (m *memoryLinkCache) SetLink(ctx context.Context, link api.LinkResponse) error {
	m.links[m.cacheKey(link.Domain, link.Key)] = &link
	return nil
}

func (m *memoryLinkCache) InvalidateLink(ctx context.Context, domain string, key string) error {
	delete(m.links, m.cacheKey(domain, key))
	return nil
}

type LinksSuite struct {
	suite.Suite
	reg       *dao.MockDaoRegistry
	linkCache cache.Cache
}

func TestLinksSuite(t *testing.T) {
	suite.Run(t, new(LinksSuite))
}

func (suite *LinksSuite) SetupTest() {
	suite.reg = dao.GetMockDaoRegistry()
	suite.linkCache = cache.NewNoOpCache()
}

func (suite *LinksSuite) serveLinksRouter(req *http.Request) (int, []byte, error) {
	router := echo.New()
	router.HTTPErrorHandler = config.CustomHTTPErrorHandler
	pathPrefix := router.Group(api.FullRootPath())

	RegisterLinkRoutes(pathPrefix, suite.reg.ToDaoRegistry(), suite.linkCache)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	response := rr.Result()
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	return response.StatusCode, body, err
}

func linkResponseFixture(domain string, key string) api.LinkResponse {
	return api.LinkResponse{
		UUID:      "link-uuid",
		Domain:    domain,
		Key:       key,
		URL:       "https://example.com/landing",
		ProjectID: "proj-1",
		CreatedAt: time.Now(),
	}
}

func (suite *LinksSuite) TestList() {
	t := suite.T()

	collection := api.LinkCollectionResponse{Data: []api.LinkResponse{linkResponseFixture("lgw.sh", "abc")}}
	paginationData := api.PaginationData{Limit: DefaultLimit, Offset: DefaultOffset}
	suite.reg.Link.On("List", mock.Anything, "lgw.sh", paginationData).Return(collection, int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, api.FullRootPath()+"/domains/lgw.sh/links/", nil)

	code, body, err := suite.serveLinksRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, code)

	response := api.LinkCollectionResponse{}
	err = json.Unmarshal(body, &response)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), response.Meta.Count)
	assert.Equal(t, "abc", response.Data[0].Key)
}

func (suite *LinksSuite) TestCreateUsesDomainFromPath() {
	t := suite.T()

	expected := linkResponseFixture("lgw.sh", "abc")
	request := api.LinkRequest{Domain: "lgw.sh", Key: "abc", URL: "https://example.com/landing", ProjectID: "proj-1"}
	suite.reg.Link.On("Create", mock.Anything, request).Return(expected, nil)

	// The domain in the payload is overridden by the path parameter.
	payload, _ := json.Marshal(api.LinkRequest{Domain: "other.com", Key: "abc", URL: "https://example.com/landing", ProjectID: "proj-1"})
	req := httptest.NewRequest(http.MethodPost, api.FullRootPath()+"/domains/lgw.sh/links/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	code, body, err := suite.serveLinksRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusCreated, code)

	response := api.LinkResponse{}
	err = json.Unmarshal(body, &response)
	assert.Nil(t, err)
	assert.Equal(t, "lgw.sh", response.Domain)
	suite.reg.Link.AssertExpectations(t)
}

func (suite *LinksSuite) TestFetchNotFound() {
	t := suite.T()

	daoErr := &ce.DaoError{NotFound: true, Message: "Could not find link"}
	suite.reg.Link.On("Fetch", mock.Anything, "lgw.sh", "missing").Return(api.LinkResponse{}, daoErr)

	req := httptest.NewRequest(http.MethodGet, api.FullRootPath()+"/domains/lgw.sh/links/missing", nil)

	code, _, err := suite.serveLinksRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNotFound, code)
}

func (suite *LinksSuite) TestDelete() {
	t := suite.T()

	suite.reg.Link.On("Delete", mock.Anything, "lgw.sh", "abc").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, api.FullRootPath()+"/domains/lgw.sh/links/abc", nil)

	code, _, err := suite.serveLinksRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNoContent, code)
	suite.reg.Link.AssertExpectations(t)
}

func (suite *LinksSuite) TestDeleteEvictsCache() {
	t := suite.T()

	mem := newMemoryLinkCache()
	assert.NoError(t, mem.SetLink(context.Background(), linkResponseFixture("lgw.sh", "mykey")))
	suite.linkCache = mem

	suite.reg.Link.On("Delete", mock.Anything, "lgw.sh", "MyKey").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, api.FullRootPath()+"/domains/lgw.sh/links/MyKey", nil)

	code, _, err := suite.serveLinksRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNoContent, code)

	// The cached lookup is gone, a resolve now falls through to storage.
	_, err = mem.GetLink(context.Background(), "lgw.sh", "mykey")
	assert.Equal(t, cache.NotFound, err)
}
