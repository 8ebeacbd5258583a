package proxy

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHosts() config.Hosts {
	return config.Hosts{
		App:         []string{"app.linkgw.io", "preview.linkgw.io"},
		API:         []string{"api.linkgw.io"},
		Admin:       []string{"admin.linkgw.io"},
		Partners:    []string{"partners.linkgw.io"},
		ShortDomain: "lgw.sh",
	}
}

// recordingTargets captures which surface a request was dispatched to.
type recordingTargets struct {
	target string
	parsed ParsedRequest
}

func (r *recordingTargets) handler(name string) HandlerFunc {
	return func(c echo.Context, req ParsedRequest) error {
		r.target = name
		r.parsed = req
		return c.NoContent(http.StatusOK)
	}
}

func (r *recordingTargets) targets() Targets {
	return Targets{
		App:        r.handler("app"),
		API:        r.handler("api"),
		Admin:      r.handler("admin"),
		Partners:   r.handler("partners"),
		Stats:      r.handler("stats"),
		WellKnown:  r.handler("well-known"),
		CreateLink: r.handler("create-link"),
		Resolve:    r.handler("resolve"),
	}
}

func dispatch(t *testing.T, target string, url string) (*recordingTargets, *httptest.ResponseRecorder, error) {
	t.Helper()
	rec := &recordingTargets{}
	d := NewDispatcher(testHosts(), rec.targets(), nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Host = target
	w := httptest.NewRecorder()
	c := e.NewContext(req, w)
	err := d.Dispatch(c)
	return rec, w, err
}

func TestDispatchAppHostWinsRegardlessOfPath(t *testing.T) {
	for _, path := range []string{"/", "/anything", "/stats/foo", "/.well-known/assetlinks.json"} {
		rec, _, err := dispatch(t, "app.linkgw.io", path)
		require.NoError(t, err)
		assert.Equal(t, "app", rec.target, "path %s", path)
	}
}

func TestDispatchAPIHost(t *testing.T) {
	rec, _, err := dispatch(t, "api.linkgw.io", "/v1/links")
	require.NoError(t, err)
	assert.Equal(t, "api", rec.target)
}

func TestDispatchStatsRewrite(t *testing.T) {
	rec, _, err := dispatch(t, "custom.example.com", "/stats/mykey")
	require.NoError(t, err)
	assert.Equal(t, "stats", rec.target)
	assert.Equal(t, "custom.example.com", rec.parsed.Domain)
}

func TestDispatchWellKnownAllowList(t *testing.T) {
	rec, _, err := dispatch(t, "lgw.sh", "/.well-known/apple-app-site-association")
	require.NoError(t, err)
	assert.Equal(t, "well-known", rec.target)

	// Unsupported files fall through the remaining rules to the resolver.
	rec, _, err = dispatch(t, "lgw.sh", "/.well-known/unsupported-file")
	require.NoError(t, err)
	assert.Equal(t, "resolve", rec.target)
}

func TestDispatchDefaultRedirects(t *testing.T) {
	_, w, err := dispatch(t, "lgw.sh", "/pricing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://linkgw.io/pricing", w.Header().Get("Location"))

	// Only on the canonical short domain.
	rec, _, err := dispatch(t, "custom.example.com", "/pricing")
	require.NoError(t, err)
	assert.Equal(t, "resolve", rec.target)
}

func TestDispatchWWWIsCanonical(t *testing.T) {
	_, w, err := dispatch(t, "www.lgw.sh", "/home")
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestDispatchAdminAndPartnerHosts(t *testing.T) {
	rec, _, err := dispatch(t, "admin.linkgw.io", "/whatever")
	require.NoError(t, err)
	assert.Equal(t, "admin", rec.target)

	rec, _, err = dispatch(t, "partners.linkgw.io", "/programs")
	require.NoError(t, err)
	assert.Equal(t, "partners", rec.target)
}

func TestDispatchCreateLinkWhenFullKeyIsURL(t *testing.T) {
	rec, _, err := dispatch(t, "lgw.sh", "/https%3A%2F%2Fexample.com%2Fpage")
	require.NoError(t, err)
	assert.Equal(t, "create-link", rec.target)
	assert.Equal(t, "https://example.com/page", rec.parsed.FullKey)
}

func TestDispatchFallbackResolves(t *testing.T) {
	rec, _, err := dispatch(t, "custom.example.com", "/mykey")
	require.NoError(t, err)
	assert.Equal(t, "resolve", rec.target)
	assert.Equal(t, "mykey", rec.parsed.Key)
}

func TestDispatchExcludedPaths(t *testing.T) {
	for _, path := range []string{"/api/internal", "/_next/static/x.js", "/_proxy/ping", "/favicon.ico", "/robots.txt"} {
		rec, _, err := dispatch(t, "custom.example.com", path)
		require.Error(t, err, "path %s", path)
		assert.Empty(t, rec.target, "path %s", path)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	}
}
