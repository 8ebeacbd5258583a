package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentTypeRequest(t *testing.T, contentType string, body string) error {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, "/", nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	handler := EnforceJSONContentType(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestEnforceJSONContentType(t *testing.T) {
	assert.NoError(t, contentTypeRequest(t, "application/json", `{}`))
	assert.NoError(t, contentTypeRequest(t, "application/json; charset=utf-8", `{}`))
	assert.NoError(t, contentTypeRequest(t, "", ""))

	err := contentTypeRequest(t, "text/plain", "hello")
	require.Error(t, err)
	errResp, ok := err.(ce.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnsupportedMediaType, ce.GetGeneralResponseCode(errResp))

	err = contentTypeRequest(t, "", "no content type at all")
	require.Error(t, err)
}
