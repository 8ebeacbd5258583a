package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
)

const bodyDumpLimit = 1000
const bodyStoreKey = "body_backup"

// LogServerErrorRequest keeps a truncated copy of the request body and
// dumps it to the log when the handler chain fails with a 5xx.
func LogServerErrorRequest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Get(bodyStoreKey) == nil {
			storeRequestBody(c)
		}
		err := next(c)
		if err != nil && containsServerError(err) {
			logRequestBody(c)
		}
		return err
	}
}

func containsServerError(err error) bool {
	errResp := new(ce.ErrorResponse)
	if errors.As(err, errResp) {
		for _, e := range errResp.Errors {
			if e.Status >= http.StatusInternalServerError {
				return true
			}
		}
	}
	return false
}

func logRequestBody(c echo.Context) {
	if body, ok := c.Get(bodyStoreKey).([]byte); ok {
		c.Logger().Errorf("Request body: %v", string(body))
	}
}

func storeRequestBody(c echo.Context) {
	var reqBody []byte
	if c.Request().Body != nil {
		reqBody, _ = io.ReadAll(c.Request().Body)
	}
	c.Request().Body = io.NopCloser(bytes.NewBuffer(reqBody))

	limit := min(len(reqBody), bodyDumpLimit)
	c.Set(bodyStoreKey, reqBody[:limit])
}
