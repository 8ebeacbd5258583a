package middleware

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
)

const JSONMimeType = "application/json"

// EnforceJSONContentType rejects API requests whose body is not
// declared as JSON. Requests without a body always pass.
func EnforceJSONContentType(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Body == http.NoBody {
			return next(c)
		}
		mediatype, _, err := mime.ParseMediaType(c.Request().Header.Get(echo.HeaderContentType))
		switch {
		case err != nil:
			return ce.NewErrorResponse(http.StatusUnsupportedMediaType, "Error parsing content type", err.Error())
		case mediatype != JSONMimeType:
			detail := fmt.Sprintf("Content-Type must be %s, got %s", JSONMimeType, mediatype)
			return ce.NewErrorResponse(http.StatusUnsupportedMediaType, "Unsupported content type", detail)
		}
		return next(c)
	}
}
