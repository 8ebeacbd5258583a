package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/link-services/link-gateway-backend/pkg/config"
)

// Adds the request Id to the general context, generating one when the
// caller did not send any
func AddRequestId(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestId := c.Request().Header.Get(config.HeaderRequestId)
		if requestId == "" {
			requestId = uuid.NewString()
			c.Request().Header.Set(config.HeaderRequestId, requestId)
		}
		c.Set(config.HeaderRequestId, requestId)
		return next(c)
	}
}
