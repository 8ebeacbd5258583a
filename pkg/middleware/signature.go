package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
)

const SignatureHeader = "X-Trigger-Signature"

// EnforceTriggerSignature authenticates scheduled-trigger requests. The
// caller signs the raw request body with HMAC-SHA256 and the shared
// secret, hex encoded. An empty configured secret rejects everything.
func EnforceTriggerSignature(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return ce.NewErrorResponse(http.StatusUnauthorized, "", "Scheduled triggers are not configured.")
			}

			given := c.Request().Header.Get(SignatureHeader)
			if given == "" {
				return ce.NewErrorResponse(http.StatusUnauthorized, "", "Missing trigger signature.")
			}

			var body []byte
			if c.Request().Body != nil {
				var err error
				if body, err = io.ReadAll(c.Request().Body); err != nil {
					return ce.NewErrorResponse(http.StatusUnauthorized, "", "Could not read request body.")
				}
			}
			c.Request().Body = io.NopCloser(bytes.NewBuffer(body))

			mac := hmac.New(sha256.New, []byte(secret))
			mac.Write(body)
			expected := hex.EncodeToString(mac.Sum(nil))

			if !hmac.Equal([]byte(expected), []byte(given)) {
				return ce.NewErrorResponse(http.StatusUnauthorized, "", "Invalid trigger signature.")
			}
			return next(c)
		}
	}
}
