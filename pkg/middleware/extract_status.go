package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
)

// ExtractStatus copies the worst status out of an ErrorResponse onto the
// echo response before request logging runs, so lecho picks the right
// log level for failed requests.
func ExtractStatus(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err == nil {
			return nil
		}
		errResp := new(ce.ErrorResponse)
		if errors.As(err, errResp) {
			worst := 0
			for _, respErr := range errResp.Errors {
				if respErr.Status > worst {
					worst = respErr.Status
				}
			}
			c.Response().Status = worst
		}
		return err
	}
}
