package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
	"github.com/link-services/link-gateway-backend/pkg/middleware"
)

type CronHandler struct {
	Checker DomainChecker
}

func RegisterCronRoutes(engine *echo.Group, checker DomainChecker, secret string) {
	ch := CronHandler{Checker: checker}
	engine.POST("/cron/domains", ch.sweepDomains, middleware.EnforceTriggerSignature(secret))
}

// sweepDomains runs one verification batch on behalf of the external
// scheduler. The request must carry a valid trigger signature.
func (ch *CronHandler) sweepDomains(c echo.Context) error {
	result, err := ch.Checker.SweepBatch(c.Request().Context())
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error sweeping domains", err.Error())
	}

	return c.JSON(http.StatusOK, sweepResultResponse(result))
}
