package instrumentation

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
)

type MetricsConfig struct {
	Skipper echo_middleware.Skipper
	Metrics *Metrics
}

func MetricsMiddlewareWithConfig(config *MetricsConfig) echo.MiddlewareFunc {
	if config == nil || config.Metrics == nil {
		panic("config.Metrics can not be nil")
	}
	if config.Skipper == nil {
		config.Skipper = echo_middleware.DefaultSkipper
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if config.Skipper(ctx) {
				return next(ctx)
			}
			start := time.Now()
			method := ctx.Request().Method
			path := ctx.Path()

			err := next(ctx)

			status := strconv.Itoa(ctx.Response().Status)
			config.Metrics.HttpStatusHistogram.
				WithLabelValues(status, method, path).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
