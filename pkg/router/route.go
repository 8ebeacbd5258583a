// Package router assembles the echo engines: the public engine carrying
// the REST API plus the proxy catch-all, and the private metrics engine.
package router

import (
	"time"

	"github.com/content-services/lecho/v3"
	"github.com/labstack/echo/v4"
	"github.com/link-services/link-gateway-backend/pkg/cache"
	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/link-services/link-gateway-backend/pkg/dao"
	"github.com/link-services/link-gateway-backend/pkg/handler"
	"github.com/link-services/link-gateway-backend/pkg/instrumentation"
	"github.com/link-services/link-gateway-backend/pkg/middleware"
	"github.com/link-services/link-gateway-backend/pkg/proxy"
	"github.com/link-services/link-gateway-backend/pkg/redirect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Services are the collaborators the routes need. Built once in main and
// injected so tests can swap any of them.
type Services struct {
	DaoRegistry *dao.DaoRegistry
	Checker     handler.DomainChecker
	Resolver    *redirect.Resolver
	Cache       cache.Cache
	Metrics     *instrumentation.Metrics
}

func ConfigureEcho(services Services, allRoutes bool) *echo.Echo {
	e := echo.New()
	// Add global middlewares
	echoLogger := lecho.From(log.Logger,
		lecho.WithTimestamp(),
		lecho.WithCaller(),
	)

	e.Use(middleware.AddRequestId)
	e.Use(lecho.Middleware(lecho.Config{
		Logger:              echoLogger,
		RequestIDHeader:     config.HeaderRequestId,
		RequestIDKey:        config.RequestIdLoggingKey,
		Skipper:             config.SkipLogging,
		RequestLatencyLevel: zerolog.WarnLevel,
		RequestLatencyLimit: 500 * time.Millisecond,
	}))
	e.Use(middleware.ExtractStatus) // Must be after lecho
	e.Use(middleware.LogServerErrorRequest)
	if services.Metrics != nil {
		e.Use(instrumentation.MetricsMiddlewareWithConfig(&instrumentation.MetricsConfig{
			Metrics: services.Metrics,
		}))
	}

	// Add routes
	handler.RegisterPing(e)
	if allRoutes {
		handler.RegisterRoutes(e, services.DaoRegistry, services.Checker, services.Cache)

		dispatcher := proxy.NewDispatcher(config.Get().Hosts, proxyTargets(services), services.Metrics)
		e.Any("/*", dispatcher.Dispatch)
	}

	// Set error handler
	e.HTTPErrorHandler = config.CustomHTTPErrorHandler
	return e
}

// proxyTargets wires the dispatch surfaces. Only the resolver lives in
// this service, the other surfaces are separate deployments and get an
// acknowledgement response here.
func proxyTargets(services Services) proxy.Targets {
	return proxy.Targets{
		App:        proxy.AcknowledgeTarget("app"),
		API:        proxy.AcknowledgeTarget("api"),
		Admin:      proxy.AcknowledgeTarget("admin"),
		Partners:   proxy.AcknowledgeTarget("partners"),
		Stats:      proxy.AcknowledgeTarget("stats"),
		WellKnown:  proxy.AcknowledgeTarget("well-known"),
		CreateLink: proxy.AcknowledgeTarget("create-link"),
		Resolve: func(c echo.Context, req proxy.ParsedRequest) error {
			return services.Resolver.Resolve(c, req.Domain, req.Key)
		},
	}
}

// ConfigureMetricsEcho builds the engine served on the private metrics
// port.
func ConfigureMetricsEcho(metrics *instrumentation.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.GET(config.Get().Metrics.Path, echo.WrapHandler(
		promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))
	return e
}
