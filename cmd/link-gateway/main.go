package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/link-services/link-gateway-backend/pkg/cache"
	"github.com/link-services/link-gateway-backend/pkg/clicks"
	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/link-services/link-gateway-backend/pkg/dao"
	"github.com/link-services/link-gateway-backend/pkg/db"
	"github.com/link-services/link-gateway-backend/pkg/event"
	"github.com/link-services/link-gateway-backend/pkg/hosting"
	"github.com/link-services/link-gateway-backend/pkg/instrumentation"
	"github.com/link-services/link-gateway-backend/pkg/lifecycle"
	"github.com/link-services/link-gateway-backend/pkg/redirect"
	"github.com/link-services/link-gateway-backend/pkg/router"
	"github.com/link-services/link-gateway-backend/pkg/verification"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.Load()
	config.ConfigureLogging()

	if err := db.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}()

	metrics := instrumentation.NewMetrics(prometheus.NewRegistry())
	daoReg := dao.GetDaoRegistry(db.DB)
	linkCache := cache.Initialize()
	producer := event.NewProducer()
	defer producer.Close()

	recorder := clicks.NewRecorder(daoReg.Link, producer, metrics, config.Get().Options.ClickBufferSize)
	recorder.Start()
	defer recorder.Stop()

	hostingClient := hosting.NewHostingClient()
	lifecycleHandler := lifecycle.NewHandler(daoReg.Domain, producer)
	sweeper := verification.NewSweeper(daoReg, hostingClient, lifecycleHandler, metrics)

	engine := router.ConfigureEcho(router.Services{
		DaoRegistry: daoReg,
		Checker:     sweeper,
		Resolver:    redirect.NewResolver(daoReg.Link, linkCache, recorder, metrics),
		Cache:       linkCache,
		Metrics:     metrics,
	}, true)

	metricsEngine := router.ConfigureMetricsEcho(metrics)
	go func() {
		addr := fmt.Sprintf(":%d", config.Get().Metrics.Port)
		if err := metricsEngine.Start(addr); err != nil {
			log.Warn().Err(err).Msg("metrics server stopped")
		}
	}()

	go func() {
		if err := engine.Start(":8000"); err != nil {
			log.Warn().Err(err).Msg("server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := engine.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down server cleanly")
	}
	if err := metricsEngine.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down metrics server cleanly")
	}
}
