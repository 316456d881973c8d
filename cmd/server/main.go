// Package main provides the course finder API server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rowanlock/coursefinder-go/internal/api"
	"github.com/rowanlock/coursefinder-go/internal/buildinfo"
	"github.com/rowanlock/coursefinder-go/internal/config"
	"github.com/rowanlock/coursefinder-go/internal/logger"
	"github.com/rowanlock/coursefinder-go/internal/metrics"
	"github.com/rowanlock/coursefinder-go/internal/sentry"
	"github.com/rowanlock/coursefinder-go/internal/snapshot"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger (stdout JSON, plus Better Stack shipping when configured)
	log := logger.NewWithOptions(logger.Options{
		Level:               cfg.LogLevel,
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.Info("Starting Course Finder Server")

	// Initialize Sentry error tracking (no-op when DSN is empty)
	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Version,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		log.WithError(err).Fatal("Failed to initialize Sentry")
	}
	if sentry.IsEnabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry initialized")
	}

	// Create Prometheus registry
	registry := prometheus.NewRegistry()

	// Register Go and process collectors
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	// Create metrics
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Load the catalogue snapshot. A missing or broken file is not fatal:
	// the server starts anyway, /ready reports 503, and the poller (or a
	// manual /api/v1/reload) picks the file up once it appears.
	snapshots := snapshot.New(cfg.SnapshotPath, log, m)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), config.SnapshotLoad)
	if err := snapshots.Load(loadCtx); err != nil {
		log.WithError(err).Warn("Initial snapshot load failed, starting without catalogue")
	}
	loadCancel()

	pollCtx, pollCancel := context.WithCancel(context.Background())
	defer pollCancel()
	snapshots.StartPolling(pollCtx, cfg.SnapshotPollInterval)

	// Create API handler
	handler := api.NewHandler(snapshots, log, m, cfg.SuggestionLimit)

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log, m))
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	// Setup routes
	setupRoutes(router, handler, registry, cfg)

	// Create HTTP server with timeouts sized for small JSON request bodies
	// See internal/config/timeouts.go for detailed explanations
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.APIHTTPRead,
		WriteTimeout: config.APIHTTPWrite,
		IdleTimeout:  config.APIHTTPIdle,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Stop the snapshot poller before the server so no reload races shutdown
	pollCancel()
	snapshots.StopPolling()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown server gracefully
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Flush buffered telemetry
	sentry.Flush(2 * time.Second)
	if err := log.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to flush remote logs")
	}

	log.Info("Server stopped")
}
