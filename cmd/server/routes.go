// Package main provides the course finder API server entry point.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rowanlock/coursefinder-go/internal/api"
	"github.com/rowanlock/coursefinder-go/internal/config"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, handler *api.Handler, registry *prometheus.Registry, cfg *config.Config) {
	// Root endpoint - redirect to project documentation
	rootHandler := func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "https://github.com/rowanlock/coursefinder-go")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Health check endpoints
	// Liveness Probe - checks if the application is alive (minimal check)
	// This should NEVER check dependencies - only that the process is running
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness Probe - ready means a catalogue snapshot is loaded
	router.GET("/ready", handler.Ready)
	router.HEAD("/ready", handler.Ready)

	// Query understanding API
	v1 := router.Group("/api/v1")
	v1.POST("/resolve", handler.Resolve)
	v1.POST("/search", handler.Search)
	v1.POST("/reload", handler.Reload)

	// Prometheus metrics endpoint, behind Basic Auth when a password is set
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			cfg.MetricsUsername: cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}
