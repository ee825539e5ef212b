// Package app wires the query service together: logging router, loaded
// NavGrid, Prometheus registry, and HTTP server, driven by a Config that the
// caller builds (cmd/queryserver fills it from its flags; ConfigFromEnv
// builds one from environment variables).
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	worldnav "worldnav"
	"worldnav/internal/metrics"
	netpkg "worldnav/internal/net"
	"worldnav/internal/observability"
	"worldnav/internal/telemetry"
	"worldnav/logging"
	loggingSinks "worldnav/logging/sinks"
)

// Config captures the query service's environment-derived settings.
type Config struct {
	Addr        string
	NavGridPath string
	EnablePprof bool
}

// ConfigFromEnv reads WORLDNAV_ADDR, WORLDNAV_NAVGRID, and
// WORLDNAV_ENABLE_PPROF_TRACE, defaulting to ":8080", "navgrid.bin", and
// false respectively.
func ConfigFromEnv() Config {
	cfg := Config{Addr: ":8080", NavGridPath: "navgrid.bin"}
	if v := os.Getenv("WORLDNAV_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("WORLDNAV_NAVGRID"); v != "" {
		cfg.NavGridPath = v
	}
	if v := os.Getenv("WORLDNAV_ENABLE_PPROF_TRACE"); v == "1" || v == "true" {
		cfg.EnablePprof = true
	}
	return cfg
}

// Run loads the NavGrid named by cfg, builds the HTTP server, and blocks
// until it exits or ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	logger := log.Default()

	logConfig := logging.DefaultConfig()
	sinks := map[string]logging.Sink{
		"console": loggingSinks.NewConsoleSink(os.Stdout, logging.ConsoleConfig{}),
	}

	router, err := logging.NewRouter(logConfig, logging.SystemClock{}, logger, sinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(ctx); cerr != nil {
			logger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	file, err := os.Open(cfg.NavGridPath)
	if err != nil {
		return &worldnav.ConfigError{Path: cfg.NavGridPath, Cause: err}
	}
	defer file.Close()

	grid, err := worldnav.Load(file)
	if err != nil {
		return &worldnav.ConfigError{Path: cfg.NavGridPath, Cause: err}
	}
	eventLogger := telemetry.NewEventLogger(router, logger)
	eventLogger.Info("http", "navgrid.loaded", "loaded navgrid", map[string]any{
		"path": cfg.NavGridPath, "vertices": len(grid.Vertices), "edge_lists": len(grid.Edges), "teleports": len(grid.Teleports),
	})

	registry := prometheus.NewRegistry()
	collectors := metrics.NewCollectors(registry)
	collectors.NavGridVertices.Set(float64(len(grid.Vertices)))

	handler := netpkg.NewHTTPHandler(netpkg.HTTPHandlerConfig{
		Grid:          grid,
		Registry:      registry,
		Metrics:       collectors,
		Logger:        eventLogger,
		Observability: observability.Config{EnablePprofTrace: cfg.EnablePprof},
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}
	logger.Printf("query service listening on %s", srv.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
