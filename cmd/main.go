package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/curveboard/curveboard/internal/adapters/http/api"
	"github.com/curveboard/curveboard/internal/adapters/http/swagger"
	repository "github.com/curveboard/curveboard/internal/adapters/repository"
	app "github.com/curveboard/curveboard/internal/app"
	"github.com/curveboard/curveboard/internal/config"
	"github.com/curveboard/curveboard/internal/demodata"
	"github.com/curveboard/curveboard/pkg/logger"
	"github.com/curveboard/curveboard/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Build the event store and load it.
	store := repository.NewMemStore()
	switch {
	case cfg.DataFile != "":
		snap, err := repository.ReadSnapshot(cfg.DataFile)
		if err != nil {
			log.Error(ctx, "failed to read data file", logger.String("path", cfg.DataFile), logger.Error(err))
			return
		}
		store.Load(snap)
		log.Info(ctx, "loaded data file", logger.String("path", cfg.DataFile))
	case cfg.DemoData:
		store.Load(demodata.Generate(demodata.Config{
			Steps:      cfg.DemoSteps,
			Thresholds: cfg.DemoThresholds,
			Plugin:     cfg.Plugin,
			ExtraRuns:  cfg.DemoExtraRuns,
		}))
		log.Info(ctx, "loaded demo dataset",
			logger.Int("steps", cfg.DemoSteps), logger.Int("thresholds", cfg.DemoThresholds))
	default:
		log.Warn(ctx, "no data file configured and demo data disabled; serving an empty store")
	}

	runs, seriesCount, events := store.Counts()
	log.Info(ctx, "event store ready",
		logger.Int("runs", runs), logger.Int("series", seriesCount), logger.Int("events", events))

	// The curve data service holds a single read reference to the store.
	svc := app.New(
		app.WithStore(store),
		app.WithPlugin(cfg.Plugin),
		app.WithLogger(log),
	)
	log.Info(ctx, "curve service constructed", logger.Bool("active", svc.Active(ctx)))

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register the plugin's data routes with the service dependency.
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Average pause over the process lifetime; good enough for a gauge-ish view.
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
