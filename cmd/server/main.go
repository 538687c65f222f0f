package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dgallion1/linklabel/internal/api"
	"github.com/dgallion1/linklabel/internal/config"
	"github.com/dgallion1/linklabel/internal/metrics"
	"github.com/dgallion1/linklabel/internal/pipeline"
	"github.com/dgallion1/linklabel/internal/settings"
)

func main() {
	cfg := config.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Settings storage.
	defaults, err := settings.LoadDefaultTexts(cfg.DefaultTextsFile)
	if err != nil {
		log.Error("failed to load default texts", "error", err)
		os.Exit(1)
	}
	store, err := settings.NewSQLiteStore(cfg.SettingsDB, defaults)
	if err != nil {
		log.Error("failed to open settings store", "path", cfg.SettingsDB, "error", err)
		os.Exit(1)
	}

	// Metrics.
	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(reg)
	window := metrics.NewWindow(cfg.StatsWindow)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, store, defaults, recorder, window, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, store, metrics.HTTPHandler(reg), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		store.Close()
	}()

	log.Info("starting linklabel",
		"port", cfg.Port,
		"settings_db", cfg.SettingsDB,
		"workers", cfg.WorkerCount,
		"default_texts", len(defaults),
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-stopped
}
