// cmd/scheme-engine/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/schemesetu/scheme-engine/internal/api"
	"github.com/schemesetu/scheme-engine/internal/common/config"
	"github.com/schemesetu/scheme-engine/internal/common/database"
	"github.com/schemesetu/scheme-engine/internal/common/logger"
	"github.com/schemesetu/scheme-engine/internal/common/observability"
	"github.com/schemesetu/scheme-engine/internal/corpus"
	"github.com/schemesetu/scheme-engine/internal/enrichment"
	"github.com/schemesetu/scheme-engine/pkg/vocabulary"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")

	zapLog.Info("Starting scheme engine...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger with the configured level and format.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Vocabulary (optional extension file, fail fast when invalid) ---
	tables := vocabulary.Default()
	if cfg.Vocabulary.Path != "" {
		tables, err = vocabulary.Load(cfg.Vocabulary.Path)
		if err != nil {
			zapLog.Fatal("vocabulary load failed", zap.String("path", cfg.Vocabulary.Path), zap.Error(err))
		}
		zapLog.Info("vocabulary extension loaded", zap.String("path", cfg.Vocabulary.Path))
	}

	// --- Corpus source + initial load ---
	var source corpus.Source
	err = retryWithBackoff(func() error {
		var err error
		source, err = corpus.NewSource(ctx, cfg)
		return err
	}, 3, 2*time.Second, zapLog, "corpus source initialization")
	if err != nil {
		zapLog.Fatal("corpus source failed after retries", zap.Error(err))
	}

	store := corpus.NewStore(log)
	err = retryWithBackoff(func() error {
		return store.Reload(ctx, source)
	}, 3, 2*time.Second, zapLog, "initial corpus load")
	if err != nil {
		// Start degraded: /ready reports 503 until a reload succeeds.
		zapLog.Warn("initial corpus load failed, serving degraded", zap.Error(err))
	}

	if interval := config.GetDuration(cfg.Corpus.ReloadInterval); interval > 0 {
		store.StartReloader(ctx, source, interval)
		zapLog.Info("corpus reloader started", zap.Duration("interval", interval))
	}

	// --- Enrichment (optional redis-backed cache) ---
	var cache *database.RedisClient
	if cfg.Enrichment.Enabled && cfg.Database.Redis.Address != "" {
		err = retryWithBackoff(func() error {
			var err error
			cache, err = database.NewRedis(cfg.Database.Redis)
			return err
		}, 3, 1*time.Second, zapLog, "redis initialization")
		if err != nil {
			zapLog.Warn("redis unavailable, enrichment cache disabled", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	enricher := enrichment.NewClient(enrichment.Config{
		Enabled:  cfg.Enrichment.Enabled,
		BaseURL:  cfg.Enrichment.BaseURL,
		Timeout:  config.GetDuration(cfg.Enrichment.Timeout),
		CacheTTL: config.GetDuration(cfg.Enrichment.CacheTTL),
		MaxBatch: cfg.Enrichment.MaxBatch,
	}, cache, log)

	// --- API server ---
	apiServer := api.NewServer(api.Options{
		Config:   cfg,
		Store:    store,
		Source:   source,
		Tables:   tables,
		Enricher: enricher,
		Obs:      obs,
		Logger:   log,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      apiServer.Routes(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("API server listening", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Scheme engine stopped gracefully")
}
