package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"statements/internal/auth"
	"statements/internal/backend"
	"statements/internal/cache"
	"statements/internal/config"
	apphttp "statements/internal/http"
	applog "statements/internal/log"
	"statements/internal/statement"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentApp})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Backend configuration failed", applog.FieldError, err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.Create(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Backend initialization failed", applog.FieldError, err, "backend", backendCfg.Type)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", applog.FieldError, err)
			}
		}()
	}

	svc := statement.NewService(result.Source, cfg.SheetName)

	// Expire cached ledger rows in the background.
	cacheManager := cache.NewManager()
	cacheManager.Register(svc)
	cacheManager.StartCleanup(10 * time.Minute)
	defer cacheManager.Stop()

	gate := auth.NewGate(cfg.AppPassword, cfg.SessionSecret)
	if !gate.Enabled() {
		logger.Warn("APP_PASSWORD not set, access gate disabled")
	}

	srv := apphttp.NewServer(":"+cfg.Port, svc, gate, cfg)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 60 * time.Second // archive generation can be slow
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting statements server",
		"port", cfg.Port, "backend", backendCfg.Type, "ledgers", len(cfg.Ledgers))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
