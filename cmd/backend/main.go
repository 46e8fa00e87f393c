package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	audioimpl "github.com/foxseedlab/kaishu/external/audio"
	configloader "github.com/foxseedlab/kaishu/external/config"
	llmimpl "github.com/foxseedlab/kaishu/external/llm"
	repositoryimpl "github.com/foxseedlab/kaishu/external/repository"
	transcriberimpl "github.com/foxseedlab/kaishu/external/transcriber"
	"github.com/foxseedlab/kaishu/external/twilio"
	"github.com/foxseedlab/kaishu/external/vapi"
	webhookimpl "github.com/foxseedlab/kaishu/external/webhook"
	"github.com/foxseedlab/kaishu/internal/config"
	"github.com/foxseedlab/kaishu/internal/dialogue"
	"github.com/foxseedlab/kaishu/internal/httpapi"
	"github.com/foxseedlab/kaishu/internal/outbound"
	"github.com/foxseedlab/kaishu/internal/outcome"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/session"
	"github.com/foxseedlab/kaishu/internal/voicenote"
	"github.com/samber/do/v2"
)

const shutdownTimeout = 15 * time.Second

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "classifier", cfg.Classifier, "transcriber", cfg.Transcriber)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: starting http server", "addr", cfg.HTTPAddr)
	runServer(cfg, injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	repositoryimpl.RegisterDI(injector)
	llmimpl.RegisterDI(injector)
	twilio.RegisterDI(injector)
	vapi.RegisterDI(injector)
	audioimpl.RegisterDI(injector)
	transcriberimpl.RegisterDI(injector)
	webhookimpl.RegisterDI(injector)
	dialogue.RegisterDI(injector)
	outcome.RegisterDI(injector)
	session.RegisterDI(injector)
	voicenote.RegisterDI(injector)
	outbound.RegisterDI(injector)
	httpapi.RegisterDI(injector)

	return injector
}

func runServer(cfg *config.Config, injector do.Injector) {
	repo, err := do.Invoke[repository.Repository](injector)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			slog.Error("database close failed", "error", err)
		}
	}()

	api, err := do.Invoke[*httpapi.Server](injector)
	if err != nil {
		slog.Error("failed to resolve http server", "error", err)
		return
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.Handler(),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	done := make(chan struct{})
	go func() {
		slog.Info("startup: listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
		}
		close(done)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		slog.Info("shutting down")
	case <-done:
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("http server shutdown failed", "error", err)
	}
}
