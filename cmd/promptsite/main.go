// Package main is the entry point for the promptsite server.
// It loads configuration, connects the site store, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"promptsite/internal/app"
	"promptsite/internal/cache"
	"promptsite/internal/config"
	"promptsite/internal/handlers"
	"promptsite/internal/middleware"
	"promptsite/internal/render"
	"promptsite/internal/router"
)

func main() {
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreBackend,
	)

	ctx := context.Background()

	backend, err := app.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open site store", "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	// Rendered pages are cached only when Valkey is available. Templates are
	// embedded in the binary, so entries from a previous build are dropped.
	var pages cache.Pages
	if backend.Valkey != nil {
		pc := cache.NewPageCache(backend.Valkey, cfg.PageCacheTTL)
		pc.InvalidateAll(ctx)
		pages = pc
	}

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Initialize the AI provider registry with all configured providers.
	aiRegistry, err := app.NewRegistry(cfg, "")
	if err != nil {
		slog.Error("failed to initialize ai providers", "error", err)
		os.Exit(1)
	}
	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	sites := app.NewService(cfg, backend.Store, aiRegistry)

	limiter := middleware.NewRateLimiter(cfg.GenerateRateLimit, time.Minute)
	defer limiter.Stop()

	api := handlers.NewAPI(sites, cfg.SitesListLimit)
	public := handlers.NewPublic(sites, renderer, pages, cfg.PublicURL)
	r := router.New(api, public, limiter)

	// WriteTimeout must cover two sequential AI calls on POST /generate.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2*cfg.AITimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
