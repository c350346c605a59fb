// Package main implements sitectl, a command line client for the site
// store: generate sites without the HTTP server, list and inspect them, and
// preview the style an identifier resolves to.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"promptsite/internal/app"
	"promptsite/internal/config"
	"promptsite/internal/render"
	"promptsite/internal/site"
)

// opener connects the site service for a command. A non-empty provider
// overrides AI_PROVIDER. The returned func releases its connections.
type opener func(ctx context.Context, provider string) (*site.Service, func() error, error)

// openFromEnv builds the service from the environment, like the server.
func openFromEnv(ctx context.Context, provider string) (*site.Service, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.StoreBackend == config.BackendMemory {
		slog.Warn("STORE_BACKEND is memory, generated sites are not persisted")
	}
	reg, err := app.NewRegistry(cfg, provider)
	if err != nil {
		return nil, nil, err
	}
	backend, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return app.NewService(cfg, backend.Store, reg), backend.Close, nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: failed to read .env:", err)
	}

	renderer, err := render.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := newRootCmd(openFromEnv, renderer).Execute(); err != nil {
		os.Exit(1)
	}
}
