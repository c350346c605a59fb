// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package app wires configuration into the running pieces shared by the
// server and the sitectl CLI: the site store, the Valkey client and the
// site service.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"promptsite/internal/ai"
	"promptsite/internal/cache"
	"promptsite/internal/config"
	"promptsite/internal/content"
	"promptsite/internal/database"
	"promptsite/internal/site"
	"promptsite/internal/store"
	"promptsite/internal/templates"
)

// Backend is an opened site store together with the connections behind it.
type Backend struct {
	Store store.SiteStore

	// Valkey is set when the store or the page cache uses Valkey.
	Valkey *redis.Client

	db *sql.DB
}

// Close releases every connection the backend opened.
func (b *Backend) Close() error {
	var errs []error
	if b.Valkey != nil {
		errs = append(errs, b.Valkey.Close())
	}
	if b.db != nil {
		errs = append(errs, b.db.Close())
	}
	return errors.Join(errs...)
}

// Open connects the store selected by cfg.StoreBackend. PostgreSQL
// migrations are applied on open. A Valkey client is also opened for the
// page cache when cfg.UsesValkey reports one is configured.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	b := &Backend{}

	if cfg.UsesValkey() {
		client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			if cfg.StoreBackend == config.BackendValkey {
				return nil, fmt.Errorf("connect valkey: %w", err)
			}
			// Only the page cache needed it.
			slog.Warn("valkey unavailable, page cache disabled", "error", err)
		} else {
			b.Valkey = client
		}
	}

	switch cfg.StoreBackend {
	case config.BackendValkey:
		b.Store = store.NewValkeyStore(b.Valkey)

	case config.BackendPostgres:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.db = db
		if err := database.Migrate(db); err != nil {
			b.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		b.Store = store.NewPostgresStore(db)

	default:
		b.Store = store.NewMemoryStore()
	}

	slog.Info("site store ready", "backend", cfg.StoreBackend)
	return b, nil
}

// NewRegistry builds the AI provider registry from cfg. A non-empty
// provider overrides AI_PROVIDER and must have an API key.
func NewRegistry(cfg *config.Config, provider string) (*ai.Registry, error) {
	reg := ai.NewRegistry(cfg.AIProvider, cfg.ProviderConfigs())
	if provider != "" {
		if err := reg.SetActive(provider); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, reg.Available())
		}
		return reg, nil
	}
	if !reg.HasProvider(cfg.AIProvider) {
		slog.Warn("active ai provider has no api key, all content will use fallbacks",
			"provider", cfg.AIProvider,
			"available", reg.Available(),
		)
	}
	return reg, nil
}

// NewService assembles the site service over st using gen for content.
func NewService(cfg *config.Config, st store.SiteStore, gen content.Completer) *site.Service {
	return site.NewService(st,
		templates.NewSelector(cfg.ExplorationRate, nil),
		content.NewGenerator(gen, cfg.AITimeout),
		nil,
	)
}
