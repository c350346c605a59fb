// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"promptsite/internal/models"
	"promptsite/internal/templates"
)

// PostgresStore keeps sites in the sites table, props and style as jsonb.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgresStore with the given database connection.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, site *models.Site) error {
	props, err := json.Marshal(site.Props)
	if err != nil {
		return fmt.Errorf("encode props for %s: %w", site.Slug, err)
	}
	var styleJSON sql.NullString
	if site.Style != nil {
		b, err := json.Marshal(site.Style)
		if err != nil {
			return fmt.Errorf("encode style for %s: %w", site.Slug, err)
		}
		styleJSON = sql.NullString{String: string(b), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO sites (slug, template_id, title, icon, props, style, created_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7)
		ON CONFLICT (slug) DO NOTHING
	`, site.Slug, string(site.TemplateID), site.Title, site.Icon, string(props), styleJSON, site.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert site %s: %w", site.Slug, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert site %s: %w", site.Slug, err)
	}
	if n == 0 {
		return ErrSlugTaken
	}
	return nil
}

// Get retrieves a site by its slug. Returns nil if not found.
func (s *PostgresStore) Get(ctx context.Context, slug string) (*models.Site, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT slug, template_id, title, icon, props, style, created_at
		FROM sites WHERE slug = $1
	`, slug)

	site, err := scanSite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find site by slug: %w", err)
	}
	return site, nil
}

// List returns sites ordered by creation date descending.
func (s *PostgresStore) List(ctx context.Context, limit int) ([]models.Site, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, template_id, title, icon, props, style, created_at
		FROM sites
		ORDER BY created_at DESC, slug
		LIMIT $1
	`, listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	sites := []models.Site{}
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		sites = append(sites, *site)
	}
	return sites, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSite(row rowScanner) (*models.Site, error) {
	var (
		site       models.Site
		templateID string
		props      []byte
		styleJSON  []byte
	)
	if err := row.Scan(&site.Slug, &templateID, &site.Title, &site.Icon, &props, &styleJSON, &site.CreatedAt); err != nil {
		return nil, err
	}
	site.TemplateID = templates.Name(templateID)

	if err := json.Unmarshal(props, &site.Props); err != nil {
		return nil, fmt.Errorf("decode props for %s: %w", site.Slug, err)
	}
	if site.Props == nil {
		site.Props = map[string]any{}
	}
	if len(styleJSON) > 0 {
		if err := json.Unmarshal(styleJSON, &site.Style); err != nil {
			return nil, fmt.Errorf("decode style for %s: %w", site.Slug, err)
		}
	}
	site.LiftLegacyStyle()
	return &site, nil
}
