// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists generated sites. Three backends share one
// interface: in-memory for development and tests, Valkey for a key-value
// deployment and PostgreSQL for a relational one.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"promptsite/internal/models"
)

// ErrSlugTaken is returned by Create when a record already exists under the slug.
var ErrSlugTaken = errors.New("store: slug already taken")

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 100

// SiteStore is the persistence contract for sites. Records are immutable:
// there is no update or delete.
type SiteStore interface {
	// Create stores site only if no record exists under site.Slug.
	// It returns ErrSlugTaken otherwise.
	Create(ctx context.Context, site *models.Site) error

	// Get returns the site stored under slug, or nil if there is none.
	Get(ctx context.Context, slug string) (*models.Site, error)

	// List returns up to limit sites, newest first.
	List(ctx context.Context, limit int) ([]models.Site, error)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// encodeSite serializes the persisted record format.
func encodeSite(site *models.Site) ([]byte, error) {
	data, err := json.Marshal(site)
	if err != nil {
		return nil, fmt.Errorf("encode site %s: %w", site.Slug, err)
	}
	return data, nil
}

// decodeSite parses a persisted record, accepting the legacy style location.
func decodeSite(data []byte) (*models.Site, error) {
	var s models.Site
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode site: %w", err)
	}
	if s.Props == nil {
		s.Props = map[string]any{}
	}
	s.LiftLegacyStyle()
	return &s, nil
}
