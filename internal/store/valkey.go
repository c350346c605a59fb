// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"promptsite/internal/models"
)

const (
	siteKeyPrefix = "site:"
	// siteIndexKey is a sorted set of slugs scored by creation time in ms.
	siteIndexKey = "sites:index"
)

// ValkeyStore keeps each site as a JSON string under "site:<slug>" and
// indexes slugs in a sorted set for listing.
type ValkeyStore struct {
	client *redis.Client
}

// NewValkeyStore creates a store backed by the given Valkey client.
func NewValkeyStore(client *redis.Client) *ValkeyStore {
	return &ValkeyStore{client: client}
}

func (s *ValkeyStore) Create(ctx context.Context, site *models.Site) error {
	data, err := encodeSite(site)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, siteKeyPrefix+site.Slug, data, 0).Result()
	if err != nil {
		return fmt.Errorf("valkey create site %s: %w", site.Slug, err)
	}
	if !ok {
		return ErrSlugTaken
	}

	member := redis.Z{Score: float64(site.CreatedAt.UnixMilli()), Member: site.Slug}
	if err := s.client.ZAdd(ctx, siteIndexKey, member).Err(); err != nil {
		// The record exists and stays readable by slug; only listing misses it.
		slog.Warn("valkey site index add failed", "slug", site.Slug, "error", err)
	}
	return nil
}

func (s *ValkeyStore) Get(ctx context.Context, slug string) (*models.Site, error) {
	data, err := s.client.Get(ctx, siteKeyPrefix+slug).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("valkey get site %s: %w", slug, err)
	}
	return decodeSite(data)
}

func (s *ValkeyStore) List(ctx context.Context, limit int) ([]models.Site, error) {
	limit = listLimit(limit)

	slugs, err := s.client.ZRevRange(ctx, siteIndexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("valkey list site index: %w", err)
	}
	if len(slugs) == 0 {
		return []models.Site{}, nil
	}

	keys := make([]string, len(slugs))
	for i, slug := range slugs {
		keys[i] = siteKeyPrefix + slug
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("valkey list sites: %w", err)
	}

	sites := make([]models.Site, 0, len(values))
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		site, err := decodeSite([]byte(str))
		if err != nil {
			slog.Warn("skipping unreadable site", "slug", slugs[i], "error", err)
			continue
		}
		sites = append(sites, *site)
	}
	return sites, nil
}
