// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"sort"
	"sync"

	"promptsite/internal/models"
)

// MemoryStore keeps sites in process memory. Records are held in their
// encoded form so callers can never mutate stored state.
type MemoryStore struct {
	mu    sync.RWMutex
	sites map[string][]byte
	order []memoryEntry
}

type memoryEntry struct {
	slug    string
	created int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sites: make(map[string][]byte)}
}

func (s *MemoryStore) Create(ctx context.Context, site *models.Site) error {
	data, err := encodeSite(site)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sites[site.Slug]; ok {
		return ErrSlugTaken
	}
	s.sites[site.Slug] = data
	s.order = append(s.order, memoryEntry{slug: site.Slug, created: site.CreatedAt.UnixNano()})
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, slug string) (*models.Site, error) {
	s.mu.RLock()
	data, ok := s.sites[slug]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return decodeSite(data)
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]models.Site, error) {
	limit = listLimit(limit)

	s.mu.RLock()
	entries := make([]memoryEntry, len(s.order))
	copy(entries, s.order)
	s.mu.RUnlock()

	// Newest first; ties keep reverse insertion order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].created > entries[j].created
	})

	sites := make([]models.Site, 0, min(limit, len(entries)))
	for _, e := range entries {
		if len(sites) == limit {
			break
		}
		site, err := s.Get(ctx, e.slug)
		if err != nil {
			return nil, err
		}
		if site != nil {
			sites = append(sites, *site)
		}
	}
	return sites, nil
}
