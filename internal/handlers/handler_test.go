// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Everything runs in memory: a scripted AI provider, the memory store and
// the real page renderer.
package handlers

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"promptsite/internal/ai"
	"promptsite/internal/content"
	"promptsite/internal/models"
	"promptsite/internal/render"
	"promptsite/internal/site"
	"promptsite/internal/store"
	"promptsite/internal/templates"
)

// mockAIProvider implements ai.Provider, replaying responses in order and
// failing once they run out.
type mockAIProvider struct {
	mu        sync.Mutex
	responses []string
	calls     int
}

func (m *mockAIProvider) Name() string { return "test" }

func (m *mockAIProvider) Generate(_ context.Context, _, _ string, _ ai.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls >= len(m.responses) {
		m.calls++
		return "", errors.New("mock provider exhausted")
	}
	resp := m.responses[m.calls]
	m.calls++
	return resp, nil
}

// failingStore is a SiteStore whose writes and lists always fail.
type failingStore struct {
	store.SiteStore
}

func (failingStore) Create(context.Context, *models.Site) error {
	return errors.New("disk full")
}

func (failingStore) List(context.Context, int) ([]models.Site, error) {
	return nil, errors.New("connection reset")
}

// memPages is an in-memory cache.Pages.
type memPages struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemPages() *memPages { return &memPages{data: make(map[string][]byte)} }

func (m *memPages) Get(_ context.Context, slug string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	b, ok := m.data[slug]
	return b, ok
}

func (m *memPages) Set(_ context.Context, slug string, html []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[slug] = append([]byte(nil), html...)
	m.sets++
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Store    store.SiteStore
	Provider *mockAIProvider
	Service  *site.Service
	Pages    *memPages
	API      *API
	Public   *Public
	Router   chi.Router
}

// newTestEnv builds an environment around st. A nil st uses a fresh
// memory store.
func newTestEnv(t *testing.T, st store.SiteStore, responses ...string) *testEnv {
	t.Helper()

	if st == nil {
		st = store.NewMemoryStore()
	}

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	provider := &mockAIProvider{responses: responses}
	registry := ai.NewRegistry("test", map[string]ai.ProviderConfig{})
	registry.Register("test", provider)

	rng := rand.New(rand.NewPCG(1, 2))
	svc := site.NewService(st,
		templates.NewSelector(0, rng),
		content.NewGenerator(registry, time.Second),
		rng,
	)

	pages := newMemPages()
	api := NewAPI(svc, 100)
	public := NewPublic(svc, renderer, pages, "https://sites.example.com")

	r := chi.NewRouter()
	r.Get("/", public.Home)
	r.Post("/generate", api.Generate)
	r.Get("/sites", api.ListSites)
	r.Get("/website/{slug}", public.Website)
	r.Get("/website/{slug}/qr.png", public.QRCode)

	return &testEnv{
		Store:    st,
		Provider: provider,
		Service:  svc,
		Pages:    pages,
		API:      api,
		Public:   public,
		Router:   r,
	}
}

// seedSite stores a record directly, bypassing generation.
func seedSite(t *testing.T, st store.SiteStore, s *models.Site) {
	t.Helper()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if err := st.Create(context.Background(), s); err != nil {
		t.Fatalf("seed site %s: %v", s.Slug, err)
	}
}
