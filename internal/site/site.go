// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package site assembles generated sites and loads them back for rendering.
// It ties the template selector, the content generator, the style deriver
// and a SiteStore together.
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"promptsite/internal/content"
	"promptsite/internal/models"
	"promptsite/internal/slug"
	"promptsite/internal/store"
	"promptsite/internal/style"
	"promptsite/internal/templates"
)

// maxSlugAttempts bounds how often CreateSite retries after a collision.
const maxSlugAttempts = 5

var (
	// ErrEmptyPrompt is returned for a blank prompt.
	ErrEmptyPrompt = errors.New("site: prompt is required")
	// ErrNotFound is returned by Load for a missing slug or a record whose
	// template is not registered.
	ErrNotFound = errors.New("site: not found")
)

// Page is a stored site prepared for rendering.
type Page struct {
	Site       *models.Site
	Descriptor *templates.Descriptor
	Props      templates.Props
	Style      style.Resolved
}

// Service creates and loads sites.
type Service struct {
	store     store.SiteStore
	selector  *templates.Selector
	generator *content.Generator

	mu  sync.Mutex
	rng *rand.Rand

	now     func() time.Time
	newSlug func(title string) string
}

// NewService wires a service. A nil rng uses a randomly seeded source for
// style derivation.
func NewService(st store.SiteStore, sel *templates.Selector, gen *content.Generator, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Service{
		store:     st,
		selector:  sel,
		generator: gen,
		rng:       rng,
		now:       time.Now,
		newSlug:   slug.ForSite,
	}
}

// CreateSite runs the generation pipeline for prompt and persists the result
// under a fresh slug. Generation itself never fails; only an empty prompt or
// a storage error is reported.
func (s *Service) CreateSite(ctx context.Context, prompt string) (*models.Site, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	name := s.selector.Select(prompt)
	res := s.generator.Generate(ctx, prompt, name)
	desc := s.deriveStyle()

	site := &models.Site{
		TemplateID: name,
		Props:      res.Props,
		Title:      res.Title,
		Icon:       res.Icon,
		Style:      &desc,
		CreatedAt:  s.now().UTC(),
	}

	for attempt := 1; ; attempt++ {
		site.Slug = s.newSlug(res.Title)
		err := s.store.Create(ctx, site)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrSlugTaken) {
			return nil, fmt.Errorf("create site: %w", err)
		}
		if attempt == maxSlugAttempts {
			return nil, fmt.Errorf("create site after %d attempts: %w", attempt, err)
		}
		slog.Warn("slug collision, retrying", "slug", site.Slug, "attempt", attempt)
	}

	slog.Info("site created",
		"slug", site.Slug,
		"template", name,
		"category", res.Category,
		"title_fallback", res.TitleFallback,
		"props_fallback", res.PropsFallback,
		"repaired", res.Repaired,
	)
	return site, nil
}

// Load fetches a site and prepares it for rendering: props are validated
// against the template schema and the style is resolved.
func (s *Service) Load(ctx context.Context, slugStr string) (*Page, error) {
	site, err := s.store.Get(ctx, slugStr)
	if err != nil {
		return nil, fmt.Errorf("load site %s: %w", slugStr, err)
	}
	if site == nil {
		return nil, ErrNotFound
	}

	d, ok := templates.Lookup(site.TemplateID)
	if !ok {
		slog.Warn("site has unregistered template", "slug", site.Slug, "template", site.TemplateID)
		return nil, ErrNotFound
	}

	props, err := d.Validate(site.Props)
	if err != nil {
		// Records are immutable, so an old record that no longer satisfies
		// the schema is rendered with fallback content instead of failing.
		slog.Warn("stored props invalid, rendering fallback", "slug", site.Slug, "error", err)
		ti := content.TitleIcon{Title: site.Title, Icon: site.Icon}
		props = content.FallbackProps(d, ti, content.Categorize(site.Title))
	}

	return &Page{
		Site:       site,
		Descriptor: d,
		Props:      props,
		Style:      style.Resolve(site.Style, styleIdentifier(site)),
	}, nil
}

// List returns up to limit stored sites, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]models.Site, error) {
	sites, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return sites, nil
}

func (s *Service) deriveStyle() style.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return style.Derive(s.rng.IntN)
}

// styleIdentifier is the hash input for records without a stored style.
func styleIdentifier(site *models.Site) string {
	if site.Title != "" {
		return site.Title
	}
	return site.Slug
}
