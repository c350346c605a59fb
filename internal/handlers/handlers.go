// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP endpoints: the JSON generation API
// and the public pages that render stored sites.
package handlers

import (
	"context"
	"io"

	"promptsite/internal/models"
	"promptsite/internal/site"
	"promptsite/internal/style"
	"promptsite/internal/templates"
)

// Sites is the part of site.Service the handlers use.
type Sites interface {
	CreateSite(ctx context.Context, prompt string) (*models.Site, error)
	Load(ctx context.Context, slug string) (*site.Page, error)
	List(ctx context.Context, limit int) ([]models.Site, error)
}

// Renderer turns sites into HTML.
type Renderer interface {
	Render(w io.Writer, site *models.Site, props templates.Props, resolved style.Resolved) error
	RenderHome(w io.Writer, sites []models.Site) error
}
