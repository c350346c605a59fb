// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"

	"promptsite/internal/cache"
	"promptsite/internal/middleware"
	"promptsite/internal/render"
	"promptsite/internal/site"
	"promptsite/internal/slug"
)

const (
	// homeListLimit is how many recent sites the index page shows.
	homeListLimit = 12
	qrSize        = 256
)

// Public groups handlers for the HTML pages. Rendered site pages are kept
// in the Valkey page cache when one is configured.
type Public struct {
	sites     Sites
	renderer  Renderer
	pages     cache.Pages
	publicURL string
}

// NewPublic creates a new Public handler group. pages may be nil to disable
// caching. publicURL is the absolute base for share links; when empty it is
// derived from the request.
func NewPublic(sites Sites, renderer Renderer, pages cache.Pages, publicURL string) *Public {
	return &Public{
		sites:     sites,
		renderer:  renderer,
		pages:     pages,
		publicURL: publicURL,
	}
}

// Home renders the prompt form and the most recent sites.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	sites, err := p.sites.List(r.Context(), homeListLimit)
	if err != nil {
		// The form still works without the list.
		slog.Warn("list sites for home failed", "error", err)
		sites = nil
	}

	var buf bytes.Buffer
	if err := p.renderer.RenderHome(&buf, sites); err != nil {
		slog.Error("render home failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// Website renders a stored site by its slug.
func (p *Public) Website(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")
	if !slug.Valid(slugParam) {
		http.NotFound(w, r)
		return
	}

	if p.pages != nil {
		if cached, ok := p.pages.Get(ctx, slugParam); ok {
			writeHTML(w, cached)
			return
		}
	}

	page, err := p.sites.Load(ctx, slugParam)
	if errors.Is(err, site.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("load site failed",
			"error", err,
			"slug", slugParam,
			"request_id", middleware.GetRequestID(ctx),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, page.Site, page.Props, page.Style); err != nil {
		if errors.Is(err, render.ErrUnknownTemplate) {
			http.NotFound(w, r)
			return
		}
		slog.Error("render site failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if p.pages != nil {
		p.pages.Set(ctx, slugParam, buf.Bytes())
	}
	writeHTML(w, buf.Bytes())
}

// QRCode serves a PNG QR code that links to a site's public page.
func (p *Public) QRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")
	if !slug.Valid(slugParam) {
		http.NotFound(w, r)
		return
	}

	page, err := p.sites.Load(ctx, slugParam)
	if errors.Is(err, site.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("load site for qr failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	png, err := qrcode.Encode(p.baseURL(r)+page.Site.URL(), qrcode.Medium, qrSize)
	if err != nil {
		slog.Error("encode qr code failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(png)
}

// baseURL returns the configured public URL or one built from the request.
func (p *Public) baseURL(r *http.Request) string {
	if p.publicURL != "" {
		return p.publicURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}
