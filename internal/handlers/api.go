// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"promptsite/internal/middleware"
	"promptsite/internal/models"
	"promptsite/internal/site"
	"promptsite/internal/templates"
)

// API groups the JSON endpoints.
type API struct {
	sites     Sites
	listLimit int
}

// NewAPI creates the API handler group. listLimit caps GET /sites.
func NewAPI(sites Sites, listLimit int) *API {
	return &API{sites: sites, listLimit: listLimit}
}

// generateRequest is the body of POST /generate. Prompt is decoded as any
// so a non-string value can be told apart from a missing one.
type generateRequest struct {
	Prompt any `json:"prompt"`
}

// generateResponse is the body of a successful POST /generate.
type generateResponse struct {
	Slug       string          `json:"slug"`
	URL        string          `json:"url"`
	TemplateID templates.Name  `json:"templateId"`
	Props      templates.Props `json:"props"`
	Title      string          `json:"title"`
	Icon       string          `json:"icon"`
}

// Generate creates a site from {"prompt": "..."} and returns its record.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, "Request body is too large.")
			return
		}
		writeError(w, http.StatusBadRequest, "Request body must be a JSON object.")
		return
	}

	prompt, msg := validatePrompt(req.Prompt)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.sites.CreateSite(r.Context(), prompt)
	if err != nil {
		if errors.Is(err, site.ErrEmptyPrompt) {
			writeError(w, http.StatusBadRequest, "Prompt is required.")
			return
		}
		slog.Error("create site failed",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, "Failed to save the generated site.")
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Slug:       created.Slug,
		URL:        created.URL(),
		TemplateID: created.TemplateID,
		Props:      created.Props,
		Title:      created.Title,
		Icon:       created.Icon,
	})
}

// ListSites returns stored sites as a JSON array, newest first.
func (a *API) ListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := a.sites.List(r.Context(), a.listLimit)
	if err != nil {
		slog.Error("list sites failed",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, "Failed to list sites.")
		return
	}
	if sites == nil {
		sites = []models.Site{}
	}
	writeJSON(w, http.StatusOK, sites)
}
