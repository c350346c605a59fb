// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"promptsite/internal/style"
	"promptsite/internal/templates"
)

// legacyStyleKey is where older records kept their style inside props.
const legacyStyleKey = "styleParams"

// Site is a generated website. It is written once under a unique slug and
// never modified afterwards.
type Site struct {
	Slug       string            `json:"slug"`
	TemplateID templates.Name    `json:"templateId"`
	Props      templates.Props   `json:"props"`
	Title      string            `json:"title"`
	Icon       string            `json:"icon"`
	Style      *style.Descriptor `json:"style,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// URL returns the site's path on the public server.
func (s *Site) URL() string {
	return "/website/" + s.Slug
}

// LiftLegacyStyle moves a style stored under props.styleParams into Style.
// A top-level Style always wins. The legacy key is removed from Props either
// way so it never reaches template validation.
func (s *Site) LiftLegacyStyle() {
	raw, ok := s.Props[legacyStyleKey]
	if !ok {
		return
	}
	delete(s.Props, legacyStyleKey)
	if s.Style != nil {
		return
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return
	}
	var d style.Descriptor
	d.ColorScheme, _ = m["colorScheme"].(string)
	d.GridLayout, _ = m["gridLayout"].(string)
	d.AccentColor, _ = m["accentColor"].(string)
	if d != (style.Descriptor{}) {
		s.Style = &d
	}
}
