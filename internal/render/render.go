// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render turns stored sites into HTML. Every registered template has
// a page file under templates/sites, parsed together with the shared base
// layout that carries the site header.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"time"

	"promptsite/internal/models"
	"promptsite/internal/style"
	"promptsite/internal/templates"
)

//go:embed templates/sites/*.html templates/home.html
var siteFS embed.FS

// ErrUnknownTemplate is returned when no page file exists for a template name.
var ErrUnknownTemplate = errors.New("render: unknown template")

// PageData holds everything a site page template can use.
type PageData struct {
	Site  *models.Site
	Props templates.Props
	Style style.Resolved
	Year  int
}

// HomeData holds the data for the index page.
type HomeData struct {
	Sites []models.Site
	Year  int
}

// Dispatcher picks the page template matching a site's template id.
type Dispatcher struct {
	pages map[templates.Name]*template.Template
	home  *template.Template
}

var funcMap = template.FuncMap{
	// emoji picks a glyph that fits an item's text.
	"emoji": style.EmojiFor,
	// limit returns at most n items.
	"limit": func(n int, items []string) []string {
		if n > 0 && len(items) > n {
			return items[:n]
		}
		return items
	},
	"inc": func(i int) int { return i + 1 },
}

// New parses the base layout with each registered template's page file.
// It fails if any registered template has no page file.
func New() (*Dispatcher, error) {
	d := &Dispatcher{pages: make(map[templates.Name]*template.Template)}

	for _, name := range templates.Names() {
		file := "templates/sites/" + string(name) + ".html"
		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(siteFS, "templates/sites/base.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		d.pages[name] = tmpl
	}

	home, err := template.New("home.html").Funcs(funcMap).ParseFS(siteFS, "templates/home.html")
	if err != nil {
		return nil, fmt.Errorf("parse home template: %w", err)
	}
	d.home = home

	return d, nil
}

// Render writes the page for site. Output is buffered so a template error
// never leaves a half-written response.
func (d *Dispatcher) Render(w io.Writer, site *models.Site, props templates.Props, resolved style.Resolved) error {
	tmpl, ok := d.pages[site.TemplateID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, site.TemplateID)
	}

	data := PageData{
		Site:  site,
		Props: props,
		Style: resolved,
		Year:  time.Now().Year(),
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return fmt.Errorf("execute template %s: %w", site.TemplateID, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderHome writes the index page listing recent sites.
func (d *Dispatcher) RenderHome(w io.Writer, sites []models.Site) error {
	var buf bytes.Buffer
	if err := d.home.Execute(&buf, HomeData{Sites: sites, Year: time.Now().Year()}); err != nil {
		return fmt.Errorf("execute home template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
