// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package style derives the visual styling of a generated site. A fresh
// Descriptor is drawn once when a site is created and stored with it;
// Resolve maps that stored descriptor (or, for legacy records without one,
// a stable identifier) to concrete palette and grid values so a page looks
// the same on every render.
package style

// Descriptor is the persisted style choice of a site. Only ids are stored;
// the concrete classes live in the tables below.
type Descriptor struct {
	ColorScheme string `json:"colorScheme"`
	GridLayout  string `json:"gridLayout"`
	AccentColor string `json:"accentColor,omitempty"`
}

// Palette is a named set of gradient classes used by the page templates.
type Palette struct {
	Name       string `json:"name"`
	Background string `json:"bg"`
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Timeline   string `json:"timeline"`
	Border     string `json:"border"`
}

// GridLayout controls how feature cards are arranged.
type GridLayout struct {
	Name     string `json:"name"`
	Columns  int    `json:"columns"`
	MaxItems int    `json:"maxItems"`
	Class    string `json:"class"`
}

// Resolved is the concrete style handed to a template.
type Resolved struct {
	Colors Palette    `json:"colors"`
	Grid   GridLayout `json:"gridLayout"`
}

// palettes is ordered; the order is part of the hash derivation and must
// not change.
var palettes = []Palette{
	{
		Name:       "blue",
		Background: "from-slate-950 via-blue-950 to-slate-900",
		Primary:    "from-blue-400 via-cyan-400 to-blue-600",
		Accent:     "from-blue-500 to-cyan-500",
		Timeline:   "from-blue-500/20 to-cyan-500/20",
		Border:     "border-blue-500/30",
	},
	{
		Name:       "purple",
		Background: "from-slate-950 via-purple-950 to-slate-900",
		Primary:    "from-purple-400 via-pink-400 to-purple-600",
		Accent:     "from-purple-500 to-pink-500",
		Timeline:   "from-purple-500/20 to-pink-500/20",
		Border:     "border-purple-500/30",
	},
	{
		Name:       "emerald",
		Background: "from-slate-950 via-emerald-950 to-slate-900",
		Primary:    "from-emerald-400 via-teal-400 to-emerald-600",
		Accent:     "from-emerald-500 to-teal-500",
		Timeline:   "from-emerald-500/20 to-teal-500/20",
		Border:     "border-emerald-500/30",
	},
	{
		Name:       "indigo",
		Background: "from-slate-950 via-indigo-950 to-slate-900",
		Primary:    "from-indigo-400 via-blue-400 to-indigo-600",
		Accent:     "from-indigo-500 to-blue-500",
		Timeline:   "from-indigo-500/20 to-blue-500/20",
		Border:     "border-indigo-500/30",
	},
	{
		Name:       "rose",
		Background: "from-slate-950 via-rose-950 to-slate-900",
		Primary:    "from-rose-400 via-pink-400 to-rose-600",
		Accent:     "from-rose-500 to-pink-500",
		Timeline:   "from-rose-500/20 to-pink-500/20",
		Border:     "border-rose-500/30",
	},
	{
		Name:       "amber",
		Background: "from-slate-950 via-amber-950 to-slate-900",
		Primary:    "from-amber-400 via-orange-400 to-amber-600",
		Accent:     "from-amber-500 to-orange-500",
		Timeline:   "from-amber-500/20 to-orange-500/20",
		Border:     "border-amber-500/30",
	},
}

// layouts is ordered for the same reason as palettes.
var layouts = []GridLayout{
	{Name: "two-column", Columns: 2, MaxItems: 4, Class: "md:grid-cols-2"},
	{Name: "two-column-tall", Columns: 2, MaxItems: 6, Class: "md:grid-cols-2"},
	{Name: "three-column", Columns: 3, MaxItems: 6, Class: "md:grid-cols-3"},
	{Name: "three-column-tall", Columns: 3, MaxItems: 9, Class: "md:grid-cols-3"},
	{Name: "four-column", Columns: 4, MaxItems: 8, Class: "md:grid-cols-4"},
	{Name: "four-column-tall", Columns: 4, MaxItems: 12, Class: "md:grid-cols-4"},
}

// Source returns a uniformly distributed index in [0, n).
// math/rand/v2's IntN satisfies it.
type Source func(n int) int

// Derive draws a fresh descriptor. It is called once, when a site is
// created; the result is stored with the record.
func Derive(src Source) Descriptor {
	return Descriptor{
		ColorScheme: palettes[src(len(palettes))].Name,
		GridLayout:  layouts[src(len(layouts))].Name,
	}
}

// Resolve maps a stored descriptor to concrete style values. Ids that are
// missing or unknown (legacy records) are derived from identifier by hash,
// so the same identifier always produces the same result.
func Resolve(stored *Descriptor, identifier string) Resolved {
	var d Descriptor
	if stored != nil {
		d = *stored
	}

	colors, ok := PaletteByName(d.ColorScheme)
	if !ok {
		colors = palettes[pick(identifier, len(palettes))]
	}

	grid, ok := LayoutByName(d.GridLayout)
	if !ok {
		grid = layouts[pick(identifier, len(layouts))]
	}

	if accent, ok := PaletteByName(d.AccentColor); ok {
		colors.Accent = accent.Accent
	}

	return Resolved{Colors: colors, Grid: grid}
}

// PaletteByName looks up a palette by its id.
func PaletteByName(name string) (Palette, bool) {
	for _, p := range palettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// LayoutByName looks up a grid layout by its id.
func LayoutByName(name string) (GridLayout, bool) {
	for _, l := range layouts {
		if l.Name == name {
			return l, true
		}
	}
	return GridLayout{}, false
}

// Palettes returns the names of all palettes in table order.
func Palettes() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}

// Layouts returns the names of all grid layouts in table order.
func Layouts() []string {
	names := make([]string, len(layouts))
	for i, l := range layouts {
		names[i] = l.Name
	}
	return names
}
