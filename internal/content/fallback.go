// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"fmt"
	"slices"

	"promptsite/internal/templates"
)

// FallbackProps builds a complete, schema-valid props set for d from the
// category bundle. Template-specific fields without a bundle equivalent take
// their schema default or a fixed neutral value.
func FallbackProps(d *templates.Descriptor, ti TitleIcon, c Category) templates.Props {
	b := BundleFor(c)
	raw := make(map[string]any, len(d.Schema))
	for _, f := range d.Schema {
		if v := fallbackValue(d.ID, f, ti, b); v != nil {
			raw[f.Name] = v
		}
	}

	props, err := d.Validate(raw)
	if err != nil {
		// Every registered schema is covered by fallbackValue.
		panic(fmt.Sprintf("content: fallback props invalid: %v", err))
	}
	return props
}

func fallbackValue(id templates.Name, f templates.Field, ti TitleIcon, b Bundle) any {
	switch f.Name {
	case "title":
		return ti.Title
	case "icon":
		return ti.Icon
	case "subtitle":
		return b.Subtitle
	case "bullets":
		if l, ok := templateBullets[id]; ok {
			return slices.Clone(l)
		}
		return slices.Clone(b.Features[:4])
	case "features":
		return slices.Clone(b.Features[:4])
	case "badges":
		return slices.Clone(b.Badges)
	case "ctaText", "ctaPrimary":
		return b.CTA
	case "ctaSecondary":
		return b.CTASecondary
	case "steps":
		return slices.Clone(neutralSteps)
	case "highlights":
		return slices.Clone(neutralHighlights)
	}
	return f.Default
}
