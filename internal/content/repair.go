// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"regexp"
	"slices"

	"promptsite/internal/templates"
)

// placeholderPattern matches instruction text and numbered stand-ins that
// models sometimes echo back instead of real content. A numbered stand-in
// must be the whole value so copy such as "Repeat step 2 weekly" survives.
var placeholderPattern = regexp.MustCompile(
	`Generate|(?i:^\s*generate\b)|(?i:^\s*(?:feature|badge|step|key point|article|highlight)\s+\d+\s*$)`)

// IsPlaceholder reports whether s looks like placeholder text.
func IsPlaceholder(s string) bool {
	return placeholderPattern.MatchString(s)
}

// repairPlaceholders replaces placeholder values in props with phrases from
// the category bundle. Replacement list items never duplicate items already
// present. It returns the number of values replaced.
func repairPlaceholders(d *templates.Descriptor, props templates.Props, ti TitleIcon, c Category) int {
	b := BundleFor(c)
	fixed := 0

	for _, f := range d.Schema {
		switch f.Kind {
		case templates.KindString:
			s := props.String(f.Name)
			if s == "" || !IsPlaceholder(s) {
				continue
			}
			props[f.Name] = stringReplacement(d.ID, f, ti, b)
			fixed++

		case templates.KindStringList:
			items := props.Strings(f.Name)
			pool := listPool(d.ID, f, b)
			out, n := repairList(items, pool)
			if n == 0 {
				continue
			}
			if len(out) == 0 {
				out = slices.Clone(pool)
			}
			props[f.Name] = out
			fixed += n

		case templates.KindStepList:
			steps := props.Steps(f.Name)
			out, n := repairSteps(steps)
			if n == 0 {
				continue
			}
			if len(out) == 0 {
				out = slices.Clone(neutralSteps)
			}
			props[f.Name] = out
			fixed += n
		}
	}
	return fixed
}

func stringReplacement(id templates.Name, f templates.Field, ti TitleIcon, b Bundle) string {
	if v, ok := fallbackValue(id, f, ti, b).(string); ok && v != "" {
		return v
	}
	return b.Features[0]
}

// listPool is the set of candidate replacements for a list field.
func listPool(id templates.Name, f templates.Field, b Bundle) []string {
	switch f.Name {
	case "badges":
		return b.Badges
	case "highlights":
		return neutralHighlights
	case "bullets":
		if l, ok := templateBullets[id]; ok {
			return l
		}
	}
	return b.Features
}

// repairList swaps placeholder items for unused pool entries. Items that
// cannot be replaced without a duplicate are dropped.
func repairList(items, pool []string) ([]string, int) {
	n := 0
	for _, it := range items {
		if IsPlaceholder(it) {
			n++
		}
	}
	if n == 0 {
		return items, 0
	}

	out := make([]string, 0, len(items))
	used := make(map[string]bool, len(items))
	for _, it := range items {
		if !IsPlaceholder(it) {
			used[it] = true
		}
	}
	next := 0
	for _, it := range items {
		if !IsPlaceholder(it) {
			out = append(out, it)
			continue
		}
		for next < len(pool) && used[pool[next]] {
			next++
		}
		if next < len(pool) {
			out = append(out, pool[next])
			used[pool[next]] = true
			next++
		}
	}
	return out, n
}

func repairSteps(steps []templates.Step) ([]templates.Step, int) {
	n := 0
	used := make(map[string]bool, len(steps))
	for _, s := range steps {
		if IsPlaceholder(s.Title) || IsPlaceholder(s.Desc) {
			n++
		} else {
			used[s.Title] = true
		}
	}
	if n == 0 {
		return steps, 0
	}

	out := make([]templates.Step, 0, len(steps))
	next := 0
	for _, s := range steps {
		if !IsPlaceholder(s.Title) && !IsPlaceholder(s.Desc) {
			out = append(out, s)
			continue
		}
		for next < len(neutralSteps) && used[neutralSteps[next].Title] {
			next++
		}
		if next < len(neutralSteps) {
			out = append(out, neutralSteps[next])
			used[neutralSteps[next].Title] = true
			next++
		}
	}
	return out, n
}
