// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug builds URL-safe site identifiers from titles.
package slug

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxBaseLen bounds the title-derived part of a site slug.
	MaxBaseLen = 40
	// SuffixLen is the length of the random part of a site slug.
	SuffixLen = 6

	emptyBase = "site"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, hyphen or whitespace.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace      = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Slice & Dice Pizza!" → "slice-dice-pizza"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// ForSite returns "<base>-<suffix>" where base is the slugified title cut
// to MaxBaseLen and suffix is SuffixLen random lowercase hex characters.
// Titles that slugify to nothing use "site" as the base.
func ForSite(title string) string {
	return Base(title) + "-" + Suffix()
}

// Base returns the title-derived part of a site slug.
func Base(title string) string {
	base := Generate(title)
	if len(base) > MaxBaseLen {
		base = strings.TrimRight(base[:MaxBaseLen], "-")
	}
	if base == "" {
		base = emptyBase
	}
	return base
}

// Suffix returns SuffixLen random lowercase hex characters.
func Suffix() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:SuffixLen]
}

var valid = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Valid reports whether s is a well-formed slug.
func Valid(s string) bool {
	return len(s) <= MaxBaseLen+1+SuffixLen && valid.MatchString(s)
}
