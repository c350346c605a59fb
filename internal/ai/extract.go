// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when a completion contains no JSON object.
var ErrNoJSON = errors.New("ai: no JSON object in response")

// ExtractJSONObject returns the first balanced JSON object in raw. Models
// often wrap output in markdown fences or add prose around it, so both are
// tolerated. Braces inside string literals are ignored.
func ExtractJSONObject(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrNoJSON
	}

	if body, ok := fencedBody(trimmed); ok {
		if obj, ok := findJSONObject(body); ok {
			return obj, nil
		}
	}
	if obj, ok := findJSONObject(trimmed); ok {
		return obj, nil
	}
	return "", ErrNoJSON
}

// DecodeObject extracts the first JSON object from raw and decodes it into
// a generic map.
func DecodeObject(raw string) (map[string]any, error) {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return nil, fmt.Errorf("ai: decode object: %w", err)
	}
	return out, nil
}

// fencedBody returns the contents of the first ``` block, minus the
// language tag line.
func fencedBody(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start < 0 {
		return "", false
	}
	rest := s[start+3:]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	content := rest[:end]
	if idx := strings.Index(content, "\n"); idx != -1 {
		content = content[idx+1:]
	}
	return strings.TrimSpace(content), true
}

func findJSONObject(input string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			if depth > 0 {
				inString = !inString
			}
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				return input[start : i+1], true
			}
		}
	}
	return "", false
}
