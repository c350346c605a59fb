// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package templates

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ErrInvalidProps is returned by Validate when a required field is missing
// or malformed and has no default.
var ErrInvalidProps = errors.New("templates: invalid props")

// Kind is the shape of a prop value.
type Kind int

const (
	KindString     Kind = iota // a non-empty string
	KindStringList             // a list of non-empty strings
	KindStepList               // a list of {"title": string, "desc"?: string}
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindStringList:
		return "array of strings"
	case KindStepList:
		return `array of {"title": string, "desc": string}`
	}
	return "unknown"
}

// Field describes a single prop of a template.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	MinItems int // lists only
	MaxItems int // lists only; longer lists are truncated
	Enum     []string
	Pattern  *regexp.Regexp
	Default  any
	Guide    string // what the generator should put here
}

// Schema is the ordered set of props a template accepts.
type Schema []Field

// Props is a validated prop set. Values are string, []string or []Step,
// as declared by the template's schema.
type Props map[string]any

// Step is one entry of a step list.
type Step struct {
	Title string `json:"title"`
	Desc  string `json:"desc,omitempty"`
}

// String returns the string prop name, or "" when absent.
func (p Props) String(name string) string {
	s, _ := p[name].(string)
	return s
}

// Strings returns the string-list prop name, or nil when absent.
func (p Props) Strings(name string) []string {
	l, _ := p[name].([]string)
	return l
}

// Steps returns the step-list prop name, or nil when absent.
func (p Props) Steps(name string) []Step {
	l, _ := p[name].([]Step)
	return l
}

// Validate normalizes raw (typically decoded JSON) against the schema.
// Strings are trimmed, lists are truncated to MaxItems and unknown keys are
// dropped. A field that is missing or malformed takes its Default; if it has
// none and is required, the whole prop set is rejected with ErrInvalidProps.
func (s Schema) Validate(raw map[string]any) (Props, error) {
	out := make(Props, len(s))
	var problems []string

	for _, f := range s {
		v, ok := raw[f.Name]
		var norm any
		var err error
		if ok && v != nil {
			norm, err = f.normalize(v)
		} else {
			err = errors.New("missing")
		}

		if err == nil {
			out[f.Name] = norm
			continue
		}
		if f.Default != nil {
			out[f.Name] = cloneValue(f.Default)
			continue
		}
		if f.Required {
			problems = append(problems, fmt.Sprintf("%s: %v", f.Name, err))
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProps, strings.Join(problems, "; "))
	}
	return out, nil
}

func (f Field) normalize(v any) (any, error) {
	switch f.Kind {
	case KindString:
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", v)
		}
		str = strings.TrimSpace(str)
		if str == "" {
			return nil, errors.New("empty")
		}
		if len(f.Enum) > 0 && !slices.Contains(f.Enum, str) {
			return nil, fmt.Errorf("%q not one of %v", str, f.Enum)
		}
		if f.Pattern != nil && !f.Pattern.MatchString(str) {
			return nil, fmt.Errorf("%q does not match %s", str, f.Pattern)
		}
		return str, nil

	case KindStringList:
		items, err := asList(v)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(items))
		for i, item := range items {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: want string, got %T", i, item)
			}
			if str = strings.TrimSpace(str); str != "" {
				out = append(out, str)
			}
		}
		return f.bound(out)

	case KindStepList:
		items, err := asList(v)
		if err != nil {
			return nil, err
		}
		out := make([]Step, 0, len(items))
		for i, item := range items {
			step, err := asStep(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			out = append(out, step)
		}
		return f.bound(out)
	}
	return nil, fmt.Errorf("unknown kind %d", f.Kind)
}

func boundList[T any](f Field, items []T) (any, error) {
	if len(items) < max(f.MinItems, 1) {
		return nil, fmt.Errorf("want at least %d items, got %d", max(f.MinItems, 1), len(items))
	}
	if f.MaxItems > 0 && len(items) > f.MaxItems {
		items = items[:f.MaxItems]
	}
	return items, nil
}

func (f Field) bound(items any) (any, error) {
	switch l := items.(type) {
	case []string:
		return boundList(f, l)
	case []Step:
		return boundList(f, l)
	}
	return nil, fmt.Errorf("unsupported list %T", items)
}

// asList accepts both decoded JSON arrays and already-typed slices, so
// Validate can re-check props loaded from a store or built in code.
func asList(v any) ([]any, error) {
	switch l := v.(type) {
	case []any:
		return l, nil
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, nil
	case []Step:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("want array, got %T", v)
}

func asStep(v any) (Step, error) {
	switch s := v.(type) {
	case Step:
		s.Title = strings.TrimSpace(s.Title)
		s.Desc = strings.TrimSpace(s.Desc)
		if s.Title == "" {
			return Step{}, errors.New("step title empty")
		}
		return s, nil
	case map[string]any:
		title, _ := s["title"].(string)
		title = strings.TrimSpace(title)
		if title == "" {
			return Step{}, errors.New("step title missing")
		}
		desc, _ := s["desc"].(string)
		return Step{Title: title, Desc: strings.TrimSpace(desc)}, nil
	}
	return Step{}, fmt.Errorf("want object, got %T", v)
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case []string:
		return slices.Clone(x)
	case []Step:
		return slices.Clone(x)
	}
	return v
}
