// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content turns a prompt into a title, an icon and a props set for
// one template. It never fails: every upstream or parse problem degrades to
// topic-appropriate fallback content.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"promptsite/internal/ai"
	"promptsite/internal/templates"
)

const (
	DefaultTimeout = 30 * time.Second

	maxTitleWords = 6

	fallbackTitle = "Amazing Website"
	fallbackIcon  = "✨"
)

var (
	titleOptions = ai.GenerateOptions{MaxTokens: 200, Temperature: 0.8}
	propsOptions = ai.GenerateOptions{MaxTokens: 1500, Temperature: 0.9}
)

// Completer is the text generation call the generator depends on.
// *ai.Registry and every ai.Provider satisfy it.
type Completer interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, opts ai.GenerateOptions) (string, error)
}

// TitleIcon is the site title and its emoji.
type TitleIcon struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// Result is the outcome of one generation.
type Result struct {
	TitleIcon
	Props         templates.Props
	Category      Category
	TitleFallback bool // title and icon are the fixed defaults
	PropsFallback bool // props were synthesized from the category bundle
	Repaired      int  // placeholder values replaced
}

// Generator produces site content through a Completer.
type Generator struct {
	completer Completer
	timeout   time.Duration
}

// NewGenerator creates a generator. A non-positive timeout uses DefaultTimeout.
func NewGenerator(c Completer, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Generator{completer: c, timeout: timeout}
}

// Generate runs the title/icon call and then the props call for the named
// template. Unknown names are treated as the default landing template.
func (g *Generator) Generate(ctx context.Context, prompt string, name templates.Name) Result {
	d, ok := templates.Lookup(name)
	if !ok {
		d, _ = templates.Lookup(templates.LandingTemplate)
	}

	category := Categorize(prompt)
	ti, titleErr := g.titleIcon(ctx, prompt)
	if titleErr != nil {
		slog.Warn("title generation fell back", "template", d.ID, "error", titleErr)
	}

	res := Result{TitleIcon: ti, Category: category, TitleFallback: titleErr != nil}

	props, err := g.props(ctx, prompt, d, ti)
	if err != nil {
		slog.Warn("props generation fell back", "template", d.ID, "category", category, "error", err)
		res.Props = FallbackProps(d, ti, category)
		res.PropsFallback = true
		return res
	}

	res.Repaired = repairPlaceholders(d, props, ti, category)
	if res.Repaired > 0 {
		slog.Info("replaced placeholder content", "template", d.ID, "count", res.Repaired)
	}
	res.Props = props
	return res
}

// titleIcon asks for {title, icon}. On failure it returns the fixed default
// pair together with the reason.
func (g *Generator) titleIcon(ctx context.Context, prompt string) (TitleIcon, error) {
	def := TitleIcon{Title: fallbackTitle, Icon: fallbackIcon}

	obj, err := g.completeObject(ctx, titleSystemPrompt, titleUserPrompt(prompt), titleOptions)
	if err != nil {
		return def, err
	}

	title, _ := obj["title"].(string)
	title = truncateWords(strings.TrimSpace(title), maxTitleWords)
	if title == "" {
		return def, errors.New("response has no title")
	}
	if IsPlaceholder(title) {
		return def, fmt.Errorf("placeholder title %q", title)
	}
	icon, _ := obj["icon"].(string)
	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = fallbackIcon
	}
	return TitleIcon{Title: title, Icon: icon}, nil
}

// props asks for the template's props and validates them. The title and
// icon already chosen always win over whatever the model repeats.
func (g *Generator) props(ctx context.Context, prompt string, d *templates.Descriptor, ti TitleIcon) (templates.Props, error) {
	obj, err := g.completeObject(ctx, propsSystemPrompt, propsUserPrompt(prompt, d, ti), propsOptions)
	if err != nil {
		return nil, err
	}

	obj["title"] = ti.Title
	if _, ok := d.Field("icon"); ok {
		obj["icon"] = ti.Icon
	}
	return d.Validate(obj)
}

func (g *Generator) completeObject(ctx context.Context, system, user string, opts ai.GenerateOptions) (map[string]any, error) {
	if g.completer == nil {
		return nil, ai.ErrNoProvider
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.completer.Generate(callCtx, system, user, opts)
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}
	return ai.DecodeObject(text)
}

func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
