// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package templates defines the closed set of page templates a generated
// site can use. Each template has a prop schema, which is the single source
// of truth for what the generator must produce, what Validate accepts and
// what the renderer receives.
package templates

import (
	"fmt"
	"regexp"
	"strings"
)

// Name identifies a template. It is persisted with every site.
type Name string

const (
	LandingGradient    Name = "landingGradient"
	MemeCoin           Name = "memeCoin"
	BubbleClickerShell Name = "bubbleClickerShell"
	MinimalDocs        Name = "minimalDocs"
	AppLanding         Name = "appLanding"
	StepWizard         Name = "stepWizard"
	LandingTemplate    Name = "landingTemplate"
	CardGrid           Name = "cardGrid"
	Timeline           Name = "timeline"
	Magazine           Name = "magazine"
)

// Descriptor is the immutable definition of a template.
type Descriptor struct {
	ID          Name
	Summary     string
	Schema      Schema
	PromptGuide string
}

// Validate checks raw props against the template's schema.
func (d *Descriptor) Validate(raw map[string]any) (Props, error) {
	props, err := d.Schema.Validate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.ID, err)
	}
	return props, nil
}

// Field returns the schema field called name.
func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Schema {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Color schemes accepted by landingTemplate.
var landingColorSchemes = []string{"cool", "degen", "cyberpunk", "trendy", "sport", "random"}

var tickerPattern = regexp.MustCompile(`^\$?[A-Za-z0-9]{2,10}$`)

// Shared field definitions.
var (
	fieldTitle = Field{Name: "title", Kind: KindString, Required: true,
		Guide: "the site title, at most 6 words"}
	fieldSubtitle = Field{Name: "subtitle", Kind: KindString, Required: true,
		Guide: "one compelling sentence describing the site"}
	fieldIcon = Field{Name: "icon", Kind: KindString, Required: true, Default: "✨",
		Guide: "a single emoji"}
	fieldCTAText = Field{Name: "ctaText", Kind: KindString, Required: true, Default: "Get Started",
		Guide: "call-to-action button text, 2-3 words"}
	fieldCTAPrimary = Field{Name: "ctaPrimary", Kind: KindString, Required: true, Default: "Get Started",
		Guide: "primary call-to-action button text, 2-3 words"}
	fieldCTASecondary = Field{Name: "ctaSecondary", Kind: KindString, Required: true, Default: "Learn More",
		Guide: "secondary call-to-action button text, 2-3 words"}
	fieldBadges = Field{Name: "badges", Kind: KindStringList, Required: true, MinItems: 1, MaxItems: 3,
		Guide: "3 short badge labels, 1-2 words each"}
	fieldFeatures = Field{Name: "features", Kind: KindStringList, Required: true, MinItems: 1, MaxItems: 6,
		Guide: "4 specific feature names, 2-4 words each"}
)

func bulletsField(guide string) Field {
	return Field{Name: "bullets", Kind: KindStringList, Required: true, MinItems: 1, MaxItems: 6, Guide: guide}
}

func baseSchema(bulletGuide string) Schema {
	return Schema{fieldTitle, fieldSubtitle, bulletsField(bulletGuide), fieldCTAText, fieldIcon}
}

func landingSchema(showcaseDefault string) Schema {
	return Schema{
		fieldTitle,
		fieldSubtitle,
		fieldBadges,
		fieldFeatures,
		{Name: "showcaseTitle", Kind: KindString, Required: true, Default: showcaseDefault,
			Guide: "heading for the features section"},
		fieldCTAPrimary,
		fieldCTASecondary,
		fieldIcon,
	}
}

var descriptors = []*Descriptor{
	{
		ID:      LandingGradient,
		Summary: "a bold single-page landing site with a gradient hero",
		Schema:  baseSchema("4 specific selling points, 2-5 words each"),
	},
	{
		ID:      MemeCoin,
		Summary: "a playful meme coin launch page",
		Schema: append(baseSchema("4 specific features of the coin, 2-5 words each"),
			Field{Name: "ticker", Kind: KindString, Required: true, Default: "COIN", Pattern: tickerPattern,
				Guide: "a 3-5 letter ticker symbol"},
			Field{Name: "supply", Kind: KindString, Required: true, Default: "1,000,000,000",
				Guide: "the total token supply, formatted with thousands separators"},
		),
	},
	{
		ID:      BubbleClickerShell,
		Summary: "a casual browser game landing page",
		Schema:  baseSchema("4-6 specific game features, 2-5 words each"),
	},
	{
		ID:      MinimalDocs,
		Summary: "a minimal documentation landing page",
		Schema:  baseSchema("4 documentation sections, 2-4 words each"),
	},
	{
		ID:      AppLanding,
		Summary: "an app or product showcase page",
		Schema:  landingSchema("Key Features"),
	},
	{
		ID:      StepWizard,
		Summary: "a step-by-step guide page",
		Schema: Schema{
			fieldTitle,
			fieldSubtitle,
			{Name: "steps", Kind: KindStepList, Required: true, MinItems: 1, MaxItems: 6,
				Guide: "3 steps, each a short title and a one-sentence description"},
			{Name: "highlights", Kind: KindStringList, Required: true, MinItems: 1, MaxItems: 4,
				Guide: "3 short highlights of the process"},
			fieldCTAPrimary,
			{Name: "disclaimer", Kind: KindString, Required: true,
				Default: "Results may vary based on individual circumstances.",
				Guide:   "one short disclaimer sentence"},
			fieldIcon,
		},
	},
	{
		ID:      LandingTemplate,
		Summary: "a modern marketing landing page",
		Schema: append(landingSchema("Why Choose Us"),
			Field{Name: "colorScheme", Kind: KindString, Required: true, Default: "random", Enum: landingColorSchemes,
				Guide: "one of " + strings.Join(landingColorSchemes, ", ")},
		),
	},
	{
		ID:      CardGrid,
		Summary: "a card grid presenting offerings",
		Schema:  baseSchema("4-6 specific offerings, 2-5 words each"),
	},
	{
		ID:      Timeline,
		Summary: "a timeline of phases or milestones",
		Schema:  baseSchema("4-6 specific milestones in order, 2-5 words each"),
	},
	{
		ID:      Magazine,
		Summary: "a magazine-style page of articles and updates",
		Schema:  baseSchema("4-6 specific article headlines, 3-8 words each"),
	},
}

var byName = func() map[Name]*Descriptor {
	m := make(map[Name]*Descriptor, len(descriptors))
	for _, d := range descriptors {
		d.PromptGuide = buildGuide(d)
		m[d.ID] = d
	}
	return m
}()

// Lookup returns the descriptor for name.
func Lookup(name Name) (*Descriptor, bool) {
	d, ok := byName[name]
	return d, ok
}

// Names returns every registered template name in registry order.
func Names() []Name {
	names := make([]Name, len(descriptors))
	for i, d := range descriptors {
		names[i] = d.ID
	}
	return names
}

// buildGuide renders the schema as instructions for the text generator.
// It describes fields rather than showing an example object, since models
// tend to echo example values verbatim.
func buildGuide(d *Descriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Template %q: %s.\n", d.ID, d.Summary)
	b.WriteString("Return one JSON object with exactly these fields:\n")
	for _, f := range d.Schema {
		fmt.Fprintf(&b, "- %q (%s", f.Name, f.Kind)
		if f.Kind != KindString && f.MaxItems > 0 {
			fmt.Fprintf(&b, ", %d-%d items", max(f.MinItems, 1), f.MaxItems)
		}
		fmt.Fprintf(&b, "): %s\n", f.Guide)
	}
	return b.String()
}
