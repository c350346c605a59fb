// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package templates

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
)

// DefaultExplorationRate is the share of prompts that get a random template
// regardless of keywords.
const DefaultExplorationRate = 0.2

// keywordRule maps prompt vocabulary to a template. Short stems are bounded
// on both sides so "apple" and "doctor" do not match.
type keywordRule struct {
	pattern  *regexp.Regexp
	template Name
}

// keywordRules are evaluated in order; the first match wins.
var keywordRules = []keywordRule{
	{regexp.MustCompile(`\b(meme|coin|token|crypto|memecoin)`), MemeCoin},
	{regexp.MustCompile(`\b(apps?\b|landing|product)`), AppLanding},
	{regexp.MustCompile(`\b(step|wizard|guide)`), StepWizard},
	{regexp.MustCompile(`\b(docs?\b|documentation|apis?\b)`), MinimalDocs},
	{regexp.MustCompile(`\b(game|clicker|bubble)`), BubbleClickerShell},
}

// modernTemplates is the pool used when no keyword matches.
var modernTemplates = []Name{LandingTemplate, CardGrid, Timeline, Magazine}

// Selector picks a template for a prompt. Selection is intentionally not
// repeatable: with probability ExplorationRate any registered template may
// be chosen. It is safe for concurrent use.
type Selector struct {
	rate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a selector with the given exploration rate, clamped
// to [0, 1]. A nil rng uses a randomly seeded source.
func NewSelector(rate float64, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{rate: min(max(rate, 0), 1), rng: rng}
}

// Select returns the template to use for prompt. It never fails.
func (s *Selector) Select(prompt string) Name {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rate > 0 && s.rng.Float64() < s.rate {
		all := Names()
		return all[s.rng.IntN(len(all))]
	}

	if name, ok := MatchKeywords(prompt); ok {
		return name
	}
	return modernTemplates[s.rng.IntN(len(modernTemplates))]
}

// MatchKeywords applies the keyword rules alone.
func MatchKeywords(prompt string) (Name, bool) {
	lower := strings.ToLower(prompt)
	for _, r := range keywordRules {
		if r.pattern.MatchString(lower) {
			return r.template, true
		}
	}
	return "", false
}
