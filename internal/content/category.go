// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"regexp"
	"strings"

	"promptsite/internal/templates"
)

// Category is the business type inferred from a prompt. It picks the phrase
// bundle used for fallback and placeholder repair.
type Category string

const (
	Restaurant Category = "restaurant"
	Education  Category = "education"
	Tech       Category = "tech"
	Health     Category = "health"
	Finance    Category = "finance"
	General    Category = "general"
)

// Bundle is a set of topic-appropriate phrases for one category.
type Bundle struct {
	Subtitle     string
	Features     []string
	Badges       []string
	CTA          string
	CTASecondary string
}

var categoryRules = []struct {
	re       *regexp.Regexp
	category Category
}{
	{regexp.MustCompile(`\b(restaurant|food|pizza|cafe)`), Restaurant},
	{regexp.MustCompile(`\b(school|education|university|college)`), Education},
	{regexp.MustCompile(`\b(tech|startup|software|app)`), Tech},
	{regexp.MustCompile(`\b(health|medical|fitness|wellness)`), Health},
	{regexp.MustCompile(`\b(finance|bank|investment|crypto)`), Finance},
}

var neutralBadges = []string{"Featured", "Popular", "Trending"}

var bundles = map[Category]Bundle{
	Restaurant: {
		Subtitle:     "Delicious food delivered with excellence",
		Features:     []string{"Fresh Ingredients", "Fast Delivery", "Family Recipes", "Authentic Taste", "Quality Service", "Local Favorites"},
		Badges:       []string{"Popular", "Fast Delivery", "Family Owned"},
		CTA:          "Order Now",
		CTASecondary: "View Menu",
	},
	Education: {
		Subtitle:     "Empowering students with innovative learning experiences",
		Features:     []string{"Academic Excellence", "Student Success", "Innovative Learning", "Community Focus", "Expert Faculty", "Modern Facilities"},
		Badges:       []string{"Excellence", "Innovation", "Community"},
		CTA:          "Apply Now",
		CTASecondary: "Learn More",
	},
	Tech: {
		Subtitle:     "Revolutionary solutions for modern businesses",
		Features:     []string{"AI-Powered Solutions", "Scalable Architecture", "24/7 Support", "Cutting-Edge Innovation", "Enterprise Ready", "User-Friendly Design"},
		Badges:       []string{"Innovation", "AI-Powered", "Enterprise Ready"},
		CTA:          "Get Started",
		CTASecondary: "Learn More",
	},
	Health: {
		Subtitle:     "Your health and wellness is our priority",
		Features:     []string{"Expert Care", "Modern Facilities", "Personalized Treatment", "24/7 Support", "Professional Staff", "Advanced Technology"},
		Badges:       neutralBadges,
		CTA:          "Book Appointment",
		CTASecondary: "Learn More",
	},
	Finance: {
		Subtitle:     "Secure and smart financial solutions",
		Features:     []string{"Secure Platform", "Expert Advice", "Fast Transactions", "24/7 Support", "Competitive Rates", "User-Friendly Interface"},
		Badges:       neutralBadges,
		CTA:          "Get Started",
		CTASecondary: "Learn More",
	},
	General: {
		Subtitle:     "Professional service that exceeds expectations",
		Features:     []string{"Quality Service", "Expert Team", "Innovative Solutions", "Customer Focus", "Reliable Performance", "Modern Approach"},
		Badges:       neutralBadges,
		CTA:          "Get Started",
		CTASecondary: "Learn More",
	},
}

// Template-specific list content that reads better than generic features.
var templateBullets = map[templates.Name][]string{
	templates.MemeCoin:    {"Community Driven", "Transparent", "Innovative", "High Potential"},
	templates.MinimalDocs: {"Getting Started", "Advanced Features", "Best Practices", "Troubleshooting"},
	templates.Timeline:    {"Planning Phase", "Development", "Testing", "Launch", "Growth", "Scale"},
	templates.Magazine:    {"Industry Trends", "Expert Analysis", "Case Studies", "Best Practices", "Innovation News", "Success Stories"},
}

var neutralSteps = []templates.Step{
	{Title: "Get Started", Desc: "Begin your journey with the basics"},
	{Title: "Configure", Desc: "Set up your preferences and settings"},
	{Title: "Launch", Desc: "Go live and start achieving results"},
}

var neutralHighlights = []string{"Easy to follow", "Proven method", "Quick results"}

// Categorize returns the first category whose keywords appear in prompt.
func Categorize(prompt string) Category {
	lower := strings.ToLower(prompt)
	for _, r := range categoryRules {
		if r.re.MatchString(lower) {
			return r.category
		}
	}
	return General
}

// BundleFor returns the phrase bundle for c, or the general bundle.
func BundleFor(c Category) Bundle {
	if b, ok := bundles[c]; ok {
		return b
	}
	return bundles[General]
}
