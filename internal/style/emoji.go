// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package style

import "strings"

type emojiRule struct {
	keyword string
	glyph   string
}

// emojiRules is scanned in order; the first keyword contained in the text
// wins, so more specific keywords must come before generic ones within a
// group.
var emojiRules = []emojiRule{
	// Performance
	{"fast", "⚡"}, {"speed", "⚡"}, {"performance", "🚀"}, {"quick", "⚡"}, {"efficient", "⚡"},
	{"optimized", "⚡"}, {"turbo", "🚀"}, {"lightning", "⚡"}, {"rapid", "⚡"},

	// Security
	{"secure", "🔒"}, {"security", "🔒"}, {"safe", "🛡️"}, {"protected", "🛡️"}, {"encrypted", "🔐"},
	{"privacy", "🔒"}, {"guard", "🛡️"}, {"shield", "🛡️"}, {"lock", "🔒"},

	// Innovation and technology
	{"innovative", "💡"}, {"innovation", "💡"}, {"technology", "🔬"}, {"tech", "🔬"}, {"advanced", "🚀"},
	{"cutting-edge", "🔬"}, {"modern", "✨"}, {"future", "🔮"}, {"ai", "🤖"}, {"artificial", "🤖"},
	{"machine learning", "🧠"}, {"ml", "🧠"}, {"automation", "⚙️"}, {"smart", "🧠"},

	// Quality
	{"quality", "⭐"}, {"excellent", "⭐"}, {"premium", "💎"}, {"best", "🏆"}, {"top", "🏆"},
	{"award", "🏆"}, {"certified", "✅"}, {"verified", "✅"}, {"trusted", "🤝"},

	// User experience
	{"user-friendly", "😊"}, {"intuitive", "🎯"}, {"easy", "😊"}, {"simple", "🎯"}, {"smooth", "✨"},
	{"seamless", "✨"}, {"enjoyable", "😊"}, {"pleasant", "😊"}, {"comfortable", "😌"},

	// Support
	{"support", "🆘"}, {"help", "🆘"}, {"assistance", "🤝"}, {"service", "🛎️"}, {"customer", "👥"},
	{"24/7", "🕐"}, {"always", "🕐"}, {"available", "✅"}, {"responsive", "📱"},

	// Community
	{"community", "👥"}, {"social", "🌐"}, {"network", "🌐"}, {"collaboration", "🤝"}, {"team", "👥"},
	{"partnership", "🤝"}, {"connect", "🔗"}, {"share", "📤"}, {"together", "👥"},

	// Data
	{"data", "📊"}, {"analytics", "📈"}, {"insights", "🔍"}, {"metrics", "📊"}, {"statistics", "📊"},
	{"report", "📋"}, {"dashboard", "📊"}, {"monitoring", "👁️"}, {"tracking", "📍"},

	// Mobile and reach
	{"mobile", "📱"}, {"accessibility", "♿"}, {"universal", "🌍"}, {"cross-platform", "🔄"},
	{"anywhere", "🌍"}, {"remote", "🏠"}, {"cloud", "☁️"}, {"online", "🌐"},

	// Business
	{"business", "💼"}, {"enterprise", "🏢"}, {"professional", "👔"}, {"corporate", "🏢"}, {"scalable", "📈"},
	{"growth", "📈"}, {"expansion", "🚀"}, {"scale", "📈"},

	// Creative
	{"creative", "🎨"}, {"design", "🎨"}, {"beautiful", "✨"}, {"aesthetic", "🎨"}, {"visual", "👁️"},
	{"artistic", "🎨"}, {"stunning", "✨"}, {"elegant", "✨"}, {"stylish", "💅"},

	// Education
	{"education", "📚"}, {"learning", "📖"}, {"knowledge", "🧠"}, {"training", "🎓"}, {"tutorial", "📖"},
	{"guide", "🗺️"}, {"teach", "👨‍🏫"}, {"learn", "📖"},

	// Health
	{"health", "🏥"}, {"wellness", "💚"}, {"fitness", "💪"}, {"medical", "🏥"}, {"care", "💚"},
	{"healing", "💚"}, {"recovery", "🔄"}, {"vitality", "💚"}, {"strength", "💪"},

	// Finance
	{"finance", "💰"}, {"money", "💵"}, {"investment", "📈"}, {"savings", "🏦"}, {"budget", "📊"},
	{"financial", "💰"}, {"economic", "📊"}, {"profit", "📈"}, {"wealth", "💎"},

	// Food
	{"food", "🍕"}, {"restaurant", "🍽️"}, {"delivery", "🚚"}, {"fresh", "🥬"}, {"taste", "👅"},
	{"cooking", "👨‍🍳"}, {"recipe", "📖"}, {"ingredients", "🥬"}, {"delicious", "😋"},

	// Travel
	{"travel", "✈️"}, {"transport", "🚗"}, {"journey", "🗺️"}, {"adventure", "🏔️"}, {"explore", "🔍"},
	{"destination", "📍"}, {"vacation", "🏖️"}, {"trip", "🎒"}, {"flight", "✈️"},

	// Entertainment
	{"entertainment", "🎬"}, {"media", "📺"}, {"video", "🎥"}, {"music", "🎵"}, {"game", "🎮"},
	{"fun", "😄"}, {"enjoy", "😊"}, {"amusement", "🎪"}, {"leisure", "⛱️"},
}

var fallbackGlyphs = []string{"✨", "🚀", "💡", "⭐", "🎯", "🔧", "📱", "🌐", "💎", "🏆"}

// EmojiFor picks an icon for a feature phrase. Keyword matches win;
// otherwise the glyph is chosen by hashing the text, so the same phrase
// always gets the same icon.
func EmojiFor(text string) string {
	lower := strings.ToLower(text)
	for _, r := range emojiRules {
		if strings.Contains(lower, r.keyword) {
			return r.glyph
		}
	}
	return fallbackGlyphs[pick(text, len(fallbackGlyphs))]
}
