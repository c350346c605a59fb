// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"fmt"

	"promptsite/internal/templates"
)

const titleSystemPrompt = `You are an expert at creating catchy, relevant website titles and choosing appropriate icons.
Respond with ONLY a JSON object. Do not add any text before or after it.`

const propsSystemPrompt = `You are an expert website content creator. You write real, specific copy for websites.
Never write instructions, numbered stand-ins such as "Feature 1", or text starting with "Generate".
Respond with ONLY a JSON object. Do not add any text before or after it.`

func titleUserPrompt(prompt string) string {
	return fmt.Sprintf(`Based on this website prompt, create a catchy title (max 6 words) and choose the most appropriate emoji.

Prompt: %q

The title must be highly relevant to the prompt: a school gets a school title, a restaurant gets a restaurant title.
Pick an emoji that represents the business, for example 🎓 for a school, 🍕 for a pizza place, 💡 for a tech startup.

Respond in this format:
{"title": "...", "icon": "..."}`, prompt)
}

func propsUserPrompt(prompt string, d *templates.Descriptor, ti TitleIcon) string {
	return fmt.Sprintf(`Write engaging, relevant content for this website prompt: %q

Title: %s
Icon: %s

%s
Make everything specific to the prompt and use professional, engaging language.`,
		prompt, ti.Title, ti.Icon, d.PromptGuide)
}
