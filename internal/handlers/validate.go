package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for generation requests.
const (
	maxPromptLen   = 2_000
	maxRequestBody = 16 << 10
)

// validatePrompt checks a decoded prompt value and returns the trimmed
// prompt, or a user-facing message describing the first problem found.
func validatePrompt(v any) (string, string) {
	if v == nil {
		return "", "Prompt is required."
	}
	prompt, ok := v.(string)
	if !ok {
		return "", "Prompt must be a string."
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", "Prompt is required."
	}
	if utf8.RuneCountInString(prompt) > maxPromptLen {
		return "", "Prompt is too long (max 2,000 characters)."
	}
	return prompt, ""
}
