// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// ---------- Helpers ----------

// newTestServer creates an httptest.Server that responds with the given status
// code and body bytes. The caller must call Close on the returned server.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
}

// capture records the last request a test server received.
type capture struct {
	path    string
	headers http.Header
	body    []byte
}

func newCapturingServer(t *testing.T, c *capture, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.path = r.URL.Path
		c.headers = r.Header.Clone()
		c.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}))
}

func openAISuccessBody(text string) []byte {
	resp := openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: text}},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

func claudeSuccessBody(text string) []byte {
	resp := claudeResponse{
		Content: []claudeContentBlock{{Type: "text", Text: text}},
	}
	b, _ := json.Marshal(resp)
	return b
}

func geminiSuccessBody(text string) []byte {
	resp := geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

// providerCase describes one provider for the shared table tests.
type providerCase struct {
	name        string
	newProvider func(ProviderConfig) Provider
	successBody func(string) []byte
	emptyBody   []byte
}

var providerCases = []providerCase{
	{"openai", func(c ProviderConfig) Provider { return newOpenAI(c) }, openAISuccessBody, []byte(`{"choices":[]}`)},
	{"mistral", func(c ProviderConfig) Provider { return newMistral(c) }, openAISuccessBody, []byte(`{"choices":[]}`)},
	{"claude", func(c ProviderConfig) Provider { return newClaude(c) }, claudeSuccessBody, []byte(`{"content":[{"type":"tool_use"}]}`)},
	{"gemini", func(c ProviderConfig) Provider { return newGemini(c) }, geminiSuccessBody, []byte(`{"candidates":[]}`)},
}

// =====================================================================
// Shared behaviour
// =====================================================================

func TestProviderGenerate_Success(t *testing.T) {
	for _, pc := range providerCases {
		t.Run(pc.name, func(t *testing.T) {
			want := "Hello from " + pc.name
			srv := newTestServer(t, http.StatusOK, pc.successBody(want))
			defer srv.Close()

			p := pc.newProvider(ProviderConfig{APIKey: "test-key", Model: "m", BaseURL: srv.URL})
			got, err := p.Generate(context.Background(), "sys", "usr", GenerateOptions{})
			if err != nil {
				t.Fatalf("Generate: unexpected error: %v", err)
			}
			if got != want {
				t.Errorf("got %q, want %q", got, want)
			}
			if p.Name() != pc.name {
				t.Errorf("Name: got %q, want %q", p.Name(), pc.name)
			}
		})
	}
}

func TestProviderGenerate_HTTPError(t *testing.T) {
	for _, pc := range providerCases {
		t.Run(pc.name, func(t *testing.T) {
			srv := newTestServer(t, http.StatusInternalServerError, []byte(`{"error":{"message":"upstream exploded"}}`))
			defer srv.Close()

			p := pc.newProvider(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
			if _, err := p.Generate(context.Background(), "sys", "usr", GenerateOptions{}); err == nil {
				t.Fatal("expected error for HTTP 500, got nil")
			}
		})
	}
}

func TestProviderGenerate_MalformedJSON(t *testing.T) {
	for _, pc := range providerCases {
		t.Run(pc.name, func(t *testing.T) {
			srv := newTestServer(t, http.StatusOK, []byte(`{not json`))
			defer srv.Close()

			p := pc.newProvider(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
			if _, err := p.Generate(context.Background(), "sys", "usr", GenerateOptions{}); err == nil {
				t.Fatal("expected error for malformed JSON, got nil")
			}
		})
	}
}

func TestProviderGenerate_NoText(t *testing.T) {
	for _, pc := range providerCases {
		t.Run(pc.name, func(t *testing.T) {
			srv := newTestServer(t, http.StatusOK, pc.emptyBody)
			defer srv.Close()

			p := pc.newProvider(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
			if _, err := p.Generate(context.Background(), "sys", "usr", GenerateOptions{}); err == nil {
				t.Fatal("expected error for empty completion, got nil")
			}
		})
	}
}

func TestProviderGenerate_CancelledContext(t *testing.T) {
	for _, pc := range providerCases {
		t.Run(pc.name, func(t *testing.T) {
			srv := newTestServer(t, http.StatusOK, pc.successBody("late"))
			defer srv.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			p := pc.newProvider(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
			if _, err := p.Generate(ctx, "sys", "usr", GenerateOptions{}); err == nil {
				t.Fatal("expected error for cancelled context, got nil")
			}
		})
	}
}

func TestProviderGenerate_ConnectionRefused(t *testing.T) {
	for _, pc := range providerCases {
		t.Run(pc.name, func(t *testing.T) {
			srv := newTestServer(t, http.StatusOK, pc.successBody("ok"))
			url := srv.URL
			srv.Close()

			p := pc.newProvider(ProviderConfig{APIKey: "k", Model: "m", BaseURL: url})
			if _, err := p.Generate(context.Background(), "sys", "usr", GenerateOptions{}); err == nil {
				t.Fatal("expected error for refused connection, got nil")
			}
		})
	}
}

// =====================================================================
// Request shape per provider
// =====================================================================

func TestOpenAIGenerate_RequestShape(t *testing.T) {
	var c capture
	srv := newCapturingServer(t, &c, openAISuccessBody("ok"))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "sk-test-12345", Model: "gpt-4o", BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), "system prompt", "user prompt",
		GenerateOptions{MaxTokens: 1500, Temperature: 0.9}); err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}

	if !strings.HasSuffix(c.path, "/chat/completions") {
		t.Errorf("path: got %q, want suffix /chat/completions", c.path)
	}
	if got := c.headers.Get("Authorization"); got != "Bearer sk-test-12345" {
		t.Errorf("Authorization header: got %q", got)
	}

	var req openai.ChatCompletionRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if req.Model != "gpt-4o" {
		t.Errorf("model: got %q, want gpt-4o", req.Model)
	}
	if req.MaxTokens != 1500 {
		t.Errorf("max_tokens: got %d, want 1500", req.MaxTokens)
	}
	if req.Temperature < 0.89 || req.Temperature > 0.91 {
		t.Errorf("temperature: got %v, want 0.9", req.Temperature)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("messages count: got %d, want 2", len(req.Messages))
	}
	if req.Messages[0].Role != "system" || req.Messages[0].Content != "system prompt" {
		t.Errorf("system message: got %+v", req.Messages[0])
	}
	if req.Messages[1].Role != "user" || req.Messages[1].Content != "user prompt" {
		t.Errorf("user message: got %+v", req.Messages[1])
	}
}

func TestOpenAIGenerate_OmitsEmptySystemPrompt(t *testing.T) {
	var c capture
	srv := newCapturingServer(t, &c, openAISuccessBody("ok"))
	defer srv.Close()

	p := newMistral(ProviderConfig{APIKey: "k", Model: "mistral-small", BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), "", "only user", GenerateOptions{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var req openai.ChatCompletionRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Errorf("messages: got %+v, want a single user message", req.Messages)
	}
}

func TestClaudeGenerate_RequestShape(t *testing.T) {
	var c capture
	srv := newCapturingServer(t, &c, claudeSuccessBody("ok"))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "sk-ant-test-key", Model: "claude-sonnet-4-6", BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), "system prompt", "user prompt",
		GenerateOptions{MaxTokens: 200, Temperature: 0.8}); err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}

	if c.path != "/v1/messages" {
		t.Errorf("path: got %q, want /v1/messages", c.path)
	}
	if got := c.headers.Get("x-api-key"); got != "sk-ant-test-key" {
		t.Errorf("x-api-key: got %q", got)
	}
	if got := c.headers.Get("anthropic-version"); got != "2023-06-01" {
		t.Errorf("anthropic-version: got %q", got)
	}

	var req claudeRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if req.MaxTokens != 200 {
		t.Errorf("max_tokens: got %d, want 200", req.MaxTokens)
	}
	if req.Temperature == nil || *req.Temperature != 0.8 {
		t.Errorf("temperature: got %v, want 0.8", req.Temperature)
	}
	if req.System != "system prompt" {
		t.Errorf("system: got %q", req.System)
	}
	if len(req.Messages) != 1 || req.Messages[0].Content != "user prompt" {
		t.Errorf("messages: got %+v", req.Messages)
	}
}

func TestClaudeGenerate_Defaults(t *testing.T) {
	var c capture
	srv := newCapturingServer(t, &c, claudeSuccessBody("ok"))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), "s", "u", GenerateOptions{Temperature: 1.4}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var req claudeRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.MaxTokens != claudeDefaultMaxTokens {
		t.Errorf("max_tokens: got %d, want %d", req.MaxTokens, claudeDefaultMaxTokens)
	}
	if req.Temperature == nil || *req.Temperature != 1.0 {
		t.Errorf("temperature: got %v, want capped 1.0", req.Temperature)
	}
}

func TestGeminiGenerate_RequestShape(t *testing.T) {
	var c capture
	srv := newCapturingServer(t, &c, geminiSuccessBody("ok"))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "AIza-test", Model: "gemini-pro", BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), "system prompt", "user prompt",
		GenerateOptions{MaxTokens: 1500, Temperature: 0.9}); err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}

	if c.path != "/v1beta/models/gemini-pro:generateContent" {
		t.Errorf("path: got %q", c.path)
	}
	if got := c.headers.Get("x-goog-api-key"); got != "AIza-test" {
		t.Errorf("x-goog-api-key: got %q", got)
	}

	var req geminiRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if req.SystemInstruction == nil || req.SystemInstruction.Parts[0].Text != "system prompt" {
		t.Errorf("systemInstruction: got %+v", req.SystemInstruction)
	}
	if req.GenerationConfig == nil {
		t.Fatal("generationConfig missing")
	}
	if req.GenerationConfig.MaxOutputTokens != 1500 {
		t.Errorf("maxOutputTokens: got %d, want 1500", req.GenerationConfig.MaxOutputTokens)
	}
	if req.GenerationConfig.Temperature == nil || *req.GenerationConfig.Temperature != 0.9 {
		t.Errorf("temperature: got %v, want 0.9", req.GenerationConfig.Temperature)
	}
}

func TestProviderDefaultBaseURLs(t *testing.T) {
	if got := newClaude(ProviderConfig{APIKey: "k"}).config.BaseURL; got != "https://api.anthropic.com" {
		t.Errorf("claude default base URL: got %q", got)
	}
	if got := newGemini(ProviderConfig{APIKey: "k"}).config.BaseURL; got != "https://generativelanguage.googleapis.com" {
		t.Errorf("gemini default base URL: got %q", got)
	}
}

// =====================================================================
// Registry over real HTTP providers
// =====================================================================

func TestRegistryGenerate_WithRealHTTPProviders(t *testing.T) {
	configs := map[string]ProviderConfig{}
	for _, pc := range providerCases {
		srv := newTestServer(t, http.StatusOK, pc.successBody(pc.name+" response"))
		defer srv.Close()
		configs[pc.name] = ProviderConfig{APIKey: "ok", Model: "m", BaseURL: srv.URL}
	}

	reg := NewRegistry("openai", configs)

	for _, pc := range providerCases {
		t.Run(pc.name, func(t *testing.T) {
			if err := reg.SetActive(pc.name); err != nil {
				t.Fatalf("SetActive(%q): %v", pc.name, err)
			}
			got, err := reg.Generate(context.Background(), "system", "user", GenerateOptions{})
			if err != nil {
				t.Fatalf("Generate with %s: %v", pc.name, err)
			}
			if want := pc.name + " response"; got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry("openai", map[string]ProviderConfig{
		"openai": {APIKey: "key1", Model: "gpt-4o"},
	})

	replacement := &mockProvider{name: "openai", response: "replaced"}
	reg.Register("openai", replacement)

	got, err := reg.Generate(context.Background(), "sys", "usr", GenerateOptions{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "replaced" {
		t.Errorf("got %q, want %q", got, "replaced")
	}
}
