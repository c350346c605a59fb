// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
	"time"
)

var envVars = []string{
	"APP_HOST", "APP_PORT", "APP_ENV", "PUBLIC_URL", "STORE_BACKEND",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD", "VALKEY_DB",
	"AI_PROVIDER", "AI_TIMEOUT",
	"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
	"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL",
	"CLAUDE_API_KEY", "CLAUDE_MODEL", "CLAUDE_BASE_URL",
	"MISTRAL_API_KEY", "MISTRAL_MODEL", "MISTRAL_BASE_URL",
	"TEMPLATE_EXPLORATION_RATE", "SITES_LIST_LIMIT", "GENERATE_RATE_LIMIT", "PAGE_CACHE_TTL",
}

// clearEnv sets every variable Load reads to "", which envOrDefault treats
// the same as unset. t.Setenv restores the originals afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that Load returns development defaults when no
// environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "8080")
	check("Env", cfg.Env, "development")
	check("StoreBackend", cfg.StoreBackend, BackendMemory)
	check("DBUser", cfg.DBUser, "promptsite")
	check("DBPassword", cfg.DBPassword, "changeme")
	check("DBName", cfg.DBName, "promptsite")
	check("ValkeyHost", cfg.ValkeyHost, "localhost")
	check("ValkeyPort", cfg.ValkeyPort, "6379")
	check("AIProvider", cfg.AIProvider, "openai")
	check("OpenAIBaseURL", cfg.OpenAIBaseURL, "https://api.openai.com/v1")
	check("MistralBaseURL", cfg.MistralBaseURL, "https://api.mistral.ai/v1")

	if cfg.AITimeout != 30*time.Second {
		t.Errorf("AITimeout = %v, want 30s", cfg.AITimeout)
	}
	if cfg.ExplorationRate != 0.2 {
		t.Errorf("ExplorationRate = %v, want 0.2", cfg.ExplorationRate)
	}
	if cfg.SitesListLimit != 100 {
		t.Errorf("SitesListLimit = %d, want 100", cfg.SitesListLimit)
	}
	if cfg.GenerateRateLimit != 10 {
		t.Errorf("GenerateRateLimit = %d, want 10", cfg.GenerateRateLimit)
	}
	if cfg.PageCacheTTL != 30*time.Minute {
		t.Errorf("PageCacheTTL = %v, want 30m", cfg.PageCacheTTL)
	}
	if cfg.UsesValkey() {
		t.Error("memory backend without VALKEY_HOST should not use Valkey")
	}
}

// TestLoad_EnvOverrides verifies that environment variables override defaults.
func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	overrides := map[string]string{
		"APP_HOST":                  "127.0.0.1",
		"APP_PORT":                  "9090",
		"APP_ENV":                   "testing",
		"PUBLIC_URL":                "https://sites.example.com/",
		"STORE_BACKEND":             "Postgres",
		"POSTGRES_HOST":             "db.example.com",
		"POSTGRES_PORT":             "5433",
		"POSTGRES_PASSWORD":         "testpass",
		"VALKEY_DB":                 "3",
		"AI_PROVIDER":               "Claude",
		"AI_TIMEOUT":                "45s",
		"CLAUDE_API_KEY":            "claude-test-key",
		"CLAUDE_MODEL":              "claude-3-opus",
		"TEMPLATE_EXPLORATION_RATE": "0",
		"SITES_LIST_LIMIT":          "25",
		"GENERATE_RATE_LIMIT":       "0",
		"PAGE_CACHE_TTL":            "120",
	}
	for key, val := range overrides {
		t.Setenv(key, val)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.PublicURL != "https://sites.example.com" {
		t.Errorf("PublicURL = %q, want trailing slash trimmed", cfg.PublicURL)
	}
	if cfg.StoreBackend != BackendPostgres {
		t.Errorf("StoreBackend = %q", cfg.StoreBackend)
	}
	if cfg.AIProvider != "claude" {
		t.Errorf("AIProvider = %q, want lower-cased", cfg.AIProvider)
	}
	if cfg.ValkeyDB != 3 {
		t.Errorf("ValkeyDB = %d", cfg.ValkeyDB)
	}
	if cfg.AITimeout != 45*time.Second {
		t.Errorf("AITimeout = %v", cfg.AITimeout)
	}
	if cfg.ExplorationRate != 0 {
		t.Errorf("ExplorationRate = %v", cfg.ExplorationRate)
	}
	if cfg.SitesListLimit != 25 {
		t.Errorf("SitesListLimit = %d", cfg.SitesListLimit)
	}
	if cfg.GenerateRateLimit != 0 {
		t.Errorf("GenerateRateLimit = %d", cfg.GenerateRateLimit)
	}
	if cfg.PageCacheTTL != 2*time.Minute {
		t.Errorf("PageCacheTTL = %v, want bare seconds parsed", cfg.PageCacheTTL)
	}

	pc := cfg.ProviderConfigs()
	if got := pc["claude"]; got.APIKey != "claude-test-key" || got.Model != "claude-3-opus" {
		t.Errorf("claude provider config = %+v", got)
	}
	if pc["openai"].APIKey != "" {
		t.Error("openai should have no key")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"STORE_BACKEND", "mongo"},
		{"AI_TIMEOUT", "soon"},
		{"AI_TIMEOUT", "0"},
		{"TEMPLATE_EXPLORATION_RATE", "1.5"},
		{"TEMPLATE_EXPLORATION_RATE", "lots"},
		{"SITES_LIST_LIMIT", "0"},
		{"SITES_LIST_LIMIT", "ten"},
		{"GENERATE_RATE_LIMIT", "-1"},
		{"PAGE_CACHE_TTL", "forever"},
		{"VALKEY_DB", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() should reject %s=%q", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error should mention %s, got: %v", tt.key, err)
			}
		})
	}
}

func TestLoad_ReportsAllErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("SITES_LIST_LIMIT", "x")
	t.Setenv("AI_TIMEOUT", "y")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"SITES_LIST_LIMIT", "AI_TIMEOUT"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error should mention %s, got: %v", key, err)
		}
	}
}

// TestLoad_ProductionRequiresPassword verifies that a production Postgres
// deployment rejects the default "changeme" password.
func TestLoad_ProductionRequiresPassword(t *testing.T) {
	t.Run("rejects default password", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("STORE_BACKEND", "postgres")

		_, err := Load()
		if err == nil {
			t.Fatal("Load() should return an error when production uses default password")
		}
		if !strings.Contains(err.Error(), "POSTGRES_PASSWORD") {
			t.Errorf("error should mention POSTGRES_PASSWORD, got: %v", err)
		}
	})

	t.Run("accepts real password", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("STORE_BACKEND", "postgres")
		t.Setenv("POSTGRES_PASSWORD", "s3cur3-pr0d-p@ssw0rd")

		if _, err := Load(); err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
	})

	t.Run("ignored for other backends", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("STORE_BACKEND", "valkey")

		if _, err := Load(); err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
	})
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d"}
	want := "postgres://u:p@h:5432/d?sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestIsDev(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"production", false},
		{"testing", false},
	}
	for _, tt := range tests {
		cfg := &Config{Env: tt.env}
		if got := cfg.IsDev(); got != tt.want {
			t.Errorf("IsDev() with Env=%q = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestUsesValkey(t *testing.T) {
	clearEnv(t)
	cfg := &Config{StoreBackend: BackendValkey}
	if !cfg.UsesValkey() {
		t.Error("valkey backend should use Valkey")
	}

	t.Setenv("VALKEY_HOST", "cache.internal")
	cfg = &Config{StoreBackend: BackendMemory}
	if !cfg.UsesValkey() {
		t.Error("explicit VALKEY_HOST should enable the page cache")
	}
}
