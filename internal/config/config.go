// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used by the server and
// the sitectl CLI.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"promptsite/internal/ai"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host      string
	Port      string
	Env       string // "development", "production", "testing"
	PublicURL string // absolute base used in share links, e.g. https://sites.example.com

	// Persistence
	StoreBackend string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible store and page cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int

	// AI provider settings
	AIProvider     string
	AITimeout      time.Duration
	OpenAIKey      string
	OpenAIModel    string
	OpenAIBaseURL  string
	GeminiKey      string
	GeminiModel    string
	GeminiBaseURL  string
	ClaudeKey      string
	ClaudeModel    string
	ClaudeBaseURL  string
	MistralKey     string
	MistralModel   string
	MistralBaseURL string

	// Generation and serving
	ExplorationRate   float64
	SitesListLimit    int
	GenerateRateLimit int // requests per minute per IP, 0 disables
	PageCacheTTL      time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Malformed values are reported together
// in a single error.
func Load() (*Config, error) {
	p := &parser{}

	cfg := &Config{
		Host:      envOrDefault("APP_HOST", "0.0.0.0"),
		Port:      envOrDefault("APP_PORT", "8080"),
		Env:       envOrDefault("APP_ENV", "development"),
		PublicURL: strings.TrimRight(os.Getenv("PUBLIC_URL"), "/"),

		StoreBackend: strings.ToLower(envOrDefault("STORE_BACKEND", BackendMemory)),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "promptsite"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "promptsite"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		ValkeyDB:       p.int("VALKEY_DB", 0),

		AIProvider:     strings.ToLower(envOrDefault("AI_PROVIDER", "openai")),
		AITimeout:      p.duration("AI_TIMEOUT", 30*time.Second),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:  envOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		ClaudeKey:      os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:    envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-5"),
		ClaudeBaseURL:  envOrDefault("CLAUDE_BASE_URL", "https://api.anthropic.com"),
		MistralKey:     os.Getenv("MISTRAL_API_KEY"),
		MistralModel:   envOrDefault("MISTRAL_MODEL", "mistral-large-latest"),
		MistralBaseURL: envOrDefault("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),

		ExplorationRate:   p.float("TEMPLATE_EXPLORATION_RATE", 0.2),
		SitesListLimit:    p.int("SITES_LIST_LIMIT", 100),
		GenerateRateLimit: p.int("GENERATE_RATE_LIMIT", 10),
		PageCacheTTL:      p.duration("PAGE_CACHE_TTL", 30*time.Minute),
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendValkey, BackendPostgres:
	default:
		p.fail("STORE_BACKEND", cfg.StoreBackend, "must be memory, valkey or postgres")
	}
	if cfg.ExplorationRate < 0 || cfg.ExplorationRate > 1 {
		p.fail("TEMPLATE_EXPLORATION_RATE", os.Getenv("TEMPLATE_EXPLORATION_RATE"), "must be between 0 and 1")
	}
	if cfg.SitesListLimit <= 0 {
		p.fail("SITES_LIST_LIMIT", os.Getenv("SITES_LIST_LIMIT"), "must be positive")
	}
	if cfg.GenerateRateLimit < 0 {
		p.fail("GENERATE_RATE_LIMIT", os.Getenv("GENERATE_RATE_LIMIT"), "must not be negative")
	}
	if cfg.AITimeout <= 0 {
		p.fail("AI_TIMEOUT", os.Getenv("AI_TIMEOUT"), "must be positive")
	}

	if cfg.Env == "production" && cfg.StoreBackend == BackendPostgres {
		if cfg.DBPassword == "changeme" {
			p.errs = append(p.errs, errors.New("POSTGRES_PASSWORD must be set in production"))
		}
	}

	if err := errors.Join(p.errs...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ProviderConfigs returns the per-vendor settings for ai.NewRegistry.
// Vendors without an API key are skipped by the registry.
func (c *Config) ProviderConfigs() map[string]ai.ProviderConfig {
	return map[string]ai.ProviderConfig{
		"openai":  {APIKey: c.OpenAIKey, Model: c.OpenAIModel, BaseURL: c.OpenAIBaseURL},
		"gemini":  {APIKey: c.GeminiKey, Model: c.GeminiModel, BaseURL: c.GeminiBaseURL},
		"claude":  {APIKey: c.ClaudeKey, Model: c.ClaudeModel, BaseURL: c.ClaudeBaseURL},
		"mistral": {APIKey: c.MistralKey, Model: c.MistralModel, BaseURL: c.MistralBaseURL},
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, net.JoinHostPort(c.DBHost, c.DBPort), c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UsesValkey reports whether a Valkey connection is needed, either as the
// site store or for the page cache.
func (c *Config) UsesValkey() bool {
	return c.StoreBackend == BackendValkey || os.Getenv("VALKEY_HOST") != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parser collects conversion errors so Load can report them all at once.
type parser struct {
	errs []error
}

func (p *parser) fail(key, value, reason string) {
	p.errs = append(p.errs, fmt.Errorf("%s=%q: %s", key, value, reason))
}

func (p *parser) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		p.fail(key, v, "not an integer")
		return fallback
	}
	return n
}

func (p *parser) float(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		p.fail(key, v, "not a number")
		return fallback
	}
	return f
}

// duration accepts Go duration syntax ("45s") or a bare number of seconds.
func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, "not a duration")
		return fallback
	}
	return d
}
