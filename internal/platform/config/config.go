// Package config builds service configuration from the environment so main
// stays lean. A local .env file is honored in development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config captures all runtime configuration for the service.
//
// Provider API keys are optional: a missing key disables the feature with a
// descriptive notice rather than failing startup. The representative lookup
// key is the exception and is validated at wire-up time because official
// lookup is an essential feature.
type Config struct {
	Addr        string `env:"CIVICLINK_ADDR" envDefault:":8080"`
	Environment string `env:"CIVICLINK_ENV" envDefault:"development"`
	LogLevel    string `env:"CIVICLINK_LOG_LEVEL" envDefault:"info"`

	// AdminToken guards the analytics admin endpoints. Empty disables them.
	AdminToken string `env:"CIVICLINK_ADMIN_TOKEN"`

	// Representative lookup upstream.
	CivicAPIKey  string `env:"CIVIC_API_KEY"`
	CivicBaseURL string `env:"CIVIC_BASE_URL" envDefault:"https://www.googleapis.com/civicinfo/v2"`

	// Bill providers.
	CongressAPIKey    string `env:"CONGRESS_API_KEY"`
	CongressBaseURL   string `env:"CONGRESS_BASE_URL" envDefault:"https://api.congress.gov/v3"`
	StateProvider     string `env:"STATE_BILL_PROVIDER" envDefault:"legiscan"`
	LegiScanAPIKey    string `env:"LEGISCAN_API_KEY"`
	LegiScanBaseURL   string `env:"LEGISCAN_BASE_URL" envDefault:"https://api.legiscan.com"`
	OpenStatesAPIKey  string `env:"OPENSTATES_API_KEY"`
	OpenStatesBaseURL string `env:"OPENSTATES_BASE_URL" envDefault:"https://v3.openstates.org"`

	// Text generation.
	LLMAPIKey      string        `env:"LLM_API_KEY"`
	LLMBaseURL     string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel       string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMHTTPTimeout time.Duration `env:"LLM_HTTP_TIMEOUT" envDefault:"30s"`

	// Per-client API rate limiting.
	RateLimitPerMinute       int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	DraftRateLimitPerMinute  int           `env:"DRAFT_RATE_LIMIT_PER_MINUTE" envDefault:"10"`
	RateLimitCleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`

	// Optional shared rate-limit backend. Empty keeps the in-memory store.
	RedisURL string `env:"REDIS_URL"`

	// Analytics.
	AnalyticsDBPath string        `env:"ANALYTICS_DB_PATH"`
	AnalyticsBuffer int           `env:"ANALYTICS_BUFFER" envDefault:"256"`
	KafkaBrokers    string        `env:"ANALYTICS_KAFKA_BROKERS"`
	KafkaTopic      string        `env:"ANALYTICS_KAFKA_TOPIC" envDefault:"civiclink.analytics"`
	AnalyticsRetain time.Duration `env:"ANALYTICS_RETAIN" envDefault:"720h"`
}

// Load reads .env (when present) and parses the environment.
func Load() (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StateProvider != "legiscan" && cfg.StateProvider != "openstates" {
		return nil, fmt.Errorf("STATE_BILL_PROVIDER must be legiscan or openstates, got %q", cfg.StateProvider)
	}
	return cfg, nil
}
