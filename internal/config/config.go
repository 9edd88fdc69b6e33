// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Supported AI providers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config holds the application configuration loaded from environment
// variables.
type Config struct {
	DBPath     string `env:"AGB_DB_PATH" envDefault:"./data/agribridge.db"`
	ServerHost string `env:"AGB_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"AGB_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"AGB_ENV" envDefault:"development"`
	LogLevel   string `env:"AGB_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"AGB_REDIS_URL"`                         // Optional Redis URL for a shared cache
	CachePrefix  string `env:"AGB_CACHE_PREFIX" envDefault:"agb:"`    // Redis key prefix
	CacheTTL     int    `env:"AGB_CACHE_TTL" envDefault:"3600"`       // Default L1 cache TTL in seconds
	CacheMaxSize int    `env:"AGB_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Translation cache retention, in days. Rows older than this are purged.
	TranslationTTLDays int `env:"AGB_TRANSLATION_TTL_DAYS" envDefault:"30"`

	// AI translation configuration
	AIProvider  string  `env:"AGB_AI_PROVIDER" envDefault:"openai"` // openai or ollama
	AIAPIKey    string  `env:"AGB_AI_API_KEY"`
	AIModel     string  `env:"AGB_AI_MODEL" envDefault:"gpt-4o-mini"`
	AIBaseURL   string  `env:"AGB_AI_BASE_URL"`                // Ollama base URL; empty uses the local default
	AIRateRPS   float64 `env:"AGB_AI_RATE_RPS" envDefault:"2"` // Model calls per second
	AIRateBurst int     `env:"AGB_AI_RATE_BURST" envDefault:"4"`

	// Additional CDN URL prefixes whose values are never localized.
	CDNPrefixes []string `env:"AGB_CDN_PREFIXES" envSeparator:","`
}

// IsDevelopment returns true when running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// AIConfigured reports whether the external translation model can be called.
// Ollama needs no API key; OpenAI does.
func (c Config) AIConfigured() bool {
	switch c.AIProvider {
	case ProviderOllama:
		return true
	case ProviderOpenAI:
		return c.AIAPIKey != ""
	default:
		return false
	}
}

// Load parses environment variables and returns a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.AIProvider != ProviderOpenAI && cfg.AIProvider != ProviderOllama {
		return nil, fmt.Errorf("AGB_AI_PROVIDER must be %q or %q, got %q",
			ProviderOpenAI, ProviderOllama, cfg.AIProvider)
	}
	if cfg.TranslationTTLDays <= 0 {
		return nil, fmt.Errorf("AGB_TRANSLATION_TTL_DAYS must be positive, got %d", cfg.TranslationTTLDays)
	}

	return cfg, nil
}
