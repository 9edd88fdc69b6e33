package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.TranslationTTLDays != 30 {
		t.Errorf("TranslationTTLDays = %d, want 30", cfg.TranslationTTLDays)
	}
	if cfg.AIProvider != ProviderOpenAI {
		t.Errorf("AIProvider = %q, want openai", cfg.AIProvider)
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.UseRedisCache() {
		t.Error("redis should be off by default")
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("AGB_AI_PROVIDER", "palantir")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestLoadRejectsNonPositiveRetention(t *testing.T) {
	t.Setenv("AGB_TRANSLATION_TTL_DAYS", "0")
	if _, err := Load(); err == nil {
		t.Error("expected error for zero retention")
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "0.0.0.0", ServerPort: 9000}
	if got := cfg.ServerAddr(); got != "0.0.0.0:9000" {
		t.Errorf("ServerAddr = %q", got)
	}
}

func TestAIConfigured(t *testing.T) {
	if (Config{AIProvider: ProviderOpenAI}).AIConfigured() {
		t.Error("openai without key must not be configured")
	}
	if !(Config{AIProvider: ProviderOpenAI, AIAPIKey: "sk-test"}).AIConfigured() {
		t.Error("openai with key must be configured")
	}
	if !(Config{AIProvider: ProviderOllama}).AIConfigured() {
		t.Error("ollama needs no key")
	}
}
