package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	envs := []string{
		"PORT",
		"PROFILE",
		"ANTHROPIC_API_KEY",
		"USE_MOCK",
		"UPSTREAM_BASE_URL",
		"UPSTREAM_MODEL",
		"UPSTREAM_TIMEOUT_S",
		"TASKS_FILE",
		"EVENTS_FILE",
		"STATIC_DIR",
		"STREAM_DELAY_MIN_MS",
		"STREAM_DELAY_MAX_MS",
	}
	for _, k := range envs {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	if cfg.Port != 8000 || cfg.Profile != "default" {
		t.Fatalf("unexpected port/profile: %+v", cfg)
	}
	if cfg.APIKey != "" || cfg.UseMock {
		t.Fatalf("unexpected upstream credentials: %+v", cfg)
	}
	if cfg.UpstreamBaseURL != "https://api.anthropic.com" || cfg.UpstreamModel != "claude-3-opus-20240229" {
		t.Fatalf("unexpected upstream defaults: %+v", cfg)
	}
	if cfg.UpstreamTimeout != 60*time.Second {
		t.Fatalf("unexpected upstream timeout: %v", cfg.UpstreamTimeout)
	}
	if cfg.TasksFile != "data/tasks.json" || cfg.EventsFile != "data/stream_events.json" || cfg.StaticDir != "static" {
		t.Fatalf("unexpected file defaults: %+v", cfg)
	}
	if cfg.StreamDelayMinMs != 100 || cfg.StreamDelayMaxMs != 300 {
		t.Fatalf("unexpected stream delay defaults: %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("USE_MOCK", "true")
	t.Setenv("UPSTREAM_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("UPSTREAM_MODEL", "claude-test")
	t.Setenv("UPSTREAM_TIMEOUT_S", "5")
	t.Setenv("STREAM_DELAY_MIN_MS", "10")
	t.Setenv("STREAM_DELAY_MAX_MS", "20")

	cfg := LoadConfig()

	if cfg.Port != 9001 || cfg.APIKey != "sk-test" || !cfg.UseMock {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.UpstreamBaseURL != "http://127.0.0.1:9999" || cfg.UpstreamModel != "claude-test" {
		t.Fatalf("upstream overrides not applied: %+v", cfg)
	}
	if cfg.UpstreamTimeout != 5*time.Second {
		t.Fatalf("timeout override not applied: %v", cfg.UpstreamTimeout)
	}
	if cfg.StreamDelayMinMs != 10 || cfg.StreamDelayMaxMs != 20 {
		t.Fatalf("stream delay overrides not applied: %+v", cfg)
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := Config{
		UpstreamTimeout:  time.Second,
		StreamDelayMinMs: 100,
		StreamDelayMaxMs: 300,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing API key")
	}

	cfg.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validate error: %v", err)
	}
}

func TestValidateStreamDelayBounds(t *testing.T) {
	cfg := Config{
		APIKey:           "sk-test",
		UpstreamTimeout:  time.Second,
		StreamDelayMinMs: 300,
		StreamDelayMaxMs: 100,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for inverted delay bounds")
	}
}
