package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every runtime option the agent recognizes. It is built once
// at process start and never mutated afterwards; components receive it by
// value.
type Config struct {
	Port    int
	Profile string

	// Upstream (Anthropic-compatible) API.
	APIKey          string
	UseMock         bool // force a mock answer for every task, no network call
	UpstreamBaseURL string
	UpstreamModel   string
	UpstreamTimeout time.Duration

	// Dataset + static assets.
	TasksFile  string
	EventsFile string
	StaticDir  string

	// Stream simulator pacing (uniform gap between SSE payloads).
	StreamDelayMinMs int
	StreamDelayMaxMs int
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvStr(k string, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func LoadConfig() Config {
	return Config{
		Port:    getEnvInt("PORT", 8000),
		Profile: getEnvStr("PROFILE", "default"),

		APIKey:          getEnvStr("ANTHROPIC_API_KEY", ""),
		UseMock:         getBool("USE_MOCK", false),
		UpstreamBaseURL: getEnvStr("UPSTREAM_BASE_URL", "https://api.anthropic.com"),
		UpstreamModel:   getEnvStr("UPSTREAM_MODEL", "claude-3-opus-20240229"),
		UpstreamTimeout: time.Duration(getEnvInt("UPSTREAM_TIMEOUT_S", 60)) * time.Second,

		TasksFile:  getEnvStr("TASKS_FILE", "data/tasks.json"),
		EventsFile: getEnvStr("EVENTS_FILE", "data/stream_events.json"),
		StaticDir:  getEnvStr("STATIC_DIR", "static"),

		StreamDelayMinMs: getEnvInt("STREAM_DELAY_MIN_MS", 100),
		StreamDelayMaxMs: getEnvInt("STREAM_DELAY_MAX_MS", 300),
	}
}

// Validate enforces the startup invariants. A violation is fatal: the process
// must not begin accepting requests.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT_S must be positive")
	}
	if c.StreamDelayMinMs < 0 || c.StreamDelayMaxMs < c.StreamDelayMinMs {
		return fmt.Errorf("stream delay bounds invalid: min=%d max=%d", c.StreamDelayMinMs, c.StreamDelayMaxMs)
	}
	return nil
}
