// Package config loads the service configuration from a JSON file.
package config

import (
	"encoding/json"
	"os"
	"time"

	"pitch_agent_service/workflow"
)

// Config is the root configuration record.
type Config struct {
	ServerAddr string `json:"server_addr,omitempty"`
	LLM        *LLM   `json:"llm,omitempty"`
	Search     Search `json:"search"`
	// PassThreshold overrides the critique score gate; zero keeps the
	// default of 7.5.
	PassThreshold      float64 `json:"pass_threshold,omitempty"`
	CallTimeoutSeconds int     `json:"call_timeout_seconds,omitempty"`
	// SessionTTLMinutes enables idle-session garbage collection when
	// positive; zero disables the reaper.
	SessionTTLMinutes int `json:"session_ttl_minutes,omitempty"`
}

// LLM configures the text-generation backend.
type LLM struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// Search configures the web-search collaborator.
type Search struct {
	BaseURL     string `json:"base_url,omitempty"`
	MaxSnippets int    `json:"max_snippets,omitempty"`
}

// Load reads JSON config from disk. A missing file yields the zero
// config (mock backend, default thresholds) rather than an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Threshold returns the configured pass threshold or the default.
func (c Config) Threshold() float64 {
	if c.PassThreshold > 0 {
		return c.PassThreshold
	}
	return workflow.DefaultPassThreshold
}

// CallTimeout returns the per-call timeout for external calls.
func (c Config) CallTimeout() time.Duration {
	if c.CallTimeoutSeconds > 0 {
		return time.Duration(c.CallTimeoutSeconds) * time.Second
	}
	return 60 * time.Second
}

// SessionTTL returns the idle-session TTL, or zero when reaping is
// disabled.
func (c Config) SessionTTL() time.Duration {
	if c.SessionTTLMinutes > 0 {
		return time.Duration(c.SessionTTLMinutes) * time.Minute
	}
	return 0
}
