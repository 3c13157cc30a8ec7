package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitch_agent_service/workflow"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Nil(t, cfg.LLM)
	assert.Equal(t, workflow.DefaultPassThreshold, cfg.Threshold())
	assert.Equal(t, 60*time.Second, cfg.CallTimeout())
	assert.Equal(t, time.Duration(0), cfg.SessionTTL())
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_addr": ":9000",
		"llm": {"provider": "openai", "model": "gpt-4o-mini", "api_key": "sk-test"},
		"search": {"max_snippets": 3},
		"pass_threshold": 8.0,
		"call_timeout_seconds": 30,
		"session_ttl_minutes": 45
	}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ServerAddr)
	require.NotNil(t, cfg.LLM)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.Search.MaxSnippets)
	assert.Equal(t, 8.0, cfg.Threshold())
	assert.Equal(t, 30*time.Second, cfg.CallTimeout())
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL())
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
