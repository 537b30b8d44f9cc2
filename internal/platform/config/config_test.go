package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnv_OverridesDefaults(t *testing.T) {
	env := map[string]string{
		"PORT":                 "9090",
		"WELFARE_API_BASE_URL": "https://api.example.test",
		"HTTP_TIMEOUT":         "3s",
		"NATS_URL":             "nats://localhost:4222",
		"STALE_GUARD":          "true",
		"LOG_FORMAT":           "json",
	}
	cfg := Default()
	cfg.applyEnv(func(k string) string { return env[k] })

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "https://api.example.test", cfg.WelfareAPI.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.WelfareAPI.Timeout)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, DefaultNATSSubject, cfg.NATS.Subject)
	assert.True(t, cfg.StaleGuard)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestApplyEnv_IgnoresMalformedValues(t *testing.T) {
	env := map[string]string{
		"HTTP_TIMEOUT": "soon",
		"STALE_GUARD":  "maybe",
	}
	cfg := Default()
	cfg.applyEnv(func(k string) string { return env[k] })

	assert.Equal(t, DefaultHTTPTimeout, cfg.WelfareAPI.Timeout)
	assert.False(t, cfg.StaleGuard)
}

func TestMergeFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	content := `
addr: ":7070"
welfare_api:
  base_url: "http://backend:8081"
  timeout: 2s
nats:
  url: "nats://nats:4222"
stale_guard: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := Default()
	require.NoError(t, cfg.mergeFile(path))

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "http://backend:8081", cfg.WelfareAPI.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.WelfareAPI.Timeout)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
	assert.Equal(t, DefaultNATSSubject, cfg.NATS.Subject, "unset keys keep defaults")
	assert.True(t, cfg.StaleGuard)
}

func TestValidate_RequiresBaseURL(t *testing.T) {
	cfg := Default()
	cfg.WelfareAPI.BaseURL = " "
	require.Error(t, cfg.Validate())
}
