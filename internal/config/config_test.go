package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "trustguard", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 9090, cfg.Server.GRPCPort)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "trustguard:", cfg.Redis.KeyPrefix)
	assert.False(t, cfg.NATS.Enabled)
	assert.Equal(t, "TRUSTGUARD_VERDICTS", cfg.NATS.StreamName)
	assert.Equal(t, "gpt-4o-mini", cfg.Advisory.Model)
	assert.Equal(t, 15*time.Minute, cfg.Advisory.CacheTTL)
	assert.Empty(t, cfg.Analysis.Brands, "empty means the analyzer uses its built-in brand set")
	assert.Equal(t, "data/trusted_contacts.json", cfg.Contacts.Path)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TRUSTGUARD_SERVER_HTTP_PORT", "9999")
	t.Setenv("TRUSTGUARD_LOGGER_FORMAT", "console")
	t.Setenv("TRUSTGUARD_REDIS_HOST", "cache.internal")
	t.Setenv("OPENAI_API_KEY", "sk-test-123")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.HTTPPort)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr())
	assert.Equal(t, "sk-test-123", cfg.Advisory.APIKey)
}

func TestLoadAdvisoryKeyPrefersExplicitOverFallback(t *testing.T) {
	t.Setenv("TRUSTGUARD_ADVISORY_API_KEY", "sk-explicit")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-explicit", cfg.Advisory.APIKey)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  environment: production
server:
  http_port: 8123
contacts:
  path: /var/lib/trustguard/contacts.json
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8123, cfg.Server.HTTPPort)
	assert.Equal(t, "/var/lib/trustguard/contacts.json", cfg.Contacts.Path)
	assert.True(t, cfg.IsProduction())
	// Defaults still fill unset sections.
	assert.Equal(t, 9090, cfg.Server.GRPCPort)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad logger format", key: "TRUSTGUARD_LOGGER_FORMAT", value: "xml"},
		{name: "port out of range", key: "TRUSTGUARD_SERVER_HTTP_PORT", value: "99999"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
