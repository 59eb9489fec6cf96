package domain

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
bot:
  token: "test-token"
  channel_id: -100123
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 60, config.Limits.MaxDurationSec)
	assert.Equal(t, int64(20*1024*1024), config.MaxFileSizeBytes())
	assert.Equal(t, 6*time.Hour, config.CacheTTL())
	assert.Equal(t, 30*time.Second, config.ProbeTimeout())
	assert.Equal(t, 8080, config.Health.Port)
	assert.Equal(t, "temp_videos", config.Storage.TempDir)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
bot:
  token: "file-token"
  channel_id: -100123
`)
	t.Setenv("TG_TOKEN", "env-token")
	t.Setenv("CHANNEL_ID", "-100999")
	t.Setenv("LIVENESS_PORT", "9090")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-token", config.Bot.Token)
	assert.Equal(t, int64(-100999), config.Bot.ChannelID)
	assert.Equal(t, 9090, config.Health.Port)
}

func TestLoadConfigMissingToken(t *testing.T) {
	path := writeConfig(t, `
bot:
  channel_id: -100123
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFileUsesEnv(t *testing.T) {
	t.Setenv("TG_TOKEN", "env-token")
	t.Setenv("CHANNEL_ID", "-100123")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-token", config.Bot.Token)
}
