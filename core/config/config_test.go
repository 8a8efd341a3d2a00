package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")
		t.Setenv("NODE_ENV", "")
		t.Setenv("STORAGE_TIMEOUT_SECONDS", "")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, 30*time.Second, cfg.Storage.Timeout())
		assert.False(t, cfg.StdioRequested())
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("NODE_ENV", "cli")
		t.Setenv("STORAGE_TIMEOUT_SECONDS", "5")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.True(t, cfg.StdioRequested())
		assert.Equal(t, 5*time.Second, cfg.Storage.Timeout())
	})

	t.Run("DotEnvFile", func(t *testing.T) {
		dir := t.TempDir()
		unsetEnv(t, "LOG_LEVEL", "OSS_CONFIG_DOTENV")
		content := "LOG_LEVEL=debug\nOSS_CONFIG_DOTENV=" + `'` + cfgB + `'` + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)

		v, ok := EnvSource{}.Lookup("OSS_CONFIG_DOTENV")
		assert.True(t, ok)
		assert.Equal(t, cfgB, v)
	})

	t.Run("EnvironmentBeatsDotEnv", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("PORT", "5000")
		t.Setenv("NODE_ENV", "")
		content := "PORT=4000\nNODE_ENV=cli\nOSS_CONFIG_DEFAULT={not json}\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644))
		t.Setenv("OSS_CONFIG_DEFAULT", cfgB)

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.False(t, cfg.StdioRequested())

		port, _ := EnvSource{}.Lookup("PORT")
		assert.Equal(t, "5000", port)
		def, _ := EnvSource{}.Lookup("OSS_CONFIG_DEFAULT")
		assert.Equal(t, cfgB, def)
	})
}

// unsetEnv removes keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}
