package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-clock/appcomponents"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o666))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)

		require.Equal(t, DefaultHTTPPort, cfg.HTTP.Port)
		require.Equal(t, ":8080", cfg.Addr())
		require.Equal(t, DefaultReadTimeout, cfg.HTTP.ReadTimeout)
		require.Equal(t, "production", cfg.Log.Preset)
		require.Equal(t, appcomponents.DefaultTimeLayout, cfg.Clock.Layout)
		require.Equal(t, time.Second, cfg.Clock.Interval)
		require.Equal(t, DefaultShutdownTimeout, cfg.Shutdown.Timeout)
	})

	t.Run("from file", func(t *testing.T) {
		path := writeConfig(t, `
http:
  port: 9090
  read_timeout: 5s
log:
  preset: development
clock:
  layout: "15:04:05"
  interval: 500ms
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		require.Equal(t, 9090, cfg.HTTP.Port)
		require.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
		require.Equal(t, DefaultWriteTimeout, cfg.HTTP.WriteTimeout)
		require.Equal(t, "development", cfg.Log.Preset)
		require.Equal(t, "15:04:05", cfg.Clock.Layout)
		require.Equal(t, 500*time.Millisecond, cfg.Clock.Interval)
	})

	t.Run("from environment variable", func(t *testing.T) {
		t.Setenv("NOJSCLOCK_HTTP_PORT", "7070")
		t.Setenv("NOJSCLOCK_CLOCK_INTERVAL", "2s")

		cfg, err := Load(writeConfig(t, "http:\n  port: 9090\n"))
		require.NoError(t, err)
		require.Equal(t, 7070, cfg.HTTP.Port)
		require.Equal(t, 2*time.Second, cfg.Clock.Interval)
	})

	t.Run("fails to load config", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"port out of range":  "http:\n  port: 70000\n",
		"unknown log preset": "log:\n  preset: verbose\n",
		"layout has no time": "clock:\n  layout: \"now\"\n",
		"interval too short": "clock:\n  interval: 1ms\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
			require.Contains(t, err.Error(), "invalid config")
		})
	}
}
