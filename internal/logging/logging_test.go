package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConfigure(t *testing.T) {
	t.Run("known presets", func(t *testing.T) {
		for _, preset := range []string{PresetDevelopment, PresetProduction} {
			logger, err := New(preset)
			require.NoError(t, err, preset)
			require.NotNil(t, logger)
		}
	})

	t.Run("replaces the global logger", func(t *testing.T) {
		restore := zap.ReplaceGlobals(zap.NewNop())
		defer restore()

		before := zap.L()
		require.NoError(t, Configure(PresetDevelopment))
		require.NotSame(t, before, zap.L())
	})

	t.Run("unknown preset", func(t *testing.T) {
		require.Error(t, Configure("verbose"))
		_, err := New("")
		require.Error(t, err)
	})
}
