package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, defaultConfig(), cfg)
		assert.False(t, cfg.Production())
	})

	t.Run("from the environment", func(t *testing.T) {
		t.Setenv("DUX_ENV", "production")
		t.Setenv("DUX_SELECTOR_ERRORS", "immediate")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.True(t, cfg.Production())
		assert.Equal(t, ErrorImmediate, cfg.SelectorErrors)
	})

	t.Run("invalid mode", func(t *testing.T) {
		t.Setenv("DUX_SELECTOR_ERRORS", "eventually")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, `unknown mode "eventually"`)
	})

	t.Run("invalid environment", func(t *testing.T) {
		t.Setenv("DUX_ENV", "staging")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, `unknown environment "staging"`)
	})
}
