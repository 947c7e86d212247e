package match

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative weight", func(c *Config) { c.Weights.Lexical = -0.1 }},
		{"zero raw cap", func(c *Config) { c.RawCap = 0 }},
		{"zero steepness", func(c *Config) { c.Sigmoid.Steepness = 0 }},
		{"zero horizon", func(c *Config) { c.DeadlineHorizonDays = 0 }},
		{"geo out of range", func(c *Config) { c.GeoHit = 1.5 }},
		{"strict threshold out of range", func(c *Config) { c.Keyword.StrictThreshold = 2 }},
		{"inverted boost bounds", func(c *Config) { c.Keyword.MinBoost = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("overlays defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"raw_cap": 0.5, "keyword": {"penalty": -0.05}}`), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 0.5, cfg.RawCap)
		assert.Equal(t, -0.05, cfg.Keyword.Penalty)
		assert.Equal(t, 0.85, cfg.Keyword.StrictThreshold)
		assert.Equal(t, DefaultConfig().Weights, cfg.Weights)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"raw_cap":`), 0o600))

		_, err := LoadConfig(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"deadline_horizon_days": -1}`), 0o600))

		_, err := LoadConfig(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
