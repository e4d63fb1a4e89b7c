package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/rolloff"
	"github.com/farcloser/rolloff/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	defaults := rolloff.DefaultOptions()

	assert.Equal(t, 0, cfg.Analysis.Window)
	assert.InDelta(t, defaults.DropThreshold, cfg.Analysis.DropThreshold, 0)
	assert.InDelta(t, defaults.NoiseRatioLimit, cfg.Analysis.NoiseRatioLimit, 0)
	assert.Equal(t, "log", cfg.Analysis.Scale)
	assert.Equal(t, defaults.MaxSeconds, cfg.Analysis.MaxSeconds)
	assert.Equal(t, "console", cfg.Output.Format)
	assert.False(t, cfg.Output.Debug)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, defaults, opts)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rolloff.yaml")
	content := `analysis:
  window: 200
  scale: linear
  transcode_bands:
    mild: 500
    moderate: 2000
    severe: 4000
output:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	opts, err := cfg.Options()
	require.NoError(t, err)

	assert.Equal(t, 200, opts.Window)
	assert.Equal(t, rolloff.ScaleLinear, opts.Scale)
	assert.Equal(t, rolloff.Bands{Mild: 500, Moderate: 2000, Severe: 4000}, opts.Transcode)
	assert.InDelta(t, 1.25, opts.DropThreshold, 0, "unset keys keep their defaults")
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rolloff.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  drop_threshold: 2\n"), 0o600))

	t.Setenv("ROLLOFF_ANALYSIS_DROP_THRESHOLD", "3.5")
	t.Setenv("ROLLOFF_OUTPUT_DEBUG", "true")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, cfg.Analysis.DropThreshold, 0)
	assert.True(t, cfg.Output.Debug)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("ROLLOFF_ANALYSIS_SCALE", "decibel")

	_, err := config.Load("")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	for name, mutate := range map[string]func(*config.Config){
		"negative window":      func(c *config.Config) { c.Analysis.Window = -1 },
		"negative max seconds": func(c *config.Config) { c.Analysis.MaxSeconds = -1 },
		"negative ratio":       func(c *config.Config) { c.Analysis.NoiseRatioLimit = -1 },
		"bad scale":            func(c *config.Config) { c.Analysis.Scale = "cubic" },
	} {
		cfg := &config.Config{Analysis: config.AnalysisConfig{Scale: "log"}}
		require.NoError(t, cfg.Validate(), name)

		mutate(cfg)
		require.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig, name)
	}
}
