// Package config loads CLI configuration from an optional file and ROLLOFF_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/farcloser/rolloff"
)

const envPrefix = "ROLLOFF"

// ErrInvalidConfig is returned for out of range configuration values.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the CLI configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Output   OutputConfig   `mapstructure:"output"`
}

// AnalysisConfig mirrors rolloff.Options.
type AnalysisConfig struct {
	Window          int     `mapstructure:"window"`
	DropThreshold   float64 `mapstructure:"drop_threshold"`
	NoiseRatioLimit float64 `mapstructure:"noise_ratio_limit"`
	Scale           string  `mapstructure:"scale"`
	MaxSeconds      int     `mapstructure:"max_seconds"`

	TranscodeBands BandsConfig `mapstructure:"transcode_bands"`
}

// BandsConfig holds severity thresholds in Hz of missing bandwidth.
type BandsConfig struct {
	Mild     float64 `mapstructure:"mild"`
	Moderate float64 `mapstructure:"moderate"`
	Severe   float64 `mapstructure:"severe"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Debug  bool   `mapstructure:"debug"`
}

// setDefaults seeds viper with rolloff.DefaultOptions.
func setDefaults(v *viper.Viper) {
	defaults := rolloff.DefaultOptions()

	v.SetDefault("analysis.window", defaults.Window)
	v.SetDefault("analysis.drop_threshold", defaults.DropThreshold)
	v.SetDefault("analysis.noise_ratio_limit", defaults.NoiseRatioLimit)
	v.SetDefault("analysis.scale", defaults.Scale.String())
	v.SetDefault("analysis.max_seconds", defaults.MaxSeconds)
	v.SetDefault("analysis.transcode_bands.mild", defaults.Transcode.Mild)
	v.SetDefault("analysis.transcode_bands.moderate", defaults.Transcode.Moderate)
	v.SetDefault("analysis.transcode_bands.severe", defaults.Transcode.Severe)

	v.SetDefault("output.format", "console")
	v.SetDefault("output.debug", false)
}

// Load reads configuration from path (optional, any format viper understands) and the environment.
// Environment variables take precedence over the file: ROLLOFF_ANALYSIS_DROP_THRESHOLD=1.5.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Analysis.Window < 0 {
		return fmt.Errorf("%w: window cannot be negative", ErrInvalidConfig)
	}

	if c.Analysis.MaxSeconds < 0 {
		return fmt.Errorf("%w: max seconds cannot be negative", ErrInvalidConfig)
	}

	if c.Analysis.NoiseRatioLimit < 0 {
		return fmt.Errorf("%w: noise ratio limit cannot be negative", ErrInvalidConfig)
	}

	if _, err := rolloff.ParseScale(c.Analysis.Scale); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Options converts the analysis section to rolloff.Options.
func (c *Config) Options() (rolloff.Options, error) {
	scale, err := rolloff.ParseScale(c.Analysis.Scale)
	if err != nil {
		return rolloff.Options{}, err
	}

	return rolloff.Options{
		Window:          c.Analysis.Window,
		DropThreshold:   c.Analysis.DropThreshold,
		NoiseRatioLimit: c.Analysis.NoiseRatioLimit,
		Scale:           scale,
		MaxSeconds:      c.Analysis.MaxSeconds,
		Transcode: rolloff.Bands{
			Mild:     c.Analysis.TranscodeBands.Mild,
			Moderate: c.Analysis.TranscodeBands.Moderate,
			Severe:   c.Analysis.TranscodeBands.Severe,
		},
	}, nil
}
