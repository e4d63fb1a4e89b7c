//nolint:wrapcheck
package main

import (
	"github.com/urfave/cli/v3"

	"github.com/farcloser/rolloff"
	"github.com/farcloser/rolloff/internal/config"
)

// analysisFlags are shared by analyze and process. Unset flags fall back to the config file,
// then ROLLOFF_* environment variables, then built-in defaults.
func analysisFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Configuration file (yaml, toml or json)",
		},
		&cli.IntFlag{
			Name:    "window",
			Aliases: []string{"w"},
			Usage:   "Smoothing window in bins (default: sample rate / 100)",
		},
		&cli.FloatFlag{
			Name:  "drop-threshold",
			Usage: "Minimum drop across one window that marks the rolloff edge",
		},
		&cli.FloatFlag{
			Name:  "noise-ratio-limit",
			Usage: "Stop scanning once the spectrum exceeds the floor by this ratio",
		},
		&cli.StringFlag{
			Name:  "scale",
			Usage: "Detection scale: log, linear",
		},
		&cli.IntFlag{
			Name:  "max-seconds",
			Usage: "Maximum seconds of audio to analyze",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: console, json, markdown",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"D"},
			Usage:   "Include per-bin spectra in output",
		},
	}
}

// resolveConfig loads the configuration and applies explicitly set flags on top.
func resolveConfig(cmd *cli.Command) (*config.Config, rolloff.Options, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, rolloff.Options{}, err
	}

	if cmd.IsSet("window") {
		cfg.Analysis.Window = cmd.Int("window")
	}

	if cmd.IsSet("drop-threshold") {
		cfg.Analysis.DropThreshold = cmd.Float("drop-threshold")
	}

	if cmd.IsSet("noise-ratio-limit") {
		cfg.Analysis.NoiseRatioLimit = cmd.Float("noise-ratio-limit")
	}

	if cmd.IsSet("scale") {
		cfg.Analysis.Scale = cmd.String("scale")
	}

	if cmd.IsSet("max-seconds") {
		cfg.Analysis.MaxSeconds = cmd.Int("max-seconds")
	}

	if cmd.IsSet("format") {
		cfg.Output.Format = cmd.String("format")
	}

	if cmd.IsSet("debug") {
		cfg.Output.Debug = cmd.Bool("debug")
	}

	if err = cfg.Validate(); err != nil {
		return nil, rolloff.Options{}, err
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, rolloff.Options{}, err
	}

	return cfg, opts, nil
}
