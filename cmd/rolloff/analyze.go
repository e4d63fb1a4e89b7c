//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/rolloff"
	"github.com/farcloser/rolloff/internal/types"
)

var (
	errInvalidArgCount = errors.New("expected exactly one argument: file path or \"-\" for stdin")
	errInvalidBitDepth = errors.New("must be 16, 24, or 32")
)

func analyzeCommand() *cli.Command {
	flags := []cli.Flag{
		// PCMFormat flags.
		&cli.IntFlag{
			Name:     "sample-rate",
			Aliases:  []string{"s"},
			Usage:    "Sample rate in Hz (e.g., 44100, 48000, 96000)",
			Required: true,
		},
		&cli.IntFlag{
			Name:    "bit-depth",
			Aliases: []string{"b"},
			Usage:   "Bit depth (16, 24, or 32)",
			Value:   32,
		},
		&cli.IntFlag{
			Name:    "channels",
			Aliases: []string{"c"},
			Usage:   "Number of channels (1 = mono, 2 = stereo)",
			Value:   2,
		},
	}

	return &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze raw little-endian PCM for a lossy rolloff",
		ArgsUsage: "<file | ->",
		Flags:     append(flags, analysisFlags()...),
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
			}

			format, err := parsePCMFormat(cmd)
			if err != nil {
				return err
			}

			cfg, opts, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			inputPath := cmd.Args().First()

			reader, cleanup, err := openInput(inputPath)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := rolloff.AnalyzeReader(reader, format, opts)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			return outputResult(inputPath, result, cfg.Output.Format, cfg.Output.Debug)
		},
	}
}

func parsePCMFormat(cmd *cli.Command) (types.PCMFormat, error) {
	sampleRate := cmd.Int("sample-rate")
	channels := cmd.Int("channels")

	bitDepth, err := toBitDepth(cmd.Int("bit-depth"))
	if err != nil {
		return types.PCMFormat{}, fmt.Errorf("--bit-depth: %w", err)
	}

	if sampleRate <= 0 {
		return types.PCMFormat{}, fmt.Errorf("--sample-rate: %w: %d", rolloff.ErrInvalidInput, sampleRate)
	}

	if channels <= 0 {
		return types.PCMFormat{}, fmt.Errorf("--channels: %w: %d", rolloff.ErrInvalidInput, channels)
	}

	return types.PCMFormat{
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Channels:   uint(channels), //nolint:gosec // validated positive value
	}, nil
}

func toBitDepth(v int) (types.BitDepth, error) {
	switch v {
	case 16:
		return types.Depth16, nil
	case 24:
		return types.Depth24, nil
	case 32:
		return types.Depth32, nil
	default:
		return 0, errInvalidBitDepth
	}
}

// openInput opens a file, or stdin for "-". Input is streamed; decoding stops at the analysis duration cap.
func openInput(source string) (io.Reader, func(), error) {
	if source == "-" {
		return os.Stdin, func() {}, nil
	}

	file, err := os.Open(source) //nolint:gosec // CLI tool opens user-specified audio files
	if err != nil {
		return nil, func() {}, fmt.Errorf("cannot access %s: %w", source, err)
	}

	return file, func() { _ = file.Close() }, nil
}
