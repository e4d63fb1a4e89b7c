//nolint:wrapcheck
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/rolloff"
	"github.com/farcloser/rolloff/internal/integration/ffmpeg"
	"github.com/farcloser/rolloff/internal/integration/ffprobe"
	"github.com/farcloser/rolloff/internal/types"
)

var errProcessArgs = errors.New("expected exactly one argument: file path")

func processCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:  "stream",
			Usage: "Audio stream index (0-based)",
			Value: 0,
		},
	}

	return &cli.Command{
		Name:      "process",
		Usage:     "Decode an audio file with ffmpeg and analyze it for a lossy rolloff",
		ArgsUsage: "<file>",
		Flags:     append(flags, analysisFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errProcessArgs, cmd.NArg())
			}

			cfg, opts, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			filePath := cmd.Args().First()

			result, err := processFile(ctx, filePath, cmd.Int("stream"), opts)
			if err != nil {
				return err
			}

			return outputResult(filePath, result, cfg.Output.Format, cfg.Output.Debug)
		},
	}
}

// processFile probes filePath, extracts the first opts.MaxSeconds of the stream as s32le PCM and analyzes it.
func processFile(ctx context.Context, filePath string, streamIndex int, opts rolloff.Options) (*rolloff.Result, error) {
	probeResult, err := ffprobe.Probe(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("probing file: %w", err)
	}

	stream, err := probeResult.AudioStream(streamIndex)
	if err != nil {
		return nil, err
	}

	format, err := stream.PCMFormat(types.Depth32)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath) //nolint:gosec // CLI tool opens user-specified audio files
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var pcmBuf bytes.Buffer

	maxSeconds := opts.MaxSeconds
	if maxSeconds == 0 {
		maxSeconds = rolloff.DefaultOptions().MaxSeconds
	}

	if err = ffmpeg.ExtractStream(ctx, file, &pcmBuf, streamIndex, &format, maxSeconds); err != nil {
		return nil, fmt.Errorf("extracting PCM: %w", err)
	}

	result, err := rolloff.AnalyzeReader(&pcmBuf, format, opts)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	return result, nil
}
