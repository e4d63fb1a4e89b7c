//nolint:wrapcheck
package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/farcloser/rolloff"
	"github.com/farcloser/rolloff/internal/integration/ffmpeg"
	"github.com/farcloser/rolloff/internal/integration/ffprobe"
	"github.com/farcloser/rolloff/internal/output"
	"github.com/farcloser/rolloff/internal/types"
)

const outputFile = "rolloff-report.jsonl"

var (
	errReportArgs   = errors.New("expected exactly one argument: folder path")
	errNotDirectory = errors.New("not a directory")
	errNoAudioFiles = errors.New("no audio files found")
)

//nolint:gochecknoglobals // configuration data, effectively const
var audioExtensions = []string{".flac", ".wav", ".aiff", ".m4a", ".mp3", ".ogg", ".opus"}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Scan a music collection and write a rolloff JSONL report",
		ArgsUsage: "<folder>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "redact-path",
				Usage: "Strip file paths from the report",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "Number of concurrent workers",
				Value:   runtime.NumCPU(),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errReportArgs
			}

			return runReport(ctx, cmd.Args().First(), cmd.Bool("redact-path"), max(cmd.Int("workers"), 1))
		},
	}
}

func runReport(ctx context.Context, folder string, redact bool, workers int) error {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%q: %w", folder, errNotDirectory)
	}

	files, err := collectAudioFiles(folder)
	if err != nil {
		return fmt.Errorf("scanning folder: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("%q: %w", folder, errNoAudioFiles)
	}

	fmt.Fprintf(os.Stderr, "Found %d files to analyze (%d workers)\n", len(files), workers)

	startTime := time.Now()
	results := make([]Record, len(files))

	var progress atomic.Int64

	// Per-file failures land in the record; the group never aborts.
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for idx, filePath := range files {
		group.Go(func() error {
			results[idx] = processFile(groupCtx, filePath)

			done := progress.Add(1)
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", done, len(files), filePath)

			return nil
		})
	}

	_ = group.Wait()

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	failed := 0

	for idx := range results {
		record := &results[idx]

		if record.Error != "" {
			failed++
		}

		if redact {
			record.File = ""
			record.Probe = nil
		}

		if err := enc.Encode(record); err != nil {
			slog.Error("writing record", "file", files[idx], "error", err)
		}
	}

	out.Close()

	if err := compressFile(outputFile); err != nil {
		slog.Error("compressing report", "error", err)
	}

	elapsed := time.Since(startTime)

	fmt.Fprintf(os.Stderr, "\nDone: %d files in %s (%d failed)\n", len(files), elapsed.Truncate(time.Second), failed)
	fmt.Fprintf(os.Stderr, "Report written to %s (and %s.gz)\n\n", outputFile, outputFile)

	return runDigest(outputFile, "")
}

func processFile(ctx context.Context, filePath string) Record {
	fileStart := time.Now()
	timing := &RecordTiming{}

	probeStart := time.Now()
	probeResult, err := ffprobe.Probe(ctx, filePath)
	timing.ProbeMs = durationMs(time.Since(probeStart))

	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("probe failed: %v", err), Timing: timing}
	}

	stream, err := probeResult.AudioStream(0)
	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("no audio stream: %v", err), Timing: timing}
	}

	pcmFormat, err := stream.PCMFormat(types.Depth32)
	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("format error: %v", err), Timing: timing}
	}

	decodeStart := time.Now()

	file, err := os.Open(filePath) //nolint:gosec // CLI tool opens user-specified audio files
	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("open failed: %v", err), Timing: timing}
	}
	defer file.Close()

	var pcmBuf bytes.Buffer

	opts := rolloff.DefaultOptions()

	err = ffmpeg.ExtractStream(ctx, file, &pcmBuf, 0, &pcmFormat, opts.MaxSeconds)
	timing.DecodeMs = durationMs(time.Since(decodeStart))

	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("extraction failed: %v", err), Timing: timing}
	}

	analyzeStart := time.Now()
	result, err := rolloff.AnalyzeReader(&pcmBuf, pcmFormat, opts)
	timing.AnalyzeMs = durationMs(time.Since(analyzeStart))
	timing.TotalMs = durationMs(time.Since(fileStart))

	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("analysis failed: %v", err), Timing: timing}
	}

	record := Record{
		File:     filePath,
		Analysis: output.ResultToMap(result, false),
		Timing:   timing,
	}

	if probeJSON, err := json.Marshal(stream); err == nil {
		record.Probe = probeJSON
	}

	return record
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

func collectAudioFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if slices.Contains(audioExtensions, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)

	return files, nil
}

func compressFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // reading our own output file
	if err != nil {
		return err
	}

	gzFile, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer gzFile.Close()

	gzWriter := gzip.NewWriter(gzFile)

	if _, err := gzWriter.Write(data); err != nil {
		return err
	}

	return gzWriter.Close()
}
