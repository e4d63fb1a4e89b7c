package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/urfave/cli/v3"
)

var errDigestArgs = errors.New("expected exactly one argument: path to report.jsonl")

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Produce a summary digest from a rolloff JSONL report",
		ArgsUsage: "<report.jsonl>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "codec",
				Usage: "List files attributed to a codec (e.g., \"MP3 128\", unknown)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errDigestArgs
			}

			return runDigest(cmd.Args().First(), cmd.String("codec"))
		},
	}
}

func runDigest(reportPath, codecFilter string) error {
	file, err := os.Open(reportPath) //nolint:gosec // CLI tool opens user-specified report files
	if err != nil {
		return fmt.Errorf("opening report: %w", err)
	}
	defer file.Close()

	records, err := readRecords(file)
	if err != nil {
		return err
	}

	printDigest(os.Stdout, records)

	if codecFilter != "" {
		printCodecDetail(os.Stdout, records, codecFilter)
	}

	return nil
}

func readRecords(reader io.Reader) ([]digestRecord, error) {
	var records []digestRecord

	scanner := bufio.NewScanner(reader)

	const maxLineSize = 1024 * 1024 // 1MB
	scanner.Buffer(make([]byte, 0, maxLineSize), maxLineSize)

	for scanner.Scan() {
		var rec digestRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			records = append(records, digestRecord{Error: "parse error"})

			continue
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	return records, nil
}

// cutoffBucket groups cutoffs by kHz; tracks without a rolloff land in -1.
func cutoffBucket(rolloff digestRolloff) int {
	if !rolloff.CutoffFound {
		return -1
	}

	return int(rolloff.CutoffHz / 1000)
}

func printDigest(out io.Writer, records []digestRecord) {
	total := len(records)
	failed := 0
	sevDist := map[string]int{"severe": 0, "moderate": 0, "mild": 0, "clean": 0}
	buckets := map[int]int{}
	codecStats := map[string]*codecBreakdown{}

	for _, rec := range records {
		if rec.Error != "" || rec.Analysis == nil {
			failed++

			continue
		}

		issue := rec.Analysis.Issue
		buckets[cutoffBucket(rec.Analysis.Rolloff)]++

		if !issue.Detected {
			sevDist["clean"]++

			continue
		}

		sevDist[issue.Severity]++

		codec := rec.Analysis.Rolloff.LikelyCodec

		breakdown, ok := codecStats[codec]
		if !ok {
			breakdown = &codecBreakdown{Codec: codec}
			codecStats[codec] = breakdown
		}

		breakdown.Total++

		switch issue.Severity {
		case "severe":
			breakdown.Severe++
		case "moderate":
			breakdown.Moderate++
		case "mild":
			breakdown.Mild++
		}
	}

	fmt.Fprintln(out, "=== Rolloff Report Digest ===")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total tracks:  %d\n", total)
	fmt.Fprintf(out, "Failed:        %d\n", failed)
	fmt.Fprintf(out, "Analyzed:      %d\n", total-failed)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "--- Severity ---")
	fmt.Fprintf(out, "  Clean:     %d\n", sevDist["clean"])
	fmt.Fprintf(out, "  Mild:      %d\n", sevDist["mild"])
	fmt.Fprintf(out, "  Moderate:  %d\n", sevDist["moderate"])
	fmt.Fprintf(out, "  Severe:    %d\n", sevDist["severe"])
	fmt.Fprintln(out)

	fmt.Fprintln(out, "--- Cutoff Distribution ---")

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, k := range keys {
		if k < 0 {
			fmt.Fprintf(out, "  no rolloff:  %d tracks\n", buckets[k])

			continue
		}

		fmt.Fprintf(out, "  %2d-%2d kHz:   %d tracks\n", k, k+1, buckets[k])
	}

	fmt.Fprintln(out)

	fmt.Fprintln(out, "--- Likely Codecs ---")

	breakdowns := make([]*codecBreakdown, 0, len(codecStats))
	for _, bd := range codecStats {
		breakdowns = append(breakdowns, bd)
	}

	slices.SortFunc(breakdowns, func(a, b *codecBreakdown) int {
		return b.Total - a.Total
	})

	for _, bd := range breakdowns {
		fmt.Fprintf(out, "  %s\n", bd.Codec)
		fmt.Fprintf(out, "    total: %d  severe: %d  moderate: %d  mild: %d\n", bd.Total, bd.Severe, bd.Moderate, bd.Mild)
	}
}

func printCodecDetail(out io.Writer, records []digestRecord, codec string) {
	fmt.Fprintln(out)

	var matches []digestRecord

	for _, rec := range records {
		if rec.Analysis == nil || !rec.Analysis.Issue.Detected || rec.Analysis.Rolloff.LikelyCodec != codec {
			continue
		}

		matches = append(matches, rec)
	}

	if len(matches) == 0 {
		fmt.Fprintf(out, "No tracks attributed to %s\n", codec)

		return
	}

	slices.SortFunc(matches, func(a, b digestRecord) int {
		return severityRank(a.Analysis.Issue.Severity) - severityRank(b.Analysis.Issue.Severity)
	})

	fmt.Fprintf(out, "=== %s: %d tracks ===\n\n", codec, len(matches))

	for _, rec := range matches {
		name := rec.File
		if name == "" {
			name = "(redacted)"
		}

		fmt.Fprintf(out, "  %s\n", name)
		fmt.Fprintf(out, "    severity: %s  confidence: %.0f%%\n",
			rec.Analysis.Issue.Severity, rec.Analysis.Issue.Confidence*100)
		fmt.Fprintf(out, "    %s\n\n", rec.Analysis.Issue.Summary)
	}
}

func severityRank(severity string) int {
	switch severity {
	case "severe":
		return 0
	case "moderate":
		return 1
	case "mild":
		return 2
	default:
		return 3
	}
}
