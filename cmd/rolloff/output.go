//nolint:wrapcheck
package main

import (
	"fmt"
	"os"

	"github.com/farcloser/primordium/format"
	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/rolloff"
	"github.com/farcloser/rolloff/internal/output"
)

func outputResult(filePath string, result *rolloff.Result, formatName string, debug bool) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	var meta map[string]any
	if debug {
		meta = output.ResultToMap(result, true)
	} else {
		meta = buildFriendlyOutput(result)
	}

	data := &format.Data{
		Object: filePath,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}

// buildFriendlyOutput creates a user-friendly summary of the analysis results.
func buildFriendlyOutput(result *rolloff.Result) map[string]any {
	issue := result.Issue

	marker := "  "
	if issue.Detected {
		marker = "!!"
	}

	meta := map[string]any{
		"summary": fmt.Sprintf("%s [%s] lossy-transcode: %s (%.0f%% confidence)",
			marker, issue.Severity, issue.Summary, issue.Confidence*100),
		"issue": map[string]any{
			"check":    "lossy-transcode",
			"detected": issue.Detected,
			"severity": issue.Severity.String(),
		},
	}

	if r := result.Rolloff; r != nil {
		props := map[string]any{
			"cutoff":   fmt.Sprintf("%.0f Hz", r.CutoffHz),
			"nyquist":  fmt.Sprintf("%d Hz", r.SampleRate/2),
			"analyzed": fmt.Sprintf("%d s", r.Seconds),
			"window":   fmt.Sprintf("%d bins (%.0f Hz)", r.Window, float64(r.Window)*float64(r.SampleRate)/float64(r.FrameLength)),
		}

		if r.IsTranscode {
			props["likely_codec"] = r.LikelyCodec
		}

		if len(r.MaxBins) > 0 {
			props["noise_band_edge"] = fmt.Sprintf("%.0f-%.0f Hz", floats.Min(r.MaxBins), floats.Max(r.MaxBins))
		}

		meta["properties"] = props
	}

	return meta
}
