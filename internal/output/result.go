// Package output provides shared result serialization for rolloff JSON output.
package output

import (
	"github.com/farcloser/rolloff"
	"github.com/farcloser/rolloff/internal/types"
)

// ResultToMap converts an analysis result into the canonical map structure
// used for JSON and JSONL serialization. Per-bin series are only included when withSeries is set.
func ResultToMap(result *rolloff.Result, withSeries bool) map[string]any {
	meta := map[string]any{
		"issue": map[string]any{
			"check":      "lossy-transcode",
			"detected":   result.Issue.Detected,
			"severity":   result.Issue.Severity.String(),
			"summary":    result.Issue.Summary,
			"confidence": result.Issue.Confidence,
		},
	}

	if r := result.Rolloff; r != nil {
		meta["rolloff"] = RolloffToMap(r, withSeries)
	}

	return meta
}

// RolloffToMap converts raw pipeline output into a map.
func RolloffToMap(result *types.RolloffResult, withSeries bool) map[string]any {
	meta := map[string]any{
		"sample_rate":  result.SampleRate,
		"frame_length": result.FrameLength,
		"seconds":      result.Seconds,
		"samples":      result.Samples,
		"window":       result.Window,
		"cutoff_bin":   result.CutoffBin,
		"cutoff_found": result.CutoffFound,
		"cutoff_hz":    result.CutoffHz,
		"missing_hz":   result.MissingHz,
		"is_transcode": result.IsTranscode,
		"floored_bins": result.FlooredBins,
		"max_bins_hz":  []float64(result.MaxBins),
	}

	if result.IsTranscode {
		meta["likely_codec"] = result.LikelyCodec
		meta["codec_delta_hz"] = result.CodecDeltaHz
	}

	if withSeries {
		meta["spectrum"] = []float64(result.Spectrum)
		meta["decibels"] = []float64(result.Decibels)
		meta["smoothed"] = result.Smoothed
	}

	return meta
}
