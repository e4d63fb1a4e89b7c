package rolloff

import (
	"fmt"
	"math"
)

// Severity indicates how bad a detected issue is.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityMild
	SeverityModerate
	SeveritySevere
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "no issue"
	case SeverityMild:
		return "mild"
	case SeverityModerate:
		return "moderate"
	case SeveritySevere:
		return "severe"
	}

	return "unknown"
}

// Issue represents the lossy-transcode verdict.
type Issue struct {
	Detected   bool
	Severity   Severity
	Summary    string  // human-readable summary
	Confidence float64 // 0.0-1.0
}

// Bands defines severity thresholds. Direction is implicit:
// if Mild < Severe, higher values are worse (ascending).
// If Mild > Severe, lower values are worse (descending).
type Bands struct {
	Mild     float64
	Moderate float64
	Severe   float64
}

// Match returns the severity for a value.
// Returns (SeverityNone, false) when the value is below detection (the Mild threshold).
func (b Bands) Match(value float64) (Severity, bool) {
	if b.Mild <= b.Severe {
		switch {
		case value >= b.Severe:
			return SeveritySevere, true
		case value >= b.Moderate:
			return SeverityModerate, true
		case value >= b.Mild:
			return SeverityMild, true
		}
	} else {
		switch {
		case value <= b.Severe:
			return SeveritySevere, true
		case value <= b.Moderate:
			return SeverityModerate, true
		case value <= b.Mild:
			return SeverityMild, true
		}
	}

	return SeverityNone, false
}

// UnknownCodec is reported when a cutoff matches no known encoder low-pass.
const UnknownCodec = "unknown"

// codecMatchHz is how far a cutoff may sit from a table entry and still be attributed to it.
const codecMatchHz = 750

//nolint:gochecknoglobals // configuration data, effectively const
var transcodeCutoffs = []struct {
	freq  float64
	codec string
}{
	{15500, "AAC 128"},
	{16000, "MP3 128"},
	{17500, "MP3 160"},
	{18000, "MP3 192 / AAC 192"},
	{19000, "MP3 256 / AAC 256"},
	{20000, "MP3 320"},
	{20500, "Opus 128"},
}

// LikelyCodec returns the encoder whose typical low-pass is closest to cutoffHz, and the distance to it.
// Cutoffs further than codecMatchHz from every entry return UnknownCodec.
func LikelyCodec(cutoffHz float64) (string, float64) {
	best := UnknownCodec
	bestDelta := math.Inf(1)

	for _, tc := range transcodeCutoffs {
		delta := math.Abs(tc.freq - cutoffHz)
		if delta < bestDelta {
			best = tc.codec
			bestDelta = delta
		}
	}

	if bestDelta > codecMatchHz {
		return UnknownCodec, bestDelta
	}

	return best, bestDelta
}

func interpretResults(result *Result, opts Options) {
	analysis := result.Rolloff
	nyquist := float64(analysis.SampleRate) / 2

	analysis.MissingHz = nyquist - analysis.CutoffHz

	var (
		severity Severity
		detected bool
	)

	if analysis.CutoffFound {
		severity, detected = opts.Transcode.Match(analysis.MissingHz)
	}

	confidence := 1.0

	var summary string

	if detected {
		analysis.IsTranscode = true
		analysis.LikelyCodec, analysis.CodecDeltaHz = LikelyCodec(analysis.CutoffHz)

		summary = fmt.Sprintf("Rolloff at %.0f Hz (%s), %.0f Hz below Nyquist",
			analysis.CutoffHz, analysis.LikelyCodec, analysis.MissingHz)

		confidence = 0.6
		if analysis.LikelyCodec != UnknownCodec {
			confidence = 0.9
		}
	} else {
		summary = fmt.Sprintf("Full band up to %.0f Hz", analysis.CutoffHz)
		if !analysis.CutoffFound {
			summary = fmt.Sprintf("No rolloff detected below %.0f Hz", nyquist)
		}
	}

	result.HasLossyTranscode = detected
	result.Issue = Issue{
		Detected:   detected,
		Severity:   severity,
		Summary:    summary,
		Confidence: confidence,
	}
}
