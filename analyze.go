//nolint:wrapcheck
package rolloff

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/farcloser/rolloff/internal/audit/shared"
	"github.com/farcloser/rolloff/internal/audit/spectral"
	"github.com/farcloser/rolloff/internal/pcm"
	"github.com/farcloser/rolloff/internal/types"
)

/*
Usage:

result, err := rolloff.Analyze(samples, 44100, rolloff.DefaultOptions())
if result.HasLossyTranscode {
    fmt.Printf("Cutoff at %.0f Hz (%s)\n", result.Rolloff.CutoffHz, result.Rolloff.LikelyCodec)
}

// Raw PCM
result, err := rolloff.AnalyzeReader(reader, types.PCMFormat{SampleRate: 44100, BitDepth: 16, Channels: 2}, opts)

// Linear scale, narrower window
opts := rolloff.DefaultOptions()
opts.Scale = rolloff.ScaleLinear
opts.Window = 200
result, err := rolloff.Analyze(samples, 44100, opts)

// Inspect raw series
for second, hz := range result.Rolloff.MaxBins {
    fmt.Printf("%ds: %.0f Hz\n", second, hz)
}

*/

var (
	ErrInvalidInput      = types.ErrInvalidInput
	ErrInsufficientData  = types.ErrInsufficientData
	ErrNumericDegenerate = types.ErrNumericDegenerate
)

// Scale selects the representation the cutoff detector runs on.
type Scale = spectral.Scale

const (
	ScaleLog    = spectral.ScaleLog
	ScaleLinear = spectral.ScaleLinear
)

// ParseScale converts a string to a Scale value.
func ParseScale(s string) (Scale, error) {
	return spectral.ParseScale(s)
}

// Options configures the analysis.
type Options struct {
	// Detector parameters (zero value = use defaults).
	Window          int     // smoothing window in bins; default sample rate / 100
	DropThreshold   float64 // default 1.25
	NoiseRatioLimit float64 // default 1.1
	Scale           Scale   // default ScaleLog
	MaxSeconds      int     // default 30

	// Severity bands on the missing bandwidth, in Hz below Nyquist.
	Transcode Bands
}

// DefaultOptions returns options tuned for 44.1/48 kHz material.
func DefaultOptions() Options {
	defaults := spectral.DefaultOptions()

	return Options{
		DropThreshold:   defaults.DropThreshold,
		NoiseRatioLimit: defaults.NoiseRatioLimit,
		Scale:           defaults.Scale,
		MaxSeconds:      shared.MaxSeconds,
		Transcode:       Bands{Mild: 1000, Moderate: 3000, Severe: 5000},
	}
}

// Result contains the analysis outcome.
type Result struct {
	// High-level verdict
	Issue             Issue
	HasLossyTranscode bool

	// Raw pipeline output
	Rolloff *types.RolloffResult
}

// Analyze runs the rolloff pipeline over a mono sample buffer.
func Analyze(samples types.SampleBuffer, sampleRate int, opts Options) (*Result, error) {
	applyDefaults(&opts)

	analysis, err := spectral.Analyze(samples, sampleRate, spectral.Options{
		Window:          opts.Window,
		DropThreshold:   opts.DropThreshold,
		NoiseRatioLimit: opts.NoiseRatioLimit,
		Scale:           opts.Scale,
		MaxSeconds:      opts.MaxSeconds,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Rolloff: analysis}

	interpretResults(result, opts)

	return result, nil
}

// AnalyzeReader decodes interleaved PCM from r, mixes it down to mono and analyzes it.
func AnalyzeReader(r io.Reader, format types.PCMFormat, opts Options) (*Result, error) {
	applyDefaults(&opts)

	slog.Debug("rolloff.AnalyzeReader", "stage", "decode", "sample rate", format.SampleRate,
		"bit depth", format.BitDepth, "channels", format.Channels)

	samples, err := pcm.ReadMono(r, format, opts.MaxSeconds)
	if err != nil {
		return nil, fmt.Errorf("decoding PCM: %w", err)
	}

	return Analyze(samples, format.SampleRate, opts)
}

func applyDefaults(opts *Options) {
	defaults := DefaultOptions()

	if opts.DropThreshold == 0 {
		opts.DropThreshold = defaults.DropThreshold
	}

	if opts.NoiseRatioLimit == 0 {
		opts.NoiseRatioLimit = defaults.NoiseRatioLimit
	}

	if opts.MaxSeconds == 0 {
		opts.MaxSeconds = defaults.MaxSeconds
	}

	if opts.Transcode == (Bands{}) {
		opts.Transcode = defaults.Transcode
	}
}
