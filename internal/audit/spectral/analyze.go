package spectral

import (
	"fmt"
	"log/slog"

	"github.com/farcloser/rolloff/internal/audit/shared"
	"github.com/farcloser/rolloff/internal/types"
)

type Options struct {
	Window          int     // smoothing window in bins; 0 = sample rate / 100
	DropThreshold   float64 // default 1.25
	NoiseRatioLimit float64 // default 1.1
	Scale           Scale   // default ScaleLog
	MaxSeconds      int     // max seconds to analyze; 0 = 30
}

func DefaultOptions() Options {
	return Options{
		DropThreshold:   1.25,
		NoiseRatioLimit: 1.1,
		Scale:           ScaleLog,
		MaxSeconds:      shared.MaxSeconds,
	}
}

// Analyze runs the rolloff pipeline over buf: framing, windowed DFT, averaging, decibel view,
// max-bin series, smoothing and cutoff detection.
func Analyze(buf types.SampleBuffer, sampleRate int, opts Options) (*types.RolloffResult, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", types.ErrInvalidInput, sampleRate)
	}

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

	if opts.Window == 0 {
		opts.Window = max(sampleRate/shared.SmoothingDivisor, 1)
	}

	if limit := opts.MaxSeconds * sampleRate; opts.MaxSeconds > 0 && len(buf) > limit {
		buf = buf[:limit]
	}

	frames, err := Frames(buf, sampleRate)
	if err != nil {
		return nil, err
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: %d samples is less than one second at %d Hz",
			types.ErrInsufficientData, len(buf), sampleRate)
	}

	slog.Debug("spectral.Analyze", "stage", "transform", "seconds", len(frames), "sample rate", sampleRate)

	transformer, err := NewTransformer(sampleRate)
	if err != nil {
		return nil, err
	}

	spectra := make([]types.MagnitudeSpectrum, len(frames))
	for i, frame := range frames {
		if spectra[i], err = transformer.Transform(frame); err != nil {
			return nil, fmt.Errorf("second %d: %w", i, err)
		}
	}

	mean, err := Aggregate(spectra)
	if err != nil {
		return nil, err
	}

	decibels, floored, err := Decibels(mean, sampleRate)
	if err != nil {
		return nil, err
	}

	slog.Debug("spectral.Analyze", "stage", "smooth", "window", opts.Window, "scale", opts.Scale)

	smoothed, err := Smooth(opts.Scale.Apply(mean), opts.Window)
	if err != nil {
		return nil, err
	}

	cutoff, err := FindCutoff(smoothed, opts.Window, opts.DropThreshold, opts.NoiseRatioLimit)
	if err != nil {
		return nil, err
	}

	result := &types.RolloffResult{
		SampleRate:  sampleRate,
		FrameLength: sampleRate,
		Seconds:     len(frames),
		Samples:     uint64(len(buf)),
		Spectrum:    mean,
		Decibels:    decibels,
		FlooredBins: floored,
		Smoothed:    smoothed,
		Window:      opts.Window,
		CutoffBin:   cutoff.Index,
		CutoffFound: cutoff.Found,
		CutoffHz:    cutoff.Hz(opts.Window, sampleRate, sampleRate),
		MaxBins:     MaxBins(spectra, sampleRate, sampleRate),
	}

	slog.Debug("spectral.Analyze", "stage", "done", "cutoff hz", result.CutoffHz, "found", cutoff.Found)

	return result, nil
}
