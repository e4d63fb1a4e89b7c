// Package testsignal synthesizes deterministic band-limited signals with a known spectral edge.
package testsignal

import (
	"math"
	"math/cmplx"
	"math/rand/v2"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/rolloff/internal/types"
)

// Peak is the absolute peak of generated buffers.
const Peak = 0.5

// BandLimited returns seconds of noise at sampleRate whose spectrum is flat with unit magnitude below
// cutoffHz and flat at floor above it. Phases are random, seeded by seed. Every second repeats the same
// period, so each analysis frame sees the exact spectrum. A cutoffHz at or above Nyquist yields full-band noise.
func BandLimited(sampleRate, seconds int, cutoffHz, floor float64, seed uint64) types.SampleBuffer {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // deterministic test data

	coeffs := make([]complex128, sampleRate/2+1)
	for k := 1; k < len(coeffs); k++ {
		magnitude := floor
		if float64(k) < cutoffHz {
			magnitude = 1
		}

		coeffs[k] = cmplx.Rect(magnitude, 2*math.Pi*rng.Float64())
	}

	// The Nyquist coefficient of an even length is real.
	if sampleRate%2 == 0 {
		coeffs[len(coeffs)-1] = complex(cmplx.Abs(coeffs[len(coeffs)-1]), 0)
	}

	period := fourier.NewFFT(sampleRate).Sequence(nil, coeffs)

	peak := math.Max(floats.Max(period), -floats.Min(period))
	if peak > 0 {
		floats.Scale(Peak/peak, period)
	}

	buf := make(types.SampleBuffer, 0, sampleRate*seconds)
	for range seconds {
		buf = append(buf, period...)
	}

	return buf
}

// Tone returns seconds of a sine at freqHz with the given amplitude.
func Tone(sampleRate, seconds int, freqHz, amplitude float64) types.SampleBuffer {
	buf := make(types.SampleBuffer, sampleRate*seconds)
	for i := range buf {
		buf[i] = amplitude * math.Sin(2*math.Pi*freqHz*float64(i)/float64(sampleRate))
	}

	return buf
}
