package spectral_test

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/rolloff/internal/audit/spectral"
	"github.com/farcloser/rolloff/internal/testsignal"
	"github.com/farcloser/rolloff/internal/types"
)

func TestTransformMatchesReference(t *testing.T) {
	t.Parallel()

	const size = 1000

	rng := rand.New(rand.NewPCG(1, 2)) //nolint:gosec // test data

	frame := make(types.Frame, size)
	for i := range frame {
		frame[i] = rng.Float64()*2 - 1
	}

	transformer, err := spectral.NewTransformer(size)
	require.NoError(t, err)
	assert.Equal(t, size, transformer.Size())
	assert.Equal(t, size/2, transformer.Bins())

	got, err := transformer.Transform(frame)
	require.NoError(t, err)
	require.Len(t, got, size/2)

	windowed := make([]float64, size)
	floats.MulTo(windowed, frame, window.Hann(size))

	reference := fft.FFTReal(windowed)

	for i := range got {
		assert.InDelta(t, cmplx.Abs(reference[i]), got[i], 1e-9, "bin %d", i)
	}
}

func TestTransformTonePeak(t *testing.T) {
	t.Parallel()

	const sampleRate = 1000

	transformer, err := spectral.NewTransformer(sampleRate)
	require.NoError(t, err)

	spectrum, err := transformer.Transform(testsignal.Tone(sampleRate, 1, 100, 1))
	require.NoError(t, err)

	assert.Equal(t, 100, floats.MaxIdx(spectrum))
	// A unit sine under a Hann window peaks at about a quarter of the frame length.
	assert.InDelta(t, sampleRate/4.0, spectrum[100], 2)
}

func TestTransformReusable(t *testing.T) {
	t.Parallel()

	transformer, err := spectral.NewTransformer(64)
	require.NoError(t, err)

	tone := testsignal.Tone(64, 1, 8, 1)

	first, err := transformer.Transform(tone)
	require.NoError(t, err)

	_, err = transformer.Transform(make(types.Frame, 64))
	require.NoError(t, err)

	second, err := transformer.Transform(tone)
	require.NoError(t, err)

	assert.InDeltaSlice(t, first, second, 1e-12)
}

func TestTransformErrors(t *testing.T) {
	t.Parallel()

	_, err := spectral.NewTransformer(0)
	require.ErrorIs(t, err, types.ErrInvalidInput)

	transformer, err := spectral.NewTransformer(8)
	require.NoError(t, err)

	_, err = transformer.Transform(make(types.Frame, 7))
	require.ErrorIs(t, err, types.ErrInvalidInput)

	frame := make(types.Frame, 8)
	frame[3] = math.NaN()

	_, err = transformer.Transform(frame)
	require.ErrorIs(t, err, types.ErrNumericDegenerate)

	frame[3] = math.Inf(-1)

	_, err = transformer.Transform(frame)
	require.ErrorIs(t, err, types.ErrNumericDegenerate)
}
