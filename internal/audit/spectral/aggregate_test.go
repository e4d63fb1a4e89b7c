package spectral_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/rolloff/internal/audit/spectral"
	"github.com/farcloser/rolloff/internal/testsignal"
	"github.com/farcloser/rolloff/internal/types"
)

func TestAggregate(t *testing.T) {
	t.Parallel()

	mean, err := spectral.Aggregate([]types.MagnitudeSpectrum{{1, 2, 0}, {3, 4, 0}})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 3, 0}, []float64(mean), 1e-12)

	input := []types.MagnitudeSpectrum{{1, 2}}
	single, err := spectral.Aggregate(input)
	require.NoError(t, err)

	single[0] = 42
	assert.InDelta(t, 1.0, input[0][0], 0, "aggregate does not alias its input")
}

func TestAggregateErrors(t *testing.T) {
	t.Parallel()

	_, err := spectral.Aggregate(nil)
	require.ErrorIs(t, err, types.ErrInsufficientData)

	_, err = spectral.Aggregate([]types.MagnitudeSpectrum{{1, 2}, {1}})
	require.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestDecibels(t *testing.T) {
	t.Parallel()

	const frameLength = 1000

	// 2*m/N == 1 is 0 dB, 0.1 is -20 dB, 1e-7 is below the floor.
	mean := types.MagnitudeSpectrum{0, 500, 50, 500e-7}

	db, floored, err := spectral.Decibels(mean, frameLength)
	require.NoError(t, err)
	require.Len(t, db, len(mean))

	assert.InDelta(t, types.DecibelFloor, db[0], 0)
	assert.InDelta(t, 0.0, db[1], 1e-9)
	assert.InDelta(t, -20.0, db[2], 1e-9)
	assert.InDelta(t, types.DecibelFloor, db[3], 0)
	assert.Equal(t, 2, floored)
}

func TestDecibelsMonotonic(t *testing.T) {
	t.Parallel()

	mean := types.MagnitudeSpectrum{0, 1e-12, 1e-9, 1e-6, 1e-3, 1, 10, 1000}

	db, _, err := spectral.Decibels(mean, 100)
	require.NoError(t, err)

	for i := 1; i < len(db); i++ {
		assert.GreaterOrEqual(t, db[i], db[i-1], "bin %d", i)
	}
}

func TestDecibelsInvalidFrameLength(t *testing.T) {
	t.Parallel()

	_, _, err := spectral.Decibels(types.MagnitudeSpectrum{1}, 0)
	require.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestNoiseBandEdge(t *testing.T) {
	t.Parallel()

	// Minimum is 1, so the band reaches up to 5.
	assert.Equal(t, 4, spectral.NoiseBandEdge(types.MagnitudeSpectrum{1, 100, 4, 100, 5, 6}))
	assert.Equal(t, 2, spectral.NoiseBandEdge(types.MagnitudeSpectrum{3, 3, 3}))
	assert.Equal(t, -1, spectral.NoiseBandEdge(nil))
}

func TestMaxBins(t *testing.T) {
	t.Parallel()

	spectra := []types.MagnitudeSpectrum{
		{1, 100, 4, 100, 5, 6},
		{1, 1, 100, 100, 100, 100},
	}

	series := spectral.MaxBins(spectra, 12, 12)
	assert.InDeltaSlice(t, []float64{4, 1}, []float64(series), 0)

	// Half-length frames double the bin spacing.
	series = spectral.MaxBins(spectra, 12, 6)
	assert.InDeltaSlice(t, []float64{8, 2}, []float64(series), 0)
}

func TestBinToHz(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 10.0, spectral.BinToHz(10, 44100, 44100), 0)
	assert.InDelta(t, 20.0, spectral.BinToHz(10, 48000, 24000), 0)
	assert.InDelta(t, 0.0, spectral.BinToHz(10, 48000, 0), 0)
}

func TestMaxBinsIgnoresDominantTone(t *testing.T) {
	t.Parallel()

	const sampleRate = 1000

	transformer, err := spectral.NewTransformer(sampleRate)
	require.NoError(t, err)

	spectrum, err := transformer.Transform(testsignal.Tone(sampleRate, 1, 50, 0.8))
	require.NoError(t, err)

	edge := spectral.NoiseBandEdge(spectrum)
	require.GreaterOrEqual(t, edge, 0)
	assert.NotEqual(t, 50, edge, "the dominant bin is far above the noise band")
	assert.LessOrEqual(t, spectrum[edge], 5*floats.Min(spectrum))

	for i := edge + 1; i < len(spectrum); i++ {
		assert.Greater(t, spectrum[i], 5*floats.Min(spectrum), "bin %d", i)
	}

	series := spectral.MaxBins([]types.MagnitudeSpectrum{spectrum}, sampleRate, sampleRate)
	assert.InDelta(t, float64(edge), series[0], 0)
}
