package spectral_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/rolloff/internal/audit/spectral"
	"github.com/farcloser/rolloff/internal/types"
)

// step is 10 below edge and 1 from edge up.
func step(length, edge int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = 1
		if i < edge {
			out[i] = 10
		}
	}

	return out
}

func TestFindCutoffStep(t *testing.T) {
	t.Parallel()

	const w = 5

	smoothed, err := spectral.Smooth(step(100, 50), w)
	require.NoError(t, err)

	cutoff, err := spectral.FindCutoff(smoothed, w, 0.5, 1.1)
	require.NoError(t, err)
	require.True(t, cutoff.Found)
	assert.Equal(t, 59, cutoff.Index)

	hz := cutoff.Hz(w, 100, 100)
	assert.GreaterOrEqual(t, hz, 50.0)
	assert.LessOrEqual(t, hz, 55.0)
}

func TestFindCutoffFlat(t *testing.T) {
	t.Parallel()

	flat := make([]float64, 100)
	for i := range flat {
		flat[i] = 3
	}

	cutoff, err := spectral.FindCutoff(flat, 5, 0.5, 1.1)
	require.NoError(t, err)
	assert.False(t, cutoff.Found)
	assert.Equal(t, len(flat), cutoff.Index)
	assert.InDelta(t, 100.0, cutoff.Hz(5, 200, 200), 0, "no cutoff maps to Nyquist")
}

func TestFindCutoffNoiseRatioGuard(t *testing.T) {
	t.Parallel()

	smoothed := []float64{10, 10, 10, 10, 3, 3, 3, 3, 1}

	cutoff, err := spectral.FindCutoff(smoothed, 2, 5, 1.1)
	require.NoError(t, err)
	assert.False(t, cutoff.Found, "rising above the floor without a drop gives up")

	cutoff, err = spectral.FindCutoff(smoothed, 2, 1.5, 1.1)
	require.NoError(t, err)
	assert.True(t, cutoff.Found)
	assert.Equal(t, 8, cutoff.Index)
}

func TestFindCutoffZeroFloor(t *testing.T) {
	t.Parallel()

	cutoff, err := spectral.FindCutoff([]float64{10, 10, 10, 0, 0, 0}, 1, 5, 1.1)
	require.NoError(t, err)
	assert.True(t, cutoff.Found)
	assert.Equal(t, 3, cutoff.Index)
	assert.InDelta(t, 2.0, cutoff.Hz(1, 10, 10), 0)
}

func TestFindCutoffWindowTooLarge(t *testing.T) {
	t.Parallel()

	cutoff, err := spectral.FindCutoff(step(10, 5), 20, 0.5, 1.1)
	require.NoError(t, err)
	assert.False(t, cutoff.Found)
}

func TestFindCutoffErrors(t *testing.T) {
	t.Parallel()

	_, err := spectral.FindCutoff([]float64{1, 2}, 0, 1, 1)
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = spectral.FindCutoff(nil, 3, 1, 1)
	require.ErrorIs(t, err, types.ErrInsufficientData)
}

func TestCutoffHzClampsAtZero(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, spectral.Cutoff{Index: 3, Found: true}.Hz(5, 100, 100), 0)
}
