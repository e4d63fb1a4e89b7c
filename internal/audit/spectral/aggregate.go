package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/rolloff/internal/audit/shared"
	"github.com/farcloser/rolloff/internal/types"
)

// Aggregate returns the element-wise mean of spectra.
func Aggregate(spectra []types.MagnitudeSpectrum) (types.MagnitudeSpectrum, error) {
	if len(spectra) == 0 {
		return nil, fmt.Errorf("%w: no spectra to aggregate", types.ErrInsufficientData)
	}

	bins := len(spectra[0])
	sum := make(types.MagnitudeSpectrum, bins)

	for i, spectrum := range spectra {
		if len(spectrum) != bins {
			return nil, fmt.Errorf("%w: spectrum %d has %d bins, expected %d",
				types.ErrInvalidInput, i, len(spectrum), bins)
		}

		floats.Add(sum, spectrum)
	}

	floats.Scale(1/float64(len(spectra)), sum)

	return sum, nil
}

// Decibels converts an aggregate spectrum to 20*log10(2*m/frameLength).
// Values below types.DecibelFloor, including log of zero, are clamped to it; the count of clamped bins
// is returned alongside.
func Decibels(mean types.MagnitudeSpectrum, frameLength int) (types.DecibelSpectrum, int, error) {
	if frameLength <= 0 {
		return nil, 0, fmt.Errorf("%w: frame length %d", types.ErrInvalidInput, frameLength)
	}

	db := make(types.DecibelSpectrum, len(mean))
	floored := 0

	for i, m := range mean {
		level := types.DecibelFloor
		if m > 0 {
			level = 20 * math.Log10(2*m/float64(frameLength))
		}

		if math.IsNaN(level) || level < types.DecibelFloor {
			level = types.DecibelFloor
		}

		if level == types.DecibelFloor {
			floored++
		}

		db[i] = level
	}

	return db, floored, nil
}

// NoiseBandEdge returns the highest bin whose magnitude is within shared.NoiseBandFactor of the
// spectrum minimum, or -1 for an empty spectrum.
func NoiseBandEdge(spectrum types.MagnitudeSpectrum) int {
	if len(spectrum) == 0 {
		return -1
	}

	limit := shared.NoiseBandFactor * floats.Min(spectrum)

	for i := len(spectrum) - 1; i >= 0; i-- {
		if spectrum[i] <= limit {
			return i
		}
	}

	// Unreachable: the minimum itself is always within the band.
	return -1
}

// MaxBins returns, per frame spectrum, the frequency in Hz of its NoiseBandEdge.
func MaxBins(spectra []types.MagnitudeSpectrum, sampleRate, frameLength int) types.TimeSeries {
	series := make(types.TimeSeries, len(spectra))

	for i, spectrum := range spectra {
		edge := NoiseBandEdge(spectrum)
		if edge < 0 {
			continue
		}

		series[i] = BinToHz(float64(edge), sampleRate, frameLength)
	}

	return series
}

// BinToHz maps a bin index to its frequency: bin * sampleRate / frameLength.
func BinToHz(bin float64, sampleRate, frameLength int) float64 {
	if frameLength <= 0 {
		return 0
	}

	return bin * float64(sampleRate) / float64(frameLength)
}
