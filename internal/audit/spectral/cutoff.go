package spectral

import (
	"fmt"

	"github.com/farcloser/rolloff/internal/types"
)

// Cutoff is the outcome of FindCutoff.
type Cutoff struct {
	Index int  // bin into the smoothed spectrum; its length when not found
	Found bool // false when the scan ended without a rolloff edge
}

// FindCutoff scans smoothed from the highest bin down to w+1 looking for the rolloff edge.
//
// At each bin i, a = smoothed[i] and b = smoothed[i-w]. The scan gives up as soon as a rises above
// noiseRatioLimit times the last (highest frequency) value: the floor was left without a drop. Otherwise
// b - a > dropThreshold marks the edge. The ratio guard is skipped when the last value is not positive.
func FindCutoff(smoothed []float64, w int, dropThreshold, noiseRatioLimit float64) (Cutoff, error) {
	if w < 1 {
		return Cutoff{}, fmt.Errorf("%w: smoothing window %d", types.ErrInvalidInput, w)
	}

	if len(smoothed) == 0 {
		return Cutoff{}, fmt.Errorf("%w: empty spectrum", types.ErrInsufficientData)
	}

	notFound := Cutoff{Index: len(smoothed)}
	last := smoothed[len(smoothed)-1]

	for i := len(smoothed) - 1; i > w; i-- {
		a := smoothed[i]
		b := smoothed[i-w]

		if last > 0 && a/last > noiseRatioLimit {
			return notFound, nil
		}

		if b-a > dropThreshold {
			return Cutoff{Index: i, Found: true}, nil
		}
	}

	return notFound, nil
}

// Hz converts the cutoff to a frequency. A found cutoff is shifted down by the smoothing window to undo
// the smoother's left padding; a missing one maps to the end of the spectrum.
func (c Cutoff) Hz(w, sampleRate, frameLength int) float64 {
	bin := c.Index
	if c.Found {
		bin = max(bin-w, 0)
	}

	return BinToHz(float64(bin), sampleRate, frameLength)
}
