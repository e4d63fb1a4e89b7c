package spectral

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/rolloff/internal/types"
)

// Smooth computes a moving average of width w. The input is left-padded with w copies of its first
// value, so out[i] is the mean of in[i-w:i] with the edge replicated. len(out) == len(in).
func Smooth(in []float64, w int) ([]float64, error) {
	if w < 1 {
		return nil, fmt.Errorf("%w: smoothing window %d", types.ErrInvalidInput, w)
	}

	if len(in) == 0 {
		return nil, fmt.Errorf("%w: empty spectrum", types.ErrInsufficientData)
	}

	padded := make([]float64, len(in)+w)
	for i := range w {
		padded[i] = in[0]
	}

	copy(padded[w:], in)

	out := make([]float64, len(in))
	for i := range out {
		out[i] = stat.Mean(padded[i:i+w], nil)
	}

	return out, nil
}
