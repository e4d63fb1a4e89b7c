package spectral

import (
	"fmt"
	"math"
)

// Scale selects the representation the smoother and cutoff detector operate on.
type Scale int

const (
	// ScaleLog maps magnitudes to log10(m / FloorMagnitude), clamped at zero.
	ScaleLog Scale = iota
	// ScaleLinear uses magnitudes as-is.
	ScaleLinear
)

// FloorMagnitude is the reference of the log scale. Anything below maps to 0.
const FloorMagnitude = 1e-6

func (s Scale) String() string {
	switch s {
	case ScaleLog:
		return "log"
	case ScaleLinear:
		return "linear"
	}

	return "unknown"
}

// ParseScale converts a string to a Scale value.
func ParseScale(s string) (Scale, error) {
	switch s {
	case "log", "":
		return ScaleLog, nil
	case "linear":
		return ScaleLinear, nil
	default:
		return 0, fmt.Errorf("unknown scale %q (valid: log, linear)", s)
	}
}

// Apply returns a new slice with magnitudes mapped to the scale. The result is never negative, which keeps
// the ratio guard of FindCutoff meaningful on both scales.
func (s Scale) Apply(magnitudes []float64) []float64 {
	out := make([]float64, len(magnitudes))

	switch s {
	case ScaleLinear:
		copy(out, magnitudes)
	default:
		for i, m := range magnitudes {
			out[i] = math.Log10(math.Max(m, FloorMagnitude) / FloorMagnitude)
		}
	}

	return out
}
