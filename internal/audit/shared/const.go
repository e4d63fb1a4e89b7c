package shared

const (
	MaxValue16 = 32768.0      // 2^15: 16-bit signed PCM normalization divisor
	MaxValue24 = 8388608.0    // 2^23: 24-bit signed PCM normalization divisor
	MaxValue32 = 2147483648.0 // 2^31: 32-bit signed PCM normalization divisor
)

const (
	// MaxSeconds caps how much audio is materialized for analysis.
	MaxSeconds = 30
	// SmoothingDivisor derives the default smoothing window from the sample rate (1% of it, in bins).
	SmoothingDivisor = 100
	// NoiseBandFactor bounds the noise band: magnitudes within this factor of the frame minimum.
	NoiseBandFactor = 5.0
)
