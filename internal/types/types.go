//nolint:staticcheck // too dumb on Db vs. DB
package types

type BitDepth uint

const (
	Depth16 BitDepth = 16
	Depth24 BitDepth = 24
	Depth32 BitDepth = 32
)

// PCMFormat describes interleaved little-endian PCM handed over by a decoder.
type PCMFormat struct {
	SampleRate int
	BitDepth   BitDepth
	Channels   uint
}

// DecibelFloor is the level assigned to bins whose magnitude is zero or too small to be represented.
const DecibelFloor = -120.0

// SampleBuffer holds mono samples, normalized to [-1, 1].
type SampleBuffer []float64

// Duration returns the buffer length in seconds at the given sample rate.
func (b SampleBuffer) Duration(sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}

	return float64(len(b)) / float64(sampleRate)
}

// Frame is exactly one second of a SampleBuffer.
type Frame = SampleBuffer

// MagnitudeSpectrum is indexed by frequency bin. Bin i maps to i * sampleRate / frameLength Hz.
type MagnitudeSpectrum []float64

// DecibelSpectrum is the display view of a MagnitudeSpectrum, floored at DecibelFloor.
type DecibelSpectrum []float64

// TimeSeries holds one value per analyzed second.
type TimeSeries []float64

/*
Rolloff Interpretation

The cutoff is the frequency where the averaged spectrum falls off a cliff into a flat noise floor.
Lossless masters roll off gently up to Nyquist; lossy encoders apply a steep low-pass first.

## Cutoff vs. Codec

| CutoffHz  | LikelyCodec      | Notes                    |
|-----------|------------------|--------------------------|
| ~15.5 kHz | AAC 128          | iTunes default era       |
| ~16 kHz   | MP3 128          | Common piracy bitrate    |
| ~17.5 kHz | MP3 160          |                          |
| ~18 kHz   | MP3 192 / AAC    | "Good enough" bitrate    |
| ~19 kHz   | MP3 256 / AAC    | Near-transparent         |
| ~20 kHz   | MP3 320          | Max MP3 bitrate          |
| ~20.5 kHz | Opus 128         |                          |

## Missing Bandwidth (Nyquist - CutoffHz)

| MissingHz   | Interpretation                         |
|-------------|----------------------------------------|
| < 1000      | Full band. Genuine or inconclusive.    |
| 1000-3000   | High bitrate lossy source, or filtered |
| 3000-5000   | Mid bitrate lossy source               |
| > 5000      | Low bitrate lossy source               |

## Max-bin Series

Per second, the highest frequency whose magnitude is still within 5x of that second's minimum magnitude.
A series pinned near the cutoff across seconds is a strong hint that the floor is an encoder artifact
rather than a quiet passage.

## Caveats

- Old analog recordings and dark mixes roll off naturally
- Solo instruments and speech may have no HF content at all
- Some mastering chains apply steep low-pass filters deliberately
*/

// RolloffResult contains the outputs of the spectral rolloff pipeline.
type RolloffResult struct {
	SampleRate  int
	FrameLength int // samples per frame; equals SampleRate
	Seconds     int // whole seconds analyzed
	Samples     uint64

	Spectrum    MagnitudeSpectrum // aggregate (mean) magnitude spectrum
	Decibels    DecibelSpectrum
	FlooredBins int // bins clamped to DecibelFloor

	Smoothed []float64 // detection-scale spectrum after smoothing
	Window   int       // smoothing window, in bins

	CutoffBin   int     // index into Smoothed; len(Smoothed) when not found
	CutoffFound bool    // false when no rolloff edge was detected
	CutoffHz    float64 // window-compensated cutoff; Nyquist when not found

	MaxBins TimeSeries // Hz, one per second

	// Verdict
	IsTranscode  bool
	MissingHz    float64 // Nyquist - CutoffHz
	LikelyCodec  string
	CodecDeltaHz float64 // distance between CutoffHz and the codec table entry
}
