package spectral

import (
	"fmt"

	"github.com/farcloser/rolloff/internal/types"
)

// Frames slices buf into one-second frames. The trailing partial second is dropped.
// Frames share memory with buf.
func Frames(buf types.SampleBuffer, sampleRate int) ([]types.Frame, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", types.ErrInvalidInput, sampleRate)
	}

	seconds := len(buf) / sampleRate
	frames := make([]types.Frame, seconds)

	for i := range seconds {
		frames[i] = buf[i*sampleRate : (i+1)*sampleRate : (i+1)*sampleRate]
	}

	return frames, nil
}
