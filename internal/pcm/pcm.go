// Package pcm decodes interleaved little-endian PCM into mono sample buffers.
package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/rolloff/internal/audit/shared"
	"github.com/farcloser/rolloff/internal/types"
)

// Validate checks that format describes decodable PCM.
func Validate(format types.PCMFormat) error {
	if format.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", types.ErrInvalidInput, format.SampleRate)
	}

	if format.Channels == 0 {
		return fmt.Errorf("%w: no channels", types.ErrInvalidInput)
	}

	switch format.BitDepth {
	case types.Depth16, types.Depth24, types.Depth32:
	default:
		return fmt.Errorf("%w: unsupported bit depth %d", types.ErrInvalidInput, format.BitDepth)
	}

	return nil
}

// ReadMono decodes PCM from r, averaging channels into one sample per frame.
// Decoding stops after maxSeconds of audio; 0 means read everything. A trailing incomplete frame is ignored.
func ReadMono(reader io.Reader, format types.PCMFormat, maxSeconds int) (types.SampleBuffer, error) {
	if err := Validate(format); err != nil {
		return nil, err
	}

	bytesPerSample := int(format.BitDepth / 8) //nolint:gosec // bit depth is a small constant
	numChannels := int(format.Channels)        //nolint:gosec // channel count is small
	frameSize := bytesPerSample * numChannels

	limit := -1
	if maxSeconds > 0 {
		limit = maxSeconds * format.SampleRate
	}

	var maxVal float64

	switch format.BitDepth {
	case types.Depth16:
		maxVal = shared.MaxValue16
	case types.Depth24:
		maxVal = shared.MaxValue24
	case types.Depth32:
		maxVal = shared.MaxValue32
	default:
	}

	samples := types.SampleBuffer{}
	if limit > 0 {
		samples = make(types.SampleBuffer, 0, limit)
	}

	buf := make([]byte, frameSize*4096)
	pending := 0

	for limit < 0 || len(samples) < limit {
		n, err := reader.Read(buf[pending:])
		n += pending

		completeFrames := (n / frameSize) * frameSize
		data := buf[:completeFrames]

		for i := 0; i < len(data) && (limit < 0 || len(samples) < limit); i += frameSize {
			var sum float64

			for ch := range numChannels {
				offset := i + ch*bytesPerSample

				switch format.BitDepth {
				case types.Depth16:
					sum += float64(int16(binary.LittleEndian.Uint16(data[offset:]))) / maxVal //nolint:gosec // two's complement conversion for signed PCM samples
				case types.Depth24:
					raw := int32(data[offset]) | int32(data[offset+1])<<8 | int32(data[offset+2])<<16
					if raw&0x800000 != 0 {
						raw |= ^0xFFFFFF
					}

					sum += float64(raw) / maxVal
				case types.Depth32:
					sum += float64(int32(binary.LittleEndian.Uint32(data[offset:]))) / maxVal //nolint:gosec // two's complement conversion for signed PCM samples
				default:
				}
			}

			samples = append(samples, sum/float64(numChannels))
		}

		// Keep a split frame for the next read.
		pending = copy(buf, buf[completeFrames:n])

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
		}
	}

	return samples, nil
}
