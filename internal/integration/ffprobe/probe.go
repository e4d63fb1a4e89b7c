//nolint:tagliatelle
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/rolloff/internal/integration/binary"
	"github.com/farcloser/rolloff/internal/types"
)

var (
	ErrNoAudioStream     = errors.New("audio stream not found")
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	ErrInvalidChannels   = errors.New("invalid channel count")
)

// Result contains the marshalled output of ffprobe.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream holds the stream properties the analysis cares about.
type Stream struct {
	Index          int    `json:"index"`
	CodecName      string `json:"codec_name"`                // flac, mp3, aac
	CodecLongName  string `json:"codec_long_name"`           // FLAC (Free Lossless Audio Codec)
	CodecType      string `json:"codec_type"`                // audio
	SampleRate     string `json:"sample_rate,omitempty"`     // 44100
	Channels       int    `json:"channels,omitempty"`        // 2
	ChannelLayout  string `json:"channel_layout,omitempty"`  // stereo
	Duration       string `json:"duration,omitempty"`        // 310.666667
	BitRate        string `json:"bit_rate,omitempty"`        // 956821
	SampleFmt      string `json:"sample_fmt,omitempty"`      // s16 - ffmpeg internal representation
	MaxBitRate     string `json:"max_bit_rate,omitempty"`    // only for lossy
	Profile        string `json:"profile,omitempty"`         // codec specific
	InitialPadding int    `json:"initial_padding,omitempty"` // encoder delay of lossy codecs; lossless is 0
}

// Format represents container-level information.
type Format struct {
	Filename       string `json:"filename"`           // Full path to the file
	NbStreams      int    `json:"nb_streams"`         // Total number of streams
	FormatName     string `json:"format_name"`        // e.g. "flac", "mov,mp4,m4a,3gp,3g2,mj2"
	FormatLongName string `json:"format_long_name"`   // e.g. "raw FLAC"
	Duration       string `json:"duration,omitempty"` // Total duration in seconds as float string
	BitRate        string `json:"bit_rate,omitempty"` // Overall bitrate in bits/sec
	ProbeScore     int    `json:"probe_score"`        // Confidence in format detection (0-100)
}

// Probe runs ffprobe on the given file path and returns parsed metadata.
// It requires ffprobe to be available in the system PATH.
func Probe(ctx context.Context, filePath string) (*Result, error) {
	slog.Debug("ffprobe.Probe", "file path", filePath)

	ffprobePath, err := binary.Require(name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // filePath is intentionally user-provided input for probing media files
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		return nil, fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	return Parse(output)
}

// Parse decodes ffprobe JSON output.
func Parse(output []byte) (*Result, error) {
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrInvalidJSON, err)
	}

	return &result, nil
}

// AudioStream returns the streamIndex-th audio stream (0-based, counting audio streams only).
func (r *Result) AudioStream(streamIndex int) (*Stream, error) {
	audioCount := 0

	for i := range r.Streams {
		if r.Streams[i].CodecType == "audio" {
			if audioCount == streamIndex {
				return &r.Streams[i], nil
			}

			audioCount++
		}
	}

	return nil, fmt.Errorf("%w: index %d (file has %d audio streams)", ErrNoAudioStream, streamIndex, audioCount)
}

// PCMFormat returns the format of the stream once extracted at the given bit depth.
// The sample rate is never guessed: a missing or malformed rate is an error.
func (s *Stream) PCMFormat(bitDepth types.BitDepth) (types.PCMFormat, error) {
	sampleRate, err := strconv.Atoi(s.SampleRate)
	if err != nil || sampleRate <= 0 {
		return types.PCMFormat{}, fmt.Errorf("%q: %w", s.SampleRate, ErrInvalidSampleRate)
	}

	if s.Channels <= 0 {
		return types.PCMFormat{}, fmt.Errorf("%d: %w", s.Channels, ErrInvalidChannels)
	}

	return types.PCMFormat{
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Channels:   uint(s.Channels), //nolint:gosec // validated positive value
	}, nil
}
