package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/rolloff/internal/integration/binary"
	"github.com/farcloser/rolloff/internal/types"
)

// ExtractStream decodes a specific audio stream from a container into raw little-endian PCM.
// At most maxSeconds of audio are decoded; 0 decodes the whole stream.
func ExtractStream(
	ctx context.Context,
	input io.Reader,
	output io.Writer,
	streamIndex int,
	format *types.PCMFormat,
	maxSeconds int,
) error {
	slog.Debug("ffmpeg.ExtractStream", "stream index", streamIndex, "stage", "start")

	ffmpegPath, err := binary.Require(name)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{
		"-i", "-",
		"-map", "0:a:" + strconv.Itoa(streamIndex),
	}

	if maxSeconds > 0 {
		args = append(args, "-t", strconv.Itoa(maxSeconds))
	}

	args = append(args,
		"-f", bitDepthToSpec(format.BitDepth),
		"-acodec", bitDepthToCodec(format.BitDepth),
		"-v", "quiet",
		"-",
	)

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)

	cmd.Stdout = output
	cmd.Stdin = input

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	if err = cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			slog.Debug("ffmpeg.ExtractStream", "stream index", streamIndex, "stage", "timeout")

			return fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		slog.Debug("ffmpeg.ExtractStream", "stream index", streamIndex, "stage", "error")

		return fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	slog.Debug("ffmpeg.ExtractStream", "stream index", streamIndex, "stage", "done")

	return nil
}
