package ffmpeg

import "time"

const (
	name  = "ffmpeg"
	codec = "pcm_s32le"
	// Decoding is capped to a few tens of seconds, but slow media still needs headroom.
	timeout = 120 * time.Second
)
