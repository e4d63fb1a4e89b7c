package ffprobe

import "time"

const (
	name = "ffprobe"
	// Probing only reads container headers; the budget covers slow disks and network mounts waking up.
	timeout = 60 * time.Second
)
