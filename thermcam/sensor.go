package thermcam

import (
	"fmt"
	"time"
)

// FrameSource produces one RawFrame per capture cycle. Implementations
// own the transport (I2C hardware, synthetic generator) and mark cells
// they could not read with DEAD_PIXEL_SENTINEL.
type FrameSource interface {
	ReadFrame(frame *RawFrame) error
	Close() error
}

const (
	SENSOR_READ_RETRIES     = 3
	SENSOR_READ_RETRY_DELAY = 50 * time.Millisecond
)

// ReadFrameWithRetry retries transient capture faults with a short
// backoff. The retry budget belongs here, in the transport layer; the
// pipeline itself never sees a capture error, only a frame or the
// caller's decision to re-render the previous one.
func ReadFrameWithRetry(src FrameSource, frame *RawFrame, attempts int) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = src.ReadFrame(frame); err == nil {
			return nil
		}
		WARNINGLogger.Printf("Frame read attempt %d/%d failed: %v", i+1, attempts, err)
		time.Sleep(SENSOR_READ_RETRY_DELAY)
	}
	return fmt.Errorf("sensor read failed after %d attempts: %w", attempts, err)
}
