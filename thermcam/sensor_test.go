package thermcam

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type flakySource struct {
	failures int
	calls    int
}

func (f *flakySource) ReadFrame(frame *RawFrame) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("transient i2c fault")
	}
	for i := range frame {
		frame[i] = 25
	}
	return nil
}

func (f *flakySource) Close() error { return nil }

func TestReadFrameWithRetryRecovers(t *testing.T) {
	src := &flakySource{failures: 2}
	var frame RawFrame
	require.NoError(t, ReadFrameWithRetry(src, &frame, 3))
	require.Equal(t, 3, src.calls)
	require.Equal(t, 25.0, frame[0])
}

func TestReadFrameWithRetryExhaustsBudget(t *testing.T) {
	src := &flakySource{failures: 10}
	var frame RawFrame
	err := ReadFrameWithRetry(src, &frame, 3)
	require.Error(t, err)
	require.Equal(t, 3, src.calls)
}

func TestFakeSensorFrameShapeAndRange(t *testing.T) {
	src := NewFakeSensor(0)
	defer src.Close()

	var frame RawFrame
	require.NoError(t, src.ReadFrame(&frame))
	for _, temp := range frame {
		require.GreaterOrEqual(t, temp, src.Ambient-0.001)
		require.LessOrEqual(t, temp, src.Ambient+src.Amplitude+0.001)
	}
}

func TestFakeSensorDeadCells(t *testing.T) {
	src := NewFakeSensor(0, 0, 42, 767)
	defer src.Close()

	var frame RawFrame
	require.NoError(t, src.ReadFrame(&frame))
	require.Equal(t, DEAD_PIXEL_SENTINEL, frame[0])
	require.Equal(t, DEAD_PIXEL_SENTINEL, frame[42])
	require.Equal(t, DEAD_PIXEL_SENTINEL, frame[767])
	require.NotEqual(t, DEAD_PIXEL_SENTINEL, frame[100])
}
