package thermcam

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetTemperatureRangeExcludesSentinelFromMin(t *testing.T) {
	var frame RawFrame
	for i := range frame {
		frame[i] = 20 + float64(i%11)
	}
	frame[100] = DEAD_PIXEL_SENTINEL

	rng := GetTemperatureRange(frame, true)
	require.GreaterOrEqual(t, rng.Min, 20.0)
	require.Equal(t, 30.0, rng.Max)
}

func TestGetTemperatureRangeMinIncludesSentinelWhenNotExcluding(t *testing.T) {
	var frame RawFrame
	for i := range frame {
		frame[i] = 25
	}
	frame[0] = DEAD_PIXEL_SENTINEL

	rng := GetTemperatureRange(frame, false)
	require.Equal(t, DEAD_PIXEL_SENTINEL, rng.Min)
}

func TestGetTemperatureRangeMaxKeepsFaultyOutlier(t *testing.T) {
	var frame RawFrame
	for i := range frame {
		frame[i] = 20 + float64(i%11)
	}
	frame[50] = DEAD_PIXEL_SENTINEL
	// An erroneously hot cell still wins the max; the min/max
	// asymmetry is deliberate.
	frame[51] = 900

	rng := GetTemperatureRange(frame, true)
	require.GreaterOrEqual(t, rng.Min, 20.0)
	require.Equal(t, 900.0, rng.Max)
}

func TestGetTemperatureRangeAllDeadFallsBack(t *testing.T) {
	var frame RawFrame
	for i := range frame {
		frame[i] = DEAD_PIXEL_SENTINEL
	}
	rng := GetTemperatureRange(frame, true)
	require.Equal(t, DEAD_PIXEL_SENTINEL, rng.Min)
	require.Equal(t, DEAD_PIXEL_SENTINEL, rng.Max)
}

func TestRescaleFlatFrameIsAllZeros(t *testing.T) {
	var frame RawFrame
	for i := range frame {
		frame[i] = 25
	}
	grid := Rescale(frame, GetTemperatureRange(frame, true))
	for _, v := range grid {
		require.Equal(t, uint8(0), v)
	}
}

func TestRescaleEndpointsAndTruncation(t *testing.T) {
	var frame RawFrame
	for i := range frame {
		frame[i] = 10
	}
	frame[0] = 0
	frame[1] = 20
	frame[2] = 10

	grid := Rescale(frame, TemperatureRange{Min: 0, Max: 20})
	require.Equal(t, uint8(0), grid[0])
	require.Equal(t, uint8(255), grid[1])
	// 10 * 255 / 20 = 127.5, truncated.
	require.Equal(t, uint8(127), grid[2])
}

func TestRescaleReplacesNaNAndClamps(t *testing.T) {
	var frame RawFrame
	for i := range frame {
		frame[i] = 0
	}
	frame[0] = math.NaN()
	frame[1] = DEAD_PIXEL_SENTINEL
	frame[2] = 10

	// Range computed excluding the sentinel: [0, 10]. NaN becomes 0,
	// the sentinel underflows and clamps to 0.
	grid := Rescale(frame, TemperatureRange{Min: 0, Max: 10})
	require.Equal(t, uint8(0), grid[0])
	require.Equal(t, uint8(0), grid[1])
	require.Equal(t, uint8(255), grid[2])
}

func TestCToF(t *testing.T) {
	require.Equal(t, 32.0, CToF(0))
	require.Equal(t, 77.0, CToF(25))
	require.Equal(t, -459.67, math.Round(CToF(DEAD_PIXEL_SENTINEL)*100)/100)
}

func TestMeanTemperature(t *testing.T) {
	var frame RawFrame
	for i := range frame {
		frame[i] = 25
	}
	c, f := MeanTemperature(frame)
	require.Equal(t, 25.0, c)
	require.Equal(t, 77.0, f)
}
