package thermcam

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepairDeadPixelsNoSentinel(t *testing.T) {
	var frame RawFrame
	for i := range frame {
		frame[i] = 20 + float64(i%10)
	}
	grid := Rescale(frame, GetTemperatureRange(frame, true))
	before := grid

	RepairDeadPixels(frame, &grid)
	require.Equal(t, before, grid)
}

func TestRepairDeadPixelInterior(t *testing.T) {
	var frame RawFrame
	for i := range frame {
		frame[i] = 25
	}
	idx := 5*SENSOR_FRAME_WIDTH + 5
	frame[idx] = DEAD_PIXEL_SENTINEL

	var grid NormalizedGrid
	for i := range grid {
		grid[i] = uint8(i % 97)
	}

	// Full 3x3 neighborhood including the faulty cell itself, divided
	// by 8.
	var sum int
	for r := 4; r <= 6; r++ {
		for c := 4; c <= 6; c++ {
			sum += int(grid[r*SENSOR_FRAME_WIDTH+c])
		}
	}
	want := uint8(sum / 8)

	RepairDeadPixels(frame, &grid)
	require.Equal(t, want, grid[idx])
}

func TestRepairDeadPixelsCascade(t *testing.T) {
	var frame RawFrame
	for i := range frame {
		frame[i] = 25
	}
	a := 5*SENSOR_FRAME_WIDTH + 5
	b := a + 1
	frame[a] = DEAD_PIXEL_SENTINEL
	frame[b] = DEAD_PIXEL_SENTINEL

	var grid NormalizedGrid
	for i := range grid {
		grid[i] = 100
	}
	grid[a] = 0
	grid[b] = 0

	RepairDeadPixels(frame, &grid)

	// First cell: 7 healthy neighbors at 100 plus two zeros -> 700/8.
	require.Equal(t, uint8(87), grid[a])
	// Second cell sees the first one already repaired: 787/8, not the
	// 700/8 a snapshot-based repair would give.
	require.Equal(t, uint8(98), grid[b])
}

func TestRepairDeadPixelCorner(t *testing.T) {
	var frame RawFrame
	for i := range frame {
		frame[i] = 25
	}
	frame[0] = DEAD_PIXEL_SENTINEL

	var grid NormalizedGrid
	for i := range grid {
		grid[i] = 100
	}
	grid[0] = 0

	// 2x2 neighborhood, divisor 3.
	RepairDeadPixels(frame, &grid)
	require.Equal(t, uint8(100), grid[0])
}

func TestRepairDeadPixelClampsHighAverage(t *testing.T) {
	var frame RawFrame
	for i := range frame {
		frame[i] = 25
	}
	idx := 10*SENSOR_FRAME_WIDTH + 10
	frame[idx] = DEAD_PIXEL_SENTINEL

	var grid NormalizedGrid
	for i := range grid {
		grid[i] = 255
	}

	// 9*255/8 would overflow a byte; the repaired value saturates.
	RepairDeadPixels(frame, &grid)
	require.Equal(t, uint8(255), grid[idx])
}
