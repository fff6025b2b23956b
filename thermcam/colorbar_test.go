package thermcam

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestColorbarTicks(t *testing.T) {
	rng := TemperatureRange{Min: 10.2, Max: 30.7}
	ticks, positions := colorbarTicks(rng, 5, 30, 500)

	require.Equal(t, []int{15, 20, 25, 30}, ticks)
	require.Len(t, positions, 4)
	// Hotter ticks sit nearer the top.
	for i := 1; i < len(positions); i++ {
		require.Less(t, positions[i], positions[i-1])
	}
	for _, p := range positions {
		require.GreaterOrEqual(t, p, 30)
		require.LessOrEqual(t, p, 530)
	}
}

func TestColorbarTicksExactMultipleIsExcluded(t *testing.T) {
	// Min exactly on a multiple: first tick is strictly above it.
	ticks, _ := colorbarTicks(TemperatureRange{Min: 15, Max: 30}, 5, 10, 100)
	require.Equal(t, []int{20, 25, 30}, ticks)
}

func TestColorbarTicksDegenerateRange(t *testing.T) {
	ticks, positions := colorbarTicks(TemperatureRange{Min: 25, Max: 25}, 5, 30, 500)
	require.Empty(t, ticks)
	require.Empty(t, positions)
}

func TestColorbarTicksNegativeRange(t *testing.T) {
	ticks, _ := colorbarTicks(TemperatureRange{Min: -7, Max: 6}, 5, 10, 100)
	require.Equal(t, []int{-5, 0, 5}, ticks)
}

func TestBuildColorbarGeometry(t *testing.T) {
	spec := ColorbarSpec{Width: 40, VMargin: 20, HMargin: 60, TickStep: 5}
	bar := BuildColorbar(480, TemperatureRange{Min: 20, Max: 30}, gocv.ColormapJet, spec)
	defer bar.Close()

	require.Equal(t, 480, bar.Rows())
	require.Equal(t, 100, bar.Cols())
	require.Equal(t, gocv.MatTypeCV8UC3, bar.Type())
}

func TestBuildColorbarDegenerateRangeDoesNotPanic(t *testing.T) {
	spec := ColorbarSpec{Width: 40, VMargin: 20, HMargin: 60, TickStep: 5}
	bar := BuildColorbar(480, TemperatureRange{Min: 25, Max: 25}, gocv.ColormapJet, spec)
	defer bar.Close()
	require.False(t, bar.Empty())
}
