package thermcam

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// colorbarTicks computes the tick temperatures and their vertical pixel
// positions on the bar. Ticks are the integer multiples of step
// strictly greater than rng.Min, up to the largest multiple not above
// rng.Max. Positions interpolate linearly between the bottom of the bar
// (rng.Min) and its top (rng.Max), so hotter ticks sit nearer the top.
// A degenerate range yields no ticks.
func colorbarTicks(rng TemperatureRange, step, vMargin, barHeight int) ([]int, []int) {
	if step <= 0 {
		return nil, nil
	}
	span := rng.Max - rng.Min
	if !(span > 0) {
		return nil, nil
	}

	fstep := float64(step)
	start := math.Floor(rng.Min/fstep)*fstep + fstep
	stop := math.Floor(rng.Max/fstep)*fstep + fstep

	var ticks, positions []int
	for t := start; t < stop; t += fstep {
		// Bottom bound at Min, top bound at Max, exactly the
		// inverted linear map.
		p := float64(vMargin+barHeight) - (t-rng.Min)/span*float64(barHeight)
		if p < float64(vMargin) {
			p = float64(vMargin)
		}
		ticks = append(ticks, int(t))
		positions = append(positions, int(p))
	}
	return ticks, positions
}

// BuildColorbar renders the tick-labeled legend strip: a vertical
// gradient spanning the full colormap (hottest at the top) on a white
// canvas, with one label per tick. The canvas is exactly refHeight tall
// so it concatenates cleanly to the right of the rendered frame; the
// vertical margins come out of the bar, not added around it. The caller
// owns the returned Mat.
func BuildColorbar(refHeight int, rng TemperatureRange, colormap gocv.ColormapTypes, spec ColorbarSpec) gocv.Mat {
	vMargin := spec.VMargin
	barHeight := refHeight - 2*vMargin
	if barHeight < 1 {
		// Image too short for the configured margins; drop them.
		vMargin = 0
		barHeight = refHeight
	}

	// 256 gradient steps, 255 down to 0 top-to-bottom.
	gradient := make([]byte, 256)
	for i := range gradient {
		gradient[i] = byte(255 - i)
	}
	column, err := gocv.NewMatFromBytes(256, 1, gocv.MatTypeCV8UC1, gradient)
	if err != nil {
		ERRORLogger.Panic(err)
	}
	defer column.Close()

	colored := gocv.NewMat()
	gocv.ApplyColorMap(column, &colored, colormap)
	defer colored.Close()

	bar := gocv.NewMat()
	gocv.Resize(colored, &bar, image.Pt(spec.Width, barHeight), 0, 0, gocv.InterpolationLinear)
	defer bar.Close()

	canvas := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(255, 255, 255, 0),
		refHeight,
		spec.Width+spec.HMargin,
		gocv.MatTypeCV8UC3,
	)

	roi := canvas.Region(image.Rect(0, vMargin, spec.Width, vMargin+barHeight))
	bar.CopyTo(&roi)
	roi.Close()

	ticks, positions := colorbarTicks(rng, spec.TickStep, vMargin, barHeight)
	black := color.RGBA{0, 0, 0, 0}
	for i, t := range ticks {
		gocv.PutText(&canvas, fmt.Sprintf("_ %d", t),
			image.Pt(spec.Width, positions[i]),
			gocv.FontHersheySimplex, 0.8, black, 2)
	}

	return canvas
}
