package thermcam

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"
)

const (
	// Fixed magnification factors for the secondary-resample modes.
	// Pure keeps the magnified size as the output; mixed resizes the
	// colorized result down/up to the configured output size.
	PURE_RESAMPLE_FACTOR  = 25
	MIXED_RESAMPLE_FACTOR = 10

	// Edge-preserving smoothing used to suppress upscaling block
	// artifacts when filtering is toggled on.
	BILATERAL_FILTER_DIAMETER = 15
	BILATERAL_FILTER_SIGMA    = 80

	SNAPSHOT_NOTE_DURATION = 1 * time.Second
)

// Renderer turns a NormalizedGrid into the colorized, mirrored,
// annotated output canvas. It keeps the wall-clock instant of the
// previous render (for the FPS overlay) and the monotonic instant of
// the last snapshot save (for the transient notification).
type Renderer struct {
	lastRender time.Time
	savedAt    time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{lastRender: time.Now()}
}

// NoteSnapshotSaved records the save instant; the next renders overlay
// a notification for up to SNAPSHOT_NOTE_DURATION.
func (r *Renderer) NoteSnapshotSaved() {
	r.savedAt = time.Now()
}

// Render colorizes and upscales the grid according to the active
// RenderState, mirrors it horizontally to correct for the sensor
// mounting orientation, optionally filters it, and draws the overlay
// text. The returned Mat is owned by the caller.
func (r *Renderer) Render(grid NormalizedGrid, state *RenderState, rng TemperatureRange, outputSize image.Point) gocv.Mat {
	small, err := gocv.NewMatFromBytes(SENSOR_FRAME_HEIGHT, SENSOR_FRAME_WIDTH, gocv.MatTypeCV8UC1, grid[:])
	if err != nil {
		// Cannot happen with a [768]uint8 backing array.
		ERRORLogger.Panic(err)
	}
	defer small.Close()

	img := gocv.NewMat()

	// The colormap cannot be applied before the secondary resampler
	// without losing the smooth gradient, so the first two branches
	// colorize after magnification.
	switch state.InterpolationIndex {
	case INTERPOLATION_PURE_RESAMPLE:
		magnified := gocv.NewMat()
		gocv.Resize(small, &magnified, image.Pt(
			SENSOR_FRAME_WIDTH*PURE_RESAMPLE_FACTOR,
			SENSOR_FRAME_HEIGHT*PURE_RESAMPLE_FACTOR,
		), 0, 0, gocv.InterpolationLanczos4)
		gocv.ApplyColorMap(magnified, &img, state.Colormap())
		magnified.Close()
	case INTERPOLATION_MIXED_RESAMPLE:
		magnified := gocv.NewMat()
		gocv.Resize(small, &magnified, image.Pt(
			SENSOR_FRAME_WIDTH*MIXED_RESAMPLE_FACTOR,
			SENSOR_FRAME_HEIGHT*MIXED_RESAMPLE_FACTOR,
		), 0, 0, gocv.InterpolationLanczos4)
		colored := gocv.NewMat()
		gocv.ApplyColorMap(magnified, &colored, state.Colormap())
		magnified.Close()
		gocv.Resize(colored, &img, outputSize, 0, 0, gocv.InterpolationCubic)
		colored.Close()
	default:
		colored := gocv.NewMat()
		gocv.ApplyColorMap(small, &colored, state.Colormap())
		gocv.Resize(colored, &img, outputSize, 0, 0, CAMERA_INTERPOLATIONS[state.InterpolationIndex])
		colored.Close()
	}

	gocv.Flip(img, &img, 1)

	if state.FilterEnabled {
		filtered := gocv.NewMat()
		gocv.BilateralFilter(img, &filtered,
			BILATERAL_FILTER_DIAMETER, BILATERAL_FILTER_SIGMA, BILATERAL_FILTER_SIGMA)
		img.Close()
		img = filtered
	}

	elapsed := time.Since(r.lastRender).Seconds()
	r.lastRender = time.Now()
	var fps float64
	if elapsed > 0 {
		fps = 1 / elapsed
	}

	white := color.RGBA{255, 255, 255, 0}
	gocv.PutText(&img, overlayText(rng, state, fps),
		image.Pt(20, 18), gocv.FontHersheySimplex, 0.48, white, 2)

	if !r.savedAt.IsZero() && time.Since(r.savedAt) < SNAPSHOT_NOTE_DURATION {
		gocv.PutText(&img, "Snapshot Saved!",
			image.Pt(300, 300), gocv.FontHersheySimplex, 0.8, white, 2)
	}

	return img
}

// overlayText formats the status line drawn in the top-left corner.
// Temperatures are unit-converted for display only.
func overlayText(rng TemperatureRange, state *RenderState, fps float64) string {
	disp := displayRange(rng, state.Unit)
	return fmt.Sprintf("Tmin=%+.1f%s - Tmax=%+.1f%s - FPS=%.1f - Interpo: %s - Cmap: %s - Filtered: %t",
		disp.Min, state.Unit, disp.Max, state.Unit, fps,
		state.InterpolationName(), state.ColormapName(), state.FilterEnabled)
}

func displayRange(rng TemperatureRange, unit TemperatureUnit) TemperatureRange {
	if unit == UnitFahrenheit {
		return TemperatureRange{Min: CToF(rng.Min), Max: CToF(rng.Max)}
	}
	return rng
}
