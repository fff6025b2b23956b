package thermcam

import (
	"image"

	"gocv.io/x/gocv"
)

// Pipeline is the per-frame processing chain: temperature range,
// rescale, dead pixel repair, render, colorbar. It keeps the last
// normalized grid and range so a capture cycle that produced no new
// frame can re-render the previous data without repeating repair and
// normalization. One Pipeline serves one session, single-threaded.
type Pipeline struct {
	renderer  *Renderer
	lastGrid  NormalizedGrid
	lastRange TemperatureRange
	hasFrame  bool
}

func NewPipeline() *Pipeline {
	return &Pipeline{renderer: NewRenderer()}
}

// ProcessFrame runs the full chain on one capture. The only error a
// well-shaped frame can produce is none at all: degenerate ranges and
// dead cells degrade to defined fallbacks, never to failures. A frame
// of the wrong shape is a collaborator bug and surfaces as
// ErrInvalidFrameShape.
func (p *Pipeline) ProcessFrame(frame []float64, state *RenderState, outputSize image.Point, spec ColorbarSpec) (gocv.Mat, error) {
	if len(frame) != SENSOR_FRAME_SIZE {
		return gocv.Mat{}, ErrInvalidFrameShape
	}
	var raw RawFrame
	copy(raw[:], frame)

	rng := GetTemperatureRange(raw, true)
	grid := Rescale(raw, rng)
	RepairDeadPixels(raw, &grid)

	p.lastGrid = grid
	p.lastRange = rng
	p.hasFrame = true

	return p.compose(state, outputSize, spec), nil
}

// RenderCurrent re-renders the previously processed frame, e.g. when
// the sensor reported "no new frame" for this cycle or when only the
// RenderState changed. Repair and normalization are not re-run.
func (p *Pipeline) RenderCurrent(state *RenderState, outputSize image.Point, spec ColorbarSpec) (gocv.Mat, error) {
	if !p.hasFrame {
		return gocv.Mat{}, ErrNoFrame
	}
	return p.compose(state, outputSize, spec), nil
}

// LastRange returns the temperature range of the last processed frame.
func (p *Pipeline) LastRange() TemperatureRange {
	return p.lastRange
}

// NoteSnapshotSaved forwards the save event to the renderer overlay.
func (p *Pipeline) NoteSnapshotSaved() {
	p.renderer.NoteSnapshotSaved()
}

func (p *Pipeline) compose(state *RenderState, outputSize image.Point, spec ColorbarSpec) gocv.Mat {
	img := p.renderer.Render(p.lastGrid, state, p.lastRange, outputSize)
	defer img.Close()

	// Colorbar labels follow the displayed unit, like the overlay.
	bar := BuildColorbar(img.Rows(), displayRange(p.lastRange, state.Unit), state.Colormap(), spec)
	defer bar.Close()

	composed := gocv.NewMat()
	gocv.Hconcat(img, bar, &composed)
	return composed
}
