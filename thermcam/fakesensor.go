package thermcam

import (
	"math"
	"time"
)

// FakeSensor synthesizes frames for hardware-less runs and tests: an
// ambient field with a hot spot orbiting the center, plus an optional
// set of permanently dead cells reported with the sentinel value.
type FakeSensor struct {
	Ambient   float64
	Amplitude float64
	DeadCells []int

	// Period paces ReadFrame like a real sensor would; zero disables
	// pacing (tests).
	Period time.Duration

	start    time.Time
	lastRead time.Time
}

func NewFakeSensor(period time.Duration, deadCells ...int) *FakeSensor {
	return &FakeSensor{
		Ambient:   22.0,
		Amplitude: 15.0,
		DeadCells: deadCells,
		Period:    period,
		start:     time.Now(),
	}
}

func (f *FakeSensor) ReadFrame(frame *RawFrame) error {
	if f.Period > 0 {
		if wait := f.Period - time.Since(f.lastRead); wait > 0 {
			time.Sleep(wait)
		}
		f.lastRead = time.Now()
	}

	t := time.Since(f.start).Seconds()
	cx := float64(SENSOR_FRAME_WIDTH)/2 + 8*math.Cos(t/2)
	cy := float64(SENSOR_FRAME_HEIGHT)/2 + 5*math.Sin(t/2)

	for row := 0; row < SENSOR_FRAME_HEIGHT; row++ {
		for col := 0; col < SENSOR_FRAME_WIDTH; col++ {
			dx := float64(col) - cx
			dy := float64(row) - cy
			frame[row*SENSOR_FRAME_WIDTH+col] = f.Ambient +
				f.Amplitude*math.Exp(-(dx*dx+dy*dy)/30)
		}
	}
	for _, i := range f.DeadCells {
		if i >= 0 && i < SENSOR_FRAME_SIZE {
			frame[i] = DEAD_PIXEL_SENTINEL
		}
	}
	return nil
}

func (f *FakeSensor) Close() error {
	return nil
}
