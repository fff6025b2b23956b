package thermcam

import "errors"

const (
	SENSOR_FRAME_WIDTH  = 32
	SENSOR_FRAME_HEIGHT = 24
	SENSOR_FRAME_SIZE   = SENSOR_FRAME_WIDTH * SENSOR_FRAME_HEIGHT
)

// DEAD_PIXEL_SENTINEL is the per-cell value the sensor transport writes
// when a cell could not be read (absolute zero, never a real reading).
const DEAD_PIXEL_SENTINEL = -273.15

// DEAD_PIXEL_MIN_TEMP is the floor below which a cell is treated as
// garbage when computing the displayed minimum temperature.
const DEAD_PIXEL_MIN_TEMP = -50.0

// RawFrame is one capture cycle worth of Celsius readings, row-major.
type RawFrame [SENSOR_FRAME_SIZE]float64

// NormalizedGrid is the 8-bit intensity grid derived from a RawFrame.
// It is owned by the current pipeline run and overwritten each cycle.
type NormalizedGrid [SENSOR_FRAME_SIZE]uint8

type TemperatureRange struct {
	Min float64
	Max float64
}

// ColorbarSpec is the read-only legend configuration loaded at startup.
type ColorbarSpec struct {
	Width    int
	VMargin  int
	HMargin  int
	TickStep int
}

// FrameStatsMessage is published over MQTT once per frame.
type FrameStatsMessage struct {
	I         int     `json:"i"`
	Timestamp int     `json:"timestamp"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
}

var (
	// ErrInvalidFrameShape signals a collaborator contract violation:
	// the capture layer handed over something that is not a 24x32 frame.
	ErrInvalidFrameShape = errors.New("thermcam: frame is not 24x32")

	// ErrNoFrame is returned when a re-render is requested before any
	// frame has been processed.
	ErrNoFrame = errors.New("thermcam: no frame processed yet")
)
