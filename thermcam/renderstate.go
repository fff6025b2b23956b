package thermcam

import "gocv.io/x/gocv"

// The two secondary-resample modes have no direct gocv interpolation
// flag: they magnify the raw grid with Lanczos4 before colorizing (see
// render.go).
const (
	INTERPOLATION_PURE_RESAMPLE  = 5
	INTERPOLATION_MIXED_RESAMPLE = 6
)

var CAMERA_COLORMAPS = []gocv.ColormapTypes{
	gocv.ColormapJet,
	gocv.ColormapHot,
	gocv.ColormapRainbow,
	gocv.ColormapOcean,
	gocv.ColormapWinter,
	gocv.ColormapBone,
	gocv.ColormapCool,
	gocv.ColormapPink,
	gocv.ColormapParula,
}

var CAMERA_COLORMAP_NAMES = []string{
	"Jet",
	"Hot",
	"Rainbow",
	"Ocean",
	"Winter",
	"Bone",
	"Cool",
	"Pink",
	"Parula",
}

// Flags for the standard resize modes (indices 0-4).
var CAMERA_INTERPOLATIONS = []gocv.InterpolationFlags{
	gocv.InterpolationNearestNeighbor,
	gocv.InterpolationLinear,
	gocv.InterpolationArea,
	gocv.InterpolationCubic,
	gocv.InterpolationLanczos4,
}

var CAMERA_INTERPOLATION_NAMES = []string{
	"Nearest",
	"Inter Linear",
	"Inter Area",
	"Inter Cubic",
	"Inter Lanczos4",
	"Pure Lanczos",
	"Lanczos/Cubic Mixed",
}

type TemperatureUnit int

const (
	UnitCelsius TemperatureUnit = iota
	UnitFahrenheit
)

func (u TemperatureUnit) String() string {
	if u == UnitFahrenheit {
		return "F"
	}
	return "C"
}

// RenderState is the per-session rendering selection. It has a single
// writer: the cycle/toggle operations below, invoked serially between
// frames by the host input loop. It must not be mutated concurrently.
type RenderState struct {
	ColormapIndex      int
	InterpolationIndex int
	FilterEnabled      bool
	Unit               TemperatureUnit
}

func NewRenderState() *RenderState {
	return &RenderState{
		ColormapIndex:      0,
		InterpolationIndex: 3, // cubic
		FilterEnabled:      false,
		Unit:               UnitCelsius,
	}
}

// CycleColormap advances the colormap selection, wrapping around so the
// index is never observable out of range.
func (s *RenderState) CycleColormap(forward bool) {
	if forward {
		s.ColormapIndex++
		if s.ColormapIndex == len(CAMERA_COLORMAPS) {
			s.ColormapIndex = 0
		}
	} else {
		s.ColormapIndex--
		if s.ColormapIndex < 0 {
			s.ColormapIndex = len(CAMERA_COLORMAPS) - 1
		}
	}
}

// CycleInterpolation advances the interpolation selection with the same
// wraparound rule over the 7 modes.
func (s *RenderState) CycleInterpolation(forward bool) {
	if forward {
		s.InterpolationIndex++
		if s.InterpolationIndex == len(CAMERA_INTERPOLATION_NAMES) {
			s.InterpolationIndex = 0
		}
	} else {
		s.InterpolationIndex--
		if s.InterpolationIndex < 0 {
			s.InterpolationIndex = len(CAMERA_INTERPOLATION_NAMES) - 1
		}
	}
}

// ToggleUnit flips the displayed temperature unit. Underlying data
// stays Celsius.
func (s *RenderState) ToggleUnit() {
	if s.Unit == UnitCelsius {
		s.Unit = UnitFahrenheit
	} else {
		s.Unit = UnitCelsius
	}
}

func (s *RenderState) ToggleFilter() {
	s.FilterEnabled = !s.FilterEnabled
}

// ColormapName returns the active colormap's display name.
func (s *RenderState) ColormapName() string {
	return CAMERA_COLORMAP_NAMES[s.ColormapIndex]
}

// InterpolationName returns the active interpolation mode's display name.
func (s *RenderState) InterpolationName() string {
	return CAMERA_INTERPOLATION_NAMES[s.InterpolationIndex]
}

// Colormap returns the active gocv colormap.
func (s *RenderState) Colormap() gocv.ColormapTypes {
	return CAMERA_COLORMAPS[s.ColormapIndex]
}
