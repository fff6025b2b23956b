package thermcam

import "math"

// GetTemperatureRange computes the frame's displayed temperature range.
// With excludeDeadPixels, Min only considers cells above
// DEAD_PIXEL_MIN_TEMP so sentinel and garbage cells do not drag the
// scale down. Max is always taken over every cell, faulty ones
// included, so a genuinely hot cell is never hidden; the asymmetry is
// part of the contract.
func GetTemperatureRange(frame RawFrame, excludeDeadPixels bool) TemperatureRange {
	min := math.MaxFloat64
	max := -math.MaxFloat64
	minFound := false

	for _, t := range frame {
		if math.IsNaN(t) {
			continue
		}
		if t > max {
			max = t
		}
		if excludeDeadPixels && t <= DEAD_PIXEL_MIN_TEMP {
			continue
		}
		if t < min {
			min = t
		}
		minFound = true
	}

	// Every cell dead: fall back to the unfiltered minimum so the
	// pipeline still yields a well-formed range.
	if !minFound {
		for _, t := range frame {
			if math.IsNaN(t) {
				continue
			}
			if t < min {
				min = t
			}
		}
	}

	return TemperatureRange{Min: min, Max: max}
}

// Rescale converts temperatures to pixel intensities:
// (t - min) * 255 / (max - min), truncated and clamped to [0, 255].
// NaN cells are zeroed first. A flat frame (max == min) rescales to all
// zeros instead of dividing by zero.
func Rescale(frame RawFrame, rng TemperatureRange) NormalizedGrid {
	var grid NormalizedGrid

	span := rng.Max - rng.Min
	if span <= 0 || math.IsNaN(span) {
		return grid
	}

	for i, t := range frame {
		if math.IsNaN(t) {
			t = 0
		}
		v := (t - rng.Min) * 255 / span
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		grid[i] = uint8(v)
	}
	return grid
}

// CToF converts a Celsius temperature for display purposes only.
func CToF(temp float64) float64 {
	return temp*9/5 + 32
}

// MeanTemperature returns the mean over the whole field of view in
// both Celsius and Fahrenheit.
func MeanTemperature(frame RawFrame) (float64, float64) {
	var sum float64
	for _, t := range frame {
		sum += t
	}
	meanC := sum / SENSOR_FRAME_SIZE
	return meanC, CToF(meanC)
}
