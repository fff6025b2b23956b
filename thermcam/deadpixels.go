package thermcam

// RepairDeadPixels patches every cell whose raw reading is the dead
// pixel sentinel. The patch is applied to the rescaled grid in place,
// in row-major order, so a cell repaired earlier in the pass is seen by
// a later neighbor's averaging; adjacent dead pixels cascade instead of
// averaging against each other's faulty values.
//
// The replacement is the sum of the up-to-3x3 neighborhood (clipped at
// the borders, the faulty cell itself included) divided by
// (neighborhood size - 1). The self-inclusive sum over a reduced
// divisor is deliberate and must stay bit-compatible with the
// historical behavior.
func RepairDeadPixels(frame RawFrame, grid *NormalizedGrid) {
	for i := 0; i < SENSOR_FRAME_SIZE; i++ {
		if frame[i] != DEAD_PIXEL_SENTINEL {
			continue
		}
		row := i / SENSOR_FRAME_WIDTH
		col := i % SENSOR_FRAME_WIDTH

		r0, r1 := row-1, row+2
		if r0 < 0 {
			r0 = 0
		}
		if r1 > SENSOR_FRAME_HEIGHT {
			r1 = SENSOR_FRAME_HEIGHT
		}
		c0, c1 := col-1, col+2
		if c0 < 0 {
			c0 = 0
		}
		if c1 > SENSOR_FRAME_WIDTH {
			c1 = SENSOR_FRAME_WIDTH
		}

		var sum, count int
		for r := r0; r < r1; r++ {
			for c := c0; c < c1; c++ {
				sum += int(grid[r*SENSOR_FRAME_WIDTH+c])
				count++
			}
		}

		// Corners still have 4 neighborhood cells, so the divisor
		// is never below 3.
		avg := sum / (count - 1)
		if avg > 255 {
			avg = 255
		}
		grid[i] = uint8(avg)
	}
}
