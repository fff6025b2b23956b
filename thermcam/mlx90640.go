package thermcam

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

const (
	MLX90640_I2C_ADDR = 0x33

	MLX90640_REG_STATUS  = 0x8000
	MLX90640_REG_CONTROL = 0x800D
	MLX90640_RAM_START   = 0x0400

	MLX90640_STATUS_NEW_DATA     = 1 << 3
	MLX90640_STATUS_SUBPAGE_MASK = 0x0001

	// Refresh rate lives in control register bits 7-9.
	MLX90640_CONTROL_RATE_SHIFT = 7
	MLX90640_CONTROL_RATE_MASK  = 0x7 << MLX90640_CONTROL_RATE_SHIFT

	// Words per I2C transaction when draining the pixel RAM. The
	// full frame is 768 words; Raspberry Pi I2C blocks are happier
	// with bounded transfers.
	MLX90640_RAM_READ_CHUNK = 64

	// An open/shorted pixel reads as the maximum positive ADC code.
	MLX90640_BROKEN_PIXEL_WORD = 0x7FFF

	MLX90640_DATA_WAIT_TIMEOUT = 2 * time.Second
	MLX90640_DATA_POLL_DELAY   = 10 * time.Millisecond
)

// Coarse raw-to-Celsius conversion around ambient. The full Melexis
// per-pixel calibration (EEPROM offsets, Ta compensation, emissivity)
// is deliberately not implemented here; readings are approximate and
// the renderer only needs relative structure.
const (
	MLX90640_COARSE_SCALE  = 0.02
	MLX90640_COARSE_OFFSET = 25.0
)

// MLX90640 reads frames from the 24x32 thermal sensor over I2C. The
// sensor exposes pixels in two interleaved chess-pattern subpages; a
// full frame is assembled from one read of each.
type MLX90640 struct {
	dev    i2c.Dev
	closer i2c.BusCloser
	pixels RawFrame
}

// NewMLX90640 opens the named I2C bus (empty string selects the first
// available one) and configures the requested refresh rate.
func NewMLX90640(busName string, refreshHz int) (*MLX90640, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}
	m, err := NewMLX90640FromBus(bus, refreshHz)
	if err != nil {
		bus.Close()
		return nil, err
	}
	m.closer = bus
	return m, nil
}

// NewMLX90640FromBus wires the sensor on an already opened bus. Used
// directly by tests with a playback bus.
func NewMLX90640FromBus(bus i2c.Bus, refreshHz int) (*MLX90640, error) {
	m := &MLX90640{dev: i2c.Dev{Bus: bus, Addr: MLX90640_I2C_ADDR}}

	control, err := m.readWord(MLX90640_REG_CONTROL)
	if err != nil {
		return nil, fmt.Errorf("read control register: %w", err)
	}
	control = control&^uint16(MLX90640_CONTROL_RATE_MASK) |
		refreshRateCode(refreshHz)<<MLX90640_CONTROL_RATE_SHIFT
	if err := m.writeWord(MLX90640_REG_CONTROL, control); err != nil {
		return nil, fmt.Errorf("set refresh rate: %w", err)
	}
	return m, nil
}

// refreshRateCode maps Hz to the control register code (0.5 Hz is code
// 0, each step doubles). Unsupported values fall back to 8 Hz.
func refreshRateCode(hz int) uint16 {
	switch hz {
	case 1:
		return 1
	case 2:
		return 2
	case 4:
		return 3
	case 8:
		return 4
	case 16:
		return 5
	case 32:
		return 6
	case 64:
		return 7
	default:
		return 4
	}
}

// ReadFrame assembles one full frame by waiting for and draining both
// subpages, then converting words to Celsius. Pixels flagged as broken
// by the ADC are reported with DEAD_PIXEL_SENTINEL so the repair stage
// can patch them.
func (m *MLX90640) ReadFrame(frame *RawFrame) error {
	for page := 0; page < 2; page++ {
		subpage, err := m.waitNewData()
		if err != nil {
			return err
		}
		words, err := m.readWords(MLX90640_RAM_START, SENSOR_FRAME_SIZE)
		if err != nil {
			return fmt.Errorf("read pixel ram: %w", err)
		}
		// Clear the new-data flag to arm the next subpage.
		if err := m.writeWord(MLX90640_REG_STATUS, 0); err != nil {
			return fmt.Errorf("clear status: %w", err)
		}

		for i, w := range words {
			row := i / SENSOR_FRAME_WIDTH
			col := i % SENSOR_FRAME_WIDTH
			if (row+col)%2 != subpage {
				continue
			}
			if w == MLX90640_BROKEN_PIXEL_WORD {
				m.pixels[i] = DEAD_PIXEL_SENTINEL
				continue
			}
			m.pixels[i] = MLX90640_COARSE_OFFSET + float64(int16(w))*MLX90640_COARSE_SCALE
		}
	}
	*frame = m.pixels
	return nil
}

func (m *MLX90640) Close() error {
	if m.closer != nil {
		return m.closer.Close()
	}
	return nil
}

// waitNewData polls the status register until a subpage is ready and
// returns which one.
func (m *MLX90640) waitNewData() (int, error) {
	deadline := time.Now().Add(MLX90640_DATA_WAIT_TIMEOUT)
	for {
		status, err := m.readWord(MLX90640_REG_STATUS)
		if err != nil {
			return 0, fmt.Errorf("read status: %w", err)
		}
		if status&MLX90640_STATUS_NEW_DATA != 0 {
			return int(status & MLX90640_STATUS_SUBPAGE_MASK), nil
		}
		if time.Now().After(deadline) {
			return 0, fmt.Errorf("timeout waiting for frame data")
		}
		time.Sleep(MLX90640_DATA_POLL_DELAY)
	}
}

func (m *MLX90640) readWord(reg uint16) (uint16, error) {
	words, err := m.readWords(reg, 1)
	if err != nil {
		return 0, err
	}
	return words[0], nil
}

func (m *MLX90640) readWords(reg uint16, n int) ([]uint16, error) {
	words := make([]uint16, 0, n)
	for off := 0; off < n; off += MLX90640_RAM_READ_CHUNK {
		count := n - off
		if count > MLX90640_RAM_READ_CHUNK {
			count = MLX90640_RAM_READ_CHUNK
		}
		addr := reg + uint16(off)
		w := []byte{byte(addr >> 8), byte(addr)}
		r := make([]byte, 2*count)
		if err := m.dev.Tx(w, r); err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			words = append(words, uint16(r[2*i])<<8|uint16(r[2*i+1]))
		}
	}
	return words, nil
}

func (m *MLX90640) writeWord(reg uint16, value uint16) error {
	w := []byte{byte(reg >> 8), byte(reg), byte(value >> 8), byte(value)}
	return m.dev.Tx(w, nil)
}
