package thermcam

import (
	"image"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/maruel/interrupt"
	"gocv.io/x/gocv"
)

// CameraLoop drives the per-frame pipeline at sensor rate: capture
// (with bounded retry), process, publish to the stream server and the
// broker, and optionally display in a window with keyboard control.
type CameraLoop struct {
	cfg    Config
	src    FrameSource
	pipe   *Pipeline
	state  *RenderState
	server *StreamServer
	mqtt   mqtt.Client
}

func NewCameraLoop(cfg Config, src FrameSource, server *StreamServer, mqttClient mqtt.Client) *CameraLoop {
	return &CameraLoop{
		cfg:    cfg,
		src:    src,
		pipe:   NewPipeline(),
		state:  NewRenderState(),
		server: server,
		mqtt:   mqttClient,
	}
}

// State exposes the render state for host-driven mode switching.
func (l *CameraLoop) State() *RenderState {
	return l.state
}

// Run loops until interrupted. A capture that keeps failing past the
// retry budget re-renders the previous frame so the output stream never
// stalls on a transient sensor fault.
func (l *CameraLoop) Run() error {
	outputSize := image.Pt(l.cfg.ImageWidth, l.cfg.ImageHeight)

	var window *gocv.Window
	if l.cfg.Display {
		window = gocv.NewWindow("Thermal Image")
		window.ResizeWindow(l.cfg.ImageWidth, l.cfg.ImageHeight)
		defer window.Close()
		l.printShortcutKeys()
	}

	t0 := time.Now()
	for i := 0; !interrupt.IsSet(); i++ {
		var frame RawFrame
		var img gocv.Mat

		err := ReadFrameWithRetry(l.src, &frame, SENSOR_READ_RETRIES)
		if err != nil {
			WARNINGLogger.Printf("No new frame this cycle: %v", err)
			img, err = l.pipe.RenderCurrent(l.state, outputSize, l.cfg.Colorbar)
			if err != nil {
				// Nothing processed yet, nothing to show.
				continue
			}
		} else {
			img, err = l.pipe.ProcessFrame(frame[:], l.state, outputSize, l.cfg.Colorbar)
			if err != nil {
				ERRORLogger.Printf("Frame processing failed: %v", err)
				continue
			}
		}

		l.publish(img, i, int(time.Since(t0).Milliseconds()))

		if window != nil {
			window.IMShow(img)
			key := window.WaitKey(1)
			if exit := l.handleKey(key, img); exit {
				img.Close()
				break
			}
		}
		img.Close()
	}
	return nil
}

func (l *CameraLoop) publish(img gocv.Mat, i, timestampMs int) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		ERRORLogger.Printf("JPEG encode failed: %v", err)
		return
	}
	jpegBytes := make([]byte, len(buf.GetBytes()))
	copy(jpegBytes, buf.GetBytes())
	buf.Close()

	if l.server != nil {
		l.server.SetFrame(jpegBytes)
	}
	if l.mqtt != nil {
		PublishImage(l.mqtt, l.cfg.MQTTImageTopic, jpegBytes)
		rng := l.pipe.LastRange()
		err := PublishFrameStats(l.mqtt, l.cfg.MQTTStatsTopic, FrameStatsMessage{
			I:         i,
			Timestamp: timestampMs,
			TempMin:   rng.Min,
			TempMax:   rng.Max,
		})
		if err != nil {
			ERRORLogger.Printf("Stats publish failed: %v", err)
		}
	}
}

// handleKey maps the window keyboard shortcuts onto the RenderState
// operations; the render core itself never reads input.
func (l *CameraLoop) handleKey(key int, img gocv.Mat) bool {
	switch key {
	case 's':
		path, err := SaveSnapshot(img, l.cfg.SnapshotFolder)
		if err != nil {
			ERRORLogger.Printf("Snapshot save failed: %v", err)
			return false
		}
		l.pipe.NoteSnapshotSaved()
		INFOLogger.Printf("Thermal image saved: %s", path)
	case 'c':
		l.state.CycleColormap(true)
	case 'x':
		l.state.CycleColormap(false)
	case 'f':
		l.state.ToggleFilter()
	case 't':
		l.state.ToggleUnit()
	case 'u':
		l.state.CycleInterpolation(true)
	case 'i':
		l.state.CycleInterpolation(false)
	case 27: // escape
		INFOLogger.Println("Exit requested from keyboard")
		return true
	}
	return false
}

func (l *CameraLoop) printShortcutKeys() {
	INFOLogger.Println("Keyboard shortcuts during a run:")
	INFOLogger.Println("Esc - Exit and Close")
	INFOLogger.Println("S - Save a Snapshot of the Current Frame")
	INFOLogger.Println("C - Cycle the Colormap Forward")
	INFOLogger.Println("X - Cycle the Colormap Backwards")
	INFOLogger.Println("F - Toggle Filtering On/Off")
	INFOLogger.Println("T - Toggle Temperature Units between C/F")
	INFOLogger.Println("U - Change the Interpolation Algorithm Used")
	INFOLogger.Println("I - Go Back to the Previous Interpolation Algorithm")
}
