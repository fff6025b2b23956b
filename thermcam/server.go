package thermcam

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/maruel/interrupt"
)

const streamPage = `<!DOCTYPE html>
<html>
<head><title>Thermal Camera</title></head>
<body style="margin:0;background:#111">
<img src="/stream" style="display:block;margin:auto"/>
</body>
</html>
`

// StreamServer serves the latest composed frame as an MJPEG stream that
// any browser renders without client-side code.
type StreamServer struct {
	cond  sync.Cond
	frame []byte
	seq   int
}

func StartStreamServer(addr string) *StreamServer {
	s := &StreamServer{cond: *sync.NewCond(&sync.Mutex{})}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.root)
	mux.HandleFunc("/stream", s.stream)

	INFOLogger.Printf("HTTP stream listening on %s", addr)
	go func() {
		if err := http.ListenAndServe(addr, loggingHandler{mux}); err != nil {
			ERRORLogger.Printf("HTTP server stopped: %v", err)
		}
	}()
	// Unblock stream handlers on shutdown so connections drain.
	go func() {
		<-interrupt.Channel
		s.cond.Broadcast()
	}()
	return s
}

// SetFrame publishes the latest JPEG bytes to all connected streams.
func (s *StreamServer) SetFrame(jpeg []byte) {
	s.cond.L.Lock()
	s.frame = jpeg
	s.seq++
	s.cond.L.Unlock()
	s.cond.Broadcast()
}

func (s *StreamServer) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, streamPage)
}

func (s *StreamServer) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	last := 0
	for !interrupt.IsSet() {
		s.cond.L.Lock()
		for s.seq == last && !interrupt.IsSet() {
			s.cond.Wait()
		}
		frame := s.frame
		last = s.seq
		s.cond.L.Unlock()

		if len(frame) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(frame)); err != nil {
			return
		}
		if _, err := w.Write(frame); err != nil {
			return
		}
		if _, err := fmt.Fprint(w, "\r\n"); err != nil {
			return
		}
		flusher.Flush()
	}
}

// Private details.

type loggingHandler struct {
	handler http.Handler
}

type loggingResponseWriter struct {
	http.ResponseWriter
	length int
	status int
}

func (l *loggingResponseWriter) Write(data []byte) (int, error) {
	size, err := l.ResponseWriter.Write(data)
	l.length += size
	return size, err
}

func (l *loggingResponseWriter) WriteHeader(status int) {
	l.ResponseWriter.WriteHeader(status)
	l.status = status
}

// Flush is needed for the MJPEG stream handler.
func (l *loggingResponseWriter) Flush() {
	if f, ok := l.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (l loggingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lrw := &loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}
	l.handler.ServeHTTP(lrw, r)
	if LOG_LEVEL <= DEBUG_LEVEL {
		DEBUGLogger.Printf("%s - %3d %6db %4s %s", r.RemoteAddr, lrw.status, lrw.length, r.Method, r.RequestURI)
	}
}
