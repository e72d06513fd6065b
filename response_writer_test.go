package ware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"testing"
)

// recorder is a plain http.ResponseWriter with none of the optional interfaces.
type recorder struct {
	headers http.Header
	status  int
	body    []byte
}

func newRecorder() *recorder {
	return &recorder{headers: make(http.Header)}
}

func (r *recorder) Header() http.Header { return r.headers }

func (r *recorder) Write(b []byte) (int, error) {
	r.body = append(r.body, b...)
	return len(b), nil
}

func (r *recorder) WriteHeader(status int) { r.status = status }

// capableRecorder supports flushing, hijacking and pushing.
type capableRecorder struct {
	*recorder
	flushed    bool
	hijacked   bool
	pushTarget string
}

func (r *capableRecorder) Flush() { r.flushed = true }

func (r *capableRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	r.hijacked = true
	return nil, nil, errors.New("recorder hijack")
}

func (r *capableRecorder) Push(target string, opts *http.PushOptions) error {
	r.pushTarget = target
	return nil
}

func TestResponseWriterTracksResponse(t *testing.T) {
	rec := newRecorder()
	rw := wrapResponseWriter(rec)

	if rw.Status() != http.StatusOK {
		t.Errorf("Expected default status 200, got %d", rw.Status())
	}
	if rw.Written() || rw.Size() != 0 {
		t.Error("Fresh writer should report nothing written")
	}

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusBadRequest)
	n, err := rw.Write([]byte("created"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if n != 7 || rw.Size() != 7 {
		t.Errorf("Expected 7 bytes written, got n=%d size=%d", n, rw.Size())
	}
	if rw.Status() != http.StatusCreated || rec.status != http.StatusCreated {
		t.Errorf("Expected status 201, got %d (underlying %d)", rw.Status(), rec.status)
	}
	if !rw.Written() {
		t.Error("Written() should be true after WriteHeader")
	}
	if string(rec.body) != "created" {
		t.Errorf("Underlying writer has wrong body: %s", rec.body)
	}
}

func TestResponseWriterWriteImpliesOK(t *testing.T) {
	rw := wrapResponseWriter(newRecorder())
	rw.Write([]byte("x"))

	if !rw.Written() || rw.Status() != http.StatusOK {
		t.Errorf("Expected written 200, got written=%v status=%d", rw.Written(), rw.Status())
	}
}

func TestResponseWriterWrapsOnce(t *testing.T) {
	rw := wrapResponseWriter(newRecorder())
	if again := wrapResponseWriter(rw); again != rw {
		t.Error("Wrapping a ResponseWriter should return it unchanged")
	}
}

func TestResponseWriterUnwrap(t *testing.T) {
	rec := newRecorder()
	rw := wrapResponseWriter(rec)

	u, ok := rw.(interface{ Unwrap() http.ResponseWriter })
	if !ok {
		t.Fatal("responseWriter should implement Unwrap()")
	}
	if u.Unwrap() != rec {
		t.Error("Unwrap() should return the original ResponseWriter")
	}
}

func TestResponseWriterOptionalInterfacesSupported(t *testing.T) {
	rec := &capableRecorder{recorder: newRecorder()}
	rw := wrapResponseWriter(rec)

	rw.(http.Flusher).Flush()
	if !rec.flushed {
		t.Error("Flush() should delegate to the underlying writer")
	}

	if _, _, err := rw.(http.Hijacker).Hijack(); err == nil {
		t.Error("Expected error from recorder hijack")
	}
	if !rec.hijacked {
		t.Error("Hijack() should delegate to the underlying writer")
	}

	if err := rw.(http.Pusher).Push("/app.js", nil); err != nil {
		t.Errorf("Push() failed: %v", err)
	}
	if rec.pushTarget != "/app.js" {
		t.Errorf("Expected push target /app.js, got %s", rec.pushTarget)
	}
}

func TestResponseWriterOptionalInterfacesUnsupported(t *testing.T) {
	rw := wrapResponseWriter(newRecorder())

	// Must not panic.
	rw.(http.Flusher).Flush()

	if _, _, err := rw.(http.Hijacker).Hijack(); !errors.Is(err, http.ErrNotSupported) {
		t.Errorf("Expected http.ErrNotSupported from Hijack, got %v", err)
	}
	if err := rw.(http.Pusher).Push("/app.js", nil); err != http.ErrNotSupported {
		t.Errorf("Expected http.ErrNotSupported from Push, got %v", err)
	}
}
