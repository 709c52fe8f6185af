package stats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestInitialState(t *testing.T) {
	e := New("http://localhost:3000", nil)
	if s, attempt := e.State(); s != Loading || attempt != 0 {
		t.Errorf("State = %v, %d", s, attempt)
	}
	if e.StatusText() != "Loading..." {
		t.Errorf("StatusText = %q", e.StatusText())
	}
}

func TestFirstWriterWins(t *testing.T) {
	e := New("http://localhost:3000", nil)

	if !e.HandleLoad(0) {
		t.Fatal("HandleLoad did not apply")
	}
	if e.HandleError(0, errors.New("late")) {
		t.Error("HandleError applied after load")
	}
	if s, _ := e.State(); s != Connected {
		t.Errorf("state = %v, want Connected", s)
	}

	e2 := New("http://localhost:3000", nil)
	e2.HandleError(0, errors.New("refused"))
	if e2.HandleLoad(0) {
		t.Error("HandleLoad applied after error")
	}
	if e2.StatusText() != "Connection failed" {
		t.Errorf("StatusText = %q", e2.StatusText())
	}
}

func TestRetryIgnoresStaleAttempts(t *testing.T) {
	e := New("http://localhost:3000", nil)
	e.HandleError(0, errors.New("refused"))

	attempt := e.Retry()
	if attempt != 1 {
		t.Fatalf("Retry = %d, want 1", attempt)
	}
	if s, _ := e.State(); s != Loading {
		t.Fatalf("state after retry = %v", s)
	}
	if e.Err() != nil {
		t.Errorf("Err after retry = %v", e.Err())
	}
	if e.HandleLoad(0) {
		t.Error("stale attempt applied")
	}
	if !e.HandleLoad(1) {
		t.Error("current attempt rejected")
	}
}

func TestProbe(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>dashboard</html>"))
	}))
	defer ok.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()

	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()

	tests := []struct {
		name string
		url  string
		want State
	}{
		{"connected", ok.URL, Connected},
		{"server error", broken.URL, Error},
		{"unreachable", down.URL, Error},
		{"bad url", "://nope", Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.url, nil)
			if got := e.Probe(context.Background(), 0); got != tt.want {
				t.Errorf("Probe = %v, want %v", got, tt.want)
			}
			if tt.want == Error && e.Err() == nil {
				t.Error("Err is nil after failure")
			}
		})
	}
}

func TestFullscreenLabelFollowsState(t *testing.T) {
	e := New("http://localhost:3000", nil)
	if e.ButtonLabel() != "Fullscreen" {
		t.Errorf("label = %q", e.ButtonLabel())
	}

	if !e.ToggleFullscreen() {
		t.Fatal("ToggleFullscreen returned false")
	}
	if e.ButtonLabel() != "Exit Fullscreen" {
		t.Errorf("label = %q", e.ButtonLabel())
	}

	if !e.ExitFullscreen() {
		t.Error("ExitFullscreen reported no change")
	}
	if e.ExitFullscreen() {
		t.Error("second ExitFullscreen reported a change")
	}
	if e.ButtonLabel() != "Fullscreen" {
		t.Errorf("label = %q", e.ButtonLabel())
	}

	e.ToggleFullscreen()
	if e.ToggleFullscreen() {
		t.Error("second toggle left fullscreen on")
	}
}
