// Package stats tracks the embedded analytics dashboard: whether it loaded,
// retrying it, and the fullscreen presentation toggle.
package stats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// State is the observable dashboard state.
type State int

const (
	Loading State = iota
	Connected
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "Loading..."
	case Connected:
		return "Connected"
	case Error:
		return "Connection failed"
	}
	return "unknown"
}

const (
	labelEnterFullscreen = "Fullscreen"
	labelExitFullscreen  = "Exit Fullscreen"
)

// Embed is the dashboard panel. Load and error reports are accepted only
// for the current attempt and only while it is still loading, so whichever
// arrives first wins until the next Retry.
type Embed struct {
	mu         sync.Mutex
	url        string
	client     *http.Client
	state      State
	attempt    int
	lastErr    error
	fullscreen bool
}

// New returns an Embed for the dashboard at url, in the loading state. A nil
// client uses a plain http.Client without cookies, as the dashboard is a
// separate origin.
func New(url string, client *http.Client) *Embed {
	if client == nil {
		client = &http.Client{}
	}
	return &Embed{url: url, client: client, state: Loading}
}

func (e *Embed) URL() string {
	return e.url
}

// State returns the current state and the attempt it belongs to.
func (e *Embed) State() (State, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.attempt
}

// Err returns the failure that moved the embed to Error, if any.
func (e *Embed) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// StatusText is the connection status shown to the user.
func (e *Embed) StatusText() string {
	s, _ := e.State()
	return s.String()
}

// HandleLoad records a successful load for attempt. It reports whether the
// event changed the state.
func (e *Embed) HandleLoad(attempt int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if attempt != e.attempt || e.state != Loading {
		return false
	}
	e.state = Connected
	e.lastErr = nil
	return true
}

// HandleError records a failed load for attempt. It reports whether the
// event changed the state.
func (e *Embed) HandleError(attempt int, err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if attempt != e.attempt || e.state != Loading {
		return false
	}
	e.state = Error
	e.lastErr = err
	return true
}

// Retry re-arms the loading state and returns the new attempt number. The
// caller then runs Probe for it.
func (e *Embed) Retry() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attempt++
	e.state = Loading
	e.lastErr = nil
	return e.attempt
}

// Probe requests the dashboard for attempt and reports the outcome through
// HandleLoad or HandleError. Any response below 500 counts as loaded.
func (e *Embed) Probe(ctx context.Context, attempt int) State {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url, nil)
	if err != nil {
		e.HandleError(attempt, err)
		return e.current()
	}

	resp, err := e.client.Do(req)
	if err != nil {
		e.HandleError(attempt, err)
		return e.current()
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= 500 {
		e.HandleError(attempt, fmt.Errorf("dashboard returned status %d", resp.StatusCode))
	} else {
		e.HandleLoad(attempt)
	}
	return e.current()
}

func (e *Embed) current() State {
	s, _ := e.State()
	return s
}

// ToggleFullscreen flips the presentation mode and returns the new value.
func (e *Embed) ToggleFullscreen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fullscreen = !e.fullscreen
	return e.fullscreen
}

// ExitFullscreen leaves fullscreen mode. It reports whether anything changed.
func (e *Embed) ExitFullscreen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.fullscreen {
		return false
	}
	e.fullscreen = false
	return true
}

func (e *Embed) Fullscreen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fullscreen
}

// ButtonLabel is the label of the fullscreen control for the current mode.
func (e *Embed) ButtonLabel() string {
	if e.Fullscreen() {
		return labelExitFullscreen
	}
	return labelEnterFullscreen
}
