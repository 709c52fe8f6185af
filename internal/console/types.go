package console

import (
	"context"
	"fmt"
	"time"

	"github.com/Rorical/gameconsole/internal/api"
)

// Level classifies a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	}
	return "info"
}

// Notification is a transient message for the user.
type Notification struct {
	Level Level
	Text  string
	Time  time.Time
}

// LogEntry is one executed command and the server's textual reply.
type LogEntry struct {
	Time     time.Time
	Command  string
	Response string
}

// Body is the entry without its timestamp.
func (e LogEntry) Body() string {
	return fmt.Sprintf("> %s\n%s", e.Command, e.Response)
}

func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.Time.Format("15:04:05"), e.Body())
}

// Outcome is how a single Execute call ended.
type Outcome int

const (
	// Skipped: the input was empty.
	Skipped Outcome = iota
	// Declined: the user refused a confirmation.
	Declined
	Succeeded
	// Failed: the server answered success:false.
	Failed
	// TransportError: the request or its decoding failed.
	TransportError
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Declined:
		return "declined"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case TransportError:
		return "transport error"
	}
	return "unknown"
}

// Confirmer asks the user a yes/no question and blocks until answered.
// Implementations return false when ctx is cancelled.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Executor sends a command to the server.
type Executor interface {
	ExecuteCommand(ctx context.Context, command string) (*api.ExecuteResponse, error)
}

// Sink receives everything the console shows the user.
type Sink interface {
	Notify(n Notification)
	Log(entry LogEntry)
}
