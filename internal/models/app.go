package models

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Rorical/gameconsole/internal/console"
)

// ConfirmationRequest is a question waiting for a yes/no answer.
type ConfirmationRequest struct {
	ID     string
	Prompt string
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Messages            []Message       // Current messages to display
	Input               textinput.Model // Command input field
	Suggestions         []string        // Autocomplete matches for Input
	CompletionPrefix    string          // Input at the first Tab press
	CompletionIndex     int             // Next suggestion Tab will insert
	Status              string          // Status bar text
	Notification        *console.Notification
	NotificationSeq     int  // Guards expiry of replaced notifications
	Loading             bool // A command is in flight
	LoadingDots         int  // Animation counter for loading dots
	Width               int  // Terminal width
	Height              int  // Terminal height
	Username            string
	Role                string
	StatsStatus         string // Dashboard connection status text
	StatsAttempt        int    // Newest dashboard load attempt seen
	StatsFullscreen     bool
	StatsButton         string               // Label of the fullscreen control
	PendingConfirmation *ConfirmationRequest // Current confirmation request
	LinkPickerOpen      bool                 // Named link list is shown
	LinkIndex           int                  // Selected entry of the link list
}

// NewInput returns the configured command input.
func NewInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter a server command..."
	ti.CharLimit = 1024
	ti.Focus()
	return ti
}
