package core

import (
	"sync"

	"github.com/Rorical/gameconsole/internal/console"
	"github.com/Rorical/gameconsole/internal/models"
)

// ConsoleState is the core's record of what the UI should show.
type ConsoleState struct {
	mu              sync.RWMutex
	messages        []models.Message
	notification    *console.Notification
	newNotification bool
	isProcessing    bool
	lastError       error
}

func NewConsoleState() *ConsoleState {
	return &ConsoleState{
		messages: make([]models.Message, 0),
	}
}

// GetMessages returns a copy of every message so far.
func (cs *ConsoleState) GetMessages() []models.Message {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	result := make([]models.Message, len(cs.messages))
	copy(result, cs.messages)
	return result
}

// MessagesSince returns messages from index n on.
func (cs *ConsoleState) MessagesSince(n int) []models.Message {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if n >= len(cs.messages) {
		return nil
	}
	result := make([]models.Message, len(cs.messages)-n)
	copy(result, cs.messages[n:])
	return result
}

func (cs *ConsoleState) MessageCount() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.messages)
}

// AddProgramMessage adds a line of console output (banner, status).
func (cs *ConsoleState) AddProgramMessage(content string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.messages = append(cs.messages, models.Message{
		Content: content,
		Type:    models.Program,
	})
}

// AddLogEntry records an executed command and its reply.
func (cs *ConsoleState) AddLogEntry(entry console.LogEntry) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.messages = append(cs.messages, models.Message{
		Content: entry.Response,
		Type:    models.CommandLog,
		Time:    entry.Time,
		Command: entry.Command,
	})
}

func (cs *ConsoleState) SetNotification(n console.Notification) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.notification = &n
	cs.newNotification = true
}

// TakeNotification returns the notification raised since the last call, if
// any.
func (cs *ConsoleState) TakeNotification() *console.Notification {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if !cs.newNotification {
		return nil
	}
	cs.newNotification = false
	n := *cs.notification
	return &n
}

func (cs *ConsoleState) StartProcessing() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.isProcessing = true
	cs.lastError = nil
}

func (cs *ConsoleState) FinishProcessing() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.isProcessing = false
}

func (cs *ConsoleState) FinishProcessingWithError(err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.isProcessing = false
	cs.lastError = err
}

func (cs *ConsoleState) IsProcessing() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.isProcessing
}

func (cs *ConsoleState) GetLastError() error {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.lastError
}
