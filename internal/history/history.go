package history

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/Rorical/gameconsole/internal/storage"
)

const (
	// StorageKey is the key the history is persisted under.
	StorageKey = "commandHistory"
	// MaxEntries caps the stored history; the oldest entries are evicted first.
	MaxEntries = 50
)

// Direction is a history navigation step.
type Direction int

const (
	Up Direction = iota
	Down
)

// History is the bounded, persisted list of submitted commands together
// with the up/down navigation cursor. It is safe for concurrent use.
type History struct {
	mu      sync.Mutex
	entries []string
	// cursor is in [0, len(entries)]; len(entries) means fresh input.
	cursor int
	store  storage.Store
}

// New returns an empty history backed by store. A nil store keeps the
// history in memory only.
func New(store storage.Store) *History {
	return &History{
		entries: make([]string, 0, MaxEntries),
		store:   store,
	}
}

// Load restores the history from the store. Missing or corrupt data leaves
// the history empty.
func (h *History) Load() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.store == nil {
		return
	}

	raw, ok, err := h.store.Get(StorageKey)
	if err != nil {
		log.Printf("history: load failed: %v", err)
		return
	}
	if !ok {
		return
	}

	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Printf("history: ignoring corrupt data: %v", err)
		return
	}
	if entries == nil {
		return
	}
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}

	h.entries = entries
	h.cursor = len(entries)
}

// Add appends command unless it repeats the most recent entry, evicts from
// the oldest end past MaxEntries, resets the cursor and persists.
func (h *History) Add(command string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n == 0 || h.entries[n-1] != command {
		h.entries = append(h.entries, command)
		if len(h.entries) > MaxEntries {
			h.entries = append([]string(nil), h.entries[len(h.entries)-MaxEntries:]...)
		}
	}
	h.cursor = len(h.entries)
	h.save()
}

// Navigate moves the cursor and returns the entry under it. At the fresh
// input position it returns "". The boolean is false only when the history
// is empty.
func (h *History) Navigate(dir Direction) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return "", false
	}

	switch dir {
	case Up:
		h.cursor = max(0, h.cursor-1)
	case Down:
		h.cursor = min(len(h.entries), h.cursor+1)
	}

	if h.cursor == len(h.entries) {
		return "", true
	}
	return h.entries[h.cursor], true
}

// Cursor reports the current navigation position.
func (h *History) Cursor() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	result := make([]string, len(h.entries))
	copy(result, h.entries)
	return result
}

// Clear drops every entry and persists the empty list.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = h.entries[:0]
	h.cursor = 0
	h.save()
}

// save must be called with h.mu held. Failures are logged and otherwise
// ignored so a full or read-only store never blocks command execution.
func (h *History) save() {
	if h.store == nil {
		return
	}
	data, err := json.Marshal(h.entries)
	if err != nil {
		log.Printf("history: encode failed: %v", err)
		return
	}
	if err := h.store.Set(StorageKey, string(data)); err != nil {
		log.Printf("history: save failed: %v", err)
	}
}
