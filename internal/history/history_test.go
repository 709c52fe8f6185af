package history

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Rorical/gameconsole/internal/storage"
)

type failingStore struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingStore) Get(string) (string, bool, error) { return "", false, f.getErr }

func (f *failingStore) Set(string, string) error {
	f.sets++
	return f.setErr
}

func TestAddSuppressesAdjacentDuplicatesOnly(t *testing.T) {
	h := New(nil)
	for _, c := range []string{"list", "list", "help", "list", "list"} {
		h.Add(c)
	}

	got := h.Entries()
	want := []string{"list", "help", "list"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestAddEvictsOldestAtCapacity(t *testing.T) {
	h := New(nil)
	for i := 0; i < MaxEntries+5; i++ {
		h.Add(fmt.Sprintf("say %d", i))
	}

	entries := h.Entries()
	if len(entries) != MaxEntries {
		t.Fatalf("len = %d, want %d", len(entries), MaxEntries)
	}
	if entries[0] != "say 5" {
		t.Errorf("oldest = %q, want %q", entries[0], "say 5")
	}
	if entries[MaxEntries-1] != fmt.Sprintf("say %d", MaxEntries+4) {
		t.Errorf("newest = %q", entries[MaxEntries-1])
	}
	if h.Cursor() != MaxEntries {
		t.Errorf("cursor = %d, want %d", h.Cursor(), MaxEntries)
	}
}

func TestNavigateEmptyHistory(t *testing.T) {
	h := New(nil)
	for _, dir := range []Direction{Up, Down, Up} {
		if _, ok := h.Navigate(dir); ok {
			t.Fatalf("Navigate(%v) on empty history returned ok", dir)
		}
	}
}

func TestNavigateClamps(t *testing.T) {
	h := New(nil)
	h.Add("list")
	h.Add("help")

	steps := []struct {
		dir  Direction
		want string
	}{
		{Up, "help"},
		{Up, "list"},
		{Up, "list"},
		{Up, "list"},
		{Down, "help"},
		{Down, ""},
		{Down, ""},
		{Up, "help"},
	}
	for i, s := range steps {
		got, ok := h.Navigate(s.dir)
		if !ok {
			t.Fatalf("step %d: ok = false", i)
		}
		if got != s.want {
			t.Errorf("step %d: Navigate = %q, want %q", i, got, s.want)
		}
	}
}

func TestAddResetsCursor(t *testing.T) {
	h := New(nil)
	h.Add("list")
	h.Add("help")
	h.Navigate(Up)
	h.Navigate(Up)

	h.Add("help")
	if h.Cursor() != h.Len() {
		t.Errorf("cursor = %d, want %d", h.Cursor(), h.Len())
	}
}

func TestPersistAndLoad(t *testing.T) {
	store := storage.NewMemoryStore()
	h := New(store)
	h.Add("list")
	h.Add("time set day")

	raw, ok, _ := store.Get(StorageKey)
	if !ok || raw != `["list","time set day"]` {
		t.Fatalf("stored = %q, %v", raw, ok)
	}

	restored := New(store)
	restored.Load()
	if got := restored.Entries(); fmt.Sprint(got) != "[list time set day]" {
		t.Errorf("restored = %v", got)
	}
	if got, _ := restored.Navigate(Up); got != "time set day" {
		t.Errorf("Navigate(Up) after load = %q", got)
	}
}

func TestLoadIgnoresCorruptData(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Set(StorageKey, "not json")

	h := New(store)
	h.Load()
	if h.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.Len())
	}
}

func TestStorageFailuresAreIgnored(t *testing.T) {
	store := &failingStore{
		getErr: errors.New("disabled"),
		setErr: errors.New("quota exceeded"),
	}

	h := New(store)
	h.Load()
	h.Add("list")

	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
	if store.sets != 1 {
		t.Errorf("sets = %d, want 1", store.sets)
	}
}

func TestClear(t *testing.T) {
	store := storage.NewMemoryStore()
	h := New(store)
	h.Add("list")
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("Len = %d", h.Len())
	}
	if raw, _, _ := store.Get(StorageKey); raw != "[]" {
		t.Errorf("stored = %q, want []", raw)
	}
}
