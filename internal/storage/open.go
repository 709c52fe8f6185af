package storage

import (
	"fmt"
	"io"
	"path/filepath"
)

// Open returns the store of the given kind rooted in dir. The returned
// closer must be called on shutdown; it is a no-op for stores that hold no
// resources.
func Open(kind Kind, dir string) (Store, io.Closer, error) {
	switch kind {
	case "", KindFile:
		return NewFileStore(filepath.Join(dir, "storage.json")), nopCloser{}, nil
	case KindSQLite:
		s, err := OpenSQLiteStore(filepath.Join(dir, "storage.db"))
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case KindMemory:
		return NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", kind)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
