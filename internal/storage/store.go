package storage

import "errors"

// ErrUnavailable is returned by stores that cannot be read or written at all,
// for example a file store whose directory cannot be created.
var ErrUnavailable = errors.New("storage unavailable")

// Store is a fallible string key-value store. It backs the command history
// and any other client-side state that should survive a restart.
type Store interface {
	// Get returns the value for key. The boolean is false when the key is
	// not present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Kind names a Store implementation in configuration.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)
