// Package prefcache provides the durable local preference cache.
package prefcache

import (
	"errors"
	"fmt"
	"strings"
)

// Backend names.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned for an unsupported backend name.
var ErrUnknownBackend = errors.New("prefcache: unknown backend")

// Backend is a durable string key-value store. Get reports a missing key
// with ok=false and a nil error. Set is durable when it returns.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// NewBackend opens the backend named kind at path.
func NewBackend(kind, path string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case BackendSQLite:
		return NewSQLiteBackend(path)
	case BackendBadger:
		return NewBadgerBackend(path)
	case "", BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}
