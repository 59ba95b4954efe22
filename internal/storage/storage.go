// Package storage remembers which todo versions the mirror already delivered.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store tracks delivered todo fingerprints.
type Store interface {
	Close() error
	SeenTodo(key string) (bool, error)
	MarkTodo(key string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	TodoTTL         time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTodoTTL         = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.TodoTTL <= 0 {
		opts.TodoTTL = defaultTodoTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                  { return nil }
func (noopStore) SeenTodo(string) (bool, error) { return false, nil }
func (noopStore) MarkTodo(string) error         { return nil }
