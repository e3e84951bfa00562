// Package store provides the local key-value record store and the adapter that
// maps named record collections onto per-user keys.
package store

import (
	"context"
	"fmt"
	"path/filepath"

	"fjacquet/kfinance/internal/logging"
)

// Store is a flat key-value persistence backend.
type Store interface {
	// Get returns the value under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)
	// Close releases backend resources.
	Close() error
}

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Default file names inside the data directory.
const (
	DefaultFileName   = "kfinance.yaml"
	DefaultSQLiteName = "kfinance.db"
)

// Options selects and locates a backend.
type Options struct {
	Backend    string
	Directory  string
	FilePath   string
	SQLitePath string
}

// New opens the backend named by opts.Backend.
func New(opts Options, logger logging.Logger) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		path := opts.FilePath
		if path == "" {
			path = filepath.Join(opts.Directory, DefaultFileName)
		}
		return NewFileStore(path, logger)
	case BackendSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = filepath.Join(opts.Directory, DefaultSQLiteName)
		}
		return NewSQLiteStore(path, logger)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", opts.Backend)
	}
}
