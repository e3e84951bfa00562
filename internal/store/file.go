package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"fjacquet/kfinance/internal/fileutils"
	"fjacquet/kfinance/internal/logging"
	"fjacquet/kfinance/internal/recorderror"

	"gopkg.in/yaml.v3"
)

const fileFormatVersion = 1

type fileDocument struct {
	Version int               `yaml:"version"`
	Entries map[string]string `yaml:"entries"`
}

// FileStore keeps every entry in a single YAML document on disk and rewrites it
// on each change.
type FileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
	logger  logging.Logger
}

// NewFileStore opens the document at path. A missing file starts an empty store.
func NewFileStore(path string, logger logging.Logger) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		entries: make(map[string]string),
		logger:  logger,
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Store file not found, starting empty", logging.F(logging.FieldKey, path))
			return s, nil
		}
		return nil, &recorderror.StorageError{Op: "open", Key: path, Err: err}
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &recorderror.StorageError{Op: "open", Key: path, Err: fmt.Errorf("parse store file: %w", err)}
	}
	if doc.Entries != nil {
		s.entries = doc.Entries
	}

	logger.Debug("Store file loaded",
		logging.F(logging.FieldKey, path),
		logging.F(logging.FieldCount, len(s.entries)))
	return s, nil
}

// Path returns the document location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.entries[key]
	s.entries[key] = string(value)
	if err := s.flush(); err != nil {
		if had {
			s.entries[key] = prev
		} else {
			delete(s.entries, key)
		}
		return &recorderror.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.entries[key]
	if !had {
		return nil
	}
	delete(s.entries, key)
	if err := s.flush(); err != nil {
		s.entries[key] = prev
		return &recorderror.StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

func (s *FileStore) Keys(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) Close() error {
	return nil
}

// flush writes the document to a temp file and renames it over the target.
// Callers hold s.mu.
func (s *FileStore) flush() error {
	data, err := yaml.Marshal(fileDocument{Version: fileFormatVersion, Entries: s.entries})
	if err != nil {
		return fmt.Errorf("marshal store file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := fileutils.EnsureDirectoryExists(dir); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".kfinance-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(fileutils.FilePermission); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
