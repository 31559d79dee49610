// Package cas implements the persistent source build cache as a flat JSON
// file.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.BuildCacheStore using a flat JSON file keyed by the
// build's cache key.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.SourceBuildCacheEntry
}

// NewStore creates a build cache store backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.SourceBuildCacheEntry),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read build cache store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal build cache store")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal build cache store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for build cache store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write build cache store")
	}

	return nil
}

// Get retrieves the entry for a cache key, or nil when absent. An entry whose
// artifact vanished from disk is returned stale so callers rebuild it.
func (s *Store) Get(key string) (*domain.SourceBuildCacheEntry, error) {
	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if entry.Fresh && entry.ArtifactPath != "" {
		if _, err := os.Stat(entry.ArtifactPath); err != nil {
			entry.Fresh = false
		}
	}
	return &entry, nil
}

// Put stores an entry and persists the store.
func (s *Store) Put(entry domain.SourceBuildCacheEntry) error {
	s.mu.Lock()
	s.cache[entry.Key] = entry
	s.mu.Unlock()

	return s.save()
}
