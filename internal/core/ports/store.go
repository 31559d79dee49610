package ports

import "go.trai.ch/den/internal/core/domain"

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// BuildCacheStore persists the results of source builds between runs.
type BuildCacheStore interface {
	// Get returns the entry for a cache key, or nil when absent.
	Get(key string) (*domain.SourceBuildCacheEntry, error)

	// Put stores an entry.
	Put(entry domain.SourceBuildCacheEntry) error
}
