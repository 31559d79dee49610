package dispatch

import (
	"context"

	"go.trai.ch/den/internal/core/domain"
)

// Cache status queries never fail a build on their own: a missing store or an
// absent entry both come back as a stale entry, which callers treat as "build
// it".

func (p *processor) onCacheStatus(t cacheStatusTask) {
	submit(p, &p.cacheStatus, t.task, p.runCacheStatus, func(id uint64, out outcome[*domain.SourceBuildCacheEntry]) completion {
		return cacheStatusDone{id: id, out: out}
	})
}

func (p *processor) runCacheStatus(ctx context.Context, _ *Dispatcher, spec *domain.SourceBuildCacheStatusSpec) (*domain.SourceBuildCacheEntry, error) {
	key := spec.CacheKey()
	if p.data.buildCache == nil {
		return &domain.SourceBuildCacheEntry{Key: key}, nil
	}

	entry, err := p.data.buildCache.Get(key)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return &domain.SourceBuildCacheEntry{Key: key}, nil
	}
	return entry, nil
}

type cacheStatusDone struct {
	id  uint64
	out outcome[*domain.SourceBuildCacheEntry]
}

func (c cacheStatusDone) apply(p *processor) {
	finish(p, &p.cacheStatus, c.id, c.out)
}
