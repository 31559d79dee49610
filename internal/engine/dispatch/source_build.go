package dispatch

import (
	"context"

	"go.trai.ch/den/internal/core/domain"
)

// A source build consults the build cache first. On a miss it resolves the
// package's metadata (which also materializes the checkout), runs the backend
// build, and records the artifact in the cache for subsequent runs.

func (p *processor) onSourceBuild(t sourceBuildTask) {
	submit(p, &p.sourceBuilds, t.task, p.runSourceBuild, func(id uint64, out outcome[domain.SourceBuildResult]) completion {
		return sourceBuildDone{id: id, out: out}
	})
}

func (p *processor) runSourceBuild(ctx context.Context, d *Dispatcher, spec *domain.SourceBuildSpec) (domain.SourceBuildResult, error) {
	cacheSpec := &domain.SourceBuildCacheStatusSpec{
		Package:  spec.Package,
		Source:   spec.Source,
		Platform: spec.Platform,
	}
	entry, err := d.SourceBuildCacheStatus(ctx, cacheSpec)
	if err != nil {
		return domain.SourceBuildResult{}, err
	}
	if entry.Fresh && entry.Record != nil {
		return domain.SourceBuildResult{
			Record:       *entry.Record,
			ArtifactPath: entry.ArtifactPath,
			CacheHit:     true,
		}, nil
	}

	md, err := d.SourceMetadata(ctx, &domain.SourceMetadataSpec{
		Package:  spec.Package,
		Source:   spec.Source,
		Platform: spec.Platform,
		Channels: spec.Channels,
	})
	if err != nil {
		return domain.SourceBuildResult{}, err
	}

	built, err := d.BackendSourceBuild(ctx, &domain.BackendSourceBuildSpec{
		Package:  spec.Package,
		Checkout: md.Checkout,
		Platform: spec.Platform,
	})
	if err != nil {
		return domain.SourceBuildResult{}, err
	}

	if p.data.buildCache != nil {
		record := built.Record
		err := p.data.buildCache.Put(domain.SourceBuildCacheEntry{
			Key:          cacheSpec.CacheKey(),
			Record:       &record,
			ArtifactPath: built.ArtifactPath,
			Fresh:        true,
		})
		if err != nil && p.data.logger != nil {
			// A cache write failure costs a rebuild later, not correctness.
			p.data.logger.Warn("failed to record build of " + spec.Package + " in cache: " + err.Error())
		}
	}

	return domain.SourceBuildResult{
		Record:       built.Record,
		ArtifactPath: built.ArtifactPath,
	}, nil
}

type sourceBuildDone struct {
	id  uint64
	out outcome[domain.SourceBuildResult]
}

func (c sourceBuildDone) apply(p *processor) {
	finish(p, &p.sourceBuilds, c.id, c.out)
}
