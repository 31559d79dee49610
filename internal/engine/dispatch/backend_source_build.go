package dispatch

import (
	"context"

	"go.trai.ch/den/internal/core/domain"
)

func (p *processor) onBackendSourceBuild(t backendSourceBuildTask) {
	submit(p, &p.backendBuilds, t.task, p.runBackendSourceBuild, func(id uint64, out outcome[domain.BuiltSource]) completion {
		return backendSourceBuildDone{id: id, out: out}
	})
}

func (p *processor) runBackendSourceBuild(ctx context.Context, d *Dispatcher, spec *domain.BackendSourceBuildSpec) (domain.BuiltSource, error) {
	if err := requireCollaborator("build backend", p.data.backend != nil); err != nil {
		return domain.BuiltSource{}, err
	}
	return p.data.backend.Build(ctx, d, spec)
}

type backendSourceBuildDone struct {
	id  uint64
	out outcome[domain.BuiltSource]
}

func (c backendSourceBuildDone) apply(p *processor) {
	finish(p, &p.backendBuilds, c.id, c.out)
}
