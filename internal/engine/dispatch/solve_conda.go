package dispatch

import (
	"context"

	"go.trai.ch/den/internal/core/domain"
)

// Conda solves are deduplicated and concurrency-limited: they are CPU heavy,
// so excess requests wait in FIFO order for a free slot.

func (p *processor) onSolveConda(t condaSolveTask) {
	submit(p, &p.condaSolves, t.task, p.runCondaSolve, func(id uint64, out outcome[[]domain.PackageRecord]) completion {
		return condaSolveDone{id: id, out: out}
	})
}

func (p *processor) runCondaSolve(ctx context.Context, _ *Dispatcher, spec *domain.CondaSolveSpec) ([]domain.PackageRecord, error) {
	if err := requireCollaborator("conda solver", p.data.condaSolver != nil); err != nil {
		return nil, err
	}
	return p.data.condaSolver.SolveConda(ctx, spec)
}

type condaSolveDone struct {
	id  uint64
	out outcome[[]domain.PackageRecord]
}

func (c condaSolveDone) apply(p *processor) {
	finish(p, &p.condaSolves, c.id, c.out)
}
