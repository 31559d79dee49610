package dispatch

import (
	"context"

	"go.trai.ch/den/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// A workspace environment solve first resolves metadata for every source
// requirement (recursively, through the task-scoped dispatcher so the calls
// participate in cycle detection), then pins each source package and hands
// the combined set to a conda solve.

func (p *processor) onSolveEnvironment(t envSolveTask) {
	submit(p, &p.envSolves, t.task, p.runEnvironmentSolve, func(id uint64, out outcome[[]domain.PackageRecord]) completion {
		return envSolveDone{id: id, out: out}
	})
}

func (p *processor) runEnvironmentSolve(ctx context.Context, d *Dispatcher, spec *domain.EnvironmentSolveSpec) ([]domain.PackageRecord, error) {
	sourceRecords := make([]domain.PackageRecord, len(spec.SourceRequirements))
	pins := make([]domain.MatchSpec, len(spec.SourceRequirements))

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range spec.SourceRequirements {
		g.Go(func() error {
			md, err := d.SourceMetadata(gctx, &domain.SourceMetadataSpec{
				Package:  req.Name,
				Source:   req.Source,
				Platform: spec.Platform,
				Channels: spec.Channels,
			})
			if err != nil {
				return err
			}
			sourceRecords[i] = domain.PackageRecord{
				Name:    md.Package.Name,
				Version: md.Package.Version,
				Build:   "src",
				Subdir:  spec.Platform,
				URL:     "source+" + md.Checkout.Path,
				Depends: md.Package.Depends,
			}
			pins[i] = domain.MatchSpec{Name: md.Package.Name, Constraint: md.Package.Version}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	requirements := make([]domain.MatchSpec, 0, len(spec.Requirements)+len(pins))
	requirements = append(requirements, spec.Requirements...)
	requirements = append(requirements, pins...)

	candidates := make([]domain.PackageRecord, 0, len(spec.Candidates)+len(sourceRecords))
	candidates = append(candidates, spec.Candidates...)
	candidates = append(candidates, sourceRecords...)

	return d.SolveConda(ctx, &domain.CondaSolveSpec{
		Requirements: requirements,
		Platform:     spec.Platform,
		Channels:     spec.Channels,
		Candidates:   candidates,
	})
}

type envSolveDone struct {
	id  uint64
	out outcome[[]domain.PackageRecord]
}

func (c envSolveDone) apply(p *processor) {
	finish(p, &p.envSolves, c.id, c.out)
}
