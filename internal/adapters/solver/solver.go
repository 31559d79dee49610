// Package solver implements the conda solver collaborator as a greedy
// best-candidate selection over pre-fetched repodata. It is not a SAT solver:
// each requirement independently picks the highest matching candidate, with a
// preference for versions that are already installed.
package solver

import (
	"context"
	"sort"

	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
	"go.trai.ch/zerr"
)

// Solver implements ports.CondaSolver.
type Solver struct{}

// New creates a Solver.
func New() *Solver {
	return &Solver{}
}

var _ ports.CondaSolver = (*Solver)(nil)

// SolveConda resolves the requirements against the spec's candidates,
// following dependencies transitively.
func (s *Solver) SolveConda(ctx context.Context, spec *domain.CondaSolveSpec) ([]domain.PackageRecord, error) {
	byName := make(map[string][]domain.PackageRecord)
	for _, c := range spec.Candidates {
		byName[c.Name] = append(byName[c.Name], c)
	}

	constraints := make(map[string]domain.MatchSpec)
	for _, c := range spec.Constraints {
		constraints[c.Name] = c
	}

	installed := make(map[string]string)
	for _, r := range spec.Installed {
		installed[r.Name] = r.Version
	}

	selected := make(map[string]domain.PackageRecord)
	queue := append([]domain.MatchSpec(nil), spec.Requirements...)

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req := queue[0]
		queue = queue[1:]

		if cur, ok := selected[req.Name]; ok {
			if !req.Matches(cur.Version) {
				return nil, zerr.With(
					zerr.With(zerr.New("conflicting requirements"), "requirement", req.String()),
					"selected", cur.Name+" "+cur.Version,
				)
			}
			continue
		}

		best, ok := pickBest(byName[req.Name], req, constraints[req.Name], installed[req.Name])
		if !ok {
			return nil, zerr.With(domain.ErrNoMatchingPackage, "requirement", req.String())
		}

		selected[req.Name] = best
		queue = append(queue, best.Depends...)
	}

	records := make([]domain.PackageRecord, 0, len(selected))
	for _, r := range selected {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// pickBest returns the highest candidate satisfying both the requirement and
// the optional constraint. An installed version that still satisfies both
// wins over newer candidates, keeping environments stable across solves.
func pickBest(candidates []domain.PackageRecord, req, constraint domain.MatchSpec, installedVersion string) (domain.PackageRecord, bool) {
	var best domain.PackageRecord
	found := false

	for _, c := range candidates {
		if !req.Matches(c.Version) {
			continue
		}
		if constraint.Name != "" && !constraint.Matches(c.Version) {
			continue
		}
		if installedVersion != "" && c.Version == installedVersion {
			return c, true
		}
		if !found || CompareVersions(c.Version, best.Version) > 0 {
			best = c
			found = true
		}
	}

	return best, found
}
