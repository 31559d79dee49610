// Package ports defines the collaborator interfaces consumed by the den
// engine. Adapters implement them; the engine depends only on this package.
package ports

import (
	"context"

	"go.trai.ch/den/internal/core/domain"
)

//go:generate mockgen -source=solver.go -destination=mocks/mock_solver.go -package=mocks

// CondaSolver resolves a fully specified environment to a list of package
// records. The candidates are already fetched; the solver only selects. It is
// invoked on a dedicated goroutine, so it may block on CPU-bound work.
type CondaSolver interface {
	SolveConda(ctx context.Context, spec *domain.CondaSolveSpec) ([]domain.PackageRecord, error)
}

// EnvironmentInstaller materializes a solved environment into a prefix.
type EnvironmentInstaller interface {
	Install(ctx context.Context, spec *domain.InstallEnvironmentSpec) (domain.InstallEnvironmentResult, error)
}
