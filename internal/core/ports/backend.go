package ports

import (
	"context"

	"go.trai.ch/den/internal/core/domain"
)

//go:generate mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks

// Dispatcher is the subset of the engine's dispatcher that collaborators may
// call back into. Backends receive a task-scoped dispatcher so their
// recursive requests participate in cycle detection and reporter nesting.
type Dispatcher interface {
	SolveConda(ctx context.Context, spec *domain.CondaSolveSpec) ([]domain.PackageRecord, error)
	SolveEnvironment(ctx context.Context, spec *domain.EnvironmentSolveSpec) ([]domain.PackageRecord, error)
	SourceMetadata(ctx context.Context, spec *domain.SourceMetadataSpec) (*domain.SourceMetadata, error)
}

// Backend produces metadata and build artifacts for source checkouts. It may
// be an external process or an in-memory implementation. A backend may issue
// further requests through the provided dispatcher; that re-entry is why the
// engine performs cycle detection.
type Backend interface {
	// GetMetadata lists the packages the backend can produce from a checkout.
	GetMetadata(
		ctx context.Context,
		d Dispatcher,
		checkout domain.SourceCheckout,
		platform domain.Platform,
		channels []domain.Channel,
	) ([]domain.SourcePackageMetadata, error)

	// Build produces the named package from a checkout.
	Build(ctx context.Context, d Dispatcher, spec *domain.BackendSourceBuildSpec) (domain.BuiltSource, error)
}

// BackendFactory creates the backend used for a workspace. External backends
// are spawned as child processes, so creation can fail and the result must be
// closed.
type BackendFactory interface {
	Create(ctx context.Context) (Backend, func() error, error)
}
