package ports

import "go.trai.ch/den/internal/core/domain"

//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks

// ConfigLoader reads tool configuration (den.yaml) from a working directory.
// A missing file yields the defaults, not an error.
type ConfigLoader interface {
	Load(cwd string) (*domain.Config, error)
}

// ManifestLoader reads the workspace manifest (den.toml) from a working
// directory.
type ManifestLoader interface {
	Load(cwd string) (*domain.Workspace, error)
}

// RepodataLoader collects the candidate package records of a workspace's
// channels. Relative channel paths resolve against root.
type RepodataLoader interface {
	Candidates(root string, channels []domain.Channel, platform domain.Platform) ([]domain.PackageRecord, error)
}
