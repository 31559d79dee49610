// Package envdir implements the environment installer collaborator. It
// materializes a solved environment as a prefix directory with a conda-meta
// manifest describing the installed records.
package envdir

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
	"go.trai.ch/zerr"
)

// manifestName is the file written under <prefix>/conda-meta.
const manifestName = "den-env.json"

// Installer implements ports.EnvironmentInstaller.
type Installer struct {
	logger ports.Logger
}

// NewInstaller creates an Installer.
func NewInstaller(logger ports.Logger) *Installer {
	return &Installer{logger: logger}
}

var _ ports.EnvironmentInstaller = (*Installer)(nil)

type envManifest struct {
	Name     string                 `json:"name"`
	Platform domain.Platform        `json:"platform"`
	Records  []domain.PackageRecord `json:"records"`
}

// Install writes the environment manifest into the prefix. Linking actual
// package contents is the package cache's job and outside den's scope; the
// manifest is what later solves read back as the installed state.
func (i *Installer) Install(ctx context.Context, spec *domain.InstallEnvironmentSpec) (domain.InstallEnvironmentResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.InstallEnvironmentResult{}, err
	}

	metaDir := filepath.Join(spec.Prefix, "conda-meta")
	if err := os.MkdirAll(metaDir, 0o750); err != nil {
		return domain.InstallEnvironmentResult{}, zerr.With(zerr.Wrap(err, "failed to create environment prefix"), "prefix", spec.Prefix)
	}

	data, err := json.MarshalIndent(envManifest{
		Name:     spec.Name,
		Platform: spec.Platform,
		Records:  spec.Records,
	}, "", "  ")
	if err != nil {
		return domain.InstallEnvironmentResult{}, zerr.Wrap(err, "failed to marshal environment manifest")
	}

	path := filepath.Join(metaDir, manifestName)
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // manifest is not sensitive
		return domain.InstallEnvironmentResult{}, zerr.With(zerr.Wrap(err, "failed to write environment manifest"), "path", path)
	}

	if i.logger != nil {
		i.logger.Info("installed environment " + spec.Name + " into " + spec.Prefix)
	}

	return domain.InstallEnvironmentResult{
		Prefix:    spec.Prefix,
		Installed: len(spec.Records),
	}, nil
}

// ReadInstalled reads back the records of a previously installed prefix. A
// prefix without a manifest yields no records.
func ReadInstalled(prefix string) ([]domain.PackageRecord, error) {
	data, err := os.ReadFile(filepath.Join(prefix, "conda-meta", manifestName)) //nolint:gosec // path derives from the manifest
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to read environment manifest")
	}

	var m envManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal environment manifest")
	}
	return m.Records, nil
}
