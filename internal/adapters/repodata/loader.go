// Package repodata loads candidate package records from local channel
// directories. A channel is a directory containing <platform>/repodata.json;
// remote channel fetching is out of scope.
package repodata

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/zerr"
)

// Loader reads repodata for a set of channels.
type Loader struct{}

// NewLoader creates a repodata loader.
func NewLoader() *Loader {
	return &Loader{}
}

type repodataFile struct {
	Packages map[string]domain.PackageRecord `json:"packages"`
}

// Candidates collects the records of every channel for a platform, in channel
// priority order. Relative channel paths are resolved against root. Channels
// without repodata for the platform are skipped.
func (l *Loader) Candidates(root string, channels []domain.Channel, platform domain.Platform) ([]domain.PackageRecord, error) {
	var records []domain.PackageRecord

	for _, channel := range channels {
		dir := string(channel)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}

		for _, subdir := range []domain.Platform{platform, "noarch"} {
			path := filepath.Join(dir, string(subdir), "repodata.json")
			recs, err := loadFile(path, subdir)
			if err != nil {
				return nil, zerr.With(err, "channel", string(channel))
			}
			records = append(records, recs...)
		}
	}

	return records, nil
}

func loadFile(path string, subdir domain.Platform) ([]domain.PackageRecord, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path derives from the manifest
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to read repodata")
	}

	var file repodataFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse repodata")
	}

	records := make([]domain.PackageRecord, 0, len(file.Packages))
	for filename, rec := range file.Packages {
		if rec.Subdir == "" {
			rec.Subdir = subdir
		}
		if rec.URL == "" {
			rec.URL = filepath.Join(filepath.Dir(path), filename)
		}
		records = append(records, rec)
	}
	return records, nil
}
