// Package config provides the tool configuration loader for den.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Filename is the configuration file den looks for in the working directory.
const Filename = "den.yaml"

// FileConfigLoader implements ports.ConfigLoader using a YAML file. A missing
// file yields the defaults, not an error.
type FileConfigLoader struct {
	Filename string
}

// NewLoader creates a loader for the default filename.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{Filename: Filename}
}

// Load reads the configuration from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (*domain.Config, error) {
	cfg := Defaults()

	path := filepath.Join(cwd, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file denfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	if file.CacheDir != "" {
		cfg.CacheDir = file.CacheDir
	}
	if file.MaxConcurrentSolves < 0 {
		return nil, zerr.With(zerr.New("max-concurrent-solves must not be negative"), "value", file.MaxConcurrentSolves)
	}
	if file.MaxConcurrentBuilds < 0 {
		return nil, zerr.With(zerr.New("max-concurrent-builds must not be negative"), "value", file.MaxConcurrentBuilds)
	}
	if file.MaxConcurrentSolves > 0 {
		cfg.MaxConcurrentSolves = file.MaxConcurrentSolves
	}
	if file.MaxConcurrentBuilds > 0 {
		cfg.MaxConcurrentBuilds = file.MaxConcurrentBuilds
	}

	return cfg, nil
}

// Defaults returns the configuration used when no den.yaml is present: a
// per-user cache directory and solves bounded by the CPU count.
func Defaults() *domain.Config {
	cacheDir := ".den-cache"
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "den")
	}
	return &domain.Config{
		CacheDir:            cacheDir,
		MaxConcurrentSolves: runtime.NumCPU(),
	}
}
