// Package manifest reads the den.toml workspace manifest.
package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/zerr"
)

// Filename is the workspace manifest den looks for.
const Filename = "den.toml"

// FileManifestLoader implements ports.ManifestLoader. It discovers the
// manifest by walking up from the working directory, so den can be invoked
// from any subdirectory of a workspace.
type FileManifestLoader struct {
	Filename string
}

// NewLoader creates a loader for the default filename.
func NewLoader() *FileManifestLoader {
	return &FileManifestLoader{Filename: Filename}
}

// Load discovers and parses the manifest starting at cwd.
func (l *FileManifestLoader) Load(cwd string) (*domain.Workspace, error) {
	root, err := l.discover(cwd)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(root, l.Filename)
	var m denManifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse workspace manifest"), "path", path)
	}

	return l.build(root, &m)
}

func (l *FileManifestLoader) discover(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, l.Filename)); err == nil {
			return dir, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.Wrap(err, "failed to probe for workspace manifest")
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrManifestNotFound, "start", cwd)
		}
		dir = parent
	}
}

func (l *FileManifestLoader) build(root string, m *denManifest) (*domain.Workspace, error) {
	platform := domain.Platform(m.Workspace.Platform)
	if platform == "" {
		platform = domain.CurrentPlatform
	}

	channels := make([]domain.Channel, 0, len(m.Workspace.Channels))
	for _, c := range m.Workspace.Channels {
		channels = append(channels, domain.Channel(c))
	}

	ws := &domain.Workspace{
		Name:         m.Workspace.Name,
		Root:         root,
		Platform:     platform,
		Channels:     channels,
		Environments: make(map[string]domain.Environment),
	}

	// The top-level dependency tables form the default environment.
	def, err := buildEnvironment(m.Dependencies, m.SourceDeps)
	if err != nil {
		return nil, err
	}
	ws.Environments[domain.DefaultEnvironment] = def

	for name, dto := range m.Environments {
		if name == domain.DefaultEnvironment {
			return nil, zerr.With(zerr.New("environment name 'default' is reserved"), "environment", name)
		}
		env, err := buildEnvironment(dto.Dependencies, dto.SourceDeps)
		if err != nil {
			return nil, zerr.With(err, "environment", name)
		}
		ws.Environments[name] = env
	}

	return ws, nil
}

func buildEnvironment(deps map[string]string, sourceDeps map[string]sourceDep) (domain.Environment, error) {
	env := domain.Environment{}

	for _, name := range sortedKeys(deps) {
		env.Requirements = append(env.Requirements, domain.MatchSpec{
			Name:       name,
			Constraint: deps[name],
		})
	}

	for _, name := range sortedKeys(sourceDeps) {
		dep := sourceDeps[name]
		switch {
		case dep.Git != "" && dep.Path != "":
			return env, zerr.With(zerr.New("source dependency declares both git and path"), "dependency", name)
		case dep.Git != "":
			env.SourceRequirements = append(env.SourceRequirements, domain.SourceRequirement{
				Name:   name,
				Source: domain.SourceSpec{Git: &domain.GitReference{URL: dep.Git, Rev: dep.Rev}},
			})
		case dep.Path != "":
			env.SourceRequirements = append(env.SourceRequirements, domain.SourceRequirement{
				Name:   name,
				Source: domain.SourceSpec{Path: dep.Path},
			})
		default:
			return env, zerr.With(zerr.New("source dependency declares neither git nor path"), "dependency", name)
		}
	}

	return env, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
