// Package app implements the application layer for den.
package app

import (
	"context"
	"path/filepath"
	"sync"

	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
	"go.trai.ch/den/internal/engine/dispatch"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	manifests ports.ManifestLoader
	backends  ports.BackendFactory
	repodata  ports.RepodataLoader
	builder   *dispatch.Builder
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	manifests ports.ManifestLoader,
	backends ports.BackendFactory,
	repodata ports.RepodataLoader,
	builder *dispatch.Builder,
	logger ports.Logger,
) *App {
	return &App{
		manifests: manifests,
		backends:  backends,
		repodata:  repodata,
		builder:   builder,
		logger:    logger,
	}
}

// session is one manifest-scoped run: a loaded workspace, a running backend
// process and a dispatcher finished against both.
type session struct {
	workspace  *domain.Workspace
	dispatcher *dispatch.Dispatcher
	close      func()
}

// open loads the workspace from the working directory, starts the build
// backend and finishes the dispatcher. Callers must invoke session.close.
func (a *App) open(ctx context.Context) (*session, error) {
	ws, err := a.manifests.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load workspace manifest")
	}

	backend, closeBackend, err := a.backends.Create(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to start build backend")
	}

	d := a.builder.WithBackend(backend).WithRootDir(ws.Root).Finish()

	return &session{
		workspace:  ws,
		dispatcher: d,
		close: func() {
			d.Close()
			if err := closeBackend(); err != nil {
				a.logger.Error(zerr.Wrap(err, "failed to stop build backend"))
			}
		},
	}, nil
}

// environments validates the requested environment names against the
// manifest. An empty request means the default environment.
func (s *session) environments(names []string) ([]string, error) {
	if len(names) == 0 {
		names = []string{domain.DefaultEnvironment}
	}
	for _, name := range names {
		if _, ok := s.workspace.Environments[name]; !ok {
			return nil, zerr.With(domain.ErrUnknownEnvironment, "environment", name)
		}
	}
	return names, nil
}

// Solve resolves the named environments and returns the solved records per
// environment. Environments solve concurrently; shared sub-work such as
// source builds is deduplicated by the dispatcher.
func (a *App) Solve(ctx context.Context, envNames []string) (map[string][]domain.PackageRecord, error) {
	s, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer s.close()

	names, err := s.environments(envNames)
	if err != nil {
		return nil, err
	}

	candidates, err := a.candidates(s.workspace)
	if err != nil {
		return nil, err
	}

	return a.solveAll(ctx, s, names, candidates)
}

// Install solves and installs the named environments under
// <root>/.den/envs/<name>.
func (a *App) Install(ctx context.Context, envNames []string) (map[string]domain.InstallEnvironmentResult, error) {
	s, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer s.close()

	names, err := s.environments(envNames)
	if err != nil {
		return nil, err
	}

	candidates, err := a.candidates(s.workspace)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	installed := make(map[string]domain.InstallEnvironmentResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		g.Go(func() error {
			records, err := a.solveEnvironment(gctx, s, name, candidates)
			if err != nil {
				return err
			}

			result, err := s.dispatcher.InstallEnvironment(gctx, &domain.InstallEnvironmentSpec{
				Name:     name,
				Prefix:   filepath.Join(s.workspace.Root, ".den", "envs", name),
				Platform: s.workspace.Platform,
				Records:  records,
			})
			if err != nil {
				return zerr.With(err, "environment", name)
			}

			mu.Lock()
			installed[name] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return installed, nil
}

// Build builds the named source dependency and returns the produced record.
func (a *App) Build(ctx context.Context, packageName string) (domain.SourceBuildResult, error) {
	s, err := a.open(ctx)
	if err != nil {
		return domain.SourceBuildResult{}, err
	}
	defer s.close()

	req, ok := s.workspace.SourceRequirementNamed(packageName)
	if !ok {
		return domain.SourceBuildResult{}, zerr.With(domain.ErrUnknownSourceDependency, "package", packageName)
	}

	result, err := s.dispatcher.SourceBuild(ctx, &domain.SourceBuildSpec{
		Package:  req.Name,
		Source:   req.Source,
		Platform: s.workspace.Platform,
		Channels: s.workspace.Channels,
	})
	if err != nil {
		return domain.SourceBuildResult{}, zerr.With(err, "package", packageName)
	}
	return result, nil
}

func (a *App) candidates(ws *domain.Workspace) ([]domain.PackageRecord, error) {
	candidates, err := a.repodata.Candidates(ws.Root, ws.Channels, ws.Platform)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load channel repodata")
	}
	return candidates, nil
}

func (a *App) solveAll(ctx context.Context, s *session, names []string, candidates []domain.PackageRecord) (map[string][]domain.PackageRecord, error) {
	var mu sync.Mutex
	solved := make(map[string][]domain.PackageRecord, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		g.Go(func() error {
			records, err := a.solveEnvironment(gctx, s, name, candidates)
			if err != nil {
				return err
			}

			mu.Lock()
			solved[name] = records
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return solved, nil
}

func (a *App) solveEnvironment(ctx context.Context, s *session, name string, candidates []domain.PackageRecord) ([]domain.PackageRecord, error) {
	env := s.workspace.Environments[name]

	records, err := s.dispatcher.SolveEnvironment(ctx, &domain.EnvironmentSolveSpec{
		Name:               name,
		Platform:           s.workspace.Platform,
		Channels:           s.workspace.Channels,
		Requirements:       env.Requirements,
		SourceRequirements: env.SourceRequirements,
		Candidates:         candidates,
	})
	if err != nil {
		return nil, zerr.With(err, "environment", name)
	}
	return records, nil
}
