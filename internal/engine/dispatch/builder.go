package dispatch

import (
	"errors"

	"go.trai.ch/den/internal/core/ports"
)

// Builder assembles a Dispatcher. Collaborators are optional; task kinds
// whose collaborator is missing fail with a configuration error when first
// requested.
type Builder struct {
	data     sharedData
	reporter ports.Reporter
}

// NewBuilder creates a builder with unbounded limits and no collaborators.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithCondaSolver sets the solver collaborator.
func (b *Builder) WithCondaSolver(s ports.CondaSolver) *Builder {
	b.data.condaSolver = s
	return b
}

// WithInstaller sets the environment installer collaborator.
func (b *Builder) WithInstaller(i ports.EnvironmentInstaller) *Builder {
	b.data.installer = i
	return b
}

// WithGitResolver sets the git resolver collaborator.
func (b *Builder) WithGitResolver(g ports.GitResolver) *Builder {
	b.data.gitResolver = g
	return b
}

// WithBackend sets the build backend collaborator.
func (b *Builder) WithBackend(be ports.Backend) *Builder {
	b.data.backend = be
	return b
}

// WithBuildCache sets the persistent source build cache.
func (b *Builder) WithBuildCache(s ports.BuildCacheStore) *Builder {
	b.data.buildCache = s
	return b
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(l ports.Logger) *Builder {
	b.data.logger = l
	return b
}

// WithReporter attaches a progress reporter. The dispatcher behaves
// identically without one.
func (b *Builder) WithReporter(r ports.Reporter) *Builder {
	b.reporter = r
	return b
}

// WithLimits sets the per-kind concurrency ceilings.
func (b *Builder) WithLimits(l Limits) *Builder {
	b.data.limits = l
	return b
}

// WithRootDir sets the directory against which relative source paths are
// resolved.
func (b *Builder) WithRootDir(dir string) *Builder {
	b.data.rootDir = dir
	return b
}

// Finish spawns the background processor and returns the root dispatcher
// handle. The caller owns the handle and must Close it to stop the loop.
func (b *Builder) Finish() *Dispatcher {
	data := b.data
	p := newProcessor(&data, b.reporter)
	go p.run()
	return &Dispatcher{
		inbox:    p.inbox,
		shutdown: p.shutdown,
		stopped:  p.stopped,
		root:     &dispatcherRoot{},
	}
}

// ErrCollaboratorMissing is returned by task kinds whose collaborator was
// never configured on the builder.
var ErrCollaboratorMissing = errors.New("collaborator not configured")

func requireCollaborator(name string, present bool) error {
	if present {
		return nil
	}
	return &collaboratorError{name: name}
}

type collaboratorError struct {
	name string
}

func (e *collaboratorError) Error() string {
	return "no " + e.name + " configured"
}

func (e *collaboratorError) Unwrap() error {
	return ErrCollaboratorMissing
}
