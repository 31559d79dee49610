// Package dispatch implements den's task orchestration core: a deduplicating,
// concurrency-bounded, cancellation-aware dispatcher that coordinates
// recursive asynchronous operations such as git checkouts, conda solves,
// environment installs, source metadata queries and source builds.
//
// All scheduling state is owned by a single background goroutine (the
// processor); callers talk to it exclusively through message passing. Work
// with identical content-derived identity is executed once and its result
// fanned out to every requester.
//
// Error fan-out is deliberately asymmetric: when deduplicated work fails,
// only the first waiter receives the actual error. Every other waiter — and
// every later request for the same identity — observes ErrCancelled instead.
// Callers that need the precise failure must be the first to request the
// work; everyone else must tolerate a generic cancellation.
package dispatch

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
)

// Dispatcher is the user-facing handle to the orchestration core. Handles are
// cheap to copy and safe for concurrent use; all copies talk to the same
// background processor. Handles created internally for running tasks carry
// that task's context, so their requests participate in cycle detection.
type Dispatcher struct {
	inbox    chan message
	shutdown chan struct{}
	stopped  chan struct{}
	taskCtx  *Context

	// root is only set on the handle returned by the builder; it owns the
	// shutdown of the background loop.
	root *dispatcherRoot
}

type dispatcherRoot struct {
	once sync.Once
}

var _ ports.Dispatcher = (*Dispatcher)(nil)

// Close shuts the dispatcher down: no new requests are accepted, queued but
// unstarted work is cancelled, and in-flight work is drained before the
// background loop stops. Close blocks until the loop has stopped and is safe
// to call more than once. Requests issued after Close fail with
// ErrCancelled.
func (d *Dispatcher) Close() {
	if d.root == nil {
		return
	}
	d.root.once.Do(func() {
		close(d.shutdown)
	})
	<-d.stopped
}

// IsCancelled reports whether an error represents a cancellation rather than
// a domain failure.
func IsCancelled(err error) bool {
	return errors.Is(err, domain.ErrCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// DropCancelled converts a task result into a plain optional result,
// silently discarding cancellations: (nil, nil) when the operation was
// cancelled, the value on success, the error otherwise.
func DropCancelled[T any](value T, err error) (*T, error) {
	if err == nil {
		return &value, nil
	}
	if IsCancelled(err) {
		return nil, nil
	}
	return nil, err
}

// execute sends one request to the processor and awaits the reply. A failed
// send (dispatcher shut down) and a reply channel closed without a value
// both surface as ErrCancelled.
func execute[S any, T any](d *Dispatcher, ctx context.Context, spec S, wrap func(task[S, T]) message) (T, error) {
	var zero T

	t := task[S, T]{
		ctx:    ctx,
		spec:   spec,
		parent: d.taskCtx,
		reply:  make(chan outcome[T], 1),
	}

	select {
	case d.inbox <- wrap(t):
	case <-d.shutdown:
		return zero, domain.ErrCancelled
	case <-ctx.Done():
		return zero, domain.ErrCancelled
	}

	select {
	case out, ok := <-t.reply:
		if !ok {
			return zero, domain.ErrCancelled
		}
		if out.err != nil {
			return zero, out.err
		}
		return out.value, nil
	case <-ctx.Done():
		return zero, domain.ErrCancelled
	}
}

// SolveConda resolves a conda environment to a list of package records.
func (d *Dispatcher) SolveConda(ctx context.Context, spec *domain.CondaSolveSpec) ([]domain.PackageRecord, error) {
	return execute(d, ctx, spec, func(t task[*domain.CondaSolveSpec, []domain.PackageRecord]) message {
		return condaSolveTask{t}
	})
}

// SolveEnvironment resolves a workspace environment, building source metadata for
// its source requirements first.
func (d *Dispatcher) SolveEnvironment(ctx context.Context, spec *domain.EnvironmentSolveSpec) ([]domain.PackageRecord, error) {
	return execute(d, ctx, spec, func(t task[*domain.EnvironmentSolveSpec, []domain.PackageRecord]) message {
		return envSolveTask{t}
	})
}

// InstallEnvironment installs a solved environment into its prefix.
func (d *Dispatcher) InstallEnvironment(ctx context.Context, spec *domain.InstallEnvironmentSpec) (domain.InstallEnvironmentResult, error) {
	return execute(d, ctx, spec, func(t task[*domain.InstallEnvironmentSpec, domain.InstallEnvironmentResult]) message {
		return installTask{t}
	})
}

// CheckoutGit fetches a repository reference into the local checkout cache.
func (d *Dispatcher) CheckoutGit(ctx context.Context, ref domain.GitReference) (domain.GitCheckout, error) {
	return execute(d, ctx, ref, func(t task[domain.GitReference, domain.GitCheckout]) message {
		return gitCheckoutTask{t}
	})
}

// BackendMetadata queries a build backend for the packages a source location
// provides.
func (d *Dispatcher) BackendMetadata(ctx context.Context, spec *domain.BackendMetadataSpec) (*domain.BackendMetadata, error) {
	return execute(d, ctx, spec, func(t task[*domain.BackendMetadataSpec, *domain.BackendMetadata]) message {
		return backendMetadataTask{t}
	})
}

// SourceMetadata returns the metadata of one package within a source
// location.
func (d *Dispatcher) SourceMetadata(ctx context.Context, spec *domain.SourceMetadataSpec) (*domain.SourceMetadata, error) {
	return execute(d, ctx, spec, func(t task[*domain.SourceMetadataSpec, *domain.SourceMetadata]) message {
		return sourceMetadataTask{t}
	})
}

// SourceBuild builds a package from source, consulting the build cache
// first.
func (d *Dispatcher) SourceBuild(ctx context.Context, spec *domain.SourceBuildSpec) (domain.SourceBuildResult, error) {
	return execute(d, ctx, spec, func(t task[*domain.SourceBuildSpec, domain.SourceBuildResult]) message {
		return sourceBuildTask{t}
	})
}

// BackendSourceBuild invokes the build backend for a checkout whose cache
// status has already been established.
func (d *Dispatcher) BackendSourceBuild(ctx context.Context, spec *domain.BackendSourceBuildSpec) (domain.BuiltSource, error) {
	return execute(d, ctx, spec, func(t task[*domain.BackendSourceBuildSpec, domain.BuiltSource]) message {
		return backendSourceBuildTask{t}
	})
}

// SourceBuildCacheStatus queries whether a previous build of a source
// package can be reused.
func (d *Dispatcher) SourceBuildCacheStatus(ctx context.Context, spec *domain.SourceBuildCacheStatusSpec) (*domain.SourceBuildCacheEntry, error) {
	return execute(d, ctx, spec, func(t task[*domain.SourceBuildCacheStatusSpec, *domain.SourceBuildCacheEntry]) message {
		return cacheStatusTask{t}
	})
}

// ClearReporter asks the attached reporter to clear its output and waits
// until it has.
func (d *Dispatcher) ClearReporter(ctx context.Context) {
	t := clearReporterTask{reply: make(chan struct{})}
	select {
	case d.inbox <- t:
	case <-d.shutdown:
		return
	case <-ctx.Done():
		return
	}
	select {
	case <-t.reply:
	case <-ctx.Done():
	}
}
