package dispatch

import (
	"context"

	"go.trai.ch/den/internal/core/domain"
)

// outcome is the value delivered on a reply channel. The channel is buffered
// with capacity one and closed after at most one send; a close without a send
// means the request was cancelled.
type outcome[T any] struct {
	value T
	err   error
}

// waiter is one caller awaiting a task. The gone channel is the caller's
// context; a waiter whose context fired is skipped when a failure is handed
// to the first live waiter.
type waiter[T any] struct {
	ch   chan outcome[T]
	gone <-chan struct{}
}

func (w waiter[T]) deliver(out outcome[T]) {
	w.ch <- out
	close(w.ch)
}

func (w waiter[T]) cancel() {
	close(w.ch)
}

// task is a single request travelling from a dispatcher handle to the
// processor.
type task[S any, T any] struct {
	ctx    context.Context
	spec   S
	parent *Context
	reply  chan outcome[T]
}

func (t task[S, T]) waiter() waiter[T] {
	return waiter[T]{ch: t.reply, gone: t.ctx.Done()}
}

// message is delivered to the processor goroutine. drop is invoked instead of
// deliver while the processor is draining; it cancels the request without
// starting work.
type message interface {
	deliver(p *processor)
	drop()
}

// completion is the result of one unit of spawned work, applied on the
// processor goroutine.
type completion interface {
	apply(p *processor)
}

// Per-kind message types. Each wraps the generic task with the spec and
// result types of its kind.

type condaSolveTask struct {
	task[*domain.CondaSolveSpec, []domain.PackageRecord]
}

func (t condaSolveTask) deliver(p *processor) { p.onSolveConda(t) }
func (t condaSolveTask) drop()                { close(t.reply) }

type envSolveTask struct {
	task[*domain.EnvironmentSolveSpec, []domain.PackageRecord]
}

func (t envSolveTask) deliver(p *processor) { p.onSolveEnvironment(t) }
func (t envSolveTask) drop()                { close(t.reply) }

type installTask struct {
	task[*domain.InstallEnvironmentSpec, domain.InstallEnvironmentResult]
}

func (t installTask) deliver(p *processor) { p.onInstall(t) }
func (t installTask) drop()                { close(t.reply) }

type gitCheckoutTask struct {
	task[domain.GitReference, domain.GitCheckout]
}

func (t gitCheckoutTask) deliver(p *processor) { p.onGitCheckout(t) }
func (t gitCheckoutTask) drop()                { close(t.reply) }

type backendMetadataTask struct {
	task[*domain.BackendMetadataSpec, *domain.BackendMetadata]
}

func (t backendMetadataTask) deliver(p *processor) { p.onBackendMetadata(t) }
func (t backendMetadataTask) drop()                { close(t.reply) }

type sourceMetadataTask struct {
	task[*domain.SourceMetadataSpec, *domain.SourceMetadata]
}

func (t sourceMetadataTask) deliver(p *processor) { p.onSourceMetadata(t) }
func (t sourceMetadataTask) drop()                { close(t.reply) }

type sourceBuildTask struct {
	task[*domain.SourceBuildSpec, domain.SourceBuildResult]
}

func (t sourceBuildTask) deliver(p *processor) { p.onSourceBuild(t) }
func (t sourceBuildTask) drop()                { close(t.reply) }

type backendSourceBuildTask struct {
	task[*domain.BackendSourceBuildSpec, domain.BuiltSource]
}

func (t backendSourceBuildTask) deliver(p *processor) { p.onBackendSourceBuild(t) }
func (t backendSourceBuildTask) drop()                { close(t.reply) }

type cacheStatusTask struct {
	task[*domain.SourceBuildCacheStatusSpec, *domain.SourceBuildCacheEntry]
}

func (t cacheStatusTask) deliver(p *processor) { p.onCacheStatus(t) }
func (t cacheStatusTask) drop()                { close(t.reply) }

// clearReporterTask asks the reporter to clear its output and replies when
// done.
type clearReporterTask struct {
	reply chan struct{}
}

func (t clearReporterTask) deliver(p *processor) {
	if p.reporter != nil {
		p.reporter.OnClear()
	}
	close(t.reply)
}

func (t clearReporterTask) drop() { close(t.reply) }
