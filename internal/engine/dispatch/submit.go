package dispatch

import (
	"context"

	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
)

// keyedSpec is implemented by every task specification: a content-derived
// identity plus a human label.
type keyedSpec interface {
	Key() domain.TaskKey
	Label() string
}

// reporterHooks are the per-kind reporter events. All funcs are nil when no
// reporter is attached, or for kinds without reporter coverage.
type reporterHooks struct {
	queued   func(reason *ports.ReporterRef, label string) int64
	started  func(id int64)
	finished func(id int64)
}

// kindState bundles everything the processor keeps per task kind: the
// deduplication table, the optional concurrency-limited queue, and the
// reporter hooks.
type kindState[T any] struct {
	table table[T]
	queue *limitQueue
	hooks reporterHooks
}

func newKindState[T any](kind domain.TaskKind, limit int) kindState[T] {
	ks := kindState[T]{table: newTable[T](kind)}
	if limit != 0 {
		ks.queue = &limitQueue{limit: limit}
	}
	return ks
}

// submit is the single entry point for every task kind. It deduplicates the
// request by its derived key, checks for cycles before joining pending work,
// replays cached results, cancels requests for identities that previously
// errored, and otherwise schedules the underlying work (through the kind's
// queue when it has one).
func submit[S keyedSpec, T any](
	p *processor,
	ks *kindState[T],
	t task[S, T],
	run func(ctx context.Context, d *Dispatcher, spec S) (T, error),
	wrap func(id uint64, out outcome[T]) completion,
) {
	key := t.spec.Key()
	if id, e, ok := ks.table.lookup(key); ok {
		switch e.state {
		case statePending:
			target := Context{Kind: ks.table.kind, ID: id}
			if cerr := p.detectCycle(target, t.parent); cerr != nil {
				t.waiter().deliver(outcome[T]{err: cerr})
				return
			}
			e.waiters = append(e.waiters, t.waiter())
		case stateResult:
			t.waiter().deliver(outcome[T]{value: e.value})
		case stateErrored:
			t.waiter().cancel()
		}
		return
	}

	id := ks.table.insert(key, t.spec.Label(), t.waiter())
	taskCtx := Context{Kind: ks.table.kind, ID: id}
	if t.parent != nil {
		p.parentContexts[taskCtx] = *t.parent
	}

	e := ks.table.entries[id]
	if ks.hooks.queued != nil {
		e.reporterID = ks.hooks.queued(p.reporterRefFor(t.parent), e.label)
		e.hasReporter = true
	}

	reporterID := e.reporterID
	scoped := p.scoped(taskCtx)
	workCtx := t.ctx
	spec := t.spec

	start := func() {
		if ks.hooks.started != nil {
			ks.hooks.started(reporterID)
		}
		p.inflight++
		// Panics inside collaborator code are deliberately not recovered:
		// swallowing one would corrupt the scheduling invariants.
		go func() {
			value, err := run(workCtx, scoped, spec)
			p.sendCompletion(wrap(id, outcome[T]{value: value, err: err}))
		}()
	}
	cancelQueued := func() {
		delete(p.parentContexts, taskCtx)
		if ks.hooks.finished != nil {
			ks.hooks.finished(reporterID)
		}
		ks.table.entries[id].cancel()
	}

	if ks.queue != nil {
		ks.queue.submit(queued{start: start, cancel: cancelQueued})
		return
	}
	start()
}

// finish applies the outcome of a unit of work: it releases the parent
// context record, notifies the reporter, fans the result out through the
// table, and frees a queue slot for the next waiting item of the same kind.
func finish[T any](p *processor, ks *kindState[T], id uint64, out outcome[T]) {
	delete(p.parentContexts, Context{Kind: ks.table.kind, ID: id})

	e := ks.table.entries[id]
	if ks.hooks.finished != nil && e.hasReporter {
		ks.hooks.finished(e.reporterID)
	}

	switch {
	case out.err == nil:
		e.complete(out.value)
	case IsCancelled(out.err):
		e.cancel()
	default:
		e.fail(out.err)
	}

	if ks.queue != nil {
		ks.queue.onDone()
	}
}
