package dispatch

import "go.trai.ch/den/internal/core/domain"

// Context identifies a task executing inside the dispatcher: its kind plus
// the numeric id allocated by that kind's table. Contexts are recorded as the
// parent of any work a task spawns, forming the chain the cycle detector
// walks.
type Context struct {
	Kind domain.TaskKind
	ID   uint64
}

type entryState uint8

const (
	statePending entryState = iota
	stateResult
	stateErrored
)

// entry is the per-identity state of a deduplicated task.
//
// Pending holds every caller's reply channel; Result caches the value and
// replays it to later requests; Errored cancels later requests outright. An
// entry moves Pending -> Result or Pending -> Errored exactly once.
type entry[T any] struct {
	state   entryState
	waiters []waiter[T]
	value   T

	// label is the human identifier used in cycle chains and reporting.
	label string

	// reporterID is valid when hasReporter is set; it links this entry to
	// the reporter events emitted for it.
	reporterID  int64
	hasReporter bool
}

// complete delivers the value to every waiter and caches it. Results are
// shared, not deep-copied; result types must be safe to share between
// goroutines.
func (e *entry[T]) complete(value T) {
	for _, w := range e.waiters {
		w.deliver(outcome[T]{value: value})
	}
	e.waiters = nil
	e.value = value
	e.state = stateResult
}

// fail delivers the error to the first waiter whose caller is still there
// and cancels every other waiter. Only one caller learns the real error; the
// rest observe a cancellation. This avoids requiring error values to be
// duplicated per waiter and is deliberate, documented behavior.
func (e *entry[T]) fail(err error) {
	delivered := false
	for _, w := range e.waiters {
		if delivered {
			w.cancel()
			continue
		}
		select {
		case <-w.gone:
			// Caller stopped waiting; fall forward to the next one.
			w.cancel()
		default:
			w.deliver(outcome[T]{err: err})
			delivered = true
		}
	}
	e.waiters = nil
	e.state = stateErrored
}

// cancel closes every waiter without a value.
func (e *entry[T]) cancel() {
	for _, w := range e.waiters {
		w.cancel()
	}
	e.waiters = nil
	e.state = stateErrored
}

// table is the deduplication table of one task kind: identity key to numeric
// id, and id to entry. IDs are allocated monotonically and never reused, so a
// Context stays unambiguous for the process lifetime.
type table[T any] struct {
	kind    domain.TaskKind
	ids     map[domain.TaskKey]uint64
	entries map[uint64]*entry[T]
	nextID  uint64
}

func newTable[T any](kind domain.TaskKind) table[T] {
	return table[T]{
		kind:    kind,
		ids:     make(map[domain.TaskKey]uint64),
		entries: make(map[uint64]*entry[T]),
	}
}

// lookup finds the entry for an identity key, if any request for it was ever
// accepted.
func (t *table[T]) lookup(key domain.TaskKey) (uint64, *entry[T], bool) {
	id, ok := t.ids[key]
	if !ok {
		return 0, nil, false
	}
	return id, t.entries[id], true
}

// insert allocates a new pending entry for an unseen identity.
func (t *table[T]) insert(key domain.TaskKey, label string, w waiter[T]) uint64 {
	id := t.nextID
	t.nextID++
	t.ids[key] = id
	t.entries[id] = &entry[T]{
		state:   statePending,
		waiters: []waiter[T]{w},
		label:   label,
	}
	return id
}

// meta exposes the label and reporter id of an entry for cycle diagnostics
// and reporter-context resolution.
func (t *table[T]) meta(id uint64) (label string, reporterID int64, hasReporter, ok bool) {
	e, found := t.entries[id]
	if !found {
		return "", 0, false, false
	}
	return e.label, e.reporterID, e.hasReporter, true
}

// kindLookup is the type-erased view of a table used by the processor when
// walking parent chains.
type kindLookup interface {
	meta(id uint64) (label string, reporterID int64, hasReporter, ok bool)
}
