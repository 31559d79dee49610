package dispatch

// queued is a unit of work waiting for a free slot in a limited queue.
type queued struct {
	start  func()
	cancel func()
}

// limitQueue enforces a per-kind ceiling on in-flight work. Work beyond the
// limit waits in FIFO order and is started as completions free capacity. A
// limit of zero or less means unbounded.
type limitQueue struct {
	limit    int
	inflight int
	pending  []queued
}

// submit starts the work immediately if capacity allows, otherwise queues it.
func (q *limitQueue) submit(item queued) {
	if q.limit <= 0 || q.inflight < q.limit {
		q.inflight++
		item.start()
		return
	}
	q.pending = append(q.pending, item)
}

// onDone records a completion and starts the next queued item, if any.
func (q *limitQueue) onDone() {
	q.inflight--
	if len(q.pending) == 0 {
		return
	}
	if q.limit > 0 && q.inflight >= q.limit {
		return
	}
	next := q.pending[0]
	q.pending = q.pending[1:]
	q.inflight++
	next.start()
}

// drain cancels everything still queued. Used during shutdown; in-flight work
// is allowed to finish.
func (q *limitQueue) drain() {
	for _, item := range q.pending {
		item.cancel()
	}
	q.pending = nil
}
