package dispatch

import "go.trai.ch/den/internal/core/domain"

// detectCycle reports whether joining the pending task `target` from a
// request spawned by `parent` would create a wait-cycle: the new request
// would, transitively via the parent chain, wait on the very task it is
// trying to join.
//
// The walk is bounded by the size of the parent-context table, so it
// terminates even on a malformed chain. A detected cycle fails only the
// requesting task; the tasks already in the chain keep running.
func (p *processor) detectCycle(target Context, parent *Context) *domain.CycleError {
	if parent == nil {
		return nil
	}

	chain := []domain.CycleLink{p.linkFor(target)}
	cur := *parent
	for hops := 0; hops <= len(p.parentContexts); hops++ {
		chain = append(chain, p.linkFor(cur))
		if cur == target {
			return &domain.CycleError{Chain: chain}
		}
		next, ok := p.parentContexts[cur]
		if !ok {
			return nil
		}
		cur = next
	}
	return nil
}

// linkFor resolves a context to its diagnostic chain link.
func (p *processor) linkFor(c Context) domain.CycleLink {
	label := "?"
	if lookup, ok := p.kinds[c.Kind]; ok {
		if l, _, _, found := lookup.meta(c.ID); found {
			label = l
		}
	}
	return domain.CycleLink{Name: label, Kind: string(c.Kind)}
}
