package domain

import "strings"

// CycleLink is one hop in a dependency cycle: the resource being waited on
// and the kind of task that waits.
type CycleLink struct {
	Name string
	Kind string
}

// CycleError reports that a request would wait, transitively, on itself. The
// chain is ordered from the request that closed the cycle back to the task it
// tried to join.
type CycleError struct {
	Chain []CycleLink
}

// Error renders the cycle as a readable chain.
func (e *CycleError) Error() string {
	var sb strings.Builder
	sb.WriteString("cycle detected")
	for i, link := range e.Chain {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString(" -> ")
		}
		sb.WriteString(link.Kind)
		sb.WriteString("(")
		sb.WriteString(link.Name)
		sb.WriteString(")")
	}
	return sb.String()
}
