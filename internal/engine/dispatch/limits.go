package dispatch

// Limits configures the concurrency ceilings of the resource-intensive task
// kinds. Zero means unbounded. Git checkouts, metadata requests, installs and
// cache queries are always unbounded; they are I/O bound and deduplication
// already keeps the volume low.
type Limits struct {
	// CondaSolves bounds concurrently running conda environment solves.
	CondaSolves int

	// SourceBuilds bounds concurrently running source builds.
	SourceBuilds int

	// BackendSourceBuilds bounds concurrently running backend build
	// invocations. These typically spawn an external process each.
	BackendSourceBuilds int
}
