package domain

// Config holds tool-level settings that are not part of the workspace
// manifest.
type Config struct {
	// CacheDir is the root for git checkouts, build artifacts and the build
	// cache index.
	CacheDir string

	// MaxConcurrentSolves bounds in-flight conda solves. Zero means
	// unbounded.
	MaxConcurrentSolves int

	// MaxConcurrentBuilds bounds in-flight backend source builds. Zero means
	// unbounded.
	MaxConcurrentBuilds int
}
