// Package domain defines the core data model of den: package records, task
// specifications and their content-derived identities, and the error types
// shared across the engine and adapters.
package domain

import "strings"

// Platform identifies a conda platform/subdir such as "linux-64" or "noarch".
type Platform string

// CurrentPlatform is the platform den assumes when the manifest does not pin
// one explicitly.
const CurrentPlatform Platform = "linux-64"

// Channel is a conda channel name or URL.
type Channel string

// MatchSpec is a requirement on a single package. The constraint grammar is
// deliberately small: "*" or "" match anything, "1.2.*" matches a version
// prefix, and any other value must match the version exactly.
type MatchSpec struct {
	Name       string
	Constraint string
}

// String renders the spec in "name constraint" form.
func (m MatchSpec) String() string {
	if m.Constraint == "" || m.Constraint == "*" {
		return m.Name
	}
	return m.Name + " " + m.Constraint
}

// Matches reports whether a version satisfies the constraint.
func (m MatchSpec) Matches(version string) bool {
	switch {
	case m.Constraint == "" || m.Constraint == "*":
		return true
	case strings.HasSuffix(m.Constraint, ".*"):
		prefix := m.Constraint[:len(m.Constraint)-1]
		return strings.HasPrefix(version, prefix) || version == m.Constraint[:len(m.Constraint)-2]
	default:
		return version == m.Constraint
	}
}

// PackageRecord is a single resolved package, either fetched from a channel
// or produced by a source build.
type PackageRecord struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Build   string   `json:"build"`
	Subdir  Platform `json:"subdir"`

	// URL points at the package artifact. For source-built packages this is
	// a file path into the build cache.
	URL string `json:"url,omitempty"`

	// Depends lists the runtime requirements of the package.
	Depends []MatchSpec `json:"depends,omitempty"`
}
