package domain

// GitReference identifies a git repository at a particular revision.
type GitReference struct {
	URL string
	Rev string
}

// Key derives the deduplication identity of a checkout.
func (g GitReference) Key() TaskKey {
	return NewKeyBuilder().WriteString(g.URL).WriteString(g.Rev).Key()
}

// GitCheckout is the result of fetching a GitReference: the resolved commit
// and the local path of the checkout.
type GitCheckout struct {
	Reference GitReference
	Commit    string
	Path      string
}

// SourceSpec locates the source of a package, either a git repository or a
// path relative to the workspace root. Exactly one field is set.
type SourceSpec struct {
	Git  *GitReference
	Path string
}

func (s SourceSpec) writeKey(b *KeyBuilder) {
	if s.Git != nil {
		b.WriteString("git").WriteString(s.Git.URL).WriteString(s.Git.Rev)
		return
	}
	b.WriteString("path").WriteString(s.Path)
}

// String renders the source location for diagnostics.
func (s SourceSpec) String() string {
	if s.Git != nil {
		if s.Git.Rev == "" {
			return s.Git.URL
		}
		return s.Git.URL + "@" + s.Git.Rev
	}
	return s.Path
}

// SourceRequirement is a dependency that must be built from source.
type SourceRequirement struct {
	Name   string
	Source SourceSpec
}

// SourceCheckout is a source tree on the local disk, after any git fetch has
// completed.
type SourceCheckout struct {
	Path   string
	Origin SourceSpec
}

// SourcePackageMetadata describes one package a build backend can produce
// from a checkout, including its own binary and source dependencies.
type SourcePackageMetadata struct {
	Name          string              `json:"name"`
	Version       string              `json:"version"`
	Depends       []MatchSpec         `json:"depends,omitempty"`
	SourceDepends []SourceRequirement `json:"sourceDepends,omitempty"`
}

// BackendMetadataSpec requests the metadata of every package a backend can
// provide for a source location.
type BackendMetadataSpec struct {
	Source   SourceSpec
	Platform Platform
	Channels []Channel
}

// Key derives the deduplication identity of the metadata request.
func (s *BackendMetadataSpec) Key() TaskKey {
	b := NewKeyBuilder()
	s.Source.writeKey(b)
	b.WriteString(string(s.Platform))
	for _, c := range s.Channels {
		b.WriteString(string(c))
	}
	return b.Key()
}

// BackendMetadata is the backend's answer for a whole checkout. Shared
// between waiters, so it must be treated as immutable.
type BackendMetadata struct {
	Checkout SourceCheckout
	Packages []SourcePackageMetadata
}

// SourceMetadataSpec requests the metadata of a single named package within a
// source location.
type SourceMetadataSpec struct {
	Package  string
	Source   SourceSpec
	Platform Platform
	Channels []Channel
}

// Key derives the deduplication identity of the metadata request.
func (s *SourceMetadataSpec) Key() TaskKey {
	b := NewKeyBuilder()
	b.WriteString(s.Package)
	s.Source.writeKey(b)
	b.WriteString(string(s.Platform))
	for _, c := range s.Channels {
		b.WriteString(string(c))
	}
	return b.Key()
}

// SourceMetadata is the per-package view of a backend metadata result.
type SourceMetadata struct {
	Package  SourcePackageMetadata
	Checkout SourceCheckout
}

// SourceBuildSpec requests a package to be built from source, consulting the
// build cache first.
type SourceBuildSpec struct {
	Package  string
	Source   SourceSpec
	Platform Platform
	Channels []Channel
}

// Key derives the deduplication identity of the build.
func (s *SourceBuildSpec) Key() TaskKey {
	b := NewKeyBuilder()
	b.WriteString("build")
	b.WriteString(s.Package)
	s.Source.writeKey(b)
	b.WriteString(string(s.Platform))
	for _, c := range s.Channels {
		b.WriteString(string(c))
	}
	return b.Key()
}

// SourceBuildResult is the outcome of a source build.
type SourceBuildResult struct {
	Record       PackageRecord
	ArtifactPath string
	CacheHit     bool
}

// BackendSourceBuildSpec is the inner, backend-driven part of a source build:
// the checkout is already present and the cache was consulted.
type BackendSourceBuildSpec struct {
	Package  string
	Checkout SourceCheckout
	Platform Platform
}

// Key derives the deduplication identity of the backend build.
func (s *BackendSourceBuildSpec) Key() TaskKey {
	b := NewKeyBuilder()
	b.WriteString("backend-build")
	b.WriteString(s.Package)
	b.WriteString(s.Checkout.Path)
	s.Checkout.Origin.writeKey(b)
	b.WriteString(string(s.Platform))
	return b.Key()
}

// BuiltSource is the artifact produced by a backend build.
type BuiltSource struct {
	Record       PackageRecord
	ArtifactPath string
}

// SourceBuildCacheStatusSpec queries whether a previous build of a source
// package is still usable.
type SourceBuildCacheStatusSpec struct {
	Package  string
	Source   SourceSpec
	Platform Platform
}

// Key derives the deduplication identity of the query.
func (s *SourceBuildCacheStatusSpec) Key() TaskKey {
	b := NewKeyBuilder()
	b.WriteString("cache-status")
	b.WriteString(s.Package)
	s.Source.writeKey(b)
	b.WriteString(string(s.Platform))
	return b.Key()
}

// CacheKey is the stable string key under which a build is stored.
func (s *SourceBuildCacheStatusSpec) CacheKey() string {
	return s.Key().String()
}

// SourceBuildCacheEntry is the stored state of a previous source build.
type SourceBuildCacheEntry struct {
	Key          string         `json:"key"`
	Record       *PackageRecord `json:"record,omitempty"`
	ArtifactPath string         `json:"artifactPath,omitempty"`

	// Fresh reports whether the entry may be reused without rebuilding.
	Fresh bool `json:"fresh"`
}
