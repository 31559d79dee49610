package domain

// CondaSolveSpec fully describes a conda environment solve. The candidate
// repodata is already fetched by the caller; the solver collaborator only
// selects from it.
type CondaSolveSpec struct {
	// Requirements are the packages the environment must contain.
	Requirements []MatchSpec

	// Constraints restrict versions of packages without requiring them.
	Constraints []MatchSpec

	// Platform the environment is solved for.
	Platform Platform

	// Channels the candidates originate from, in priority order.
	Channels []Channel

	// Installed is a hint with the currently installed packages, used by the
	// solver to prefer keeping versions stable.
	Installed []PackageRecord

	// Candidates is the available repodata to solve against.
	Candidates []PackageRecord
}

// Key derives the deduplication identity of the solve.
func (s *CondaSolveSpec) Key() TaskKey {
	b := NewKeyBuilder()
	b.WriteSpecs(s.Requirements)
	b.WriteSpecs(s.Constraints)
	b.WriteString(string(s.Platform))
	for _, c := range s.Channels {
		b.WriteString(string(c))
	}
	b.Section()
	b.WriteRecords(s.Installed)
	b.WriteRecords(s.Candidates)
	return b.Key()
}

// EnvironmentSolveSpec describes a workspace environment: binary requirements
// plus source packages that must be built from a checkout before the final
// conda solve can run.
type EnvironmentSolveSpec struct {
	Name               string
	Platform           Platform
	Channels           []Channel
	Requirements       []MatchSpec
	SourceRequirements []SourceRequirement
	Candidates         []PackageRecord
}

// Key derives the deduplication identity of the environment solve.
func (s *EnvironmentSolveSpec) Key() TaskKey {
	b := NewKeyBuilder()
	b.WriteString(s.Name)
	b.WriteString(string(s.Platform))
	for _, c := range s.Channels {
		b.WriteString(string(c))
	}
	b.Section()
	b.WriteSpecs(s.Requirements)
	for _, r := range s.SourceRequirements {
		b.WriteString(r.Name)
		r.Source.writeKey(b)
	}
	b.Section()
	b.WriteRecords(s.Candidates)
	return b.Key()
}

// InstallEnvironmentSpec describes the installation of a solved environment
// into a prefix on disk.
type InstallEnvironmentSpec struct {
	Name     string
	Prefix   string
	Platform Platform
	Records  []PackageRecord
}

// Key derives the deduplication identity of the installation.
func (s *InstallEnvironmentSpec) Key() TaskKey {
	b := NewKeyBuilder()
	b.WriteString(s.Name)
	b.WriteString(s.Prefix)
	b.WriteString(string(s.Platform))
	b.WriteRecords(s.Records)
	return b.Key()
}

// InstallEnvironmentResult reports what an installation did.
type InstallEnvironmentResult struct {
	Prefix    string
	Installed int
}
