package domain

// Workspace is the parsed den.toml manifest: named environments plus the
// source dependencies available for building.
type Workspace struct {
	Name         string
	Root         string
	Platform     Platform
	Channels     []Channel
	Environments map[string]Environment
}

// Environment is one named environment declared in the manifest.
type Environment struct {
	Requirements       []MatchSpec
	SourceRequirements []SourceRequirement
}

// DefaultEnvironment is the environment used when no name is given.
const DefaultEnvironment = "default"

// SourceRequirementNamed looks up a source dependency across all
// environments.
func (w *Workspace) SourceRequirementNamed(name string) (SourceRequirement, bool) {
	for _, env := range w.Environments {
		for _, req := range env.SourceRequirements {
			if req.Name == name {
				return req, true
			}
		}
	}
	return SourceRequirement{}, false
}
