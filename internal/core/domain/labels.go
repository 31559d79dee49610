package domain

import (
	"fmt"
	"strings"
)

// Label methods produce the short human identifier used in progress output
// and cycle diagnostics.

func (s *CondaSolveSpec) Label() string {
	names := make([]string, 0, len(s.Requirements))
	for _, r := range s.Requirements {
		names = append(names, r.Name)
	}
	return fmt.Sprintf("%s (%s)", strings.Join(names, ", "), s.Platform)
}

func (s *EnvironmentSolveSpec) Label() string {
	return "env: " + s.Name
}

func (s *InstallEnvironmentSpec) Label() string {
	return s.Name
}

func (g GitReference) Label() string {
	return g.URL
}

func (s *BackendMetadataSpec) Label() string {
	return s.Source.String()
}

func (s *SourceMetadataSpec) Label() string {
	return s.Package
}

func (s *SourceBuildSpec) Label() string {
	return s.Package
}

func (s *BackendSourceBuildSpec) Label() string {
	return s.Package
}

func (s *SourceBuildCacheStatusSpec) Label() string {
	return s.Package
}
