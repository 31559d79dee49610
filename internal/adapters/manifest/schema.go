package manifest

// denManifest mirrors the TOML structure of den.toml.
type denManifest struct {
	Workspace    workspaceSection          `toml:"workspace"`
	Dependencies map[string]string         `toml:"dependencies"`
	SourceDeps   map[string]sourceDep      `toml:"source-dependencies"`
	Environments map[string]environmentDTO `toml:"environments"`
}

type workspaceSection struct {
	Name     string   `toml:"name"`
	Platform string   `toml:"platform"`
	Channels []string `toml:"channels"`
}

type environmentDTO struct {
	Dependencies map[string]string    `toml:"dependencies"`
	SourceDeps   map[string]sourceDep `toml:"source-dependencies"`
}

// sourceDep declares where a source dependency comes from. Exactly one of git
// or path must be set.
type sourceDep struct {
	Git  string `toml:"git"`
	Rev  string `toml:"rev"`
	Path string `toml:"path"`
}
