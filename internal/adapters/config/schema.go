package config

// denfile represents the structure of the den.yaml configuration file. All
// fields are optional; missing values fall back to defaults.
type denfile struct {
	CacheDir            string `yaml:"cache-dir"`
	MaxConcurrentSolves int    `yaml:"max-concurrent-solves"`
	MaxConcurrentBuilds int    `yaml:"max-concurrent-builds"`
}
