// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/den/internal/adapters/backend"
	_ "go.trai.ch/den/internal/adapters/cas"
	_ "go.trai.ch/den/internal/adapters/config"
	_ "go.trai.ch/den/internal/adapters/envdir"
	_ "go.trai.ch/den/internal/adapters/git"
	_ "go.trai.ch/den/internal/adapters/logger"
	_ "go.trai.ch/den/internal/adapters/manifest"
	_ "go.trai.ch/den/internal/adapters/repodata"
	_ "go.trai.ch/den/internal/adapters/reporter/progrock"
	_ "go.trai.ch/den/internal/adapters/solver"
	// Register app and engine nodes.
	_ "go.trai.ch/den/internal/app"
	_ "go.trai.ch/den/internal/engine/dispatch"
)
