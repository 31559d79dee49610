package dispatch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/den/internal/adapters/cas"               //nolint:depguard // Wired in engine wiring
	"go.trai.ch/den/internal/adapters/config"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/den/internal/adapters/envdir"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/den/internal/adapters/git"               //nolint:depguard // Wired in engine wiring
	"go.trai.ch/den/internal/adapters/logger"            //nolint:depguard // Wired in engine wiring
	reporter "go.trai.ch/den/internal/adapters/reporter/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/den/internal/adapters/solver"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
)

// NodeID is the unique identifier for the dispatcher builder Graft node. The
// node yields a Builder rather than a running dispatcher: the workspace root
// and the build backend are only known once the manifest is loaded, so the
// app finishes the builder per invocation.
const NodeID graft.ID = "engine.dispatch"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			solver.NodeID,
			git.NodeID,
			envdir.NodeID,
			cas.NodeID,
			logger.NodeID,
			reporter.NodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			condaSolver, err := graft.Dep[ports.CondaSolver](ctx)
			if err != nil {
				return nil, err
			}

			gitResolver, err := graft.Dep[ports.GitResolver](ctx)
			if err != nil {
				return nil, err
			}

			installer, err := graft.Dep[ports.EnvironmentInstaller](ctx)
			if err != nil {
				return nil, err
			}

			buildCache, err := graft.Dep[ports.BuildCacheStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			rep, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder().
				WithCondaSolver(condaSolver).
				WithGitResolver(gitResolver).
				WithInstaller(installer).
				WithBuildCache(buildCache).
				WithLogger(log).
				WithReporter(rep).
				WithLimits(Limits{
					CondaSolves:         cfg.MaxConcurrentSolves,
					SourceBuilds:        cfg.MaxConcurrentBuilds,
					BackendSourceBuilds: cfg.MaxConcurrentBuilds,
				}), nil
		},
	})
}
