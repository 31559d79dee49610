package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/den/cmd/den/commands"
	"go.trai.ch/den/internal/app"
	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
	"go.trai.ch/den/internal/core/ports/mocks"
	"go.trai.ch/den/internal/engine/dispatch"
	"go.uber.org/mock/gomock"
)

type cliMocks struct {
	manifests *mocks.MockManifestLoader
	repodata  *mocks.MockRepodataLoader
	factory   *mocks.MockBackendFactory
	backend   *mocks.MockBackend
	solver    *mocks.MockCondaSolver
	installer *mocks.MockEnvironmentInstaller
}

func newTestCLI(t *testing.T, ctrl *gomock.Controller) (*commands.CLI, *cliMocks) {
	t.Helper()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	m := &cliMocks{
		manifests: mocks.NewMockManifestLoader(ctrl),
		repodata:  mocks.NewMockRepodataLoader(ctrl),
		factory:   mocks.NewMockBackendFactory(ctrl),
		backend:   mocks.NewMockBackend(ctrl),
		solver:    mocks.NewMockCondaSolver(ctrl),
		installer: mocks.NewMockEnvironmentInstaller(ctrl),
	}

	builder := dispatch.NewBuilder().
		WithCondaSolver(m.solver).
		WithInstaller(m.installer).
		WithLogger(log).
		WithReporter(ports.NoopReporter{})

	a := app.New(m.manifests, m.factory, m.repodata, builder, log)
	return commands.New(a), m
}

func (m *cliMocks) expectSession(ws *domain.Workspace) {
	m.manifests.EXPECT().Load(".").Return(ws, nil)
	m.factory.EXPECT().Create(gomock.Any()).Return(m.backend, func() error { return nil }, nil)
	m.repodata.EXPECT().
		Candidates(ws.Root, ws.Channels, ws.Platform).
		Return(nil, nil).
		AnyTimes()
}

func TestSolve_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	cli, m := newTestCLI(t, ctrl)

	ws := &domain.Workspace{
		Root:     t.TempDir(),
		Platform: "linux-64",
		Environments: map[string]domain.Environment{
			"default": {Requirements: []domain.MatchSpec{{Name: "python"}}},
		},
	}
	m.expectSession(ws)
	m.solver.EXPECT().
		SolveConda(gomock.Any(), gomock.Any()).
		Return([]domain.PackageRecord{{Name: "python", Version: "3.12.1", Build: "0"}}, nil)

	cli.SetArgs([]string{"solve"})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestSolve_UnknownEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	cli, m := newTestCLI(t, ctrl)

	ws := &domain.Workspace{
		Root:         t.TempDir(),
		Platform:     "linux-64",
		Environments: map[string]domain.Environment{"default": {}},
	}
	m.manifests.EXPECT().Load(".").Return(ws, nil)
	m.factory.EXPECT().Create(gomock.Any()).Return(m.backend, func() error { return nil }, nil)

	cli.SetArgs([]string{"solve", "missing"})
	err := cli.Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnknownEnvironment)
}

func TestBuild_RequiresPackageArg(t *testing.T) {
	ctrl := gomock.NewController(t)
	cli, _ := newTestCLI(t, ctrl)

	cli.SetArgs([]string{"build"})
	assert.Error(t, cli.Execute(context.Background()))
}

func TestRoot_Help(t *testing.T) {
	ctrl := gomock.NewController(t)
	cli, _ := newTestCLI(t, ctrl)

	cli.SetArgs([]string{"--help"})
	assert.NoError(t, cli.Execute(context.Background()))
}

func TestVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	cli, _ := newTestCLI(t, ctrl)

	cli.SetArgs([]string{"version"})
	assert.NoError(t, cli.Execute(context.Background()))
}
