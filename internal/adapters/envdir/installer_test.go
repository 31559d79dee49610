package envdir_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/den/internal/adapters/envdir"
	"go.trai.ch/den/internal/core/domain"
)

func TestInstall_WritesManifest(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "envs", "default")

	spec := &domain.InstallEnvironmentSpec{
		Name:     "default",
		Prefix:   prefix,
		Platform: "linux-64",
		Records: []domain.PackageRecord{
			{Name: "python", Version: "3.12.1", Build: "0", Subdir: "linux-64"},
			{Name: "numpy", Version: "2.1.0", Build: "0", Subdir: "linux-64"},
		},
	}

	result, err := envdir.NewInstaller(nil).Install(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, prefix, result.Prefix)
	assert.Equal(t, 2, result.Installed)

	records, err := envdir.ReadInstalled(prefix)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "python", records[0].Name)
}

func TestInstall_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := envdir.NewInstaller(nil).Install(ctx, &domain.InstallEnvironmentSpec{
		Name:   "default",
		Prefix: t.TempDir(),
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestReadInstalled_MissingPrefix(t *testing.T) {
	records, err := envdir.ReadInstalled(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, records)
}
