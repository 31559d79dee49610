package repodata_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/den/internal/adapters/repodata"
	"go.trai.ch/den/internal/core/domain"
)

func writeRepodata(t *testing.T, channelDir, subdir, content string) {
	t.Helper()
	dir := filepath.Join(channelDir, subdir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "repodata.json"), []byte(content), 0o644))
}

func TestCandidates_LoadsPlatformAndNoarch(t *testing.T) {
	root := t.TempDir()
	channel := filepath.Join(root, "channel")

	writeRepodata(t, channel, "linux-64", `{
		"packages": {
			"python-3.12.1-0.conda": {"name": "python", "version": "3.12.1", "build": "0"}
		}
	}`)
	writeRepodata(t, channel, "noarch", `{
		"packages": {
			"tzdata-2024a-0.conda": {"name": "tzdata", "version": "2024a", "build": "0"}
		}
	}`)

	records, err := repodata.NewLoader().Candidates(root, []domain.Channel{"channel"}, "linux-64")
	require.NoError(t, err)
	require.Len(t, records, 2)

	byName := make(map[string]domain.PackageRecord)
	for _, r := range records {
		byName[r.Name] = r
	}
	assert.Equal(t, domain.Platform("linux-64"), byName["python"].Subdir)
	assert.Equal(t, domain.Platform("noarch"), byName["tzdata"].Subdir)
	assert.NotEmpty(t, byName["python"].URL)
}

func TestCandidates_MissingChannelIsEmpty(t *testing.T) {
	records, err := repodata.NewLoader().Candidates(t.TempDir(), []domain.Channel{"absent"}, "linux-64")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCandidates_RejectsMalformedRepodata(t *testing.T) {
	root := t.TempDir()
	writeRepodata(t, filepath.Join(root, "bad"), "linux-64", "{")

	_, err := repodata.NewLoader().Candidates(root, []domain.Channel{"bad"}, "linux-64")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse repodata")
}
