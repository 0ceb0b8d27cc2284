package git

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Felix14-v2/fastback/pkg/constants"
	"github.com/Felix14-v2/fastback/pkg/snapshot"
)

const (
	worldA = "2fb3c0b2-1c4e-4f0e-8f7a-6a1d7a0b9c11"
	worldB = "7d1e2a44-90b1-4c55-a0f3-0e5c2b8e1d22"
)

func TestParseRefs(t *testing.T) {
	branches := parseRefs(`
refs/heads/snapshots/` + worldA + `/2024-01-01_00-00-00
refs/heads/snapshots/` + worldB + `/2024-01-02_00-00-00

`)

	assert.Equal(
		t,
		[]string{
			"snapshots/" + worldA + "/2024-01-01_00-00-00",
			"snapshots/" + worldB + "/2024-01-02_00-00-00",
		},
		branches,
	)

	assert.Empty(t, parseRefs(""))
}

func TestParseRemoteRefs(t *testing.T) {
	branches, err := parseRemoteRefs(
		"0123abcd\trefs/heads/snapshots/" + worldA + "/2024-01-01_00-00-00\n" +
			"4567ef01\trefs/heads/snapshots/" + worldA + "/2024-01-01_01-00-00\n",
	)
	require.NoError(t, err)

	assert.Equal(
		t,
		[]string{
			"snapshots/" + worldA + "/2024-01-01_00-00-00",
			"snapshots/" + worldA + "/2024-01-01_01-00-00",
		},
		branches,
	)

	branches, err = parseRemoteRefs("")
	require.NoError(t, err)
	assert.Empty(t, branches)

	_, err = parseRemoteRefs("garbage without tab")
	assert.Error(t, err)
}

func TestCollectSkipsForeignBranches(t *testing.T) {
	repository := NewRepository(t.TempDir(), "", "origin")

	listing := repository.collect([]string{
		"snapshots/" + worldA + "/2024-01-01_00-00-00",
		"snapshots/not-a-world/2024-01-01_00-00-00",
		"snapshots/" + worldB + "/yesterday",
		"snapshots/" + worldB + "/2024-01-01_00-00-00",
	})

	assert.Equal(t, 2, listing.Count())
	assert.Len(t, listing.World(worldA), 1)
	assert.Len(t, listing.World(worldB), 1)
}

func requireGit(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping git integration test in short mode")
	}

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary is not available")
	}
}

func run(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
}

func setupRepository(t *testing.T, branches ...string) string {
	t.Helper()

	dir := t.TempDir()

	run(t, dir, "init", "-q")
	run(
		t, dir,
		"-c", "user.name=fastback", "-c", "user.email=fastback@localhost",
		"commit", "-q", "--allow-empty", "-m", "world",
	)

	for _, branch := range branches {
		run(t, dir, "branch", branch)
	}

	return dir
}

func TestRepositoryLocalSnapshots(t *testing.T) {
	requireGit(t)

	dir := setupRepository(
		t,
		"snapshots/"+worldA+"/2024-01-01_00-00-00",
		"snapshots/"+worldA+"/2024-01-01_01-00-00",
		"snapshots/"+worldB+"/2024-01-01_00-00-00",
		"snapshots/broken",
		"feature",
	)

	repository := NewRepository(dir, "git", "origin")

	listing, err := repository.ListSnapshots()
	require.NoError(t, err)

	assert.Equal(t, 3, listing.Count())

	ids := listing.World(worldA)
	require.Len(t, ids, 2)

	err = repository.DeleteSnapshot(ids[0])
	require.NoError(t, err)

	listing, err = repository.ListSnapshots()
	require.NoError(t, err)

	assert.Equal(t, []snapshot.ID{ids[1]}, listing.World(worldA))

	err = repository.DeleteSnapshot(ids[0])
	assert.Error(t, err)
}

func TestRepositoryRemoteSnapshots(t *testing.T) {
	requireGit(t)

	dir := setupRepository(
		t,
		"snapshots/"+worldA+"/2024-01-01_00-00-00",
		"snapshots/"+worldA+"/2024-01-01_01-00-00",
	)

	remote := filepath.Join(t.TempDir(), "remote.git")
	run(t, dir, "init", "-q", "--bare", remote)
	run(t, dir, "remote", "add", "origin", remote)
	run(t, dir, "push", "-q", "origin", "refs/heads/snapshots/*:refs/heads/snapshots/*")

	repository := NewRepository(dir, "git", "origin")

	listing, err := repository.ListRemoteSnapshots()
	require.NoError(t, err)

	ids := listing.World(worldA)
	require.Len(t, ids, 2)

	err = repository.DeleteRemoteSnapshot(ids[0])
	require.NoError(t, err)

	listing, err = repository.ListRemoteSnapshots()
	require.NoError(t, err)
	assert.Equal(t, []snapshot.ID{ids[1]}, listing.World(worldA))

	// local branches are untouched by remote pruning
	local, err := repository.ListSnapshots()
	require.NoError(t, err)
	assert.Len(t, local.World(worldA), 2)
}

func TestRepositoryWorldConfig(t *testing.T) {
	requireGit(t)

	dir := setupRepository(t)
	repository := NewRepository(dir, "", "origin")

	_, err := repository.LoadWorldConfig()
	assert.Error(t, err)

	require.NoError(t, repository.SetConfig(constants.WorldID, worldA))
	require.NoError(t, repository.SetConfig(constants.LocalRetentionPolicy, "keep-last:count=5"))

	config, err := repository.LoadWorldConfig()
	require.NoError(t, err)

	assert.Equal(
		t,
		WorldConfig{
			WorldID:              worldA,
			LocalRetentionPolicy: "keep-last:count=5",
		},
		config,
	)
}
