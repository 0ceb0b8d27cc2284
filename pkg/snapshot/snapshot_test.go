package snapshot

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	worldA = "2fb3c0b2-1c4e-4f0e-8f7a-6a1d7a0b9c11"
	worldB = "7d1e2a44-90b1-4c55-a0f3-0e5c2b8e1d22"
)

func TestParse(t *testing.T) {
	id, err := Parse("snapshots/" + worldA + "/2024-03-01_12-30-45")
	require.NoError(t, err)

	assert.Equal(t, worldA, id.WorldID)
	assert.Equal(t, "2024-03-01_12-30-45", id.Name)
	assert.Equal(
		t,
		time.Date(2024, time.March, 1, 12, 30, 45, 0, time.UTC),
		id.CreatedAt,
	)
	assert.Equal(t, "snapshots/"+worldA+"/2024-03-01_12-30-45", id.BranchName())
	assert.Equal(t, id.BranchName(), id.String())
}

func TestParseRejectsMalformedBranches(t *testing.T) {
	testCases := []struct {
		name   string
		branch string
	}{
		{"empty", ""},
		{"too few parts", "snapshots/" + worldA},
		{"too many parts", "snapshots/" + worldA + "/2024-03-01_12-30-45/x"},
		{"wrong prefix", "backups/" + worldA + "/2024-03-01_12-30-45"},
		{"bad world id", "snapshots/not-a-uuid/2024-03-01_12-30-45"},
		{"bad timestamp", "snapshots/" + worldA + "/yesterday"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.branch)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tc.branch, parseErr.Branch)
		})
	}
}

func TestNewRoundTripsThroughBranchName(t *testing.T) {
	created := time.Date(2024, time.March, 1, 12, 30, 45, 999, time.FixedZone("X", 3600))

	id := New(worldA, created)
	assert.Equal(t, "2024-03-01_11-30-45", id.Name)

	parsed, err := Parse(id.BranchName())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestCompare(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	older := New(worldA, base)
	newer := New(worldA, base.Add(time.Second))

	assert.Equal(t, -1, Compare(older, newer))
	assert.Equal(t, 1, Compare(newer, older))
	assert.Equal(t, 0, Compare(older, older))

	sameTimeA := ID{WorldID: worldA, CreatedAt: base, Name: "a"}
	sameTimeB := ID{WorldID: worldA, CreatedAt: base, Name: "b"}
	assert.Equal(t, -1, Compare(sameTimeA, sameTimeB))

	otherWorld := New(worldB, base)
	assert.NotEqual(t, 0, Compare(older, otherWorld))
}

func TestSort(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	ids := []ID{
		New(worldA, base.Add(3*time.Hour)),
		New(worldA, base.Add(1*time.Hour)),
		New(worldA, base.Add(2*time.Hour)),
	}

	Sort(ids)

	assert.Equal(t, base.Add(1*time.Hour), ids[0].CreatedAt)
	assert.Equal(t, base.Add(2*time.Hour), ids[1].CreatedAt)
	assert.Equal(t, base.Add(3*time.Hour), ids[2].CreatedAt)
}

func TestListingWorld(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	listing := Listing{}
	listing.Add(New(worldA, base.Add(2*time.Hour)))
	listing.Add(New(worldB, base.Add(1*time.Hour)))
	listing.Add(New(worldA, base))
	listing.Add(New(worldA, base))

	// misfiled id must not leak into world A
	listing[worldA] = append(listing[worldA], New(worldB, base.Add(5*time.Hour)))

	ids := listing.World(worldA)
	require.Len(t, ids, 2)
	assert.Equal(t, base, ids[0].CreatedAt)
	assert.Equal(t, base.Add(2*time.Hour), ids[1].CreatedAt)

	for _, id := range ids {
		assert.Equal(t, worldA, id.WorldID)
	}

	assert.Empty(t, listing.World("missing"))
	assert.Equal(t, 5, listing.Count())
}
