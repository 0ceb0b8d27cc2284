// Package snapshot identifies world snapshots stored as branches named
// snapshots/<world-uuid>/<yyyy-MM-dd_HH-mm-ss>.
package snapshot

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Felix14-v2/fastback/pkg/constants"
)

// ID identifies one snapshot of one world. It is an immutable value.
type ID struct {
	WorldID   string
	CreatedAt time.Time
	Name      string
}

// ParseError is returned when a branch name does not follow the snapshot
// naming grammar.
type ParseError struct {
	Branch string
	Reason string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("invalid snapshot branch %q: %s", err.Branch, err.Reason)
}

// New creates an ID for the given world taken at createdAt. The time is
// truncated to whole seconds because that is what the name can hold.
func New(worldID string, createdAt time.Time) ID {
	createdAt = createdAt.UTC().Truncate(time.Second)

	return ID{
		WorldID:   worldID,
		CreatedAt: createdAt,
		Name:      createdAt.Format(constants.SnapshotNameLayout),
	}
}

// Parse decodes a branch name such as
// snapshots/2fb3c0b2-1c4e-4f0e-8f7a-6a1d7a0b9c11/2024-03-01_12-00-00.
func Parse(branch string) (ID, error) {
	parts := strings.Split(branch, "/")
	if len(parts) != 3 {
		return ID{}, &ParseError{
			Branch: branch,
			Reason: "expected " + constants.BranchPrefix + "/<world-uuid>/<name>",
		}
	}

	if parts[0] != constants.BranchPrefix {
		return ID{}, &ParseError{
			Branch: branch,
			Reason: fmt.Sprintf("prefix is not %q", constants.BranchPrefix),
		}
	}

	if _, err := uuid.Parse(parts[1]); err != nil {
		return ID{}, &ParseError{
			Branch: branch,
			Reason: "world id is not a uuid: " + err.Error(),
		}
	}

	createdAt, err := time.ParseInLocation(
		constants.SnapshotNameLayout,
		parts[2],
		time.UTC,
	)
	if err != nil {
		return ID{}, &ParseError{
			Branch: branch,
			Reason: "name is not a timestamp: " + err.Error(),
		}
	}

	return ID{
		WorldID:   parts[1],
		CreatedAt: createdAt,
		Name:      parts[2],
	}, nil
}

// BranchName renders the branch holding this snapshot.
func (id ID) BranchName() string {
	return constants.BranchPrefix + "/" + id.WorldID + "/" + id.Name
}

func (id ID) String() string {
	return id.BranchName()
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id.WorldID == "" && id.Name == "" && id.CreatedAt.IsZero()
}

// Compare orders ids by creation time, then by name, then by world so that
// the order is total even on listings that mix worlds.
func Compare(a, b ID) int {
	switch {
	case a.CreatedAt.Before(b.CreatedAt):
		return -1
	case a.CreatedAt.After(b.CreatedAt):
		return 1
	}

	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}

	return strings.Compare(a.WorldID, b.WorldID)
}

// Sort orders ids ascending in place.
func Sort(ids []ID) {
	sort.SliceStable(ids, func(i, j int) bool {
		return Compare(ids[i], ids[j]) < 0
	})
}
