package prune

import (
	"fmt"

	"github.com/Felix14-v2/fastback/pkg/snapshot"
)

// ListError is returned when the backend could not enumerate snapshots.
type ListError struct {
	WorldID string
	Err     error
}

func (err *ListError) Error() string {
	return fmt.Sprintf(
		"unable to list snapshots of world %q: %s",
		err.WorldID,
		err.Err,
	)
}

func (err *ListError) Unwrap() error {
	return err.Err
}

// DeleteError is returned when the backend failed to delete a snapshot.
// The run stops at the failing snapshot; Deleted and Remaining tell exactly
// how far it got.
type DeleteError struct {
	Snapshot  snapshot.ID
	Deleted   []snapshot.ID
	Remaining []snapshot.ID
	Err       error
}

func (err *DeleteError) Error() string {
	return fmt.Sprintf(
		"unable to delete snapshot %q (%d deleted before, %d not attempted): %s",
		err.Snapshot.BranchName(),
		len(err.Deleted),
		len(err.Remaining),
		err.Err,
	)
}

func (err *DeleteError) Unwrap() error {
	return err.Err
}
