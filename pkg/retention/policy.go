// Package retention decides which snapshots of a world are obsolete.
//
// A Policy is a pure function over the snapshots of one world: it never
// talks to the backend and returns the same answer for the same input.
// Policies are built from a configuration string by Decode, which looks the
// policy type up in a Registry.
package retention

import (
	"time"

	"github.com/Felix14-v2/fastback/pkg/snapshot"
)

type Policy interface {
	// GetName returns the registry tag of the policy.
	GetName() string

	// Encode returns the canonical configuration string of the policy.
	Encode() string

	// SnapshotsToPrune returns the snapshots that should be deleted, in
	// ascending order. The newest snapshot is never returned.
	SnapshotsToPrune(ordered []snapshot.ID) []snapshot.ID
}

type PolicyConstructor = func(Env, *Params) (Policy, error)

// Env carries what policies may depend on besides their parameters.
type Env struct {
	// Now is the clock used by policies anchored to wall-clock time. Nil
	// means time.Now.
	Now func() time.Time
}

func (env Env) now() time.Time {
	if env.Now == nil {
		return time.Now()
	}

	return env.Now()
}

// sortedCopy returns ids sorted ascending with repeated ids collapsed, so
// that index positions identify distinct snapshots.
func sortedCopy(ids []snapshot.ID) []snapshot.ID {
	sorted := make([]snapshot.ID, len(ids))
	copy(sorted, ids)
	snapshot.Sort(sorted)

	unique := sorted[:0]
	for _, id := range sorted {
		if len(unique) > 0 && snapshot.Compare(unique[len(unique)-1], id) == 0 {
			continue
		}

		unique = append(unique, id)
	}

	return unique
}

// prune returns every snapshot of sorted whose index is not kept. The
// newest snapshot is always kept.
func prune(sorted []snapshot.ID, keep map[int]bool) []snapshot.ID {
	pruned := []snapshot.ID{}

	if len(sorted) == 0 {
		return pruned
	}

	newest := sorted[len(sorted)-1]

	for i, id := range sorted {
		if keep[i] || snapshot.Compare(id, newest) == 0 {
			continue
		}

		pruned = append(pruned, id)
	}

	return pruned
}
