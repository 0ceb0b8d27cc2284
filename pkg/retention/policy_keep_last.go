package retention

import (
	"fmt"

	"github.com/Felix14-v2/fastback/pkg/snapshot"
)

// PolicyKeepLast keeps the Count most recent snapshots.
type PolicyKeepLast struct {
	Count int
}

var keepLastType = PolicyType{
	Name:      "keep-last",
	Aliases:   []string{"fixed"},
	Usage:     "keep-last:count=<n>",
	Construct: NewPolicyKeepLast,
}

func NewPolicyKeepLast(_ Env, params *Params) (Policy, error) {
	count, err := params.RequireInt("count", 1)
	if err != nil {
		return nil, err
	}

	return PolicyKeepLast{Count: count}, nil
}

func (PolicyKeepLast) GetName() string {
	return "keep-last"
}

func (policy PolicyKeepLast) Encode() string {
	return fmt.Sprintf("keep-last:count=%d", policy.Count)
}

func (policy PolicyKeepLast) SnapshotsToPrune(
	ordered []snapshot.ID,
) []snapshot.ID {
	sorted := sortedCopy(ordered)

	keep := map[int]bool{}
	for i := len(sorted) - 1; i >= 0 && i >= len(sorted)-policy.Count; i-- {
		keep[i] = true
	}

	return prune(sorted, keep)
}
