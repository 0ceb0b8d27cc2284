package retention

import "github.com/Felix14-v2/fastback/pkg/snapshot"

// PolicyAll keeps every snapshot.
type PolicyAll struct{}

var allType = PolicyType{
	Name:      "all",
	Aliases:   []string{"none"},
	Usage:     "all",
	Construct: NewPolicyAll,
}

func NewPolicyAll(Env, *Params) (Policy, error) {
	return PolicyAll{}, nil
}

func (PolicyAll) GetName() string {
	return "all"
}

func (PolicyAll) Encode() string {
	return "all"
}

func (PolicyAll) SnapshotsToPrune([]snapshot.ID) []snapshot.ID {
	return []snapshot.ID{}
}
