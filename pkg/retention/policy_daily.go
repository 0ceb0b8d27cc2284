package retention

import (
	"fmt"
	"time"

	"github.com/Felix14-v2/fastback/pkg/snapshot"
)

// PolicyDaily keeps every snapshot taken on the day of the newest one and
// the newest snapshot of each of the Days calendar days (UTC) before it.
type PolicyDaily struct {
	Days int
}

var dailyType = PolicyType{
	Name:      "daily",
	Usage:     "daily:days=<n>",
	Construct: NewPolicyDaily,
}

func NewPolicyDaily(_ Env, params *Params) (Policy, error) {
	days, err := params.Int("days", 7, 0)
	if err != nil {
		return nil, err
	}

	return PolicyDaily{Days: days}, nil
}

func (PolicyDaily) GetName() string {
	return "daily"
}

func (policy PolicyDaily) Encode() string {
	return fmt.Sprintf("daily:days=%d", policy.Days)
}

func (policy PolicyDaily) SnapshotsToPrune(ordered []snapshot.ID) []snapshot.ID {
	sorted := sortedCopy(ordered)
	if len(sorted) == 0 {
		return []snapshot.ID{}
	}

	var (
		latest = day(sorted[len(sorted)-1].CreatedAt)
		keep   = map[int]bool{}
		taken  = map[int]bool{}
	)

	for i := len(sorted) - 1; i >= 0; i-- {
		back := int(latest.Sub(day(sorted[i].CreatedAt)) / (24 * time.Hour))

		switch {
		case back == 0:
			keep[i] = true
		case back > policy.Days || taken[back]:
			continue
		default:
			taken[back] = true
			keep[i] = true
		}
	}

	return prune(sorted, keep)
}

func day(moment time.Time) time.Time {
	year, month, date := moment.UTC().Date()

	return time.Date(year, month, date, 0, 0, 0, 0, time.UTC)
}
