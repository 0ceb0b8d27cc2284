package retention

import (
	"fmt"
	"strings"
	"time"

	"github.com/reconquest/karma-go"

	"github.com/Felix14-v2/fastback/pkg/snapshot"
)

const (
	AnchorLatest = "latest"
	AnchorNow    = "now"
)

// Tier is one granularity of a grandfather-father-son policy: the newest
// snapshot of each of the Count most recent buckets of Width is kept.
type Tier struct {
	Name  string
	Width time.Duration
	Count int
}

// PolicyGFS keeps a decreasing density of snapshots as they age.
//
// Bucket indexes are computed from the age of a snapshot relative to the
// anchor, which is the newest snapshot by default so that the answer only
// depends on the snapshots themselves. With anchor=now the injected clock
// is used instead.
type PolicyGFS struct {
	Tiers  []Tier
	Anchor string

	now func() time.Time
}

var gfsTiers = []Tier{
	{Name: "hourly", Width: time.Hour},
	{Name: "daily", Width: 24 * time.Hour},
	{Name: "weekly", Width: 7 * 24 * time.Hour},
	{Name: "monthly", Width: 30 * 24 * time.Hour},
	{Name: "yearly", Width: 365 * 24 * time.Hour},
}

var gfsType = PolicyType{
	Name: "gfs",
	Usage: "gfs:hourly=<n>,daily=<n>,weekly=<n>,monthly=<n>,yearly=<n>" +
		"[,anchor=latest|now]",
	Construct: NewPolicyGFS,
}

func NewPolicyGFS(env Env, params *Params) (Policy, error) {
	policy := PolicyGFS{now: env.now}

	var total int
	for _, tier := range gfsTiers {
		count, err := params.Int(tier.Name, 0, 0)
		if err != nil {
			return nil, err
		}

		if count == 0 {
			continue
		}

		tier.Count = count
		total += count

		policy.Tiers = append(policy.Tiers, tier)
	}

	if total == 0 {
		return nil, karma.
			Describe("type", "gfs").
			Reason(
				"at least one of hourly, daily, weekly, monthly, yearly " +
					"should be greater than zero",
			)
	}

	anchor, err := params.Enum("anchor", AnchorLatest, AnchorNow)
	if err != nil {
		return nil, err
	}

	policy.Anchor = anchor

	return policy, nil
}

func (PolicyGFS) GetName() string {
	return "gfs"
}

func (policy PolicyGFS) Encode() string {
	params := []string{}
	for _, tier := range policy.Tiers {
		params = append(params, fmt.Sprintf("%s=%d", tier.Name, tier.Count))
	}

	if policy.Anchor == AnchorNow {
		params = append(params, "anchor="+AnchorNow)
	}

	return "gfs:" + strings.Join(params, ",")
}

func (policy PolicyGFS) SnapshotsToPrune(ordered []snapshot.ID) []snapshot.ID {
	sorted := sortedCopy(ordered)
	if len(sorted) == 0 {
		return []snapshot.ID{}
	}

	anchor := sorted[len(sorted)-1].CreatedAt
	if policy.Anchor == AnchorNow && policy.now != nil {
		anchor = policy.now()
	}

	keep := map[int]bool{}

	for _, tier := range policy.Tiers {
		taken := map[int64]bool{}

		// newest first, so the first snapshot seen in a bucket is the one
		// with the latest creation time
		for i := len(sorted) - 1; i >= 0; i-- {
			age := anchor.Sub(sorted[i].CreatedAt)
			if age < 0 {
				age = 0
			}

			bucket := int64(age / tier.Width)
			if bucket >= int64(tier.Count) || taken[bucket] {
				continue
			}

			taken[bucket] = true
			keep[i] = true
		}
	}

	return prune(sorted, keep)
}
