// Package prune deletes the snapshots of a world that its retention policy
// no longer wants.
//
// A Pruner is stateless between runs and assumes its caller makes sure
// that no other prune or snapshot creation touches the same world while
// Prune is running.
package prune

import (
	"github.com/kovetskiy/lorg"

	"github.com/Felix14-v2/fastback/pkg/constants"
	pkg_log "github.com/Felix14-v2/fastback/pkg/log"
	"github.com/Felix14-v2/fastback/pkg/messages"
	"github.com/Felix14-v2/fastback/pkg/retention"
	"github.com/Felix14-v2/fastback/pkg/snapshot"
	"github.com/Felix14-v2/fastback/pkg/text"
)

type (
	ListFunc   = func() (snapshot.Listing, error)
	DeleteFunc = func(snapshot.ID) error
)

// Notifier receives user-facing notices. Implementations must not fail.
type Notifier interface {
	Info(message string)
	ChatError(message messages.Message)
	Hud(message messages.Message)
}

// Job describes one prune run against one backend.
type Job struct {
	WorldID string

	// Policy is the raw policy configuration; empty means not configured.
	Policy string

	// NotSetKey is the message shown when Policy is empty.
	NotSetKey string

	List   ListFunc
	Delete DeleteFunc
}

// Result is what a run did. A run without a configured policy is not an
// error; it yields a Result whose Configured is false.
type Result struct {
	Pruned []snapshot.ID

	configured bool
}

func (result Result) Configured() bool {
	return result.configured
}

type Pruner struct {
	registry *retention.Registry
	notifier Notifier
	env      retention.Env
	dryRun   bool
	log      *lorg.Log
}

type Option func(*Pruner)

// WithEnv sets the environment policies are decoded with.
func WithEnv(env retention.Env) Option {
	return func(pruner *Pruner) {
		pruner.env = env
	}
}

// WithDryRun makes Prune report what it would delete without deleting.
func WithDryRun(dryRun bool) Option {
	return func(pruner *Pruner) {
		pruner.dryRun = dryRun
	}
}

func WithLogger(log *lorg.Log) Option {
	return func(pruner *Pruner) {
		pruner.log = log
	}
}

func New(
	registry *retention.Registry,
	notifier Notifier,
	options ...Option,
) *Pruner {
	pruner := &Pruner{
		registry: registry,
		notifier: notifier,
		log:      pkg_log.NewChildWithPrefix("{prune}"),
	}

	for _, option := range options {
		option(pruner)
	}

	return pruner
}

// Prune decodes the job policy, evaluates it against the snapshots of the
// job world and deletes what the policy selects, oldest first.
//
// Decode failures are returned as *retention.DecodeError before the
// backend is touched. The first delete failure stops the run and is
// returned as *DeleteError. Only listed snapshots of the job world other
// than the newest are ever deleted, whatever the policy returns. A dry run
// reports the selection without deleting or sending hud notices.
func (pruner *Pruner) Prune(job Job) (Result, error) {
	decoded, err := retention.Decode(pruner.env, pruner.registry, job.Policy)
	if err != nil {
		return Result{}, err
	}

	if decoded.Absent() {
		pruner.log.Debugf("no retention policy set for world %q", job.WorldID)

		key := job.NotSetKey
		if key == "" {
			key = constants.MessageLocalPolicyNotSet
		}

		pruner.notifier.ChatError(messages.Localized(key))

		return Result{}, nil
	}

	policy := decoded.Policy()

	pruner.log.Debugf(
		"world %q: applying retention policy %q",
		job.WorldID,
		retention.Encode(policy),
	)

	listing, err := job.List()
	if err != nil {
		return Result{}, &ListError{WorldID: job.WorldID, Err: err}
	}

	ordered := listing.World(job.WorldID)

	toPrune := pruner.restrict(ordered, policy.SnapshotsToPrune(ordered))

	pruner.log.Infof(
		"world %q: %d %s found, %d to prune",
		job.WorldID,
		len(ordered),
		text.Pluralize("snapshot", len(ordered)),
		len(toPrune),
	)

	if pruner.dryRun {
		for _, id := range toPrune {
			pruner.notifier.Info("would prune snapshot " + id.Name)
		}

		return Result{Pruned: toPrune, configured: true}, nil
	}

	pruner.notifier.Hud(messages.Localized(constants.MessagePruneStarted))

	for i, id := range toPrune {

		pruner.notifier.Info("pruning snapshot " + id.Name)

		err := job.Delete(id)
		if err != nil {
			return Result{}, &DeleteError{
				Snapshot:  id,
				Deleted:   append([]snapshot.ID{}, toPrune[:i]...),
				Remaining: append([]snapshot.ID{}, toPrune[i+1:]...),
				Err:       err,
			}
		}
	}

	pruner.notifier.Hud(
		messages.Localized(constants.MessagePruneDone, len(toPrune)),
	)

	return Result{Pruned: toPrune, configured: true}, nil
}

// restrict drops from selected everything that is not one of the listed
// snapshots of the world, repeats, and the newest snapshot, then sorts
// what is left ascending. Policies come from an open registry, so their
// output is not trusted to hold to that.
func (pruner *Pruner) restrict(
	ordered []snapshot.ID,
	selected []snapshot.ID,
) []snapshot.ID {
	restricted := []snapshot.ID{}

	if len(ordered) == 0 {
		if len(selected) > 0 {
			pruner.log.Warningf(
				"policy selected %d snapshots out of an empty listing, ignoring",
				len(selected),
			)
		}

		return restricted
	}

	var (
		newest  = ordered[len(ordered)-1]
		members = map[string]snapshot.ID{}
		taken   = map[string]bool{}
	)

	for _, id := range ordered {
		members[id.BranchName()] = id
	}

	for _, id := range selected {
		branch := id.BranchName()

		member, ok := members[branch]
		switch {
		case !ok:
			pruner.log.Warningf(
				"policy selected snapshot %s which is not listed, ignoring",
				branch,
			)
			continue

		case snapshot.Compare(member, newest) == 0:
			pruner.log.Warningf(
				"policy selected newest snapshot %s, keeping it",
				branch,
			)
			continue

		case taken[branch]:
			continue
		}

		taken[branch] = true
		restricted = append(restricted, member)
	}

	snapshot.Sort(restricted)

	return restricted
}
