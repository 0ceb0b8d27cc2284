package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/docopt/docopt-go"
	"github.com/kovetskiy/lorg"

	"github.com/Felix14-v2/fastback/pkg/config"
	"github.com/Felix14-v2/fastback/pkg/constants"
	"github.com/Felix14-v2/fastback/pkg/exec"
	"github.com/Felix14-v2/fastback/pkg/formatting"
	"github.com/Felix14-v2/fastback/pkg/git"
	"github.com/Felix14-v2/fastback/pkg/log"
	"github.com/Felix14-v2/fastback/pkg/messages"
	"github.com/Felix14-v2/fastback/pkg/notify"
	"github.com/Felix14-v2/fastback/pkg/prune"
	"github.com/Felix14-v2/fastback/pkg/retention"
	"github.com/Felix14-v2/fastback/pkg/schedule"
	"github.com/Felix14-v2/fastback/pkg/text"
)

var version = "[manual build]"

var usage = `fastback - retention and pruning of git-backed world snapshots.

Usage:
  fastback -h | --help
  fastback [options] prune [--remote] [--dry-run]
  fastback [options] list [--remote]
  fastback [options] policy check <policy>
  fastback [options] policy list
  fastback [options] daemon

Options:
  -h --help           Show this help.
  -c --config=<file>  Specify config file.
                       [default: $CONFIG]
  --remote            Operate on snapshots of the configured remote instead
                       of local snapshot branches.
  --dry-run           Report what would be pruned without deleting anything.
  --debug             Output debug messages in logs.
  --trace             Output trace messages in logs.
`

type Opts struct {
	ValueConfig string `docopt:"--config"`
	ValuePolicy string `docopt:"<policy>"`
	ModePrune   bool   `docopt:"prune"`
	ModeList    bool   `docopt:"list"`
	ModePolicy  bool   `docopt:"policy"`
	ModeCheck   bool   `docopt:"check"`
	ModeDaemon  bool   `docopt:"daemon"`
	FlagRemote  bool   `docopt:"--remote"`
	FlagDryRun  bool   `docopt:"--dry-run"`
	FlagDebug   bool   `docopt:"--debug"`
	FlagTrace   bool   `docopt:"--trace"`
}

func init() {
	user, err := user.Current()
	if err != nil {
		log.Fatal(err)
	}

	env := func(key, defaultValue string) {
		if os.Getenv(key) == "" {
			os.Setenv(key, defaultValue)
		}
	}

	var config string

	if user.Uid == "0" {
		config = "/etc/fastback/fastback.conf"
	} else {
		config = filepath.Join(user.HomeDir, ".config", "fastback", "fastback.conf")
	}

	env("CONFIG", config)

	usage = os.ExpandEnv(usage)
}

func main() {
	args, err := docopt.ParseArgs(usage, nil, "fastback "+version)
	if err != nil {
		log.Fatal(err)
	}

	var opts Opts

	err = args.Bind(&opts)
	if err != nil {
		log.Fatal(err)
	}

	config, err := config.LoadConfig(opts.ValueConfig)
	if err != nil {
		log.Fatal(err)
	}

	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case opts.FlagDebug:
		level = lorg.LevelDebug
	case opts.FlagTrace:
		level = lorg.LevelTrace
	}

	log.SetLevel(level)

	exec.SetLogger(log.NewChildWithPrefix("{exec}"))

	registry := retention.DefaultRegistry()

	switch {
	case opts.ModePolicy && opts.ModeCheck:
		err = checkPolicy(registry, opts.ValuePolicy)

	case opts.ModePolicy:
		listPolicies(registry)

	case opts.ModeList:
		err = listSnapshots(config, registry, opts.FlagRemote)

	case opts.ModePrune:
		err = runPrune(config, registry, opts.FlagRemote, opts.FlagDryRun)

	case opts.ModeDaemon:
		err = runDaemon(config, registry)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func newRepository(config *config.Config) *git.Repository {
	return git.NewRepository(config.Repository, config.Git.Binary, config.Git.Remote)
}

func newJob(
	repository *git.Repository,
	world git.WorldConfig,
	remote bool,
) prune.Job {
	if remote {
		return prune.Job{
			WorldID:   world.WorldID,
			Policy:    world.RemoteRetentionPolicy,
			NotSetKey: constants.MessageRemotePolicyNotSet,
			List:      repository.ListRemoteSnapshots,
			Delete:    repository.DeleteRemoteSnapshot,
		}
	}

	return prune.Job{
		WorldID:   world.WorldID,
		Policy:    world.LocalRetentionPolicy,
		NotSetKey: constants.MessageLocalPolicyNotSet,
		List:      repository.ListSnapshots,
		Delete:    repository.DeleteSnapshot,
	}
}

func runPrune(
	config *config.Config,
	registry *retention.Registry,
	remote bool,
	dryRun bool,
) error {
	repository := newRepository(config)

	world, err := repository.LoadWorldConfig()
	if err != nil {
		return err
	}

	notifier := notify.NewConsole(
		log.NewChildWithPrefix("{fastback}"),
		messages.Default(),
		config.Locale,
	)

	pruner := prune.New(registry, notifier, prune.WithDryRun(dryRun))

	result, err := pruner.Prune(newJob(repository, world, remote))
	if err != nil {
		notifier.ChatError(
			messages.Localized(constants.MessagePruneFailed, err.Error()),
		)

		return err
	}

	if result.Configured() {
		log.Debugf(
			"%d %s pruned",
			len(result.Pruned),
			text.Pluralize("snapshot", len(result.Pruned)),
		)
	}

	return nil
}

func listSnapshots(
	config *config.Config,
	registry *retention.Registry,
	remote bool,
) error {
	repository := newRepository(config)

	world, err := repository.LoadWorldConfig()
	if err != nil {
		return err
	}

	job := newJob(repository, world, remote)

	listing, err := job.List()
	if err != nil {
		return err
	}

	ids := listing.World(world.WorldID)

	obsolete := map[string]bool{}

	decoded, err := retention.Decode(retention.Env{}, registry, job.Policy)
	if err != nil {
		log.Warning(err)
	} else if !decoded.Absent() {
		for _, id := range decoded.Policy().SnapshotsToPrune(ids) {
			obsolete[id.Name] = true
		}
	}

	now := time.Now()

	for _, id := range ids {
		mark := "keep"
		if obsolete[id.Name] {
			mark = "prune"
		}

		fmt.Printf(
			"%s\t%s ago\t%s\n",
			id.Name,
			formatting.Age(now.Sub(id.CreatedAt)),
			mark,
		)
	}

	log.Infof(
		"world %s: %d %s, %d obsolete",
		world.WorldID,
		len(ids),
		text.Pluralize("snapshot", len(ids)),
		len(obsolete),
	)

	return nil
}

func checkPolicy(registry *retention.Registry, config string) error {
	decoded, err := retention.Decode(retention.Env{}, registry, config)
	if err != nil {
		return err
	}

	if decoded.Absent() {
		fmt.Println("no policy configured")
		return nil
	}

	fmt.Println(retention.Encode(decoded.Policy()))

	return nil
}

func listPolicies(registry *retention.Registry) {
	for _, policyType := range registry.Types() {
		name := policyType.Name
		if len(policyType.Aliases) > 0 {
			name += " (" + strings.Join(policyType.Aliases, ", ") + ")"
		}

		fmt.Printf("%s\n    %s\n", name, policyType.Usage)
	}
}

func runDaemon(config *config.Config, registry *retention.Registry) error {
	daemon := schedule.NewDaemon(log.NewChildWithPrefix("{schedule}"))

	// local and remote runs share the repository, so they go in one job
	err := daemon.Add("prune", config.Schedule.Prune, func() error {
		err := runPrune(config, registry, false, false)
		if err != nil {
			return err
		}

		if config.Schedule.Remote {
			return runPrune(config, registry, true, false)
		}

		return nil
	})
	if err != nil {
		return err
	}

	next, err := schedule.Next(config.Schedule.Prune, time.Now())
	if err != nil {
		return err
	}

	log.Infof(
		"prune scheduled %q, next run in %s",
		config.Schedule.Prune,
		formatting.Age(time.Until(next)),
	)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	daemon.Run(ctx)

	return nil
}
