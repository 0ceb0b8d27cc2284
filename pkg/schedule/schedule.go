// Package schedule runs prune jobs periodically in daemon mode.
package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/reconquest/karma-go"
	"github.com/robfig/cron/v3"
)

// Logger is the part of *lorg.Log the scheduler writes to.
type Logger interface {
	Debugf(format string, values ...interface{})
	Infof(format string, values ...interface{})
	Errorf(format string, values ...interface{})
}

// Daemon runs named jobs on cron schedules. A job that is still running
// when its next tick comes is not started again, and a panicking job is
// logged instead of taking the daemon down.
type Daemon struct {
	cron *cron.Cron
	log  Logger
}

func NewDaemon(log Logger) *Daemon {
	logger := cronLogger{log: log}

	return &Daemon{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(logger),
			cron.WithChain(
				cron.Recover(logger),
				cron.SkipIfStillRunning(logger),
			),
		),
		log: log,
	}
}

// Add schedules job under spec, a standard five field cron expression or
// a descriptor like @hourly or @every 30m.
func (daemon *Daemon) Add(name string, spec string, job func() error) error {
	_, err := daemon.cron.AddFunc(spec, func() {
		daemon.log.Debugf("running scheduled job %q", name)

		started := time.Now()

		err := job()
		if err != nil {
			daemon.log.Errorf("scheduled job %q failed: %s", name, err)
			return
		}

		daemon.log.Debugf(
			"scheduled job %q finished in %s",
			name,
			time.Since(started).Round(time.Millisecond),
		)
	})
	if err != nil {
		return karma.
			Describe("job", name).
			Describe("schedule", spec).
			Format(
				err,
				"unable to schedule job",
			)
	}

	return nil
}

// Run starts the daemon and blocks until ctx is done, then waits for
// running jobs to finish.
func (daemon *Daemon) Run(ctx context.Context) {
	for _, entry := range daemon.cron.Entries() {
		daemon.log.Infof("job #%d scheduled", entry.ID)
	}

	daemon.cron.Start()

	<-ctx.Done()

	daemon.log.Infof("stopping scheduler, waiting for running jobs")

	<-daemon.cron.Stop().Done()
}

// Validate checks that spec is a schedule Add would accept.
func Validate(spec string) error {
	_, err := Next(spec, time.Now())
	return err
}

// Next returns the first activation of spec after moment.
func Next(spec string, moment time.Time) (time.Time, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, karma.
			Describe("schedule", spec).
			Format(
				err,
				"invalid schedule",
			)
	}

	// the daemon evaluates schedules in UTC unless spec names a zone
	if parsed, ok := schedule.(*cron.SpecSchedule); ok && parsed.Location == time.Local {
		parsed.Location = time.UTC
	}

	return schedule.Next(moment), nil
}

type cronLogger struct {
	log Logger
}

func (logger cronLogger) Info(message string, keysAndValues ...interface{}) {
	logger.log.Debugf("{cron} %s%s", message, formatPairs(keysAndValues))
}

func (logger cronLogger) Error(
	err error,
	message string,
	keysAndValues ...interface{},
) {
	logger.log.Errorf(
		"{cron} %s%s: %s",
		message,
		formatPairs(keysAndValues),
		err,
	)
}

func formatPairs(keysAndValues []interface{}) string {
	var builder strings.Builder

	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&builder, " %v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&builder, " %v", keysAndValues[i])
		}
	}

	return builder.String()
}
