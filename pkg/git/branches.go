package git

import (
	"bytes"
	"strings"
	"sync"

	"github.com/reconquest/callbackwriter-go"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/lineflushwriter-go"
	"github.com/reconquest/nopio-go"

	"github.com/Felix14-v2/fastback/pkg/constants"
	"github.com/Felix14-v2/fastback/pkg/snapshot"
)

const headsPrefix = "refs/heads/"

// ListSnapshots lists local snapshot branches of every world.
func (repository *Repository) ListSnapshots() (snapshot.Listing, error) {
	stdout, _, err := repository.git(
		`for-each-ref`,
		`--format=%(refname)`,
		headsPrefix+constants.BranchPrefix+"/",
	).Output()
	if err != nil {
		return nil, karma.
			Describe("repository", repository.Path).
			Format(
				err,
				"unable to list snapshot branches",
			)
	}

	return repository.collect(parseRefs(stdout)), nil
}

// ListRemoteSnapshots lists snapshot branches of every world on the remote.
func (repository *Repository) ListRemoteSnapshots() (snapshot.Listing, error) {
	stdout, _, err := repository.git(
		`ls-remote`, `--heads`, repository.Remote,
		headsPrefix+constants.BranchPrefix+"/*",
	).Output()
	if err != nil {
		return nil, karma.
			Describe("repository", repository.Path).
			Describe("remote", repository.Remote).
			Format(
				err,
				"unable to list remote snapshot branches",
			)
	}

	refs, err := parseRemoteRefs(stdout)
	if err != nil {
		return nil, karma.
			Describe("remote", repository.Remote).
			Format(err, "unexpected ls-remote output")
	}

	return repository.collect(refs), nil
}

// DeleteSnapshot force-deletes a local snapshot branch, merged or not.
func (repository *Repository) DeleteSnapshot(id snapshot.ID) error {
	err := repository.git(`branch`, `-D`, id.BranchName()).Run()
	if err != nil {
		return karma.
			Describe("branch", id.BranchName()).
			Format(
				err,
				"unable to delete snapshot branch",
			)
	}

	return nil
}

// DeleteRemoteSnapshot deletes a snapshot branch on the remote.
func (repository *Repository) DeleteRemoteSnapshot(id snapshot.ID) error {
	log := repository.log.NewChildWithPrefix("{push}")

	progress := lineflushwriter.New(
		callbackwriter.New(
			nopio.NopWriteCloser{},
			func(line []byte) {
				log.Debugf(
					"%s %s: %s",
					repository.Remote,
					id.Name,
					bytes.TrimRight(line, "\n"),
				)
			},
			nil,
		),
		&sync.Mutex{},
		true,
	)

	err := repository.git(
		`push`, `--delete`, repository.Remote, id.BranchName(),
	).SetStderr(progress).Run()
	if err != nil {
		return karma.
			Describe("remote", repository.Remote).
			Describe("branch", id.BranchName()).
			Format(
				err,
				"unable to delete remote snapshot branch",
			)
	}

	return nil
}

func (repository *Repository) collect(branches []string) snapshot.Listing {
	listing := snapshot.Listing{}

	for _, branch := range branches {
		id, err := snapshot.Parse(branch)
		if err != nil {
			repository.log.Warningf("skipping branch: %s", err)
			continue
		}

		listing.Add(id)
	}

	return listing
}

// parseRefs turns for-each-ref output into branch names.
func parseRefs(stdout string) []string {
	branches := []string{}

	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		branches = append(branches, strings.TrimPrefix(line, headsPrefix))
	}

	return branches
}

// parseRemoteRefs turns ls-remote output ("<sha>\t<ref>" lines) into
// branch names.
func parseRemoteRefs(stdout string) ([]string, error) {
	branches := []string{}

	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, karma.
				Describe("line", line).
				Reason(
					"unexpected number of fields in ls-remote output",
				)
		}

		branches = append(
			branches,
			strings.TrimPrefix(strings.TrimSpace(fields[1]), headsPrefix),
		)
	}

	return branches, nil
}
