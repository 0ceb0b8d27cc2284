// Package git is the snapshot backend: snapshots are branches of a git
// repository, driven through the git binary.
package git

import (
	"github.com/kovetskiy/lorg"

	"github.com/Felix14-v2/fastback/pkg/exec"
	pkg_log "github.com/Felix14-v2/fastback/pkg/log"
)

type Repository struct {
	// Path is the work tree (or git dir) of the world backup repository.
	Path string

	// Binary is the git executable.
	Binary string

	// Remote is the name of the remote holding remote snapshots.
	Remote string

	log *lorg.Log
}

func NewRepository(path string, binary string, remote string) *Repository {
	if binary == "" {
		binary = "git"
	}

	return &Repository{
		Path:   path,
		Binary: binary,
		Remote: remote,
		log:    pkg_log.NewChildWithPrefix("{git}"),
	}
}

func (repository *Repository) git(args ...string) *exec.Execution {
	return exec.Exec(
		repository.Binary,
		append([]string{`-C`, repository.Path}, args...)...,
	)
}
