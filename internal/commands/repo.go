package commands

import (
	"errors"
	"fmt"

	"github.com/m-daichendt/comp3110/internal/git"
)

// ErrNotRepo is returned when a --repo path is not inside a git repository.
var ErrNotRepo = errors.New("not a git repository")

func openRepo(path string) (*git.Repo, error) {
	if !git.IsRepo(path) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRepo)
	}
	return git.Open(path)
}
