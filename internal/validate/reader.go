package validate

import (
	"path/filepath"

	"github.com/m-daichendt/comp3110/internal/git"
	"github.com/m-daichendt/comp3110/internal/textfile"
)

// Reader loads the lines of a file reference.
type Reader interface {
	ReadLines(ref string) ([]string, error)
}

// FileReader reads references as filesystem paths.
type FileReader struct{}

// ReadLines reads path from disk.
func (FileReader) ReadLines(path string) ([]string, error) {
	return textfile.ReadLines(path)
}

// RepoReader resolves "path@commit" references through a repository and
// falls back to the filesystem for plain paths.
type RepoReader struct {
	Repo *git.Repo
}

// ReadLines reads ref from the repository or the filesystem.
func (r RepoReader) ReadLines(ref string) ([]string, error) {
	path, commit, ok := git.SplitSpec(ref)
	if !ok {
		return textfile.ReadLines(ref)
	}
	text, err := r.Repo.FileContent(commit, path)
	if err != nil {
		return nil, err
	}
	return textfile.Decode([]byte(text))
}

// displayName shortens a reference to its base name, keeping any commit.
func displayName(ref string) string {
	path, commit, ok := git.SplitSpec(ref)
	if ok {
		return filepath.Base(path) + "@" + commit
	}
	return filepath.Base(ref)
}
