package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/m-daichendt/comp3110/internal/git"
	"github.com/m-daichendt/comp3110/internal/textfile"
)

// Pair is an old and a new version of one file.
type Pair struct {
	OldName string // reference stored in the record, e.g. "path@commit"
	NewName string
	Old     []string
	New     []string
}

// Source enumerates candidate files and their version pairs.
type Source interface {
	// Paths lists candidate files in a stable order.
	Paths() ([]string, error)
	// Pairs returns the comparable versions of path, newest first. Versions
	// that are missing or not text are skipped.
	Pairs(path string) ([]Pair, error)
}

// GitSource pairs each file's versions across adjacent recent commits:
// HEAD~1 -> HEAD, HEAD~2 -> HEAD~1, and so on.
type GitSource struct {
	repo    *git.Repo
	commits []string // newest first
	glob    string
}

// NewGitSource prepares commits+1 commits reachable from rev (empty for HEAD).
func NewGitSource(repo *git.Repo, rev string, commits int, glob string) (*GitSource, error) {
	if commits < 1 {
		return nil, fmt.Errorf("commits must be at least 1, got %d", commits)
	}
	head, err := repo.Resolve(rev)
	if err != nil {
		return nil, fmt.Errorf("unknown revision %q: %w", rev, err)
	}
	hashes, err := repo.RecentCommits(head, commits+1)
	if err != nil {
		return nil, err
	}
	if len(hashes) < 2 {
		return nil, fmt.Errorf("not enough history to compare commits")
	}
	return &GitSource{repo: repo, commits: hashes, glob: glob}, nil
}

// Commits returns the sampled commit hashes, newest first.
func (s *GitSource) Commits() []string { return s.commits }

// Paths lists files at the newest sampled commit that match the glob.
func (s *GitSource) Paths() ([]string, error) {
	return s.repo.ListFiles(s.commits[0], s.glob)
}

// Pairs reads path at each adjacent pair of sampled commits.
func (s *GitSource) Pairs(path string) ([]Pair, error) {
	var out []Pair
	for i := 0; i+1 < len(s.commits); i++ {
		newCommit, oldCommit := s.commits[i], s.commits[i+1]
		newLines, err := s.lines(newCommit, path)
		if err != nil {
			return nil, err
		}
		oldLines, err := s.lines(oldCommit, path)
		if err != nil {
			return nil, err
		}
		if newLines == nil || oldLines == nil {
			continue
		}
		out = append(out, Pair{
			OldName: git.Spec(path, oldCommit),
			NewName: git.Spec(path, newCommit),
			Old:     oldLines,
			New:     newLines,
		})
	}
	return out, nil
}

// lines returns nil, nil for versions that are absent or unusable.
func (s *GitSource) lines(commit, path string) ([]string, error) {
	text, err := s.repo.FileContent(commit, path)
	if errors.Is(err, git.ErrNotFound) || errors.Is(err, git.ErrBinary) {
		slog.Debug("dataset.skip", "path", path, "commit", commit, "reason", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	lines, err := textfile.Decode([]byte(text))
	if err != nil {
		slog.Debug("dataset.skip", "path", path, "commit", commit, "reason", err)
		return nil, nil
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}

// DirSource pairs files under OldRoot with the same relative path under
// NewRoot.
type DirSource struct {
	OldRoot string
	NewRoot string
	Glob    string
}

// Paths lists slash-separated paths under OldRoot matching the glob that also
// exist as regular files under NewRoot.
func (s *DirSource) Paths() ([]string, error) {
	if !doublestar.ValidatePattern(s.Glob) {
		return nil, fmt.Errorf("invalid glob %q", s.Glob)
	}
	matches, err := doublestar.Glob(os.DirFS(s.OldRoot), s.Glob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.OldRoot, err)
	}
	var out []string
	for _, m := range matches {
		info, err := os.Stat(filepath.Join(s.NewRoot, filepath.FromSlash(m)))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", m, err)
		}
		if info.Mode().IsRegular() {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Pairs returns the single old/new pair for path, or none when either file
// is not UTF-8 text.
func (s *DirSource) Pairs(path string) ([]Pair, error) {
	oldName := filepath.Join(s.OldRoot, filepath.FromSlash(path))
	newName := filepath.Join(s.NewRoot, filepath.FromSlash(path))
	oldLines, err := s.read(oldName)
	if err != nil || oldLines == nil {
		return nil, err
	}
	newLines, err := s.read(newName)
	if err != nil || newLines == nil {
		return nil, err
	}
	return []Pair{{OldName: oldName, NewName: newName, Old: oldLines, New: newLines}}, nil
}

func (s *DirSource) read(name string) ([]string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if textfile.IsBinary(data) {
		slog.Debug("dataset.skip", "path", name, "reason", "binary")
		return nil, nil
	}
	lines, err := textfile.Decode(data)
	if err != nil {
		slog.Debug("dataset.skip", "path", name, "reason", err)
		return nil, nil
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}
