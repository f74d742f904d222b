// Package git reads file history through go-git, without a git binary.
package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

// ErrNotFound is returned when a path does not exist at a commit.
var ErrNotFound = errors.New("file not found at commit")

// ErrBinary is returned for files whose content is not text.
var ErrBinary = errors.New("binary file")

// Repo is an opened repository. It is safe for concurrent use; object reads
// are serialized.
type Repo struct {
	mu   sync.Mutex
	repo *gogit.Repository
}

// Open opens the repository containing path.
func Open(path string) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repo %s: %w", path, err)
	}
	return &Repo{repo: r}, nil
}

// IsRepo returns true if dir is inside a git repository.
func IsRepo(dir string) bool {
	_, err := Open(dir)
	return err == nil
}

// Clone clones url into memory. Nothing is written to disk.
func Clone(ctx context.Context, url string) (*Repo, error) {
	slog.Info("git.clone", "url", url)
	r, err := gogit.CloneContext(ctx, memory.NewStorage(), nil, &gogit.CloneOptions{
		URL: url,
	})
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", url, err)
	}
	return &Repo{repo: r}, nil
}

// Resolve turns a revision into a commit hash. An empty rev means HEAD. Bare
// branch names that only exist on origin, as after a clone, are resolved too.
func (r *Repo) Resolve(rev string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, err := r.resolve(rev)
	if err != nil {
		return "", err
	}
	return h.String(), nil
}

func (r *Repo) resolve(rev string) (plumbing.Hash, error) {
	if rev == "" {
		ref, err := r.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("resolve HEAD: %w", err)
		}
		return ref.Hash(), nil
	}
	h, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err == nil {
		return *h, nil
	}
	if h, rerr := r.repo.ResolveRevision(plumbing.Revision("origin/" + rev)); rerr == nil {
		return *h, nil
	}
	return plumbing.ZeroHash, fmt.Errorf("resolve %s: %w", rev, err)
}

// RecentCommits returns up to n commit hashes reachable from rev, newest
// first by committer time.
func (r *Repo) RecentCommits(rev string, n int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	from, err := r.resolve(rev)
	if err != nil {
		return nil, err
	}
	iter, err := r.repo.Log(&gogit.LogOptions{From: from, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer iter.Close()

	var out []string
	err = iter.ForEach(func(c *object.Commit) error {
		if len(out) >= n {
			return io.EOF
		}
		out = append(out, c.Hash.String())
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("iterate log: %w", err)
	}
	return out, nil
}

// ListFiles returns the paths in the tree of rev matching a doublestar
// pattern, sorted.
func (r *Repo) ListFiles(rev, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob %q", pattern)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.commit(rev)
	if err != nil {
		return nil, err
	}
	files, err := c.Files()
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	defer files.Close()

	var out []string
	err = files.ForEach(func(f *object.File) error {
		if ok, _ := doublestar.Match(pattern, f.Name); ok {
			out = append(out, f.Name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk tree: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

// FileContent returns the text of path at rev. It returns ErrNotFound when the
// path is absent and ErrBinary when the blob is not text.
func (r *Repo) FileContent(rev, path string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.commit(rev)
	if err != nil {
		return "", err
	}
	f, err := c.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return "", fmt.Errorf("%s@%s: %w", path, rev, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("load %s@%s: %w", path, rev, err)
	}
	binary, err := f.IsBinary()
	if err != nil {
		return "", fmt.Errorf("inspect %s@%s: %w", path, rev, err)
	}
	if binary {
		return "", fmt.Errorf("%s@%s: %w", path, rev, ErrBinary)
	}
	text, err := f.Contents()
	if err != nil {
		return "", fmt.Errorf("read %s@%s: %w", path, rev, err)
	}
	return text, nil
}

func (r *Repo) commit(rev string) (*object.Commit, error) {
	h, err := r.resolve(rev)
	if err != nil {
		return nil, err
	}
	c, err := r.repo.CommitObject(h)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", rev, err)
	}
	return c, nil
}

// SplitSpec splits a "path@commit" reference. ok is false when spec has no
// commit part.
func SplitSpec(spec string) (path, commit string, ok bool) {
	i := strings.LastIndex(spec, "@")
	if i <= 0 || i == len(spec)-1 {
		return spec, "", false
	}
	return spec[:i], spec[i+1:], true
}

// Spec formats a "path@commit" reference.
func Spec(path, commit string) string {
	return path + "@" + commit
}
