// Package gittest builds throwaway repositories for tests.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Revision maps repository paths to file contents. A nil value removes the
// path in that revision.
type Revision map[string]*string

// Text is a helper for building Revision values.
func Text(s string) *string { return &s }

// NewRepo creates a repository in a temp dir with one commit per revision,
// each a minute after the previous one. It returns the directory and the
// commit hashes, oldest first.
func NewRepo(t *testing.T, revisions ...Revision) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var hashes []string
	for i, rev := range revisions {
		for path, content := range rev {
			full := filepath.Join(dir, filepath.FromSlash(path))
			if content == nil {
				_, err := wt.Remove(path)
				require.NoError(t, err)
				continue
			}
			require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
			require.NoError(t, os.WriteFile(full, []byte(*content), 0644))
			_, err := wt.Add(path)
			require.NoError(t, err)
		}
		sig := &object.Signature{
			Name:  "Test",
			Email: "test@test.com",
			When:  base.Add(time.Duration(i) * time.Minute),
		}
		h, err := wt.Commit("revision", &gogit.CommitOptions{
			Author:            sig,
			Committer:         sig,
			AllowEmptyCommits: true,
		})
		require.NoError(t, err)
		hashes = append(hashes, h.String())
	}
	return dir, hashes
}
