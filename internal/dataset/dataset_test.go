package dataset_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-daichendt/comp3110/internal/dataset"
	"github.com/m-daichendt/comp3110/internal/git"
	"github.com/m-daichendt/comp3110/internal/git/gittest"
	"github.com/m-daichendt/comp3110/internal/linemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSource is an in-memory Source with one pair per path.
type memSource struct {
	paths []string
	lines int
}

func (s *memSource) Paths() ([]string, error) {
	return append([]string(nil), s.paths...), nil
}

func (s *memSource) Pairs(path string) ([]dataset.Pair, error) {
	var lines []string
	for i := 0; i < s.lines; i++ {
		lines = append(lines, fmt.Sprintf("%s line %d", path, i))
	}
	return []dataset.Pair{{OldName: path + "@old", NewName: path + "@new", Old: lines, New: lines}}, nil
}

func TestEntries(t *testing.T) {
	got := dataset.Entries([]linemap.LineMapping{{Old: 1, New: 2}, {Old: 2}, {New: 1}})
	require.Len(t, got, 3)
	assert.Equal(t, 1, *got[0].Orig)
	assert.Equal(t, 2, *got[0].New)
	assert.Nil(t, got[1].New)
	assert.Nil(t, got[2].Orig)
}

func TestBuild_RowCap(t *testing.T) {
	src := &memSource{paths: []string{"a", "b", "c", "d"}, lines: 4}
	opts := dataset.DefaultBuildOptions()
	opts.TargetLines = 10

	records, err := dataset.Build(context.Background(), src, opts)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 10, dataset.Rows(records))
	assert.Len(t, records[2].Mappings, 2)
	for i, r := range records {
		assert.Equal(t, i+1, r.Pair)
	}
}

func TestBuild_PairCap(t *testing.T) {
	src := &memSource{paths: []string{"a", "b", "c", "d", "e"}, lines: 2}
	opts := dataset.DefaultBuildOptions()
	opts.MaxPairs = 2

	records, err := dataset.Build(context.Background(), src, opts)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 4, dataset.Rows(records))
}

func TestBuild_SeedIsDeterministic(t *testing.T) {
	src := &memSource{paths: []string{"a", "b", "c", "d", "e", "f", "g"}, lines: 1}
	opts := dataset.DefaultBuildOptions()
	opts.MaxPairs = 7

	first, err := dataset.Build(context.Background(), src, opts)
	require.NoError(t, err)
	again, err := dataset.Build(context.Background(), src, opts)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	seen := make(map[string]bool)
	for _, r := range first {
		seen[r.OldFile] = true
	}
	assert.Len(t, seen, 7)
}

func TestBuild_Empty(t *testing.T) {
	_, err := dataset.Build(context.Background(), &memSource{}, dataset.DefaultBuildOptions())
	assert.ErrorIs(t, err, dataset.ErrEmpty)
}

func TestBuild_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dataset.Build(ctx, &memSource{paths: []string{"a"}, lines: 1}, dataset.DefaultBuildOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_GitSource(t *testing.T) {
	dir, hashes := gittest.NewRepo(t,
		gittest.Revision{
			"app.py":  gittest.Text("import os\n\ndef main():\n    print('a')\n"),
			"lib.py":  gittest.Text("x = 1\n"),
			"doc.txt": gittest.Text("notes\n"),
		},
		gittest.Revision{
			"app.py": gittest.Text("import os\nimport sys\n\ndef main():\n    print('b')\n"),
		},
		gittest.Revision{
			"app.py": gittest.Text("import os\nimport sys\n\ndef main(argv):\n    print('b')\n"),
			"new.py": gittest.Text("y = 2\n"),
		},
	)
	repo, err := git.Open(dir)
	require.NoError(t, err)

	src, err := dataset.NewGitSource(repo, "", 2, "**/*.py")
	require.NoError(t, err)
	assert.Equal(t, []string{hashes[2], hashes[1], hashes[0]}, src.Commits())

	paths, err := src.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py", "lib.py", "new.py"}, paths)

	pairs, err := src.Pairs("app.py")
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "app.py@"+hashes[1], pairs[0].OldName)
	assert.Equal(t, "app.py@"+hashes[2], pairs[0].NewName)
	assert.Equal(t, "app.py@"+hashes[0], pairs[1].OldName)

	pairs, err = src.Pairs("new.py")
	require.NoError(t, err)
	assert.Empty(t, pairs)

	records, err := dataset.Build(context.Background(), src, dataset.DefaultBuildOptions())
	require.NoError(t, err)
	// app.py twice and lib.py twice; new.py has no older version.
	assert.Len(t, records, 4)
	for _, r := range records {
		assert.Contains(t, r.OldFile, "@")
		assert.NotEmpty(t, r.Mappings)
	}
}

func TestNewGitSource_NeedsHistory(t *testing.T) {
	dir, _ := gittest.NewRepo(t, gittest.Revision{"a.py": gittest.Text("a\n")})
	repo, err := git.Open(dir)
	require.NoError(t, err)

	_, err = dataset.NewGitSource(repo, "", 1, "**/*.py")
	assert.ErrorContains(t, err, "not enough history")

	_, err = dataset.NewGitSource(repo, "", 0, "**/*.py")
	assert.Error(t, err)
}

func TestNewGitSource_Revision(t *testing.T) {
	dir, hashes := gittest.NewRepo(t,
		gittest.Revision{"a.py": gittest.Text("a\n")},
		gittest.Revision{"a.py": gittest.Text("b\n")},
		gittest.Revision{"a.py": gittest.Text("c\n")},
	)
	repo, err := git.Open(dir)
	require.NoError(t, err)

	src, err := dataset.NewGitSource(repo, "HEAD~1", 1, "**/*.py")
	require.NoError(t, err)
	assert.Equal(t, []string{hashes[1], hashes[0]}, src.Commits())

	_, err = dataset.NewGitSource(repo, "no-such-branch", 1, "**/*.py")
	assert.ErrorContains(t, err, `unknown revision "no-such-branch"`)
}

func TestDirSource(t *testing.T) {
	oldRoot, newRoot := t.TempDir(), t.TempDir()
	write := func(root, rel, content string) {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	write(oldRoot, "a.py", "a = 1\n")
	write(newRoot, "a.py", "a = 2\n")
	write(oldRoot, "pkg/b.py", "b = 1\n")
	write(newRoot, "pkg/b.py", "b = 1\nc = 2\n")
	write(oldRoot, "gone.py", "x\n")
	write(oldRoot, "skip.txt", "x\n")
	write(newRoot, "skip.txt", "x\n")
	write(oldRoot, "bin.py", "\x00\x01")
	write(newRoot, "bin.py", "\x00\x02")

	src := &dataset.DirSource{OldRoot: oldRoot, NewRoot: newRoot, Glob: "**/*.py"}
	paths, err := src.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "bin.py", "pkg/b.py"}, paths)

	pairs, err := src.Pairs("pkg/b.py")
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, []string{"b = 1"}, pairs[0].Old)
	assert.Equal(t, []string{"b = 1", "c = 2"}, pairs[0].New)

	pairs, err = src.Pairs("bin.py")
	require.NoError(t, err)
	assert.Empty(t, pairs)

	records, err := dataset.Build(context.Background(), src, dataset.DefaultBuildOptions())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestBuild_CopyFiles(t *testing.T) {
	dir, _ := gittest.NewRepo(t,
		gittest.Revision{"src/main.py": gittest.Text("a\nb\n")},
		gittest.Revision{"src/main.py": gittest.Text("a\nc\n")},
	)
	repo, err := git.Open(dir)
	require.NoError(t, err)
	src, err := dataset.NewGitSource(repo, "", 1, "**/*.py")
	require.NoError(t, err)

	copyDir := filepath.Join(t.TempDir(), "copies")
	opts := dataset.DefaultBuildOptions()
	opts.CopyDir = copyDir

	records, err := dataset.Build(context.Background(), src, opts)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, filepath.Join(copyDir, "pair1_old_main.py"), records[0].OldFile)
	assert.Equal(t, filepath.Join(copyDir, "pair1_new_main.py"), records[0].NewFile)

	data, err := os.ReadFile(records[0].OldFile)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))
	data, err = os.ReadFile(records[0].NewFile)
	require.NoError(t, err)
	assert.Equal(t, "a\nc\n", string(data))
}

func TestReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new_test_data.json")
	one, two := 1, 2
	records := []dataset.Record{{
		Pair:    1,
		OldFile: "a.py@1",
		NewFile: "a.py@2",
		Mappings: []dataset.Entry{
			{Orig: &one, New: &two},
			{Orig: &two},
		},
	}}
	require.NoError(t, dataset.Write(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {"))
	assert.Contains(t, string(data), `"old_file": "a.py@1"`)
	assert.Contains(t, string(data), `"new": null`)

	got, err := dataset.Read(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	_, err = dataset.Read(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "reading dataset")
}
