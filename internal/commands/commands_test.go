package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-daichendt/comp3110/internal/commands"
	"github.com/m-daichendt/comp3110/internal/config"
	"github.com/m-daichendt/comp3110/internal/dataset"
	"github.com/m-daichendt/comp3110/internal/git/gittest"
	"github.com/m-daichendt/comp3110/internal/linemap"
	"github.com/m-daichendt/comp3110/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMapFiles(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.py", "alpha\nbeta\ngamma\n")
	newPath := writeFile(t, dir, "new.py", "alpha\nbetaa\ngamma\ndelta\n")

	result, err := commands.MapFiles(oldPath, newPath, linemap.DefaultOptions())
	require.NoError(t, err)

	var got []string
	for _, m := range result.Mappings {
		got = append(got, m.String())
	}
	assert.Equal(t, []string{"1 -> 1", "2 -> 2", "3 -> 3", "- -> 4"}, got)
	assert.Equal(t, linemap.Stats{Anchored: 2, Matched: 1, Inserted: 1}, result.Stats)

	changes := result.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, 2, changes[0].Old)
	assert.Equal(t, 2, changes[0].New)
	assert.Equal(t, "beta{+a+}", changes[0].Text())
}

func TestMapFiles_MissingFile(t *testing.T) {
	dir := t.TempDir()
	newPath := writeFile(t, dir, "new.py", "x\n")
	_, err := commands.MapFiles(filepath.Join(dir, "nope.py"), newPath, linemap.DefaultOptions())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerate_LocalRepo(t *testing.T) {
	repoDir, _ := gittest.NewRepo(t,
		gittest.Revision{
			"a.py": gittest.Text("def a():\n    return 1\n"),
			"b.py": gittest.Text("B = 1\n"),
		},
		gittest.Revision{
			"a.py": gittest.Text("def a():\n    return 2\n"),
		},
	)
	output := filepath.Join(t.TempDir(), "new_test_data.json")

	result, err := commands.Generate(context.Background(), commands.GenerateOptions{
		RepoPath: repoDir,
		Commits:  1,
		Glob:     "**/*.py",
		Output:   output,
		Build:    dataset.DefaultBuildOptions(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pairs)
	assert.Equal(t, 3, result.Rows)
	assert.Len(t, result.Commits, 2)

	records, err := dataset.Read(output)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestGenerate_Dirs(t *testing.T) {
	oldDir, newDir := t.TempDir(), t.TempDir()
	writeFile(t, oldDir, "pkg/x.py", "x = 1\n")
	writeFile(t, newDir, "pkg/x.py", "x = 2\n")
	output := filepath.Join(t.TempDir(), "out.json")

	result, err := commands.Generate(context.Background(), commands.GenerateOptions{
		OldDir: oldDir,
		NewDir: newDir,
		Glob:   "**/*.py",
		Output: output,
		Build:  dataset.DefaultBuildOptions(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pairs)
	assert.Empty(t, result.Commits)
}

func TestGenerate_SourceSelection(t *testing.T) {
	base := commands.GenerateOptions{Glob: "**/*.py", Output: "x.json", Build: dataset.DefaultBuildOptions()}

	_, err := commands.Generate(context.Background(), base)
	assert.ErrorContains(t, err, "exactly one source")

	both := base
	both.RepoPath = "."
	both.RepoURL = "https://example.com/r.git"
	_, err = commands.Generate(context.Background(), both)
	assert.ErrorContains(t, err, "exactly one source")

	half := base
	half.OldDir = t.TempDir()
	_, err = commands.Generate(context.Background(), half)
	assert.ErrorContains(t, err, "used together")
}

func TestGenerate_NoPairs(t *testing.T) {
	oldDir, newDir := t.TempDir(), t.TempDir()
	_, err := commands.Generate(context.Background(), commands.GenerateOptions{
		OldDir: oldDir,
		NewDir: newDir,
		Glob:   "**/*.py",
		Output: filepath.Join(t.TempDir(), "out.json"),
		Build:  dataset.DefaultBuildOptions(),
	})
	assert.ErrorIs(t, err, dataset.ErrEmpty)
}

func TestRepoPathMustBeRepository(t *testing.T) {
	plain := t.TempDir()

	_, err := commands.Generate(context.Background(), commands.GenerateOptions{
		RepoPath: plain,
		Commits:  1,
		Glob:     "**/*.py",
		Output:   filepath.Join(t.TempDir(), "out.json"),
		Build:    dataset.DefaultBuildOptions(),
	})
	assert.ErrorIs(t, err, commands.ErrNotRepo)

	path := filepath.Join(t.TempDir(), "d.json")
	require.NoError(t, dataset.Write(path, []dataset.Record{{Pair: 1, OldFile: "a.py@x", NewFile: "a.py@y"}}))
	_, err = commands.ValidateDataset(context.Background(), path, plain, "", validate.DefaultOptions())
	assert.ErrorIs(t, err, commands.ErrNotRepo)
}

func TestGenerateThenValidate(t *testing.T) {
	repoDir, _ := gittest.NewRepo(t,
		gittest.Revision{"m.py": gittest.Text("import os\n\ndef run():\n    os.exit(0)\n")},
		gittest.Revision{"m.py": gittest.Text("import os\nimport sys\n\ndef run():\n    sys.exit(0)\n")},
	)
	dir := t.TempDir()
	output := filepath.Join(dir, "data.json")
	_, err := commands.Generate(context.Background(), commands.GenerateOptions{
		RepoPath: repoDir,
		Commits:  1,
		Glob:     "**/*.py",
		Output:   output,
		Build:    dataset.DefaultBuildOptions(),
	})
	require.NoError(t, err)

	resultsPath := filepath.Join(dir, "results.txt")
	result, err := commands.ValidateDataset(context.Background(), output, repoDir, resultsPath, validate.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Report.Passed)
	assert.Equal(t, 0, result.Report.Failed)
	assert.Equal(t, resultsPath, result.ResultsFile)

	text, err := os.ReadFile(resultsPath)
	require.NoError(t, err)
	assert.Equal(t, "All 1 pairs validated successfully.\n", string(text))
}

func TestValidateDataset_NoResultsFile(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "a.py", "one\n")
	newPath := writeFile(t, dir, "b.py", "one\n")
	one := 1
	path := filepath.Join(dir, "d.json")
	require.NoError(t, dataset.Write(path, []dataset.Record{{
		Pair: 1, OldFile: oldPath, NewFile: newPath,
		Mappings: []dataset.Entry{{Orig: &one, New: &one}},
	}}))

	result, err := commands.ValidateDataset(context.Background(), path, "", "", validate.DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, result.ResultsFile)
	assert.Equal(t, 1, result.Report.Passed)
}

func TestConvertThenValidateFixture(t *testing.T) {
	dataDir := t.TempDir()
	writeFile(t, dataDir, "Foo_1.java", "class Foo {\n  int a;\n}\n")
	writeFile(t, dataDir, "Foo_2.java", "class Foo {\n  int a;\n  int b;\n}\n")
	writeFile(t, dataDir, "Foo.xml", `<TEST FILE="Foo.java">
  <VERSION NUMBER="1" CHECKED="TRUE"/>
  <VERSION NUMBER="2" CHECKED="TRUE">
    <LOCATION ORIG="1" NEW="1"/>
    <LOCATION ORIG="2" NEW="2"/>
    <LOCATION ORIG="3" NEW="4"/>
  </VERSION>
</TEST>`)
	output := filepath.Join(t.TempDir(), "test_data.json")

	conv, err := commands.Convert(dataDir, output)
	require.NoError(t, err)
	assert.Equal(t, 1, conv.Cases)

	rep, err := commands.ValidateFixture(context.Background(), output, validate.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Passed)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	shown, err := commands.ConfigShow(path)
	require.NoError(t, err)
	assert.Contains(t, string(shown), "candidates: 15")

	require.NoError(t, commands.ConfigInit(path, false))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	err = commands.ConfigInit(path, false)
	assert.ErrorIs(t, err, commands.ErrConfigExists)

	require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0644))
	opts, err := commands.LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 2, opts.Workers)

	require.NoError(t, commands.ConfigInit(path, true))
	opts, err = commands.LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, linemap.DefaultOptions(), opts)
}
