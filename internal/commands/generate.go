package commands

import (
	"context"
	"fmt"

	"github.com/m-daichendt/comp3110/internal/dataset"
	"github.com/m-daichendt/comp3110/internal/git"
)

// GenerateOptions selects one pair source and the dataset bounds. Exactly one
// of RepoURL, RepoPath or the OldDir/NewDir pair must be set.
type GenerateOptions struct {
	RepoURL  string
	RepoPath string
	Branch   string
	OldDir   string
	NewDir   string
	Commits  int
	Glob     string
	Output   string
	Build    dataset.BuildOptions
}

// GenerateResult holds the result of writing a dataset.
type GenerateResult struct {
	Output  string
	Pairs   int
	Rows    int
	Commits []string // sampled commits, newest first; empty for directory sources
}

// Generate builds a dataset from the selected source and writes it to
// opts.Output.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	src, commits, err := openSource(ctx, opts)
	if err != nil {
		return nil, err
	}
	records, err := dataset.Build(ctx, src, opts.Build)
	if err != nil {
		return nil, err
	}
	if err := dataset.Write(opts.Output, records); err != nil {
		return nil, err
	}
	return &GenerateResult{
		Output:  opts.Output,
		Pairs:   len(records),
		Rows:    dataset.Rows(records),
		Commits: commits,
	}, nil
}

func openSource(ctx context.Context, opts GenerateOptions) (dataset.Source, []string, error) {
	dirs := opts.OldDir != "" || opts.NewDir != ""
	set := 0
	for _, b := range []bool{opts.RepoURL != "", opts.RepoPath != "", dirs} {
		if b {
			set++
		}
	}
	if set != 1 {
		return nil, nil, fmt.Errorf("choose exactly one source: --repo-url, --repo, or --old-dir with --new-dir")
	}

	if dirs {
		if opts.OldDir == "" || opts.NewDir == "" {
			return nil, nil, fmt.Errorf("--old-dir and --new-dir must be used together")
		}
		return &dataset.DirSource{OldRoot: opts.OldDir, NewRoot: opts.NewDir, Glob: opts.Glob}, nil, nil
	}

	var repo *git.Repo
	var err error
	if opts.RepoURL != "" {
		repo, err = git.Clone(ctx, opts.RepoURL)
	} else {
		repo, err = openRepo(opts.RepoPath)
	}
	if err != nil {
		return nil, nil, err
	}
	src, err := dataset.NewGitSource(repo, opts.Branch, opts.Commits, opts.Glob)
	if err != nil {
		return nil, nil, err
	}
	return src, src.Commits(), nil
}
