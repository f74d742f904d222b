package main

import (
	"fmt"
	"os"

	"github.com/m-daichendt/comp3110/internal/commands"
	"github.com/m-daichendt/comp3110/internal/dataset"
	"github.com/spf13/cobra"
)

var (
	genRepoURL     string
	genRepo        string
	genBranch      string
	genOldDir      string
	genNewDir      string
	genCommits     int
	genGlob        string
	genPairs       int
	genTargetLines int
	genSeed        int64
	genOutput      string
	genCopyFiles   string
	genConfig      string
	genForce       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a mapping dataset from git history or two directories",
	Long: `Sample file pairs, map them, and write the mappings as JSON.

With --repo-url or --repo, each file matching --glob at the tip is compared
across the most recent --commits adjacent commit pairs. With --old-dir and
--new-dir, files at the same relative path are paired. Paths are shuffled
with --seed and sampling stops at --pairs records or --target-lines rows.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(genOutput); err == nil && !genForce {
			overwrite, err := confirmOverwrite(genOutput)
			if err != nil {
				return err
			}
			if !overwrite {
				fmt.Println("Nothing written.")
				return nil
			}
		}

		engine, err := commands.LoadOptions(configPath(genConfig))
		if err != nil {
			return err
		}
		build := dataset.DefaultBuildOptions()
		build.MaxPairs = genPairs
		build.TargetLines = genTargetLines
		build.Seed = genSeed
		build.CopyDir = genCopyFiles
		build.Engine = engine

		result, err := commands.Generate(cmd.Context(), commands.GenerateOptions{
			RepoURL:  genRepoURL,
			RepoPath: genRepo,
			Branch:   genBranch,
			OldDir:   genOldDir,
			NewDir:   genNewDir,
			Commits:  genCommits,
			Glob:     genGlob,
			Output:   genOutput,
			Build:    build,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Wrote %d pairs to %s with total mappings capped at %d (%d rows).\n",
			result.Pairs, result.Output, genTargetLines, result.Rows)
		if genCopyFiles != "" {
			fmt.Printf("Copied pair contents to %s\n", genCopyFiles)
		}
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genRepoURL, "repo-url", "", "Git repository URL, cloned into memory")
	f.StringVar(&genRepo, "repo", "", "Local git repository path")
	f.StringVar(&genBranch, "branch", "", "Branch or commit to sample from (default: HEAD)")
	f.StringVar(&genOldDir, "old-dir", "", "Directory with the old file versions")
	f.StringVar(&genNewDir, "new-dir", "", "Directory with the new file versions")
	f.IntVar(&genCommits, "commits", 1, "Adjacent commit pairs to compare per file")
	f.StringVar(&genGlob, "glob", "**/*.py", "Glob selecting files, ** matches across directories")
	f.IntVar(&genPairs, "pairs", 25, "Maximum number of file pairs")
	f.IntVar(&genTargetLines, "target-lines", 500, "Cap on total mapping rows")
	f.Int64Var(&genSeed, "seed", 42, "Random seed for path sampling")
	f.StringVarP(&genOutput, "output", "o", "new_test_data.json", "Dataset file to write")
	f.StringVar(&genCopyFiles, "copy-files", "", "Also write pair contents into this directory")
	f.StringVar(&genConfig, "config", "", "Tuning config file")
	f.BoolVar(&genForce, "force", false, "Overwrite the output without asking")
	generateCmd.MarkFlagsMutuallyExclusive("repo-url", "repo", "old-dir")
	generateCmd.MarkFlagsRequiredTogether("old-dir", "new-dir")
}
