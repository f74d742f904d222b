package main

import (
	"errors"
	"fmt"

	"github.com/m-daichendt/comp3110/internal/commands"
	"github.com/m-daichendt/comp3110/internal/paths"
	"github.com/m-daichendt/comp3110/internal/validate"
	"github.com/spf13/cobra"
)

var (
	validateRepo      string
	validateResults   string
	validateNoResults bool
	validateFixture   bool
	validateConfig    string
)

// errValidationFailed makes the command exit non-zero after printing the
// report.
var errValidationFailed = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate [dataset]",
	Short: "Recompute mappings and compare them with a dataset or fixture",
	Long: `Recompute every pair of a dataset written by generate and report each
row whose mapping changed. With --fixture, the argument is a fixture written by
convert and each test case is checked version by version.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := commands.LoadOptions(configPath(validateConfig))
		if err != nil {
			return err
		}
		opts := validate.DefaultOptions()
		opts.Engine = engine

		if validateFixture {
			path := "test_data.json"
			if len(args) == 1 {
				path = args[0]
			}
			rep, err := commands.ValidateFixture(cmd.Context(), path, opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rep.Text())
			if rep.Failed > 0 {
				return errValidationFailed
			}
			return nil
		}

		path := "new_test_data.json"
		if len(args) == 1 {
			path = args[0]
		}
		results := validateResults
		if results == "" {
			results = paths.ResultsFile(path)
		}
		if validateNoResults {
			results = ""
		}

		result, err := commands.ValidateDataset(cmd.Context(), path, validateRepo, results, opts)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), result.Report.Text())
		if result.Report.Failed > 0 {
			return errValidationFailed
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateRepo, "repo", "", "Git repository for path@commit references")
	validateCmd.Flags().StringVar(&validateResults, "results", "", "Report file (default: <dataset>_results.txt)")
	validateCmd.Flags().BoolVar(&validateNoResults, "no-results", false, "Do not write a report file")
	validateCmd.Flags().BoolVar(&validateFixture, "fixture", false, "Treat the argument as a fixture from convert")
	validateCmd.Flags().StringVar(&validateConfig, "config", "", "Tuning config file")
}
