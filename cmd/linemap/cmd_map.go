package main

import (
	"fmt"
	"io"

	"github.com/m-daichendt/comp3110/internal/commands"
	"github.com/spf13/cobra"
)

var (
	mapConfig      string
	mapStats       bool
	mapShowChanges bool
)

var mapCmd = &cobra.Command{
	Use:   "map <old> <new>",
	Short: "Map the lines of an old file onto a new one",
	Long:  "Print one line per entry, \"<old> -> <new>\", with \"-\" for a deleted or inserted line. Entries are ordered by old line, then by new line for insertions.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := commands.LoadOptions(configPath(mapConfig))
		if err != nil {
			return err
		}
		result, err := commands.MapFiles(args[0], args[1], opts)
		if err != nil {
			return err
		}
		printMapResult(cmd.OutOrStdout(), result, mapStats, mapShowChanges)
		return nil
	},
}

func printMapResult(w io.Writer, result *commands.MapResult, stats, changes bool) {
	for _, m := range result.Mappings {
		fmt.Fprintln(w, m.String())
	}

	if changes {
		cs := result.Changes()
		if len(cs) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, headerStyle.Render("CHANGED"))
			for _, c := range cs {
				label := lineNumStyle.Render(fmt.Sprintf("%d -> %d:", c.Old, c.New))
				fmt.Fprintf(w, "  %s %s\n", label, styledChange(c))
			}
		}
	}

	if stats {
		st := result.Stats
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%d anchored, %d matched, %d deleted, %d inserted\n",
			st.Anchored, st.Matched, st.Deleted, st.Inserted)
	}
}

func init() {
	mapCmd.Flags().StringVar(&mapConfig, "config", "", "Tuning config file (default: $LINEMAP_CONFIG or ~/.linemap/config.yaml)")
	mapCmd.Flags().BoolVar(&mapStats, "stats", false, "Print a summary after the mapping")
	mapCmd.Flags().BoolVar(&mapShowChanges, "show-changes", false, "Show an inline diff for matched lines whose text changed")
}
