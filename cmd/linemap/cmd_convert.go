package main

import (
	"fmt"

	"github.com/m-daichendt/comp3110/internal/commands"
	"github.com/spf13/cobra"
)

var (
	convertDataDir string
	convertOutput  string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert XML line-location descriptors into a JSON fixture",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.Convert(convertDataDir, convertOutput)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %d tests to %s\n", result.Cases, result.Output)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertDataDir, "data-dir", "test-data", "Directory with *.xml descriptors and versioned .java files")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "test_data.json", "Fixture file to write")
}
