package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/m-daichendt/comp3110/internal/commands"
	"github.com/m-daichendt/comp3110/internal/paths"
	"github.com/spf13/cobra"
)

var (
	configFile      string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the tuning config",
	Long:  "Show or create the YAML file that holds the matcher weights, thresholds and limits.",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := commands.ConfigShow(configPath(configFile))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath(configFile)
		err := commands.ConfigInit(path, configInitForce)
		if errors.Is(err, commands.ErrConfigExists) {
			overwrite, perr := confirmOverwrite(path)
			if perr != nil {
				return perr
			}
			if !overwrite {
				fmt.Println("Kept existing config.")
				return nil
			}
			err = commands.ConfigInit(path, true)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

// configPath returns flag when set, else the default location.
func configPath(flag string) string {
	if flag != "" {
		return flag
	}
	return paths.ConfigFile()
}

func confirmOverwrite(path string) (bool, error) {
	var overwrite bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite it?", path)).
				Affirmative("Overwrite").
				Negative("Keep").
				Value(&overwrite),
		),
	).Run()
	return overwrite, err
}

func init() {
	configCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: $LINEMAP_CONFIG or ~/.linemap/config.yaml)")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config without asking")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
