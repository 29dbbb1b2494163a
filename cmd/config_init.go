package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/espalier/internal/config"
	"github.com/zjrosen/espalier/internal/paths"
)

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "config:init",
	Short: "Write the default configuration file",
	Long: `Write the commented default configuration. The target is the user
config location, or whatever --config points at. An existing file is left
alone unless --force is given.

Examples:
  espalier config:init
  espalier config:init --config .espalier/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target := cfgFile
		if target == "" {
			target = paths.DefaultConfigFile()
		}
		if target == "" {
			return errors.New("cannot determine the config location; pass --config")
		}

		if _, err := os.Stat(target); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", target)
		}

		if err := config.WriteDefaultConfig(target); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", target)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(configInitCmd)
}
