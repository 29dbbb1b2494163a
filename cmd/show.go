package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/espalier/internal/config"
	"github.com/zjrosen/espalier/internal/flags"
	"github.com/zjrosen/espalier/internal/presentation"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Assemble the menu once and print it",
	Long: `Assemble the menu once and print it without opening the browser.

The default output is the same tree the browser renders, followed by any
merge diagnostics. --json emits the full snapshot instead: every entry with
its resolved path, command, and description.

Examples:
  # Inspect the assembled tree
  espalier show

  # Feed the snapshot to scripts
  espalier show --json | jq '.menu[].name'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		store, closeStore, err := openStore(cfg, newFlags(cfg).Enabled(flags.FlagOrderFreeze))
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()
		seedStore(cfg, store)

		svc := newService(cfg, store, nil, true)
		defer svc.Close()

		snap, err := svc.Assemble(cmd.Context())
		if err != nil {
			// Assembly degrades instead of failing; the snapshot holds
			// whatever loaded cleanly.
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
		}

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		dto := presentation.FromSnapshot(snap)
		if showJSON {
			return formatter.FormatJSON(dto)
		}
		return formatter.FormatTree(dto)
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the snapshot as JSON")
	rootCmd.AddCommand(showCmd)
}
