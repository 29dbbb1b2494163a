package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/espalier/internal/menus"
	"github.com/zjrosen/espalier/internal/ordering"
)

var (
	orderResetPath string
	orderResetAll  bool
)

var orderResetCmd = &cobra.Command{
	Use:   "order:reset (--path PATH | --all)",
	Short: "Forget recorded menu orderings",
	Long: `Delete recorded sibling orders. On the next assembly the affected
levels are treated as unseen: placement hints apply again and the resulting
order is recorded fresh.

Examples:
  # Let hints re-place the items under Tools
  espalier order:reset --path Tools

  # Reset the top level
  espalier order:reset --path ""

  # Forget everything
  espalier order:reset --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hasPath := cmd.Flags().Changed("path")
		if hasPath == orderResetAll {
			return errors.New("specify exactly one of --path or --all")
		}

		store, closeStore, err := openStore(cfg, false)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		if orderResetAll {
			if err := store.ResetAll(); err != nil {
				return fmt.Errorf("resetting orderings: %w", err)
			}
		} else if err := store.Reset(menus.RootKey, orderResetPath); err != nil {
			return fmt.Errorf("resetting ordering for %q: %w", orderResetPath, err)
		}

		if f, ok := store.(ordering.Flusher); ok {
			if err := f.Flush(); err != nil {
				return fmt.Errorf("writing orderings: %w", err)
			}
		}

		if orderResetAll {
			fmt.Fprintln(cmd.OutOrStdout(), "reset all recorded orderings")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "reset recorded ordering for %q\n", orderResetPath)
		}
		return nil
	},
}

func init() {
	orderResetCmd.Flags().StringVar(&orderResetPath, "path", "", "menu level to reset (\"\" for the top level)")
	orderResetCmd.Flags().BoolVar(&orderResetAll, "all", false, "reset every recorded level")
	rootCmd.AddCommand(orderResetCmd)
}
