package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/espalier/internal/menus"
	"github.com/zjrosen/espalier/internal/ordering"
	"github.com/zjrosen/espalier/internal/presentation"
)

var (
	orderShowPath string
	orderShowJSON bool
)

var orderShowCmd = &cobra.Command{
	Use:   "order:show",
	Short: "Show recorded menu orderings",
	Long: `Show the sibling orders the store has recorded, one entry per seen
menu level. These recorded orders are what keeps the menu stable: a recorded
item keeps its rank no matter which fragment contributes it or what hints it
carries.

Examples:
  # Every recorded level
  espalier order:show

  # One level ("" is the top level)
  espalier order:show --path Tools
  espalier order:show --path "" --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cfg, false)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		all, err := store.All()
		if err != nil {
			return fmt.Errorf("reading orderings: %w", err)
		}

		if cmd.Flags().Changed("path") {
			key := ordering.Key(menus.RootKey, orderShowPath)
			filtered := make(map[string][]string, 1)
			if names, ok := all[key]; ok {
				filtered[key] = names
			}
			all = filtered
		}

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		dtos := presentation.FromOrders(all)
		if orderShowJSON {
			return formatter.FormatJSON(dtos)
		}
		return formatter.FormatOrders(dtos)
	},
}

func init() {
	orderShowCmd.Flags().StringVar(&orderShowPath, "path", "", "show one menu level only")
	orderShowCmd.Flags().BoolVar(&orderShowJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(orderShowCmd)
}
