package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/espalier/internal/fragments"
	"github.com/zjrosen/espalier/internal/presentation"
)

var fragmentsListJSON bool

var fragmentsListCmd = &cobra.Command{
	Use:   "fragments:list",
	Short: "List discovered fragment files",
	Long: `List the fragment files the menu is assembled from, in load order,
with the number of actions and groups each one contributes.

Examples:
  espalier fragments:list
  espalier fragments:list --json | jq '.[].path'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := fragments.NewLoader(os.DirFS(cfg.ResolvedFragmentsDir()), true)
		files, err := loader.Load(cmd.Context())
		if err != nil {
			// Broken files are skipped, not fatal; report and list the rest.
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
		}

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		dtos := presentation.FromFragmentFiles(files)
		if fragmentsListJSON {
			return formatter.FormatJSON(dtos)
		}
		return formatter.FormatFragments(dtos)
	},
}

func init() {
	fragmentsListCmd.Flags().BoolVar(&fragmentsListJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(fragmentsListCmd)
}
