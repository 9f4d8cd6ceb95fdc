package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allyourbase/numcanon/internal/cli/ui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print numcanon version",
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat(cmd) == "json" {
			return writeJSON(cmd.OutOrStdout(), map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s numcanon %s (commit: %s, built: %s)\n", ui.SymbolPhone, buildVersion, buildCommit, buildDate)
		return nil
	},
}
