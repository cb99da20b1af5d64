package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importLegacyCmd = &cobra.Command{
	Use:   "import-legacy [source.sqlite3]",
	Short: "Merge tickets from the legacy helpdesk database",
	Long: `Reads the old helpdesk sqlite file read-only and adds every ticket that was not
imported before. Without an argument the configured legacy.source_path is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *Application) error {
		source := ""
		if len(args) == 1 {
			source = args[0]
		}
		res, err := app.Importer.Import(cmd.Context(), source)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported: %d, skipped: %d\n", res.Imported, res.Skipped)
		return nil
	}),
}
