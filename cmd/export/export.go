// Package export handles the command that writes collections to CSV files or Google Sheets
package export

import (
	"strings"

	"fjacquet/kfinance/cmd/root"
	"fjacquet/kfinance/internal/models"

	"github.com/spf13/cobra"
)

var directory string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export [expenses|revenues|supermarket|cards]",
	Short: "Export records to CSV or Google Sheets",
	Long: `Export the logged-in user's records to the configured target.

Without an argument every non-empty collection is exported. With a collection
name only that collection is exported. CSV files are named
K-Finance_<Sheet>_<YYYY-MM-DD>.csv.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := root.Session(cmd)
		if err != nil {
			return err
		}
		exporter, err := root.GetContainer().NewExporter(cmd.Context(), directory)
		if err != nil {
			return err
		}

		var written []string
		if len(args) == 0 {
			written, err = exporter.ExportAll(cmd.Context(), sess.Snapshot())
		} else {
			var kind models.Kind
			kind, err = models.ParseKind(args[0])
			if err != nil {
				return err
			}
			written, err = exporter.ExportKind(cmd.Context(), kind, sess.Snapshot())
		}
		if err != nil {
			return err
		}
		return root.Message(cmd, "Exported to %s", strings.Join(written, ", "))
	},
}

func init() {
	Cmd.Flags().StringVar(&directory, "dir", "", "Output directory for CSV files (overrides export.directory)")
}
