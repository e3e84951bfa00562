// Package remove handles the command that deletes a record by position
package remove

import (
	"fmt"
	"strconv"

	"fjacquet/kfinance/cmd/root"
	"fjacquet/kfinance/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the remove command
var Cmd = &cobra.Command{
	Use:     "remove <expenses|revenues|supermarket|cards> <index>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove one record by its index",
	Long: `Remove the record at the given index of a collection. Indices are the ones
shown by the list command and shift down after each removal.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[1], err)
		}
		sess, err := root.Session(cmd)
		if err != nil {
			return err
		}
		if err := sess.Delete(cmd.Context(), kind, index); err != nil {
			return err
		}
		return root.Message(cmd, "Removed %s #%d", kind, index)
	},
}
