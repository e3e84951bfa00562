// Package data handles maintenance commands on the record store
package data

import (
	"fmt"

	"fjacquet/kfinance/cmd/root"
	"fjacquet/kfinance/internal/store"

	"github.com/spf13/cobra"
)

var confirmed bool

// Cmd represents the data command
var Cmd = &cobra.Command{
	Use:   "data",
	Short: "Maintain the local record store",
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every user and every record",
	Long: `Delete every key of the record store: users, the current login and all
records. This cannot be undone. Pass --yes to confirm.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmed {
			return fmt.Errorf("refusing to clear data without --yes")
		}
		c := root.GetContainer()
		n, err := store.Clear(cmd.Context(), c.GetStore())
		if err != nil {
			return err
		}
		c.GetSession().Reset()
		c.GetLogger().Warn("Record store cleared")
		return root.Message(cmd, "Cleared %d keys", n)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Remove records left by users that no longer exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := root.GetContainer().GetUsers().PruneOrphans(cmd.Context())
		if err != nil {
			return err
		}
		if len(removed) == 0 {
			return root.Message(cmd, "No orphaned data found")
		}
		return root.Message(cmd, "Removed %d orphaned keys", len(removed))
	},
}

func init() {
	clearCmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm deletion")
	Cmd.AddCommand(clearCmd, checkCmd)
}
