// Package categories handles the commands that manage the expense category set
package categories

import (
	"fmt"
	"strconv"

	"fjacquet/kfinance/cmd/root"
	"fjacquet/kfinance/internal/render"

	"github.com/spf13/cobra"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"category"},
	Short:   "Manage expense categories",
	Long: `Manage the categories offered when recording expenses. Without a
subcommand the active categories are listed.`,
	RunE: runList,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List active categories",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := root.Session(cmd)
		if err != nil {
			return err
		}
		if err := sess.AddCategory(cmd.Context(), args[0]); err != nil {
			return err
		}
		return root.Message(cmd, "Category %s added", args[0])
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove <index>",
	Aliases: []string{"rm"},
	Short:   "Remove the category at index",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}
		sess, err := root.Session(cmd)
		if err != nil {
			return err
		}
		removed, err := sess.RemoveCategory(cmd.Context(), index)
		if err != nil {
			return err
		}
		return root.Message(cmd, "Category %s removed", removed)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := root.Session(cmd)
		if err != nil {
			return err
		}
		if err := sess.ResetCategories(cmd.Context()); err != nil {
			return err
		}
		return root.Message(cmd, "Categories restored to defaults")
	},
}

func init() {
	Cmd.AddCommand(listCmd, addCmd, removeCmd, resetCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	sess, err := root.Session(cmd)
	if err != nil {
		return err
	}
	sink, err := root.Sink(cmd)
	if err != nil {
		return err
	}
	return sink.Render(render.SlotCategories, sess.Categories())
}
