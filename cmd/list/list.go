// Package list handles the command that shows a record collection
package list

import (
	"strconv"

	"fjacquet/kfinance/cmd/root"
	"fjacquet/kfinance/internal/export"
	"fjacquet/kfinance/internal/models"
	"fjacquet/kfinance/internal/render"

	"github.com/spf13/cobra"
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list <expenses|revenues|supermarket|cards>",
	Short: "List the records of one collection",
	Long: `List the records of one collection in insertion order. The # column is the
index to pass to the remove command.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}
		sess, err := root.Session(cmd)
		if err != nil {
			return err
		}
		sink, err := root.Sink(cmd)
		if err != nil {
			return err
		}

		table, err := export.TableFor(kind, sess.Snapshot())
		if err != nil {
			return err
		}
		if table.Empty() {
			return sink.RenderEmpty(render.SlotRecords, "No "+kind.Collection()+" recorded yet")
		}

		values, err := table.Values()
		if err != nil {
			return err
		}
		out := render.Table{Title: table.Sheet, Header: append([]string{"#"}, values[0]...)}
		for i, row := range values[1:] {
			out.Rows = append(out.Rows, append([]string{strconv.Itoa(i)}, row...))
		}
		return sink.Render(render.SlotRecords, out)
	},
}
