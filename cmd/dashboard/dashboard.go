// Package dashboard handles the command that shows the summary cards and charts
package dashboard

import (
	"fjacquet/kfinance/cmd/root"
	"fjacquet/kfinance/internal/render"

	"github.com/spf13/cobra"
)

var totalsOnly bool

// Cmd represents the dashboard command
var Cmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show totals, balance and charts",
	Long: `Show the dashboard of the logged-in user: total income, total expenses,
balance, top category and every chart.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := root.Session(cmd)
		if err != nil {
			return err
		}
		sink, err := root.Sink(cmd)
		if err != nil {
			return err
		}

		assembler := root.GetContainer().GetAssembler()
		snapshot := sess.Snapshot()
		if err := sink.Render(render.SlotTotals, assembler.Totals(snapshot)); err != nil {
			return err
		}
		if totalsOnly {
			return nil
		}
		return render.Charts(sink, assembler.Charts(snapshot))
	},
}

func init() {
	Cmd.Flags().BoolVar(&totalsOnly, "totals-only", false, "Show only the summary cards")
}
