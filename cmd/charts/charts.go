// Package charts handles the command that shows individual dashboard charts
package charts

import (
	"fmt"
	"strings"

	"fjacquet/kfinance/cmd/root"
	"fjacquet/kfinance/internal/dashboard"
	"fjacquet/kfinance/internal/render"

	"github.com/spf13/cobra"
)

// Cmd represents the charts command
var Cmd = &cobra.Command{
	Use:   "charts [id...]",
	Short: "Show dashboard charts",
	Long: `Show dashboard charts. Without arguments every chart is shown.

Chart ids: category, evolution, supermarket, cards, establishments, comparison`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := root.Session(cmd)
		if err != nil {
			return err
		}
		sink, err := root.Sink(cmd)
		if err != nil {
			return err
		}

		all := root.GetContainer().GetAssembler().Charts(sess.Snapshot())
		selected, err := Select(all, args)
		if err != nil {
			return err
		}
		return render.Charts(sink, selected)
	},
}

// Select returns the charts named by ids in the order given, or all of them when ids is empty.
func Select(all []dashboard.Chart, ids []string) ([]dashboard.Chart, error) {
	if len(ids) == 0 {
		return all, nil
	}
	byID := make(map[string]dashboard.Chart, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	selected := make([]dashboard.Chart, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[strings.ToLower(id)]
		if !ok {
			return nil, fmt.Errorf("unknown chart %q", id)
		}
		selected = append(selected, c)
	}
	return selected, nil
}
