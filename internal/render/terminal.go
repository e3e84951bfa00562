package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/kfinance/internal/currencyutils"
	"fjacquet/kfinance/internal/dashboard"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// BarWidth is the length of the longest chart bar.
const BarWidth = 30

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Terminal renders slots as styled text.
type Terminal struct {
	out io.Writer
}

// NewTerminal returns a sink writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// Render dispatches on the value type. Unknown types are printed with %v.
func (t *Terminal) Render(slot string, value interface{}) error {
	switch v := value.(type) {
	case dashboard.Totals:
		return t.totals(v)
	case dashboard.Chart:
		return t.chart(v)
	case Table:
		return t.table(v)
	case []string:
		return t.list(slot, v)
	case string:
		_, err := fmt.Fprintln(t.out, v)
		return err
	default:
		_, err := fmt.Fprintf(t.out, "%s: %v\n", slot, v)
		return err
	}
}

// RenderEmpty prints message in a muted style.
func (t *Terminal) RenderEmpty(slot, message string) error {
	_, err := fmt.Fprintf(t.out, "%s\n%s\n\n", titleStyle.Render(slotTitle(slot)), mutedStyle.Render(message))
	return err
}

func (t *Terminal) totals(v dashboard.Totals) error {
	top := mutedStyle.Render("none")
	if v.TopCategory.Found() {
		top = fmt.Sprintf("%s (%s)", v.TopCategory.Name, currencyutils.FormatCurrency(v.TopCategory.Amount))
	}

	lines := []string{
		titleStyle.Render("Dashboard"),
		fmt.Sprintf("Total income   %s", positiveStyle.Render(currencyutils.FormatCurrency(v.TotalIncome))),
		fmt.Sprintf("Total expenses %s", negativeStyle.Render(currencyutils.FormatCurrency(v.TotalExpense))),
		fmt.Sprintf("Balance        %s", signed(v.Balance)),
		fmt.Sprintf("Top category   %s", top),
		mutedStyle.Render(fmt.Sprintf("%d expense entries, %d revenues",
			v.ItemCounts.ExpenseEntries(), v.ItemCounts.Revenues)),
	}
	_, err := fmt.Fprintln(t.out, cardStyle.Render(strings.Join(lines, "\n")))
	return err
}

func (t *Terminal) chart(c dashboard.Chart) error {
	if _, err := fmt.Fprintln(t.out, titleStyle.Render(c.Title)); err != nil {
		return err
	}

	peak := decimal.Zero
	for _, s := range c.Series {
		for _, v := range s.Values {
			if v.Abs().GreaterThan(peak) {
				peak = v.Abs()
			}
		}
	}

	w := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	for i, label := range c.Labels {
		for _, s := range c.Series {
			if i >= len(s.Values) {
				continue
			}
			name := label
			if len(c.Series) > 1 {
				name = label + " " + mutedStyle.Render(s.Name)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", name, currencyutils.FormatCurrency(s.Values[i]), barStyle.Render(bar(s.Values[i], peak)))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(t.out)
	return err
}

func (t *Terminal) table(tbl Table) error {
	if tbl.Title != "" {
		if _, err := fmt.Fprintln(t.out, titleStyle.Render(tbl.Title)); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	header := make([]string, len(tbl.Header))
	for i, h := range tbl.Header {
		header[i] = headerStyle.Render(h)
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range tbl.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func (t *Terminal) list(slot string, items []string) error {
	if _, err := fmt.Fprintln(t.out, titleStyle.Render(slotTitle(slot))); err != nil {
		return err
	}
	w := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	for i, item := range items {
		fmt.Fprintf(w, "%s\t%s\n", mutedStyle.Render(fmt.Sprintf("%d", i)), item)
	}
	return w.Flush()
}

// bar scales |v| against peak to at most BarWidth cells. Nonzero values get at least one cell.
func bar(v, peak decimal.Decimal) string {
	if peak.IsZero() || v.IsZero() {
		return ""
	}
	n := int(v.Abs().Mul(decimal.NewFromInt(BarWidth)).Div(peak).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func signed(v decimal.Decimal) string {
	s := currencyutils.FormatCurrency(v)
	if v.IsNegative() {
		return negativeStyle.Render(s)
	}
	return positiveStyle.Render(s)
}

func slotTitle(slot string) string {
	if slot == "" {
		return ""
	}
	return strings.ToUpper(slot[:1]) + slot[1:]
}
