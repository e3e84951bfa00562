package dashboard

import (
	"fjacquet/kfinance/internal/aggregator"
	"fjacquet/kfinance/internal/models"

	"github.com/shopspring/decimal"
)

// ChartKind names the intended chart type. Rendering is up to the sink.
type ChartKind string

const (
	KindPie           ChartKind = "pie"
	KindLine          ChartKind = "line"
	KindBar           ChartKind = "bar"
	KindHorizontalBar ChartKind = "horizontal-bar"
)

// Chart identifiers in the order Charts returns them.
const (
	ChartCategory       = "category"
	ChartEvolution      = "evolution"
	ChartSupermarket    = "supermarket"
	ChartCards          = "cards"
	ChartEstablishments = "establishments"
	ChartComparison     = "comparison"
)

// Fallback group labels for records missing their grouping field.
const (
	UnspecifiedProduct       = "Unspecified product"
	UnspecifiedCard          = "Unspecified card"
	UnspecifiedEstablishment = "Unspecified establishment"
	UnspecifiedStore         = "Unspecified store"
)

// Series is one named row of values aligned with Chart.Labels.
type Series struct {
	Name   string            `json:"name"`
	Values []decimal.Decimal `json:"values"`
}

// Chart is a neutral labeled-series payload.
// When HasData is false the sink should show EmptyMessage instead of a chart.
type Chart struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Kind         ChartKind `json:"kind"`
	Labels       []string  `json:"labels"`
	Series       []Series  `json:"series"`
	HasData      bool      `json:"hasData"`
	EmptyMessage string    `json:"emptyMessage,omitempty"`
}

// Charts assembles the six chart payloads in fixed order.
func (a *Assembler) Charts(s Snapshot) []Chart {
	return []Chart{
		a.CategoryChart(s),
		a.EvolutionChart(s),
		a.SupermarketChart(s),
		a.CardsChart(s),
		a.EstablishmentsChart(s),
		a.ComparisonChart(s),
	}
}

// CategoryChart is a pie of expense categories in first-seen order.
func (a *Assembler) CategoryChart(s Snapshot) Chart {
	entries := aggregator.ExpenseCategoryBreakdown(s.Expenses).Entries()
	labels := make([]string, len(entries))
	values := make([]decimal.Decimal, len(entries))
	for i, e := range entries {
		labels[i] = e.Key
		values[i] = e.Value
	}
	return groupedChart(ChartCategory, "Expenses by category", KindPie, "Expenses", labels, values,
		"No expenses found")
}

// EvolutionChart compares monthly expenses and revenues.
func (a *Assembler) EvolutionChart(s Snapshot) Chart {
	now := a.opts.Now()
	expenses := aggregator.MonthlySeries(s.Expenses, models.Expense.When, models.Expense.Amount, now, a.opts.MonthsBack, a.opts.Locale)
	revenues := aggregator.MonthlySeries(s.Revenues, models.Revenue.When, models.Revenue.Amount, now, a.opts.MonthsBack, a.opts.Locale)
	return timeChart(ChartEvolution, "Monthly evolution", "No data found for the last months",
		namedSeries{"Expenses", expenses}, namedSeries{"Revenues", revenues})
}

// SupermarketChart shows the top products by spend.
func (a *Assembler) SupermarketChart(s Snapshot) Chart {
	groups := aggregator.GroupedTotals(s.Supermarket,
		func(i models.SupermarketItem) string { return i.Product },
		models.SupermarketItem.Amount,
		func(i models.SupermarketItem) int64 { return i.Quantity },
		UnspecifiedProduct)
	return topChart(ChartSupermarket, "Top supermarket products", KindBar, "Total spent",
		aggregator.TopN(groups, a.opts.TopProducts), "No supermarket data found")
}

// CardsChart is a pie of spend per card.
func (a *Assembler) CardsChart(s Snapshot) Chart {
	groups := aggregator.GroupedTotals(s.Cards,
		func(c models.CardCharge) string { return c.Name },
		models.CardCharge.Amount, nil, UnspecifiedCard)
	return topChart(ChartCards, "Spending by card", KindPie, "Total spent", groups, "No card data found")
}

// EstablishmentsChart merges card establishments with supermarket stores and keeps the top ones.
func (a *Assembler) EstablishmentsChart(s Snapshot) Chart {
	cards := aggregator.GroupedTotals(s.Cards,
		func(c models.CardCharge) string { return c.Establishment },
		models.CardCharge.Amount, nil, UnspecifiedEstablishment)
	stores := aggregator.GroupedTotals(s.Supermarket,
		func(i models.SupermarketItem) string { return i.Store },
		models.SupermarketItem.Amount, nil, UnspecifiedStore)
	merged := aggregator.TopN(aggregator.MergeGroups(cards, stores), a.opts.TopEstablishments)
	return topChart(ChartEstablishments, "Top establishments", KindHorizontalBar, "Total spent", merged,
		"No establishment data found")
}

// ComparisonChart compares monthly supermarket and card spend.
func (a *Assembler) ComparisonChart(s Snapshot) Chart {
	now := a.opts.Now()
	supermarket := aggregator.MonthlySeries(s.Supermarket, models.SupermarketItem.When, models.SupermarketItem.Amount, now, a.opts.MonthsBack, a.opts.Locale)
	cards := aggregator.MonthlySeries(s.Cards, models.CardCharge.When, models.CardCharge.Amount, now, a.opts.MonthsBack, a.opts.Locale)
	return timeChart(ChartComparison, "Supermarket vs cards", "No data found for the last months",
		namedSeries{"Supermarket", supermarket}, namedSeries{"Cards", cards})
}

type namedSeries struct {
	name   string
	points []aggregator.SeriesPoint
}

// timeChart has data unless every value of every series is zero.
func timeChart(id, title, empty string, series ...namedSeries) Chart {
	c := Chart{ID: id, Title: title, Kind: KindLine, Labels: []string{}, Series: []Series{}}
	for i, ns := range series {
		values := make([]decimal.Decimal, len(ns.points))
		for j, p := range ns.points {
			if i == 0 {
				c.Labels = append(c.Labels, p.Label)
			}
			values[j] = p.Total
			if !p.Total.IsZero() {
				c.HasData = true
			}
		}
		c.Series = append(c.Series, Series{Name: ns.name, Values: values})
	}
	if !c.HasData {
		c.EmptyMessage = empty
	}
	return c
}

func topChart(id, title string, kind ChartKind, seriesName string, groups []aggregator.GroupTotal, empty string) Chart {
	labels := make([]string, len(groups))
	values := make([]decimal.Decimal, len(groups))
	for i, g := range groups {
		labels[i] = g.Key
		values[i] = g.Value
	}
	return groupedChart(id, title, kind, seriesName, labels, values, empty)
}

// groupedChart has data when it has at least one label.
func groupedChart(id, title string, kind ChartKind, seriesName string, labels []string, values []decimal.Decimal, empty string) Chart {
	c := Chart{
		ID:      id,
		Title:   title,
		Kind:    kind,
		Labels:  labels,
		Series:  []Series{{Name: seriesName, Values: values}},
		HasData: len(labels) > 0,
	}
	if !c.HasData {
		c.EmptyMessage = empty
	}
	return c
}
