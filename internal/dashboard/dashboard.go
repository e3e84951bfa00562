// Package dashboard shapes aggregator output into the dashboard totals card and
// the six chart payloads handed to a presentation sink.
package dashboard

import (
	"time"

	"fjacquet/kfinance/internal/aggregator"
	"fjacquet/kfinance/internal/dateutils"
	"fjacquet/kfinance/internal/models"

	"github.com/shopspring/decimal"
)

// Snapshot holds the four record collections a dashboard is computed from.
// Callers pass copies; the assembler never retains or mutates them.
type Snapshot struct {
	Expenses    []models.Expense
	Revenues    []models.Revenue
	Supermarket []models.SupermarketItem
	Cards       []models.CardCharge
}

// Options tunes window sizes, caps and labels.
type Options struct {
	MonthsBack        int
	TopProducts       int
	TopEstablishments int
	Locale            string
	Now               func() time.Time
}

// DefaultOptions returns six months, top 8 products and top 10 establishments.
func DefaultOptions() Options {
	return Options{
		MonthsBack:        aggregator.DefaultMonthsBack,
		TopProducts:       8,
		TopEstablishments: 10,
		Locale:            dateutils.DefaultLocale,
		Now:               time.Now,
	}
}

// Assembler computes dashboard views from snapshots.
type Assembler struct {
	opts Options
}

// NewAssembler returns an Assembler, filling unset options with defaults.
func NewAssembler(opts Options) *Assembler {
	def := DefaultOptions()
	if opts.MonthsBack <= 0 {
		opts.MonthsBack = def.MonthsBack
	}
	if opts.TopProducts <= 0 {
		opts.TopProducts = def.TopProducts
	}
	if opts.TopEstablishments <= 0 {
		opts.TopEstablishments = def.TopEstablishments
	}
	if opts.Locale == "" {
		opts.Locale = def.Locale
	}
	if opts.Now == nil {
		opts.Now = def.Now
	}
	return &Assembler{opts: opts}
}

// TopCategory is the category with the largest spend.
type TopCategory struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Found reports whether any category had a positive spend.
func (t TopCategory) Found() bool {
	return t.Amount.GreaterThan(decimal.Zero)
}

// ItemCounts reports entry counts per source for badges.
type ItemCounts struct {
	Expenses    int `json:"expenses"`
	Revenues    int `json:"revenues"`
	Supermarket int `json:"supermarket"`
	Cards       int `json:"cards"`
}

// ExpenseEntries counts every outgoing entry across the three expense sources.
func (c ItemCounts) ExpenseEntries() int {
	return c.Expenses + c.Supermarket + c.Cards
}

// Totals is the dashboard card view.
type Totals struct {
	TotalExpense decimal.Decimal `json:"totalExpense"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	Balance      decimal.Decimal `json:"balance"`
	TopCategory  TopCategory     `json:"topCategory"`
	ItemCounts   ItemCounts      `json:"itemCounts"`
}

// Totals computes the dashboard card values. Total expense spans expenses,
// supermarket totals and card charges.
func (a *Assembler) Totals(s Snapshot) Totals {
	supermarketTotal := aggregator.TotalOf(s.Supermarket, models.SupermarketItem.Amount)
	totalExpense := aggregator.TotalOf(s.Expenses, models.Expense.Amount).
		Add(supermarketTotal).
		Add(aggregator.TotalOf(s.Cards, models.CardCharge.Amount))
	totalIncome := aggregator.TotalOf(s.Revenues, models.Revenue.Amount)

	name, amount := aggregator.TopCategory(aggregator.CategoryBreakdown(s.Expenses, supermarketTotal, s.Cards))

	return Totals{
		TotalExpense: totalExpense,
		TotalIncome:  totalIncome,
		Balance:      totalIncome.Sub(totalExpense),
		TopCategory:  TopCategory{Name: name, Amount: amount},
		ItemCounts: ItemCounts{
			Expenses:    len(s.Expenses),
			Revenues:    len(s.Revenues),
			Supermarket: len(s.Supermarket),
			Cards:       len(s.Cards),
		},
	}
}
