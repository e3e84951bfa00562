// Package aggregator turns record collections into totals, category breakdowns,
// grouped totals and month-bucketed series.
//
// Every function is total: malformed records contribute zero or land in a fallback
// group, and empty input yields empty, zero or sentinel results. Nothing here
// performs I/O or returns an error.
package aggregator

import (
	"sort"
	"time"

	"fjacquet/kfinance/internal/currencyutils"
	"fjacquet/kfinance/internal/dateutils"
	"fjacquet/kfinance/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultMonthsBack is the number of buckets in a monthly series.
const DefaultMonthsBack = 6

// DefaultGroupLabel names the group of records whose key field is empty.
const DefaultGroupLabel = "Unspecified"

// NoCategory is the sentinel name returned by TopCategory when nothing qualifies.
const NoCategory = "None"

// TotalOf sums field over records.
func TotalOf[T any](records []T, field func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(field(r))
	}
	return total
}

// Entry is one key of a Breakdown.
type Entry struct {
	Key   string
	Value decimal.Decimal
}

// Breakdown maps a grouping key to an accumulated amount and remembers the
// order in which keys were first added.
type Breakdown struct {
	keys   []string
	totals map[string]decimal.Decimal
}

// NewBreakdown returns an empty Breakdown.
func NewBreakdown() *Breakdown {
	return &Breakdown{totals: make(map[string]decimal.Decimal)}
}

// Add accumulates value under key.
func (b *Breakdown) Add(key string, value decimal.Decimal) {
	if !b.Has(key) {
		b.keys = append(b.keys, key)
	}
	b.totals[key] = b.totals[key].Add(value)
}

// Get returns the amount under key, zero when absent.
func (b *Breakdown) Get(key string) decimal.Decimal {
	return b.totals[key]
}

// Has reports whether key was ever added.
func (b *Breakdown) Has(key string) bool {
	_, ok := b.totals[key]
	return ok
}

// Len returns the number of keys.
func (b *Breakdown) Len() int {
	return len(b.keys)
}

// Entries returns the keys and amounts in first-insertion order.
func (b *Breakdown) Entries() []Entry {
	entries := make([]Entry, 0, len(b.keys))
	for _, k := range b.keys {
		entries = append(entries, Entry{Key: k, Value: b.totals[k]})
	}
	return entries
}

func categoryOrOther(category string) string {
	if category == "" {
		return models.CategoryOther
	}
	return category
}

// CategoryBreakdown merges expense categories, the supermarket total and card
// categories into one Breakdown. The supermarket total lands under Food only
// when it is greater than zero. Empty categories count as Other.
func CategoryBreakdown(expenses []models.Expense, supermarketTotal decimal.Decimal, cards []models.CardCharge) *Breakdown {
	b := NewBreakdown()
	for _, e := range expenses {
		b.Add(categoryOrOther(e.Category), e.Value)
	}
	if currencyutils.IsPositive(supermarketTotal) {
		b.Add(models.CategoryFood, supermarketTotal)
	}
	for _, c := range cards {
		b.Add(categoryOrOther(c.Category), c.Value)
	}
	return b
}

// ExpenseCategoryBreakdown groups expenses alone by category.
func ExpenseCategoryBreakdown(expenses []models.Expense) *Breakdown {
	b := NewBreakdown()
	for _, e := range expenses {
		b.Add(categoryOrOther(e.Category), e.Value)
	}
	return b
}

// TopCategory returns the entry with strictly the largest positive amount.
// The first key to reach the maximum wins ties. (NoCategory, 0) is returned
// when the breakdown is empty or no amount is above zero.
func TopCategory(b *Breakdown) (string, decimal.Decimal) {
	name, best := NoCategory, decimal.Zero
	if b == nil {
		return name, best
	}
	for _, e := range b.Entries() {
		if e.Value.GreaterThan(best) {
			name, best = e.Key, e.Value
		}
	}
	return name, best
}

// SeriesPoint is one month bucket of a monthly series.
type SeriesPoint struct {
	Key   string
	Label string
	Total decimal.Decimal
}

// MonthlySeries buckets records into monthsBack calendar months ending at the
// month of now, oldest first. Records whose date does not parse, or falls
// outside the window, are left out of every bucket. monthsBack <= 0 means
// DefaultMonthsBack.
func MonthlySeries[T any](records []T, date func(T) string, value func(T) decimal.Decimal, now time.Time, monthsBack int, locale string) []SeriesPoint {
	if monthsBack <= 0 {
		monthsBack = DefaultMonthsBack
	}

	months := dateutils.MonthsBack(now, monthsBack)
	points := make([]SeriesPoint, len(months))
	index := make(map[string]int, len(months))
	for i, m := range months {
		key := dateutils.MonthKeyOf(m)
		points[i] = SeriesPoint{Key: key, Label: dateutils.MonthLabel(m, locale), Total: decimal.Zero}
		index[key] = i
	}

	for _, r := range records {
		key, ok := dateutils.MonthKey(date(r))
		if !ok {
			continue
		}
		if i, in := index[key]; in {
			points[i].Total = points[i].Total.Add(value(r))
		}
	}
	return points
}

// GroupTotal accumulates a value and a quantity for one grouping key.
type GroupTotal struct {
	Key      string
	Value    decimal.Decimal
	Quantity int64
}

// GroupedTotals groups records by key in first-seen order. Records with an empty
// key are grouped under fallback, or DefaultGroupLabel when fallback is empty.
// quantity may be nil when the records carry no quantity.
func GroupedTotals[T any](records []T, key func(T) string, value func(T) decimal.Decimal, quantity func(T) int64, fallback string) []GroupTotal {
	if fallback == "" {
		fallback = DefaultGroupLabel
	}

	var groups []GroupTotal
	index := make(map[string]int)
	for _, r := range records {
		k := key(r)
		if k == "" {
			k = fallback
		}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, GroupTotal{Key: k, Value: decimal.Zero})
		}
		groups[i].Value = groups[i].Value.Add(value(r))
		if quantity != nil {
			groups[i].Quantity += quantity(r)
		}
	}
	return groups
}

// MergeGroups combines grouped totals by key, keeping first-seen order across
// the inputs.
func MergeGroups(sets ...[]GroupTotal) []GroupTotal {
	var merged []GroupTotal
	index := make(map[string]int)
	for _, set := range sets {
		for _, g := range set {
			i, ok := index[g.Key]
			if !ok {
				index[g.Key] = len(merged)
				merged = append(merged, g)
				continue
			}
			merged[i].Value = merged[i].Value.Add(g.Value)
			merged[i].Quantity += g.Quantity
		}
	}
	return merged
}

// TopN returns at most n groups sorted by value descending. Equal values keep
// their first-seen order. The input slice is not modified.
func TopN(groups []GroupTotal, n int) []GroupTotal {
	if n <= 0 {
		return []GroupTotal{}
	}
	sorted := make([]GroupTotal, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value.GreaterThan(sorted[j].Value)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
