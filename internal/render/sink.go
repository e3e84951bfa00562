// Package render provides the presentation sinks that display dashboard
// values, chart payloads and record tables.
package render

import (
	"fjacquet/kfinance/internal/dashboard"
)

// Slot names used by the commands.
const (
	SlotTotals     = "totals"
	SlotRecords    = "records"
	SlotCategories = "categories"
	SlotMessage    = "message"
)

// Sink renders a value into a named slot, or an empty state in its place.
type Sink interface {
	Render(slot string, value interface{}) error
	RenderEmpty(slot, message string) error
}

// Table is a header plus rows of preformatted cells.
type Table struct {
	Title  string     `json:"title,omitempty"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Charts sends every chart to sink, using its empty message when it has no data.
func Charts(sink Sink, charts []dashboard.Chart) error {
	for _, c := range charts {
		var err error
		if c.HasData {
			err = sink.Render(c.ID, c)
		} else {
			err = sink.RenderEmpty(c.ID, c.EmptyMessage)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
