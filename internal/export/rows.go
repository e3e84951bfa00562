package export

import (
	"fmt"
	"strconv"

	"fjacquet/kfinance/internal/currencyutils"
	"fjacquet/kfinance/internal/dashboard"
	"fjacquet/kfinance/internal/dateutils"
	"fjacquet/kfinance/internal/models"
	"fjacquet/kfinance/internal/recorderror"

	"github.com/gocarina/gocsv"
)

// ExpenseRow is one line of the Expenses sheet.
type ExpenseRow struct {
	Date          string `csv:"Date"`
	Category      string `csv:"Category"`
	Description   string `csv:"Description"`
	Value         string `csv:"Value"`
	PaymentMethod string `csv:"Payment Method"`
	Observations  string `csv:"Observations"`
}

// RevenueRow is one line of the Revenues sheet.
type RevenueRow struct {
	Date         string `csv:"Date"`
	Category     string `csv:"Category"`
	Description  string `csv:"Description"`
	Value        string `csv:"Value"`
	Source       string `csv:"Source"`
	Observations string `csv:"Observations"`
}

// SupermarketRow is one line of the Supermarket sheet.
type SupermarketRow struct {
	Date          string `csv:"Date"`
	Product       string `csv:"Product"`
	Quantity      string `csv:"Quantity"`
	UnitValue     string `csv:"Unit Value"`
	TotalValue    string `csv:"Total Value"`
	Store         string `csv:"Store"`
	PaymentMethod string `csv:"Payment Method"`
}

// CardRow is one line of the Cards sheet.
type CardRow struct {
	CardName      string `csv:"Card Name"`
	Date          string `csv:"Date"`
	Establishment string `csv:"Establishment"`
	Value         string `csv:"Value"`
	Installments  string `csv:"Installments"`
	Category      string `csv:"Category"`
	Status        string `csv:"Status"`
}

// Table is the tabular form of one record collection.
type Table struct {
	Kind  models.Kind
	Sheet string
	rows  interface{}
	size  int
}

// Len returns the number of data rows.
func (t Table) Len() int { return t.size }

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool { return t.size == 0 }

// Marshal writes the header and every row to out.
func (t Table) Marshal(out gocsv.CSVWriter) error {
	return gocsv.MarshalCSV(t.rows, out)
}

// Values returns the header followed by the rows as cells.
func (t Table) Values() ([][]string, error) {
	c := &collector{}
	if err := t.Marshal(c); err != nil {
		return nil, err
	}
	return c.rows, nil
}

// Tables returns one table per kind, in dashboard order, including empty ones.
func Tables(s dashboard.Snapshot) []Table {
	kinds := models.Kinds()
	out := make([]Table, 0, len(kinds))
	for _, kind := range kinds {
		t, _ := TableFor(kind, s)
		out = append(out, t)
	}
	return out
}

// TableFor builds the table of a single kind.
func TableFor(kind models.Kind, s dashboard.Snapshot) (Table, error) {
	t := Table{Kind: kind, Sheet: kind.SheetName()}
	switch kind {
	case models.KindExpense:
		rows := make([]*ExpenseRow, len(s.Expenses))
		for i, e := range s.Expenses {
			rows[i] = &ExpenseRow{
				Date:          dateutils.DisplayDate(e.Date),
				Category:      e.Category,
				Description:   e.Description,
				Value:         currencyutils.FormatDecimal(e.Value),
				PaymentMethod: e.PaymentMethod,
				Observations:  e.Observations,
			}
		}
		t.rows, t.size = rows, len(rows)
	case models.KindRevenue:
		rows := make([]*RevenueRow, len(s.Revenues))
		for i, r := range s.Revenues {
			rows[i] = &RevenueRow{
				Date:         dateutils.DisplayDate(r.Date),
				Category:     r.Category,
				Description:  r.Description,
				Value:        currencyutils.FormatDecimal(r.Value),
				Source:       r.Source,
				Observations: r.Observations,
			}
		}
		t.rows, t.size = rows, len(rows)
	case models.KindSupermarket:
		rows := make([]*SupermarketRow, len(s.Supermarket))
		for i, item := range s.Supermarket {
			rows[i] = &SupermarketRow{
				Date:          dateutils.DisplayDate(item.Date),
				Product:       item.Product,
				Quantity:      strconv.FormatInt(item.Quantity, 10),
				UnitValue:     currencyutils.FormatDecimal(item.UnitValue),
				TotalValue:    currencyutils.FormatDecimal(item.TotalValue),
				Store:         item.Store,
				PaymentMethod: item.PaymentMethod,
			}
		}
		t.rows, t.size = rows, len(rows)
	case models.KindCard:
		rows := make([]*CardRow, len(s.Cards))
		for i, c := range s.Cards {
			installments := c.Installments
			if installments < 1 {
				installments = 1
			}
			rows[i] = &CardRow{
				CardName:      c.Name,
				Date:          dateutils.DisplayDate(c.Date),
				Establishment: c.Establishment,
				Value:         currencyutils.FormatDecimal(c.Value),
				Installments:  strconv.FormatInt(installments, 10),
				Category:      c.Category,
				Status:        c.Status,
			}
		}
		t.rows, t.size = rows, len(rows)
	default:
		return Table{}, fmt.Errorf("%w: %q", recorderror.ErrUnknownKind, kind)
	}
	return t, nil
}

// collector is a gocsv.CSVWriter that keeps rows in memory.
type collector struct {
	rows [][]string
}

func (c *collector) Write(row []string) error {
	c.rows = append(c.rows, append([]string(nil), row...))
	return nil
}

func (c *collector) Flush() {}

func (c *collector) Error() error { return nil }
