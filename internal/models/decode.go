package models

import (
	"bytes"
	"encoding/json"
	"errors"

	"fjacquet/kfinance/internal/currencyutils"

	"github.com/shopspring/decimal"
)

// ErrNotARecord is returned when a stored element is not a JSON object.
var ErrNotARecord = errors.New("stored element is not a record object")

// fields is one stored record keyed by JSON name. Field readers never fail:
// a missing or mistyped field reads as its zero value.
type fields map[string]json.RawMessage

func decodeFields(data []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, ErrNotARecord
	}
	if f == nil {
		return nil, ErrNotARecord
	}
	return f, nil
}

// scalar decodes the field as a string or a JSON number.
func (f fields) scalar(name string) (string, bool) {
	raw, ok := f[name]
	if !ok {
		return "", false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	default:
		return "", false
	}
}

func (f fields) text(name string) string {
	s, _ := f.scalar(name)
	return s
}

// amount reads money the way form input is read: blank or non-numeric is zero.
func (f fields) amount(name string) decimal.Decimal {
	s, ok := f.scalar(name)
	if !ok {
		return decimal.Zero
	}
	return currencyutils.ToAmount(s)
}

// count truncates a numeric field toward zero.
func (f fields) count(name string) int64 {
	return f.amount(name).IntPart()
}

// UnmarshalJSON decodes a stored expense, defaulting malformed fields.
func (e *Expense) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*e = Expense{
		ID:            f.text("id"),
		Date:          f.text("date"),
		Category:      f.text("category"),
		Description:   f.text("description"),
		Value:         f.amount("value"),
		PaymentMethod: f.text("payment"),
		Observations:  f.text("observations"),
		CreatedAt:     f.text("createdAt"),
	}
	return nil
}

// UnmarshalJSON decodes a stored revenue, defaulting malformed fields.
func (r *Revenue) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*r = Revenue{
		ID:           f.text("id"),
		Date:         f.text("date"),
		Source:       f.text("source"),
		Description:  f.text("description"),
		Value:        f.amount("value"),
		Category:     f.text("category"),
		Observations: f.text("observations"),
		CreatedAt:    f.text("createdAt"),
	}
	return nil
}

// UnmarshalJSON decodes a stored supermarket item, defaulting malformed fields.
// The total is kept as stored, even when zero.
func (s *SupermarketItem) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*s = SupermarketItem{
		ID:            f.text("id"),
		Date:          f.text("date"),
		Store:         f.text("store"),
		Product:       f.text("product"),
		Quantity:      f.count("quantity"),
		UnitValue:     f.amount("unitValue"),
		TotalValue:    f.amount("totalValue"),
		PaymentMethod: f.text("payment"),
		CreatedAt:     f.text("createdAt"),
	}
	return nil
}

// UnmarshalJSON decodes a stored card charge, defaulting malformed fields.
func (c *CardCharge) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*c = CardCharge{
		ID:            f.text("id"),
		Name:          f.text("name"),
		Date:          f.text("date"),
		Establishment: f.text("establishment"),
		Value:         f.amount("value"),
		Installments:  installmentsOrOne(f.count("installments")),
		Category:      f.text("category"),
		Status:        f.text("status"),
		CreatedAt:     f.text("createdAt"),
	}
	return nil
}
