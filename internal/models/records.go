package models

import (
	"strings"
	"time"

	"fjacquet/kfinance/internal/currencyutils"
	"fjacquet/kfinance/internal/recorderror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single outgoing payment.
type Expense struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Value         decimal.Decimal `json:"value"`
	PaymentMethod string          `json:"payment"`
	Observations  string          `json:"observations"`
	CreatedAt     string          `json:"createdAt"`
}

// Revenue is a single incoming payment.
type Revenue struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"`
	Source       string          `json:"source"`
	Description  string          `json:"description"`
	Value        decimal.Decimal `json:"value"`
	Category     string          `json:"category"`
	Observations string          `json:"observations"`
	CreatedAt    string          `json:"createdAt"`
}

// SupermarketItem is one product line of a grocery purchase.
// TotalValue is stored as entered and may differ from Quantity × UnitValue.
type SupermarketItem struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Store         string          `json:"store"`
	Product       string          `json:"product"`
	Quantity      int64           `json:"quantity"`
	UnitValue     decimal.Decimal `json:"unitValue"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	PaymentMethod string          `json:"payment"`
	CreatedAt     string          `json:"createdAt"`
}

// CardCharge is a purchase made on a named credit card.
type CardCharge struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Date          string          `json:"date"`
	Establishment string          `json:"establishment"`
	Value         decimal.Decimal `json:"value"`
	Installments  int64           `json:"installments"`
	Category      string          `json:"category"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"createdAt"`
}

// ExpenseInput holds the raw form values of an expense.
type ExpenseInput struct {
	Date, Category, Description, Value, PaymentMethod, Observations string
}

// RevenueInput holds the raw form values of a revenue.
type RevenueInput struct {
	Date, Source, Description, Value, Category, Observations string
}

// SupermarketInput holds the raw form values of a supermarket item.
// An empty TotalValue is computed from Quantity and UnitValue.
type SupermarketInput struct {
	Date, Store, Product, Quantity, UnitValue, TotalValue, PaymentMethod string
}

// CardInput holds the raw form values of a card charge.
type CardInput struct {
	Name, Date, Establishment, Value, Installments, Category, Status string
}

// Now is the clock used to stamp CreatedAt.
var Now = time.Now

// NewID returns a fresh time-ordered identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func createdAt() string {
	return Now().UTC().Format(time.RFC3339)
}

// requirePresent returns a ValidationError listing the names of blank values.
// pairs alternates field name and value.
func requirePresent(kind Kind, pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return &recorderror.ValidationError{Kind: string(kind), Fields: missing}
	}
	return nil
}

// toInt truncates a numeric form value toward zero; blank or invalid input is 0.
func toInt(raw string) int64 {
	return currencyutils.ToAmount(raw).IntPart()
}

func installmentsOrOne(n int64) int64 {
	if n < 1 {
		return 1
	}
	return n
}

// NewExpense validates presence of the required fields and builds an Expense.
func NewExpense(in ExpenseInput) (Expense, error) {
	if err := requirePresent(KindExpense,
		"date", in.Date, "category", in.Category, "description", in.Description, "value", in.Value); err != nil {
		return Expense{}, err
	}
	return Expense{
		ID:            NewID(),
		Date:          strings.TrimSpace(in.Date),
		Category:      strings.TrimSpace(in.Category),
		Description:   strings.TrimSpace(in.Description),
		Value:         currencyutils.ToAmount(in.Value),
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Observations:  strings.TrimSpace(in.Observations),
		CreatedAt:     createdAt(),
	}, nil
}

// NewRevenue validates presence of the required fields and builds a Revenue.
func NewRevenue(in RevenueInput) (Revenue, error) {
	if err := requirePresent(KindRevenue,
		"date", in.Date, "source", in.Source, "description", in.Description, "value", in.Value); err != nil {
		return Revenue{}, err
	}
	return Revenue{
		ID:           NewID(),
		Date:         strings.TrimSpace(in.Date),
		Source:       strings.TrimSpace(in.Source),
		Description:  strings.TrimSpace(in.Description),
		Value:        currencyutils.ToAmount(in.Value),
		Category:     strings.TrimSpace(in.Category),
		Observations: strings.TrimSpace(in.Observations),
		CreatedAt:    createdAt(),
	}, nil
}

// NewSupermarketItem validates presence of the required fields and builds a SupermarketItem.
func NewSupermarketItem(in SupermarketInput) (SupermarketItem, error) {
	if err := requirePresent(KindSupermarket,
		"date", in.Date, "store", in.Store, "product", in.Product); err != nil {
		return SupermarketItem{}, err
	}

	quantity := toInt(in.Quantity)
	unit := currencyutils.ToAmount(in.UnitValue)
	total := currencyutils.ToAmount(in.TotalValue)
	if strings.TrimSpace(in.TotalValue) == "" {
		total = unit.Mul(decimal.NewFromInt(quantity))
	}

	return SupermarketItem{
		ID:            NewID(),
		Date:          strings.TrimSpace(in.Date),
		Store:         strings.TrimSpace(in.Store),
		Product:       strings.TrimSpace(in.Product),
		Quantity:      quantity,
		UnitValue:     unit,
		TotalValue:    total,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		CreatedAt:     createdAt(),
	}, nil
}

// NewCardCharge validates presence of the required fields and builds a CardCharge.
// Installments below 1, blank included, become 1.
func NewCardCharge(in CardInput) (CardCharge, error) {
	if err := requirePresent(KindCard,
		"name", in.Name, "date", in.Date, "establishment", in.Establishment, "value", in.Value); err != nil {
		return CardCharge{}, err
	}

	return CardCharge{
		ID:            NewID(),
		Name:          strings.TrimSpace(in.Name),
		Date:          strings.TrimSpace(in.Date),
		Establishment: strings.TrimSpace(in.Establishment),
		Value:         currencyutils.ToAmount(in.Value),
		Installments:  installmentsOrOne(toInt(in.Installments)),
		Category:      strings.TrimSpace(in.Category),
		Status:        strings.TrimSpace(in.Status),
		CreatedAt:     createdAt(),
	}, nil
}

// Amount is the value counted in totals.
func (e Expense) Amount() decimal.Decimal { return e.Value }

// When is the stored record date.
func (e Expense) When() string { return e.Date }

func (r Revenue) Amount() decimal.Decimal { return r.Value }
func (r Revenue) When() string            { return r.Date }

// Amount is the stored total, not Quantity × UnitValue.
func (s SupermarketItem) Amount() decimal.Decimal { return s.TotalValue }
func (s SupermarketItem) When() string            { return s.Date }

func (c CardCharge) Amount() decimal.Decimal { return c.Value }
func (c CardCharge) When() string            { return c.Date }
