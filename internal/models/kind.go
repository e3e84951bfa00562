package models

import (
	"fmt"
	"strings"

	"fjacquet/kfinance/internal/recorderror"
)

// Kind tags the four record collections.
type Kind string

const (
	KindExpense     Kind = "expense"
	KindRevenue     Kind = "revenue"
	KindSupermarket Kind = "supermarket"
	KindCard        Kind = "card"
)

// Collection names under which records are persisted.
const (
	CollectionExpenses    = "expenses"
	CollectionRevenues    = "revenues"
	CollectionSupermarket = "supermarket"
	CollectionCards       = "cards"
	CollectionCategories  = "categories"
)

// Kinds returns every record kind in dashboard order.
func Kinds() []Kind {
	return []Kind{KindExpense, KindRevenue, KindSupermarket, KindCard}
}

// Collection returns the store collection name for the kind.
func (k Kind) Collection() string {
	switch k {
	case KindExpense:
		return CollectionExpenses
	case KindRevenue:
		return CollectionRevenues
	case KindSupermarket:
		return CollectionSupermarket
	case KindCard:
		return CollectionCards
	default:
		return ""
	}
}

// SheetName is the label used for export files and spreadsheet tabs.
func (k Kind) SheetName() string {
	switch k {
	case KindExpense:
		return "Expenses"
	case KindRevenue:
		return "Revenues"
	case KindSupermarket:
		return "Supermarket"
	case KindCard:
		return "Cards"
	default:
		return ""
	}
}

// ParseKind accepts a kind or its collection name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense", "expenses":
		return KindExpense, nil
	case "revenue", "revenues", "income":
		return KindRevenue, nil
	case "supermarket", "grocery", "groceries":
		return KindSupermarket, nil
	case "card", "cards":
		return KindCard, nil
	default:
		return "", fmt.Errorf("%w: %q", recorderror.ErrUnknownKind, s)
	}
}
