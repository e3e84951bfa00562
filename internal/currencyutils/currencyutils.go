// Package currencyutils normalizes raw money input into decimals and renders amounts
// in the fixed display convention used by dashboards and exports.
package currencyutils

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the currency prefix of every displayed amount.
const Symbol = "R$"

// ZeroDisplay is rendered for amounts that cannot be interpreted as numbers.
const ZeroDisplay = Symbol + " 0,00"

var currencyPattern = regexp.MustCompile(`R\$|BRL|CHF|[€$£¥\s\x{00A0}]`)

// ParseAmount parses a string representation of an amount into a decimal value.
// It handles formats like "1.234,56", "1234.56", "1234,56" and "R$ 12,50".
// An empty string parses to zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts various currency string formats to a form accepted by decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyPattern.ReplaceAllString(amountStr, "")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return strings.ReplaceAll(amountStr, "'", "")
}

// ToAmount converts a raw form value into a decimal.
// Missing or unparseable input becomes zero. Negative numbers pass through unchanged.
func ToAmount(raw interface{}) decimal.Decimal {
	amount, ok := toDecimal(raw)
	if !ok {
		return decimal.Zero
	}
	return amount
}

func toDecimal(raw interface{}) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false
		}
		return *v, true
	case string:
		if strings.TrimSpace(v) == "" {
			return decimal.Zero, false
		}
		amount, err := ParseAmount(v)
		if err != nil {
			return decimal.Zero, false
		}
		return amount, true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case float32:
		return toDecimal(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int8:
		return decimal.NewFromInt(int64(v)), true
	case int16:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint:
		return decimal.NewFromUint64(uint64(v)), true
	case uint8:
		return decimal.NewFromUint64(uint64(v)), true
	case uint16:
		return decimal.NewFromUint64(uint64(v)), true
	case uint32:
		return decimal.NewFromUint64(uint64(v)), true
	case uint64:
		return decimal.NewFromUint64(v), true
	default:
		return decimal.Zero, false
	}
}

// FormatCurrency renders an amount as "R$ 1.234,56" (negatives as "-R$ 1.234,56").
// Non-numeric input renders as ZeroDisplay.
func FormatCurrency(raw interface{}) string {
	amount, ok := toDecimal(raw)
	if !ok {
		return ZeroDisplay
	}

	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	fixed := rounded.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	return sign + Symbol + " " + groupThousands(intPart, ".") + "," + fracPart
}

// FormatDecimal renders an amount with two decimals and a dot separator, for exports.
func FormatDecimal(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// IsPositive checks if an amount is positive
func IsPositive(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}
