package currencyutils

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  decimal.Decimal
		hasError  bool
	}{
		{"Empty string", "", decimal.Zero, false},
		{"Blank string", "   ", decimal.Zero, false},
		{"Simple decimal", "123.45", decimal.NewFromFloat(123.45), false},
		{"Negative decimal", "-123.45", decimal.NewFromFloat(-123.45), false},
		{"Integer", "100", decimal.NewFromInt(100), false},
		{"Comma decimal separator", "123,45", decimal.NewFromFloat(123.45), false},
		{"Thousand separator (comma)", "1,234.56", decimal.NewFromFloat(1234.56), false},
		{"Brazilian format", "1.234,56", decimal.NewFromFloat(1234.56), false},
		{"With real symbol", "R$ 12,50", decimal.NewFromFloat(12.5), false},
		{"With currency code", "BRL 99.90", decimal.NewFromFloat(99.9), false},
		{"With spaces", "  123.45  ", decimal.NewFromFloat(123.45), false},
		{"Malformed decimal", "123.45.67", decimal.Zero, true},
		{"Non-numeric", "abc", decimal.Zero, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAmount(tc.amountStr)

			if tc.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, tc.expected.Equal(result), "Expected %s but got %s", tc.expected.String(), result.String())
			}
		})
	}
}

func TestStandardizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Simple decimal", "123.45", "123.45"},
		{"Comma decimal separator", "123,45", "123.45"},
		{"Comma thousands", "1,234", "1234"},
		{"Multiple separators", "1,234,567.89", "1234567.89"},
		{"Brazilian multiple separators", "1.234.567,89", "1234567.89"},
		{"Apostrophe thousands", "1'234.56", "1234.56"},
		{"Real symbol", "R$1.234,56", "1234.56"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StandardizeAmount(tc.input))
		})
	}
}

func TestToAmount(t *testing.T) {
	var nilDecimal *decimal.Decimal
	d := decimal.NewFromFloat(7.25)

	tests := []struct {
		name     string
		raw      interface{}
		expected decimal.Decimal
	}{
		{"nil", nil, decimal.Zero},
		{"empty string", "", decimal.Zero},
		{"garbage string", "twelve", decimal.Zero},
		{"numeric string", "42.10", decimal.NewFromFloat(42.1)},
		{"negative string passes through", "-15.5", decimal.NewFromFloat(-15.5)},
		{"float", 3.5, decimal.NewFromFloat(3.5)},
		{"NaN", math.NaN(), decimal.Zero},
		{"Inf", math.Inf(1), decimal.Zero},
		{"int", 12, decimal.NewFromInt(12)},
		{"int8", int8(-3), decimal.NewFromInt(-3)},
		{"int16", int16(300), decimal.NewFromInt(300)},
		{"uint8", uint8(7), decimal.NewFromInt(7)},
		{"uint16", uint16(65535), decimal.NewFromInt(65535)},
		{"uint32", uint32(math.MaxUint32), decimal.NewFromInt(math.MaxUint32)},
		{"uint64 above int64 range", uint64(math.MaxUint64), decimal.RequireFromString("18446744073709551615")},
		{"max uint does not wrap negative", uint(math.MaxUint), decimal.NewFromUint64(math.MaxUint)},
		{"decimal", d, d},
		{"decimal pointer", &d, d},
		{"nil decimal pointer", nilDecimal, decimal.Zero},
		{"unsupported type", struct{}{}, decimal.Zero},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := ToAmount(tc.raw)
			assert.True(t, tc.expected.Equal(result), "Expected %s but got %s", tc.expected.String(), result.String())
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		raw      interface{}
		expected string
	}{
		{"zero", decimal.Zero, "R$ 0,00"},
		{"cents", decimal.NewFromFloat(0.5), "R$ 0,50"},
		{"thousands", decimal.NewFromFloat(1234.56), "R$ 1.234,56"},
		{"millions", decimal.NewFromInt(1234567), "R$ 1.234.567,00"},
		{"exact hundreds", decimal.NewFromInt(100), "R$ 100,00"},
		{"negative", decimal.NewFromFloat(-1234.5), "-R$ 1.234,50"},
		{"rounds half up", decimal.NewFromFloat(2.005), "R$ 2,01"},
		{"tiny negative rounds to zero", decimal.NewFromFloat(-0.001), "R$ 0,00"},
		{"float input", 10.1, "R$ 10,10"},
		{"string input", "99,9", "R$ 99,90"},
		{"NaN", math.NaN(), "R$ 0,00"},
		{"garbage", "n/a", "R$ 0,00"},
		{"nil", nil, "R$ 0,00"},
		{"uint64 beyond int64", uint64(math.MaxUint64), "R$ 18.446.744.073.709.551.615,00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatCurrency(tc.raw))
		})
	}
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "1234.50", FormatDecimal(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "-3.00", FormatDecimal(decimal.NewFromInt(-3)))
}

func TestGroupThousands(t *testing.T) {
	for input, expected := range map[string]string{
		"1":       "1",
		"123":     "123",
		"1234":    "1.234",
		"123456":  "123.456",
		"1234567": "1.234.567",
	} {
		assert.Equal(t, expected, groupThousands(input, "."), input)
	}
}

func TestIsPositive(t *testing.T) {
	assert.True(t, IsPositive(decimal.NewFromFloat(0.01)))
	assert.False(t, IsPositive(decimal.Zero))
	assert.False(t, IsPositive(decimal.NewFromInt(-1)))
}
