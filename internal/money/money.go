package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const zero = "R$ 0,00"

// Format renders d as Brazilian reais, e.g. "R$ 1.234,50" or "R$ -588,74".
func Format(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, frac, _ := strings.Cut(fixed, ".")

	return "R$ " + sign + group(intPart) + "," + frac
}

// FormatNull renders a missing value as "R$ 0,00".
func FormatNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return zero
	}

	return Format(d.Decimal)
}

// FormatFloat renders f, with NaN and infinities as "R$ 0,00".
func FormatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return zero
	}

	return Format(decimal.NewFromFloat(f))
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var sb strings.Builder

	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}

	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}

		sb.WriteString(digits[i : i+3])
	}

	return sb.String()
}
