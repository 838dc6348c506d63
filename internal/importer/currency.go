package importer

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCurrency parses a Brazilian-formatted amount such as "R$ 1.234,56".
// It returns false for empty or malformed input.
func ParseCurrency(s string) (decimal.Decimal, bool) {
	clean := strings.ReplaceAll(s, "R$", "")
	clean = strings.ReplaceAll(clean, "\u00a0", "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return d, true
}

// NormalizeCurrency converts a money column of t into decimals.
// Cells that fail to parse become null. An absent column yields nil and no warning.
// A duplicated header leaves the column unnormalized (all null) with a warning.
func NormalizeCurrency(t *Table, col string) ([]decimal.NullDecimal, *Warning) {
	idx, err := t.Index(col)
	if errors.Is(err, ErrColumnMissing) {
		return nil, nil
	}

	if err != nil {
		return make([]decimal.NullDecimal, len(t.Rows)), &Warning{Column: col, Message: err.Error()}
	}

	out := make([]decimal.NullDecimal, len(t.Rows))
	filled, parsed := 0, 0

	for i := range t.Rows {
		cell := t.Cell(i, idx)
		if cell == "" {
			continue
		}

		filled++

		d, ok := ParseCurrency(cell)
		if !ok {
			continue
		}

		out[i] = decimal.NullDecimal{Decimal: d, Valid: true}
		parsed++
	}

	if filled > 0 && parsed == 0 {
		return out, &Warning{Column: col, Message: "no value could be read as currency; column is unusable"}
	}

	return out, nil
}
