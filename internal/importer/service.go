package importer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesagent/internal/sale"
)

// Result is a loaded dataset together with the warnings raised while normalizing it.
type Result struct {
	Dataset  *sale.Dataset
	Warnings []Warning
}

type Service struct {
	loc *time.Location
}

// NewService returns a loader that reads timestamps in loc.
func NewService(loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}

	return &Service{loc: loc}
}

// Load reads a sales export and normalizes its money and timestamp columns.
// Bad cells become null; only unreadable input or a missing header is an error.
func (s *Service) Load(r io.Reader) (*Result, error) {
	t, err := ReadTable(r)
	if err != nil {
		return nil, fmt.Errorf("reading sales export: %w", err)
	}

	var warnings []Warning

	money := make(map[sale.Column][]decimal.NullDecimal, len(sale.MoneyColumns))

	for _, col := range sale.MoneyColumns {
		values, w := NormalizeCurrency(t, string(col))
		if w != nil {
			warnings = append(warnings, *w)
		}

		money[col] = values
	}

	startedAt, w := NormalizeTimestamps(t, string(sale.ColStartedAt), s.loc)
	if w != nil {
		warnings = append(warnings, *w)
	}

	text := func(col sale.Column) func(i int) string {
		idx, err := t.Index(string(col))
		if errors.Is(err, ErrColumnMissing) {
			return func(int) string { return "" }
		}

		return func(i int) string { return t.Cell(i, idx) }
	}

	var (
		code      = text(sale.ColCode)
		status    = text(sale.ColStatus)
		email     = text(sale.ColCustomerEmail)
		city      = text(sale.ColCustomerCity)
		affiliate = text(sale.ColAffiliate)
		product   = text(sale.ColProduct)
		payment   = text(sale.ColPaymentMethod)
	)

	records := make([]sale.Record, len(t.Rows))

	for i, row := range t.Rows {
		rec := sale.Record{
			Code:          code(i),
			Status:        status(i),
			CustomerEmail: email(i),
			CustomerCity:  city(i),
			Affiliate:     affiliate(i),
			Product:       product(i),
			PaymentMethod: payment(i),
			Line:          t.Lines[i],
			Raw:           row,
		}

		if startedAt != nil {
			rec.StartedAt = startedAt[i]
		}

		rec.Total = cellAt(money[sale.ColTotal], i)
		rec.Commission = cellAt(money[sale.ColCommission], i)
		rec.Discount = cellAt(money[sale.ColDiscount], i)
		rec.Fees = cellAt(money[sale.ColFees], i)

		records[i] = rec
	}

	for _, w := range warnings {
		slog.Warn("sales export column", "column", w.Column, "warning", w.Message)
	}

	return &Result{
		Dataset:  sale.NewDataset(t.Header, records),
		Warnings: warnings,
	}, nil
}

func cellAt(values []decimal.NullDecimal, i int) decimal.NullDecimal {
	if values == nil {
		return decimal.NullDecimal{}
	}

	return values[i]
}
