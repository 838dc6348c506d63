package metrics

import (
	"slices"

	"github.com/MrJamesThe3rd/salesagent/internal/sale"
)

// RefundRate is the share of distinct sale codes whose latest status is refunded.
// A code's latest status is the last non-empty one after ordering by start time,
// with undated rows last. Returns 0 without a code or status column, or without rows.
func RefundRate(ds *sale.Dataset) float64 {
	if !ds.Has(sale.ColCode) || !ds.Has(sale.ColStatus) || ds.Len() == 0 {
		return 0
	}

	records := slices.Clone(ds.Records)
	slices.SortStableFunc(records, byStartedAt)

	terminal := make(map[string]string)

	for _, r := range records {
		if r.Code == "" {
			continue
		}

		if r.Status != "" {
			terminal[r.Code] = r.Status
		} else if _, ok := terminal[r.Code]; !ok {
			terminal[r.Code] = ""
		}
	}

	if len(terminal) == 0 {
		return 0
	}

	refunded := 0

	for _, status := range terminal {
		if sale.StatusRefunded.Is(status) {
			refunded++
		}
	}

	return float64(refunded) / float64(len(terminal)) * 100
}

// ChargebackRate is the share of all rows with a declined status.
// Rows are not deduplicated by code. Returns 0 without a status column or without rows.
func ChargebackRate(ds *sale.Dataset) float64 {
	if !ds.Has(sale.ColStatus) || ds.Len() == 0 {
		return 0
	}

	declined := 0

	for _, r := range ds.Records {
		if sale.StatusDeclined.Is(r.Status) {
			declined++
		}
	}

	return float64(declined) / float64(ds.Len()) * 100
}

func byStartedAt(a, b sale.Record) int {
	switch {
	case a.StartedAt.Valid && b.StartedAt.Valid:
		return a.StartedAt.Time.Compare(b.StartedAt.Time)
	case a.StartedAt.Valid:
		return -1
	case b.StartedAt.Valid:
		return 1
	default:
		return 0
	}
}
