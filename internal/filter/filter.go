package filter

import (
	"strings"

	"github.com/MrJamesThe3rd/salesagent/internal/period"
	"github.com/MrJamesThe3rd/salesagent/internal/sale"
)

// ByRange keeps the records whose timestamp date falls within r.
// Records without a timestamp are dropped.
func ByRange(ds *sale.Dataset, r period.Range) *sale.Dataset {
	return ds.Filter(func(rec sale.Record) bool {
		return rec.StartedAt.Valid && r.Contains(rec.StartedAt.Time)
	})
}

// Dimensions narrows a dataset by categorical columns.
// Values within one dimension are OR-ed, dimensions are AND-ed. Empty means any.
type Dimensions struct {
	Affiliates     []string `json:"affiliates,omitempty"`
	Cities         []string `json:"cities,omitempty"`
	Statuses       []string `json:"statuses,omitempty"`
	PaymentMethods []string `json:"payment_methods,omitempty"`
}

func (d Dimensions) IsZero() bool {
	return len(d.Affiliates) == 0 && len(d.Cities) == 0 && len(d.Statuses) == 0 && len(d.PaymentMethods) == 0
}

// ByDimensions keeps the records matching every non-empty dimension, ignoring case.
func ByDimensions(ds *sale.Dataset, d Dimensions) *sale.Dataset {
	if d.IsZero() {
		return ds
	}

	return ds.Filter(func(rec sale.Record) bool {
		return anyOf(d.Affiliates, rec.Affiliate) &&
			anyOf(d.Cities, rec.CustomerCity) &&
			anyOf(d.Statuses, rec.Status) &&
			anyOf(d.PaymentMethods, rec.PaymentMethod)
	})
}

func anyOf(values []string, v string) bool {
	if len(values) == 0 {
		return true
	}

	for _, want := range values {
		if strings.EqualFold(strings.TrimSpace(want), v) {
			return true
		}
	}

	return false
}

// Options lists the distinct non-empty values of each dimension, in first-seen order.
func Options(ds *sale.Dataset) Dimensions {
	var (
		out  Dimensions
		seen = map[string]map[string]struct{}{}
	)

	add := func(dim string, dst *[]string, v string) {
		if v == "" {
			return
		}

		if seen[dim] == nil {
			seen[dim] = map[string]struct{}{}
		}

		key := strings.ToLower(v)
		if _, ok := seen[dim][key]; ok {
			return
		}

		seen[dim][key] = struct{}{}
		*dst = append(*dst, v)
	}

	for _, r := range ds.Records {
		add("affiliate", &out.Affiliates, r.Affiliate)
		add("city", &out.Cities, r.CustomerCity)
		add("status", &out.Statuses, r.Status)
		add("payment", &out.PaymentMethods, r.PaymentMethod)
	}

	return out
}
