package metrics

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesagent/internal/sale"
)

// Count is the number of sales for one name.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Amount is a money sum for one name.
type Amount struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

func sum(ds *sale.Dataset, col sale.Column, field func(sale.Record) decimal.NullDecimal) decimal.Decimal {
	total := decimal.Zero
	if !ds.Has(col) {
		return total
	}

	for _, r := range ds.Records {
		if v := field(r); v.Valid {
			total = total.Add(v.Decimal)
		}
	}

	return total
}

// TotalRevenue sums Total, treating null as zero.
func TotalRevenue(ds *sale.Dataset) decimal.Decimal {
	return sum(ds, sale.ColTotal, func(r sale.Record) decimal.NullDecimal { return r.Total })
}

// TotalCommission sums Comissão, treating null as zero.
func TotalCommission(ds *sale.Dataset) decimal.Decimal {
	return sum(ds, sale.ColCommission, func(r sale.Record) decimal.NullDecimal { return r.Commission })
}

func TotalDiscount(ds *sale.Dataset) decimal.Decimal {
	return sum(ds, sale.ColDiscount, func(r sale.Record) decimal.NullDecimal { return r.Discount })
}

func TotalFees(ds *sale.Dataset) decimal.Decimal {
	return sum(ds, sale.ColFees, func(r sale.Record) decimal.NullDecimal { return r.Fees })
}

func SalesCount(ds *sale.Dataset) int {
	return ds.Len()
}

// UniqueCustomers counts distinct non-empty customer e-mails.
func UniqueCustomers(ds *sale.Dataset) int {
	if !ds.Has(sale.ColCustomerEmail) {
		return 0
	}

	seen := make(map[string]struct{})

	for _, r := range ds.Records {
		if r.CustomerEmail != "" {
			seen[r.CustomerEmail] = struct{}{}
		}
	}

	return len(seen)
}

// ProductsSold counts sales per product, most sold first.
func ProductsSold(ds *sale.Dataset) []Count {
	if !ds.Has(sale.ColProduct) {
		return nil
	}

	return countBy(ds, func(r sale.Record) string { return r.Product })
}

// TopAffiliates returns the n affiliates with the most sales.
func TopAffiliates(ds *sale.Dataset, n int) []Count {
	if !ds.Has(sale.ColAffiliate) {
		return nil
	}

	counts := countBy(ds, func(r sale.Record) string { return r.Affiliate })
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}

	return counts
}

// RevenueByCity sums Total per customer city, highest first.
func RevenueByCity(ds *sale.Dataset) []Amount {
	if !ds.Has(sale.ColCustomerCity) {
		return nil
	}

	var (
		order []string
		sums  = make(map[string]decimal.Decimal)
	)

	for _, r := range ds.Records {
		if r.CustomerCity == "" {
			continue
		}

		cur, ok := sums[r.CustomerCity]
		if !ok {
			order = append(order, r.CustomerCity)
		}

		if r.Total.Valid {
			cur = cur.Add(r.Total.Decimal)
		}

		sums[r.CustomerCity] = cur
	}

	out := make([]Amount, 0, len(order))
	for _, city := range order {
		out = append(out, Amount{Name: city, Total: sums[city]})
	}

	slices.SortFunc(out, func(a, b Amount) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return out
}

func countBy(ds *sale.Dataset, key func(sale.Record) string) []Count {
	counts := make(map[string]int)

	for _, r := range ds.Records {
		if k := key(r); k != "" {
			counts[k]++
		}
	}

	out := make([]Count, 0, len(counts))
	for name, n := range counts {
		out = append(out, Count{Name: name, Count: n})
	}

	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return out
}
