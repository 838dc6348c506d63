package trend

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesagent/internal/period"
	"github.com/MrJamesThe3rd/salesagent/internal/sale"
)

type Granularity string

const (
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// Point is the revenue of one bucket. Weeks run Tuesday to Monday and are
// labelled by the Monday they end on; months are labelled by their first day.
type Point struct {
	Label time.Time       `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// Series is revenue per consecutive bucket. Buckets without sales are present with zero.
type Series struct {
	Granularity Granularity `json:"granularity"`
	Points      []Point     `json:"points"`
}

func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Total.InexactFloat64()
	}

	return out
}

// WeeklyRevenue sums Total per week ending on Monday.
func WeeklyRevenue(ds *sale.Dataset) Series {
	return bucket(ds, Weekly, weekEnd, func(t time.Time) time.Time { return t.AddDate(0, 0, 7) })
}

// MonthlyRevenue sums Total per calendar month.
func MonthlyRevenue(ds *sale.Dataset) Series {
	return bucket(ds, Monthly, monthStart, func(t time.Time) time.Time { return t.AddDate(0, 1, 0) })
}

func bucket(ds *sale.Dataset, g Granularity, label, next func(time.Time) time.Time) Series {
	const key = "2006-01-02"

	var (
		first, last time.Time
		sums        = make(map[string]decimal.Decimal)
	)

	for _, r := range ds.Records {
		if !r.StartedAt.Valid {
			continue
		}

		b := label(r.StartedAt.Time)
		if first.IsZero() || b.Before(first) {
			first = b
		}

		if last.IsZero() || b.After(last) {
			last = b
		}

		cur := sums[b.Format(key)]
		if r.Total.Valid {
			cur = cur.Add(r.Total.Decimal)
		}

		sums[b.Format(key)] = cur
	}

	s := Series{Granularity: g}
	if first.IsZero() {
		return s
	}

	for b := first; !b.After(last); b = next(b) {
		s.Points = append(s.Points, Point{Label: b, Total: sums[b.Format(key)]})
	}

	return s
}

// weekEnd returns the Monday on or after t.
func weekEnd(t time.Time) time.Time {
	d := period.Date(t)
	offset := (8 - int(d.Weekday())) % 7

	return d.AddDate(0, 0, offset)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
