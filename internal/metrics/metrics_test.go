package metrics_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salesagent/internal/metrics"
	"github.com/MrJamesThe3rd/salesagent/internal/sale"
)

var fullHeader = []string{
	string(sale.ColCode), string(sale.ColStatus), string(sale.ColStartedAt),
	string(sale.ColTotal), string(sale.ColCommission), string(sale.ColCustomerEmail),
	string(sale.ColCustomerCity), string(sale.ColProduct), string(sale.ColAffiliate),
}

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func ts(day, hour int) sql.NullTime {
	return sql.NullTime{Time: time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC), Valid: true}
}

func salesDataset() *sale.Dataset {
	return sale.NewDataset(fullHeader, []sale.Record{
		{Code: "1", Status: "aprovada", Total: money("100"), Commission: money("10"), CustomerEmail: "a@x.com", CustomerCity: "Recife", Product: "Curso A", Affiliate: "Joana"},
		{Code: "2", Status: "aprovada", Total: money("250.5"), Commission: money("25"), CustomerEmail: "b@x.com", CustomerCity: "Natal", Product: "Curso B", Affiliate: "Carlos"},
		{Code: "3", Status: "aprovada", Total: money("50"), CustomerEmail: "a@x.com", CustomerCity: "Recife", Product: "Curso A", Affiliate: "Joana"},
		{Code: "4", Status: "aprovada", CustomerEmail: "", CustomerCity: "", Product: "Curso C", Affiliate: "Bruna"},
	})
}

func TestTotals(t *testing.T) {
	ds := salesDataset()

	assert.True(t, decimal.RequireFromString("400.5").Equal(metrics.TotalRevenue(ds)))
	assert.True(t, decimal.NewFromInt(35).Equal(metrics.TotalCommission(ds)))
	assert.True(t, metrics.TotalDiscount(ds).IsZero())
	assert.Equal(t, 2, metrics.UniqueCustomers(ds))
	assert.Equal(t, 4, metrics.SalesCount(ds))
}

func TestBreakdowns(t *testing.T) {
	ds := salesDataset()

	assert.Equal(t, []metrics.Count{
		{Name: "Curso A", Count: 2},
		{Name: "Curso B", Count: 1},
		{Name: "Curso C", Count: 1},
	}, metrics.ProductsSold(ds))

	assert.Equal(t, []metrics.Count{
		{Name: "Joana", Count: 2},
		{Name: "Bruna", Count: 1},
	}, metrics.TopAffiliates(ds, 2))

	cities := metrics.RevenueByCity(ds)
	require.Len(t, cities, 2)
	assert.Equal(t, "Natal", cities[0].Name)
	assert.True(t, decimal.RequireFromString("250.5").Equal(cities[0].Total))
	assert.Equal(t, "Recife", cities[1].Name)
	assert.True(t, decimal.NewFromInt(150).Equal(cities[1].Total))
}

func TestMissingColumns(t *testing.T) {
	ds := sale.NewDataset([]string{"Outra"}, []sale.Record{{Code: "1", Status: "recusada", Total: money("10")}})

	assert.True(t, metrics.TotalRevenue(ds).IsZero())
	assert.Zero(t, metrics.UniqueCustomers(ds))
	assert.Empty(t, metrics.ProductsSold(ds))
	assert.Empty(t, metrics.TopAffiliates(ds, 5))
	assert.Empty(t, metrics.RevenueByCity(ds))
	assert.Zero(t, metrics.RefundRate(ds))
	assert.Zero(t, metrics.ChargebackRate(ds))
}

func TestRefundRate(t *testing.T) {
	type testCase struct {
		name    string
		header  []string
		records []sale.Record
		want    float64
	}

	tests := []testCase{
		{
			name:   "LastStatusWins",
			header: fullHeader,
			records: []sale.Record{
				{Code: "A", Status: "estornada", StartedAt: ts(2, 0)},
				{Code: "A", Status: "pendente", StartedAt: ts(1, 0)},
			},
			want: 100,
		},
		{
			name:   "RefundSupersededByLaterStatus",
			header: fullHeader,
			records: []sale.Record{
				{Code: "A", Status: "estornada", StartedAt: ts(1, 0)},
				{Code: "A", Status: "aprovada", StartedAt: ts(2, 0)},
				{Code: "B", Status: "ESTORNADA", StartedAt: ts(1, 0)},
				{Code: "C", Status: "aprovada", StartedAt: ts(1, 0)},
			},
			want: 100.0 / 3,
		},
		{
			name:   "UndatedRowsSortLast",
			header: fullHeader,
			records: []sale.Record{
				{Code: "A", Status: "estornada"},
				{Code: "A", Status: "aprovada", StartedAt: ts(5, 0)},
			},
			want: 100,
		},
		{
			name:   "EmptyStatusDoesNotOverride",
			header: fullHeader,
			records: []sale.Record{
				{Code: "A", Status: "estornada", StartedAt: ts(1, 0)},
				{Code: "A", Status: "", StartedAt: ts(2, 0)},
				{Code: "B", Status: "", StartedAt: ts(2, 0)},
			},
			want: 50,
		},
		{
			name:   "NoRows",
			header: fullHeader,
			want:   0,
		},
		{
			name:    "NoCodeColumn",
			header:  []string{string(sale.ColStatus)},
			records: []sale.Record{{Status: "estornada"}},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metrics.RefundRate(sale.NewDataset(tt.header, tt.records))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestChargebackRate(t *testing.T) {
	// Two rows of the same code both declined count twice.
	ds := sale.NewDataset(fullHeader, []sale.Record{
		{Code: "A", Status: "recusada", StartedAt: ts(1, 0)},
		{Code: "A", Status: "Recusada", StartedAt: ts(1, 1)},
		{Code: "B", Status: "aprovada", StartedAt: ts(1, 2)},
		{Code: "C", Status: "estornada", StartedAt: ts(1, 3)},
	})

	assert.InDelta(t, 50.0, metrics.ChargebackRate(ds), 1e-9)
	assert.Zero(t, metrics.ChargebackRate(sale.NewDataset(fullHeader, nil)))
}

func TestRatesAreBounded(t *testing.T) {
	statuses := []string{"recusada", "estornada", "aprovada", "", "RECUSADA"}

	var records []sale.Record
	for i, s := range statuses {
		records = append(records, sale.Record{Code: string(rune('A' + i%3)), Status: s, StartedAt: ts(1, i)})
	}

	ds := sale.NewDataset(fullHeader, records)

	for _, rate := range []float64{metrics.RefundRate(ds), metrics.ChargebackRate(ds)} {
		assert.GreaterOrEqual(t, rate, 0.0)
		assert.LessOrEqual(t, rate, 100.0)
	}
}
