package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salesagent/internal/importer"
	"github.com/MrJamesThe3rd/salesagent/internal/sale"
)

const sampleExport = `Código;Status;Iniciada em;Total;Comissão;Cliente (E-mail);Cliente (Cidade);Produto;Afiliado (Nome)
V1;aprovada;05/03/2024 14:30:00;R$ 1.234,56;R$ 123,45;ana@example.com;São Paulo;Curso A;Joana

V2;recusada;data ruim;abc;R$ 10,00;bia@example.com;Recife;Curso B;
`

func TestService_Load(t *testing.T) {
	type args struct {
		content string
	}

	type testCase struct {
		name    string
		args    args
		wantErr error
		verify  func(t *testing.T, res *importer.Result)
	}

	tests := []testCase{
		{
			name: "StandardExport",
			args: args{content: sampleExport},
			verify: func(t *testing.T, res *importer.Result) {
				ds := res.Dataset
				require.Equal(t, 2, ds.Len())
				assert.Empty(t, res.Warnings)

				first := ds.Records[0]
				assert.Equal(t, "V1", first.Code)
				assert.Equal(t, "São Paulo", first.CustomerCity)
				assert.True(t, decimal.RequireFromString("1234.56").Equal(first.Total.Decimal))
				assert.True(t, decimal.RequireFromString("123.45").Equal(first.Commission.Decimal))
				require.True(t, first.StartedAt.Valid)
				assert.True(t, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC).Equal(first.StartedAt.Time))
				assert.Equal(t, 2, first.Line)

				second := ds.Records[1]
				assert.False(t, second.Total.Valid)
				assert.False(t, second.StartedAt.Valid)
				assert.Empty(t, second.Affiliate)
				assert.Equal(t, 4, second.Line)

				assert.False(t, ds.Has(sale.ColDiscount))
				assert.False(t, first.Discount.Valid)
			},
		},
		{
			name: "ColumnsInAnyOrder",
			args: args{content: "Total;Produto;Código\n10,00;Curso C;V9\n"},
			verify: func(t *testing.T, res *importer.Result) {
				rec := res.Dataset.Records[0]
				assert.Equal(t, "V9", rec.Code)
				assert.Equal(t, "Curso C", rec.Product)
				assert.True(t, decimal.NewFromInt(10).Equal(rec.Total.Decimal))
			},
		},
		{
			name: "UnusableColumnWarns",
			args: args{content: "Código;Taxas\nV1;x\nV2;n/a\n"},
			verify: func(t *testing.T, res *importer.Result) {
				require.Len(t, res.Warnings, 1)
				assert.Equal(t, string(sale.ColFees), res.Warnings[0].Column)
			},
		},
		{
			name:    "EmptyFile",
			args:    args{content: "\n ; \n"},
			wantErr: importer.ErrEmptyFile,
		},
		{
			name: "HeaderOnly",
			args: args{content: "Código;Status;Total\n"},
			verify: func(t *testing.T, res *importer.Result) {
				assert.Equal(t, 0, res.Dataset.Len())
				assert.True(t, res.Dataset.Has(sale.ColStatus))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := importer.NewService(time.UTC)
			got, err := svc.Load(strings.NewReader(tt.args.content))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{"05/03/2024 14:30:00", time.Date(2024, 3, 5, 14, 30, 0, 0, loc), true},
		{"05/03/2024 14:30", time.Date(2024, 3, 5, 14, 30, 0, 0, loc), true},
		{"05/03/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, loc), true},
		{"2024-03-05 08:00:00", time.Date(2024, 3, 5, 8, 0, 0, 0, loc), true},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, loc), true},
		{"ontem", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := importer.ParseTimestamp(tt.in, loc)

			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}
