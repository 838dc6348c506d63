package money_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/salesagent/internal/money"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234.5", "R$ 1.234,50"},
		{"0", "R$ 0,00"},
		{"12.345", "R$ 12,35"},
		{"999", "R$ 999,00"},
		{"1000", "R$ 1.000,00"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"-588.74", "R$ -588,74"},
		{"-1234.5", "R$ -1.234,50"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, money.Format(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatNull(t *testing.T) {
	assert.Equal(t, "R$ 0,00", money.FormatNull(decimal.NullDecimal{}))
	assert.Equal(t, "R$ 10,00", money.FormatNull(decimal.NewNullDecimal(decimal.NewFromInt(10))))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", money.FormatFloat(1234.5))
	assert.Equal(t, "R$ 0,00", money.FormatFloat(math.NaN()))
	assert.Equal(t, "R$ 0,00", money.FormatFloat(math.Inf(1)))
}
