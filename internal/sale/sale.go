package sale

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoDateData is returned when no record carries a usable timestamp.
var ErrNoDateData = errors.New("no usable date data")

// Column is a header name of the sales export.
type Column string

const (
	ColCode          Column = "Código"
	ColStatus        Column = "Status"
	ColStartedAt     Column = "Iniciada em"
	ColTotal         Column = "Total"
	ColCommission    Column = "Comissão"
	ColCustomerEmail Column = "Cliente (E-mail)"
	ColCustomerCity  Column = "Cliente (Cidade)"
	ColProduct       Column = "Produto"
	ColAffiliate     Column = "Afiliado (Nome)"
	ColDiscount      Column = "Desconto (Valor)"
	ColFees          Column = "Taxas"
	ColPaymentMethod Column = "Método de Pagamento"
)

// MoneyColumns are normalized from locale currency strings on load.
var MoneyColumns = []Column{ColTotal, ColCommission, ColDiscount, ColFees}

// Status is the free-text sale status. Comparisons are case-insensitive.
type Status string

const (
	StatusRefunded Status = "estornada"
	StatusDeclined Status = "recusada"
)

// Is reports whether the raw status equals s, ignoring case and surrounding spaces.
func (s Status) Is(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), string(s))
}

// Record is one row of the sales export after normalization.
type Record struct {
	Code          string
	Status        string
	StartedAt     sql.NullTime
	Total         decimal.NullDecimal
	Commission    decimal.NullDecimal
	Discount      decimal.NullDecimal
	Fees          decimal.NullDecimal
	CustomerEmail string
	CustomerCity  string
	Affiliate     string
	Product       string
	PaymentMethod string

	Line int      // 1-based line in the source file
	Raw  []string // original cells, aligned with Dataset.Header
}

// Bounds is the earliest and latest timestamp of a Dataset.
type Bounds struct {
	Min time.Time
	Max time.Time
}

func (b Bounds) IsZero() bool {
	return b.Min.IsZero() && b.Max.IsZero()
}
