package dashboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesagent/internal/filter"
	"github.com/MrJamesThe3rd/salesagent/internal/importer"
	"github.com/MrJamesThe3rd/salesagent/internal/intent"
	"github.com/MrJamesThe3rd/salesagent/internal/metrics"
	"github.com/MrJamesThe3rd/salesagent/internal/money"
	"github.com/MrJamesThe3rd/salesagent/internal/period"
	"github.com/MrJamesThe3rd/salesagent/internal/sale"
	"github.com/MrJamesThe3rd/salesagent/internal/trend"
)

// Report is everything the dashboard shows for one rendering pass.
type Report struct {
	ID          uuid.UUID         `json:"id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Period      period.Preset     `json:"period"`
	PeriodLabel string            `json:"period_label"`
	Range       period.Range      `json:"range"`
	Filters     filter.Dimensions `json:"filters"`
	Options     filter.Dimensions `json:"options"`

	Summary  Summary         `json:"summary"`
	Cards    []Card          `json:"cards"`
	Trends   Trends          `json:"trends"`
	Warnings []trend.Alert   `json:"warnings"`
	Buttons  []intent.Button `json:"buttons"`
	Answer   *Answer         `json:"answer,omitempty"`

	Weekly     trend.Series     `json:"weekly"`
	Monthly    trend.Series     `json:"monthly"`
	Products   []metrics.Count  `json:"products"`
	Affiliates []metrics.Count  `json:"affiliates"`
	Cities     []metrics.Amount `json:"cities"`
	Comparison Comparison       `json:"comparison"`

	ImportIssues []importer.Warning `json:"import_issues,omitempty"`
	HasDiscount  bool               `json:"has_discount"`
	HasFees      bool               `json:"has_fees"`

	Dataset *sale.Dataset `json:"-"`
}

// Summary holds the headline figures of a dataset.
type Summary struct {
	Revenue         decimal.Decimal `json:"revenue"`
	Commission      decimal.Decimal `json:"commission"`
	Discount        decimal.Decimal `json:"discount"`
	Fees            decimal.Decimal `json:"fees"`
	ChargebackRate  float64         `json:"chargeback_rate"`
	RefundRate      float64         `json:"refund_rate"`
	UniqueCustomers int             `json:"unique_customers"`
	Sales           int             `json:"sales"`
}

// Card is one formatted headline figure.
type Card struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Value string `json:"value"`
}

type Trends struct {
	Weekly       trend.Result `json:"weekly"`
	Monthly      trend.Result `json:"monthly"`
	WeeklyAlert  trend.Alert  `json:"weekly_alert"`
	MonthlyAlert trend.Alert  `json:"monthly_alert"`
}

// Alerts returns the weekly and monthly alerts in display order.
func (t Trends) Alerts() []trend.Alert {
	return []trend.Alert{t.WeeklyAlert, t.MonthlyAlert}
}

// Answer is the reply to a question or button. Intent names the entry that matched.
type Answer struct {
	Question string `json:"question,omitempty"`
	Intent   string `json:"intent,omitempty"`
	Text     string `json:"text"`
}

// Comparison sets the selected range against the one of equal length before it.
type Comparison struct {
	Previous period.Range `json:"previous"`
	Prior    Summary      `json:"prior"`
	Changes  []Change     `json:"changes"`
}

// Change is a metric now and in the previous range. ChangePct is nil when the
// previous value is zero.
type Change struct {
	Metric    string   `json:"metric"`
	Current   float64  `json:"current"`
	Previous  float64  `json:"previous"`
	ChangePct *float64 `json:"change_pct"`
}

// Format renders v the way the metric's card shows it.
func (c Change) Format(v float64) string {
	switch c.Metric {
	case "revenue", "commission":
		return money.FormatFloat(v)
	case "chargeback_rate", "refund_rate":
		return fmt.Sprintf("%.2f%%", v)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func cards(s Summary) []Card {
	return []Card{
		{Key: "revenue", Title: "💰 Faturamento", Value: money.Format(s.Revenue)},
		{Key: "commission", Title: "💸 Comissões", Value: money.Format(s.Commission)},
		{Key: "chargeback", Title: "⚡ Chargeback", Value: fmt.Sprintf("%.2f%%", s.ChargebackRate)},
		{Key: "refund", Title: "🔄 Estornos", Value: fmt.Sprintf("%.2f%%", s.RefundRate)},
		{Key: "customers", Title: "👥 Clientes únicos", Value: fmt.Sprintf("%d", s.UniqueCustomers)},
		{Key: "sales", Title: "🧾 Vendas", Value: fmt.Sprintf("%d", s.Sales)},
	}
}

func compare(prev period.Range, cur, prior Summary) Comparison {
	change := func(metric string, c, p float64) Change {
		ch := Change{Metric: metric, Current: c, Previous: p}
		if p != 0 {
			ch.ChangePct = new((c - p) / p * 100)
		}

		return ch
	}

	return Comparison{
		Previous: prev,
		Prior:    prior,
		Changes: []Change{
			change("revenue", cur.Revenue.InexactFloat64(), prior.Revenue.InexactFloat64()),
			change("commission", cur.Commission.InexactFloat64(), prior.Commission.InexactFloat64()),
			change("sales", float64(cur.Sales), float64(prior.Sales)),
			change("unique_customers", float64(cur.UniqueCustomers), float64(prior.UniqueCustomers)),
			change("chargeback_rate", cur.ChargebackRate, prior.ChargebackRate),
			change("refund_rate", cur.RefundRate, prior.RefundRate),
		},
	}
}
