package trend

import (
	"fmt"
	"math"
)

type Direction string

const (
	Rising       Direction = "rising"
	Falling      Direction = "falling"
	Stable       Direction = "stable"
	Insufficient Direction = "insufficient_data"
)

type Severity string

const (
	Positive Severity = "positive"
	Negative Severity = "negative"
	Neutral  Severity = "neutral"
)

// Result is the average period-over-period change of a series, in percent.
type Result struct {
	Direction Direction `json:"direction"`
	MeanPct   float64   `json:"mean_pct"`
}

// Classify averages the percentage change between consecutive values.
// Changes from zero to zero are skipped. A series with fewer than two values,
// or whose mean is not finite, has insufficient data.
func Classify(values []float64) Result {
	if len(values) < 2 {
		return Result{Direction: Insufficient}
	}

	var (
		total float64
		n     int
	)

	for i := 1; i < len(values); i++ {
		change := (values[i] - values[i-1]) / values[i-1]
		if math.IsNaN(change) {
			continue
		}

		total += change
		n++
	}

	if n == 0 {
		return Result{Direction: Insufficient}
	}

	mean := total / float64(n) * 100
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return Result{Direction: Insufficient}
	}

	switch {
	case mean > 0:
		return Result{Direction: Rising, MeanPct: mean}
	case mean < 0:
		return Result{Direction: Falling, MeanPct: mean}
	default:
		return Result{Direction: Stable}
	}
}

// Alert is a message for the dashboard with how it should be highlighted.
type Alert struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

type copyText struct {
	rising, falling, stable, insufficient string
}

var copies = map[Granularity]copyText{
	Weekly: {
		rising:       "📈 Vendas subindo %.2f%% por semana.",
		falling:      "📉 Vendas caindo %.2f%% por semana.",
		stable:       "➖ Vendas estáveis nas últimas semanas.",
		insufficient: "➖ Dados insuficientes para calcular a tendência de vendas.",
	},
	Monthly: {
		rising:       "📈 Faturamento subindo %.2f%% ao mês.",
		falling:      "📉 Faturamento caindo %.2f%% ao mês.",
		stable:       "➖ Faturamento estável nos últimos meses.",
		insufficient: "➖ Dados insuficientes para calcular a tendência de faturamento.",
	},
}

// Analyze classifies s and words the outcome for its granularity.
func Analyze(s Series) (Result, Alert) {
	res := Classify(s.Values())
	c := copies[s.Granularity]

	switch res.Direction {
	case Rising:
		return res, Alert{Text: fmt.Sprintf(c.rising, res.MeanPct), Severity: Positive}
	case Falling:
		return res, Alert{Text: fmt.Sprintf(c.falling, math.Abs(res.MeanPct)), Severity: Negative}
	case Stable:
		return res, Alert{Text: c.stable, Severity: Neutral}
	default:
		return res, Alert{Text: c.insufficient, Severity: Neutral}
	}
}

// Limits are the rates, in percent, above which a warning is raised.
type Limits struct {
	Chargeback float64
	Refund     float64
}

var DefaultLimits = Limits{Chargeback: 5, Refund: 5}

// Thresholds returns one warning per rate above its limit.
func Thresholds(chargebackRate, refundRate float64, l Limits) []Alert {
	var out []Alert

	if chargebackRate > l.Chargeback {
		out = append(out, Alert{Text: fmt.Sprintf("⚡ Atenção: Chargeback elevado (%.2f%%).", chargebackRate), Severity: Negative})
	}

	if refundRate > l.Refund {
		out = append(out, Alert{Text: fmt.Sprintf("🔄 Atenção: Estornos elevados (%.2f%%).", refundRate), Severity: Negative})
	}

	return out
}
