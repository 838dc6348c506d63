package cli

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/importer"
	"github.com/MrJamesThe3rd/salesagent/internal/money"
	"github.com/MrJamesThe3rd/salesagent/internal/trend"
)

const barWidth = 40

// Render lays out a report as terminal text.
func Render(r *dashboard.Report) string {
	var b strings.Builder

	b.WriteString(pterm.FgMagenta.Sprintf("%s: %s\n\n", r.PeriodLabel, r.Range))
	b.WriteString(renderCards(r))

	if lines := alertText(r.Trends.Alerts(), r.Warnings); lines != "" {
		b.WriteString("\n" + pterm.DefaultBox.WithTitle("Tendências").Sprint(lines) + "\n")
	}

	b.WriteString(renderSeries("Faturamento semanal", r.Weekly, "02/01"))
	b.WriteString(renderSeries("Faturamento mensal", r.Monthly, "01/2006"))
	b.WriteString(renderComparison(r.Comparison))
	b.WriteString(renderBreakdowns(r))

	if len(r.ImportIssues) > 0 {
		b.WriteString("\n" + issueText(r.ImportIssues) + "\n")
	}

	if r.Answer != nil {
		b.WriteString("\n" + pterm.DefaultBox.WithTitle("Resposta").Sprint(r.Answer.Text) + "\n")
	}

	return b.String()
}

func renderCards(r *dashboard.Report) string {
	data := pterm.TableData{{"Indicador", "Valor"}}
	for _, c := range r.Cards {
		data = append(data, []string{c.Title, pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint(c.Value)})
	}

	if r.HasDiscount {
		data = append(data, []string{"🏷️ Descontos", money.Format(r.Summary.Discount)})
	}

	if r.HasFees {
		data = append(data, []string{"🧮 Taxas", money.Format(r.Summary.Fees)})
	}

	table, _ := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()

	return table + "\n"
}

func alertText(trends, warnings []trend.Alert) string {
	lines := make([]string, 0, len(trends)+len(warnings))

	for _, a := range append(trends, warnings...) {
		switch a.Severity {
		case trend.Positive:
			lines = append(lines, pterm.FgGreen.Sprint(a.Text))
		case trend.Negative:
			lines = append(lines, pterm.FgRed.Sprint(a.Text))
		default:
			lines = append(lines, pterm.FgYellow.Sprint(a.Text))
		}
	}

	return strings.Join(lines, "\n")
}

func renderSeries(title string, s trend.Series, layout string) string {
	if len(s.Points) == 0 {
		return ""
	}

	var peak float64
	for _, v := range s.Values() {
		peak = max(peak, v)
	}

	data := pterm.TableData{{"Período", "Faturamento", ""}}

	for _, p := range s.Points {
		n := 0
		if peak > 0 {
			n = int(p.Total.InexactFloat64() / peak * barWidth)
		}

		data = append(data, []string{
			p.Label.Format(layout),
			money.Format(p.Total),
			pterm.FgBlue.Sprint(strings.Repeat("█", n)),
		})
	}

	table, _ := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()

	return "\n" + pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(table) + "\n"
}

func renderComparison(c dashboard.Comparison) string {
	data := pterm.TableData{{"Métrica", "Atual", "Anterior", "Variação"}}

	for _, ch := range c.Changes {
		change := pterm.FgYellow.Sprint("N/A")

		if ch.ChangePct != nil {
			switch pct := *ch.ChangePct; {
			case pct > 0:
				change = pterm.FgGreen.Sprintf("⬆ %.2f%%", pct)
			case pct < 0:
				change = pterm.FgRed.Sprintf("⬇ %.2f%%", -pct)
			default:
				change = pterm.FgYellow.Sprint("➡ 0.00%")
			}
		}

		data = append(data, []string{
			ch.Metric,
			ch.Format(ch.Current),
			ch.Format(ch.Previous),
			change,
		})
	}

	table, _ := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()

	return "\n" + pterm.DefaultBox.WithTitle("Comparativo com "+c.Previous.String()).Sprint(table) + "\n"
}

func renderBreakdowns(r *dashboard.Report) string {
	var b strings.Builder

	if len(r.Cities) > 0 {
		data := pterm.TableData{{"Cidade", "Faturamento"}}
		for _, c := range r.Cities {
			data = append(data, []string{c.Name, money.Format(c.Total)})
		}

		table, _ := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		b.WriteString("\n" + table + "\n")
	}

	if len(r.Products) > 0 {
		data := pterm.TableData{{"Produto", "Vendas"}}
		for _, p := range r.Products {
			data = append(data, []string{p.Name, fmt.Sprintf("%d", p.Count)})
		}

		table, _ := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		b.WriteString("\n" + table + "\n")
	}

	if len(r.Affiliates) > 0 {
		data := pterm.TableData{{"Afiliado", "Vendas"}}
		for _, a := range r.Affiliates {
			data = append(data, []string{a.Name, fmt.Sprintf("%d", a.Count)})
		}

		table, _ := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		b.WriteString("\n" + table + "\n")
	}

	return b.String()
}

func issueText(issues []importer.Warning) string {
	lines := make([]string, 0, len(issues))
	for _, w := range issues {
		lines = append(lines, pterm.FgYellow.Sprint("⚠ "+w.String()))
	}

	return strings.Join(lines, "\n")
}
