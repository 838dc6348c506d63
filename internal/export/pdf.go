package export

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jung-kurt/gofpdf"

	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/money"
	"github.com/MrJamesThe3rd/salesagent/internal/trend"
)

var (
	headerColor       = [3]int{34, 49, 63}
	sectionTitleColor = [3]int{34, 49, 63}
	bodyTextColor     = [3]int{40, 40, 40}
	lineColor         = [3]int{200, 200, 200}
)

// WritePDF renders a one-document summary of r.
func WritePDF(w io.Writer, r *dashboard.Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr("Gerado em "+r.GeneratedAt.Format("02/01/2006 15:04")+" | "+r.ID.String()), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	drawSection := func(title, content string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(plain(content)), "", "L", false)
		pdf.Ln(6)
	}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Relatório de Vendas"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  %s: %s", r.PeriodLabel, r.Range)), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	cards := make([]string, 0, len(r.Cards))
	for _, c := range r.Cards {
		cards = append(cards, fmt.Sprintf("%s: %s", c.Title, c.Value))
	}

	if r.HasDiscount {
		cards = append(cards, "Descontos: "+money.Format(r.Summary.Discount))
	}

	if r.HasFees {
		cards = append(cards, "Taxas: "+money.Format(r.Summary.Fees))
	}

	drawSection("Indicadores", strings.Join(cards, "\n"))
	drawSection("Tendências e alertas", alertLines(append(r.Trends.Alerts(), r.Warnings...)))
	drawSection("Comparativo com o período anterior", comparisonLines(r.Comparison))

	cities := make([]string, 0, len(r.Cities))
	for _, c := range r.Cities {
		cities = append(cities, c.Name+": "+money.Format(c.Total))
	}

	drawSection("Faturamento por cidade", strings.Join(cities, "\n"))

	products := make([]string, 0, len(r.Products))
	for _, p := range r.Products {
		products = append(products, fmt.Sprintf("%s: %d", p.Name, p.Count))
	}

	drawSection("Produtos vendidos", strings.Join(products, "\n"))

	affiliates := make([]string, 0, len(r.Affiliates))
	for _, a := range r.Affiliates {
		affiliates = append(affiliates, fmt.Sprintf("%s: %d", a.Name, a.Count))
	}

	drawSection("Top afiliados", strings.Join(affiliates, "\n"))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}

	return nil
}

func alertLines(alerts []trend.Alert) string {
	lines := make([]string, 0, len(alerts))
	for _, a := range alerts {
		lines = append(lines, a.Text)
	}

	return strings.Join(lines, "\n")
}

func comparisonLines(c dashboard.Comparison) string {
	lines := []string{"Período anterior: " + c.Previous.String()}

	for _, ch := range c.Changes {
		delta := "sem base de comparação"
		if ch.ChangePct != nil {
			delta = fmt.Sprintf("%+.2f%%", *ch.ChangePct)
		}

		lines = append(lines, fmt.Sprintf("%s: %s (antes %s) %s", ch.Metric, ch.Format(ch.Current), ch.Format(ch.Previous), delta))
	}

	return strings.Join(lines, "\n")
}

// plain drops symbols the core PDF fonts cannot draw.
func plain(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFF && !unicode.IsLetter(r) {
			return -1
		}

		return r
	}, s)
}
