package intent

import (
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/salesagent/internal/metrics"
	"github.com/MrJamesThe3rd/salesagent/internal/money"
	"github.com/MrJamesThe3rd/salesagent/internal/sale"
)

// NotUnderstood is returned when no phrase matches the question.
const NotUnderstood = "❓ Não entendi sua pergunta. Tente reformular."

const (
	TotalSales      = "total de vendas"
	TotalCommission = "total de comissões"
	UniqueClients   = "clientes únicos"
	ProductsSold    = "produtos vendidos"
	TopAffiliates   = "top afiliados"
	RevenueByCity   = "faturamento por cidade"
)

// Entry maps phrases to an answer over the current dataset.
type Entry struct {
	Name    string
	Title   string
	Phrases []string
	Answer  func(ds *sale.Dataset) string
}

// Table is tried top to bottom; the first entry with a phrase contained in the question wins.
var Table = []Entry{
	{
		Name:    TotalSales,
		Title:   "💰 Total de vendas",
		Phrases: []string{"total de vendas", "quanto vendi", "faturamento", "vendas totais"},
		Answer: func(ds *sale.Dataset) string {
			return "💰 Total de vendas: " + money.Format(metrics.TotalRevenue(ds))
		},
	},
	{
		Name:    TotalCommission,
		Title:   "💸 Total de comissões",
		Phrases: []string{"comissões", "quanto de comissão", "valor de comissão"},
		Answer: func(ds *sale.Dataset) string {
			return "💸 Total de comissões: " + money.Format(metrics.TotalCommission(ds))
		},
	},
	{
		Name:    UniqueClients,
		Title:   "👥 Clientes únicos",
		Phrases: []string{"clientes únicos", "quantos clientes", "clientes diferentes"},
		Answer: func(ds *sale.Dataset) string {
			return fmt.Sprintf("👥 Clientes únicos: %d", metrics.UniqueCustomers(ds))
		},
	},
	{
		Name:    ProductsSold,
		Title:   "🛍️ Produtos vendidos",
		Phrases: []string{"produtos vendidos", "quais produtos", "lista de produtos"},
		Answer: func(ds *sale.Dataset) string {
			return "🛍️ Produtos vendidos:\n" + countLines(metrics.ProductsSold(ds))
		},
	},
	{
		Name:    TopAffiliates,
		Title:   "🏆 Top afiliados",
		Phrases: []string{"top afiliados", "melhores afiliados", "quem vendeu mais"},
		Answer: func(ds *sale.Dataset) string {
			return "🏆 Top afiliados:\n" + countLines(metrics.TopAffiliates(ds, 5))
		},
	},
	{
		Name:    RevenueByCity,
		Title:   "🏙️ Faturamento por cidade",
		Phrases: []string{"cidade faturamento", "vendas por cidade", "faturamento cidade"},
		Answer: func(ds *sale.Dataset) string {
			cities := metrics.RevenueByCity(ds)

			lines := make([]string, 0, len(cities))
			for _, c := range cities {
				lines = append(lines, c.Name+": "+money.Format(c.Total))
			}

			return "🏙️ Faturamento por cidade:\n" + strings.Join(lines, "\n")
		},
	},
}

// Match returns the first entry with a phrase contained in the lower-cased question.
func Match(question string) (Entry, bool) {
	q := strings.ToLower(question)

	for _, e := range Table {
		for _, p := range e.Phrases {
			if strings.Contains(q, p) {
				return e, true
			}
		}
	}

	return Entry{}, false
}

// Respond answers a free-text question, or returns NotUnderstood.
func Respond(question string, ds *sale.Dataset) string {
	e, ok := Match(question)
	if !ok {
		return NotUnderstood
	}

	return e.Answer(ds)
}

// Button is a predefined question offered next to the free-text input. Its
// Intent text is answered through Respond like a typed question.
type Button struct {
	Intent string `json:"intent"`
	Title  string `json:"title"`
}

func Buttons() []Button {
	out := make([]Button, len(Table))
	for i, e := range Table {
		out[i] = Button{Intent: e.Name, Title: e.Title}
	}

	return out
}

func countLines(counts []metrics.Count) string {
	lines := make([]string, 0, len(counts))
	for _, c := range counts {
		lines = append(lines, fmt.Sprintf("%s: %d", c.Name, c.Count))
	}

	return strings.Join(lines, "\n")
}
