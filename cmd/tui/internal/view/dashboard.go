package view

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/filter"
	"github.com/MrJamesThe3rd/salesagent/internal/importer"
	"github.com/MrJamesThe3rd/salesagent/internal/intent"
	"github.com/MrJamesThe3rd/salesagent/internal/metrics"
	"github.com/MrJamesThe3rd/salesagent/internal/money"
	"github.com/MrJamesThe3rd/salesagent/internal/period"
	"github.com/MrJamesThe3rd/salesagent/internal/sale"
	"github.com/MrJamesThe3rd/salesagent/internal/trend"
)

const (
	barWidth     = 30
	cardsPerRow  = 3
	chromeHeight = 6
)

type dashboardState int

const (
	dashboardStateBuilding dashboardState = iota
	dashboardStateView
	dashboardStatePeriod
	dashboardStateFilters
	dashboardStateAsk
)

// ExportRequestedMsg asks the root model to open the export screen for a report.
type ExportRequestedMsg struct {
	Report *dashboard.Report
}

// filterBinding holds the huh form values across model copies.
type filterBinding struct {
	affiliates     []string
	cities         []string
	statuses       []string
	paymentMethods []string
}

type DashboardModel struct {
	CommonModel
	svc *dashboard.Service

	path   string
	loaded *importer.Result
	req    dashboard.Request

	state    dashboardState
	report   *dashboard.Report
	answer   *dashboard.Answer
	viewport viewport.Model
	picker   PeriodPicker
	form     *huh.Form
	binding  *filterBinding
	question textinput.Model

	err error
}

func NewDashboardModel(svc *dashboard.Service, loc *time.Location, path string, loaded *importer.Result) DashboardModel {
	q := textinput.New()
	q.Placeholder = "Ex.: quanto vendi?"
	q.Prompt = "Pergunta: "
	q.CharLimit = 200
	q.Width = 60

	return DashboardModel{
		svc:      svc,
		path:     path,
		loaded:   loaded,
		req:      dashboard.Request{Selection: period.Selection{Preset: period.All}},
		state:    dashboardStateBuilding,
		viewport: viewport.New(100, 30),
		picker:   NewPeriodPicker(loc),
		binding:  &filterBinding{},
		question: q,
	}
}

func (m DashboardModel) Title() string { return "Dashboard de vendas" }

func (m DashboardModel) ShortHelp() string {
	switch m.state {
	case dashboardStateAsk:
		return "Enter: perguntar | Esc: cancelar"
	case dashboardStateFilters:
		return "Espaço: marcar | Enter: confirmar | Esc: cancelar"
	case dashboardStatePeriod:
		return "Enter: selecionar | Esc: voltar"
	}

	return "p: período | f: filtros | c: limpar filtros | 1-6: perguntas | /: perguntar | e: exportar | ↑/↓: rolar | Esc: voltar"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.buildCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 5)
		m.refresh()

		return m, nil

	case reportMsg:
		m.state = dashboardStateView
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.report
			m.answer = msg.report.Answer
		}

		m.refresh()

		return m, nil

	case answerMsg:
		m.state = dashboardStateView
		m.err = msg.err
		if msg.err == nil {
			m.answer = msg.answer
		}

		m.refresh()
		m.viewport.GotoBottom()

		return m, nil

	case PeriodSelectedMsg:
		m.req.Selection = msg.Selection
		m.picker.Reset()
		m.state = dashboardStateBuilding

		return m, m.buildCmd()
	}

	switch m.state {
	case dashboardStateView:
		return m.updateView(msg)
	case dashboardStatePeriod:
		return m.updatePeriod(msg)
	case dashboardStateFilters:
		return m.updateFilters(msg)
	case dashboardStateAsk:
		return m.updateAsk(msg)
	}

	return m, nil
}

func (m DashboardModel) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)

		return m, cmd
	}

	switch key := keyMsg.String(); key {
	case "esc":
		return m, Back
	case "p":
		m.state = dashboardStatePeriod
		return m, m.picker.Init()
	case "f":
		return m.enterFilters()
	case "c":
		m.req.Filters = filter.Dimensions{}
		*m.binding = filterBinding{}
		m.state = dashboardStateBuilding

		return m, m.buildCmd()
	case "/":
		m.state = dashboardStateAsk
		m.question.SetValue("")
		m.question.Focus()

		return m, textinput.Blink
	case "e":
		if m.report == nil {
			return m, nil
		}

		report := m.report

		return m, func() tea.Msg { return ExportRequestedMsg{Report: report} }
	case "1", "2", "3", "4", "5", "6":
		buttons := intent.Buttons()

		i, _ := strconv.Atoi(key)
		if i > len(buttons) {
			return m, nil
		}

		req := m.req
		req.Intent = buttons[i-1].Intent
		req.Question = ""

		return m, m.askCmd(req)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m DashboardModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
			m.state = dashboardStateView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m DashboardModel) enterFilters() (tea.Model, tea.Cmd) {
	opts := filter.Options(m.loaded.Dataset)

	var fields []huh.Field

	add := func(title string, options []string, dst *[]string) {
		if len(options) == 0 {
			return
		}

		fields = append(fields, huh.NewMultiSelect[string]().
			Title(title).
			Options(huh.NewOptions(options...)...).
			Value(dst))
	}

	add("Afiliados", opts.Affiliates, &m.binding.affiliates)
	add("Cidades", opts.Cities, &m.binding.cities)
	add("Status", opts.Statuses, &m.binding.statuses)
	add("Métodos de pagamento", opts.PaymentMethods, &m.binding.paymentMethods)

	if len(fields) == 0 {
		m.err = errors.New("a planilha não tem colunas para filtrar")
		m.refresh()

		return m, nil
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(60).WithShowHelp(false)
	m.state = dashboardStateFilters

	return m, m.form.Init()
}

func (m DashboardModel) updateFilters(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = dashboardStateView
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.req.Filters = filter.Dimensions{
		Affiliates:     m.binding.affiliates,
		Cities:         m.binding.cities,
		Statuses:       m.binding.statuses,
		PaymentMethods: m.binding.paymentMethods,
	}
	m.form = nil
	m.state = dashboardStateBuilding

	return m, m.buildCmd()
}

func (m DashboardModel) updateAsk(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.question.Blur()
			m.state = dashboardStateView

			return m, nil
		case tea.KeyEnter:
			m.question.Blur()

			req := m.req
			req.Question = strings.TrimSpace(m.question.Value())
			req.Intent = ""

			if req.Question == "" {
				m.state = dashboardStateView
				return m, nil
			}

			return m, m.askCmd(req)
		}
	}

	var cmd tea.Cmd
	m.question, cmd = m.question.Update(msg)

	return m, cmd
}

func (m *DashboardModel) refresh() {
	m.viewport.SetContent(m.renderReport())
}

func (m DashboardModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("📊 %s", filepath.Base(m.path)))

	switch m.state {
	case dashboardStateBuilding:
		return lipgloss.NewStyle().Padding(1).Render(header + "\n\nCalculando indicadores...")
	case dashboardStatePeriod:
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	case dashboardStateFilters:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	footer := faintStyle.Render(m.ShortHelp())
	if m.state == dashboardStateAsk {
		footer = m.question.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer)
}

func (m DashboardModel) renderReport() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(errorStyle.Render(errorText(m.err)) + "\n\n")
	}

	r := m.report
	if r == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "%s: %s\n", r.PeriodLabel, r.Range)

	if !r.Filters.IsZero() {
		b.WriteString(faintStyle.Render("Filtros: "+describeFilters(r.Filters)) + "\n")
	}

	for _, w := range r.ImportIssues {
		b.WriteString(warningStyle.Render("⚠ "+w.String()) + "\n")
	}

	b.WriteString("\n" + renderCards(r) + "\n\n")

	for _, a := range append(r.Trends.Alerts(), r.Warnings...) {
		b.WriteString(Alert(a) + "\n")
	}

	b.WriteString("\n" + renderSeries("Faturamento semanal", r.Weekly, "02/01"))
	b.WriteString("\n" + renderSeries("Faturamento mensal", r.Monthly, "01/2006"))
	b.WriteString("\n" + renderComparison(r.Comparison))

	b.WriteString("\n" + renderAmounts("Cidade", r.Cities))
	b.WriteString("\n" + renderCounts("Produto", r.Products))
	b.WriteString("\n" + renderCounts("Afiliado", r.Affiliates))

	b.WriteString("\n" + headerStyle.Render("Perguntas rápidas") + "\n")

	for i, btn := range r.Buttons {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, btn.Title)
	}

	if m.answer != nil {
		b.WriteString("\n" + lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Render(m.answer.Text) + "\n")
	}

	return b.String()
}

func renderCards(r *dashboard.Report) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(26)

	boxes := make([]string, 0, len(r.Cards)+2)
	for _, c := range r.Cards {
		boxes = append(boxes, style.Render(c.Title+"\n"+lipgloss.NewStyle().Bold(true).Render(c.Value)))
	}

	if r.HasDiscount {
		boxes = append(boxes, style.Render("🏷️ Descontos\n"+money.Format(r.Summary.Discount)))
	}

	if r.HasFees {
		boxes = append(boxes, style.Render("🧮 Taxas\n"+money.Format(r.Summary.Fees)))
	}

	var rows []string
	for i := 0; i < len(boxes); i += cardsPerRow {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes[i:min(i+cardsPerRow, len(boxes))]...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderSeries(title string, s trend.Series, layout string) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(title) + "\n")

	var peak float64
	for _, v := range s.Values() {
		peak = max(peak, v)
	}

	for _, p := range s.Points {
		fmt.Fprintf(&b, "%-7s %16s %s\n", p.Label.Format(layout), money.Format(p.Total), Bar(p.Total.InexactFloat64(), peak, barWidth))
	}

	return b.String()
}

func renderComparison(c dashboard.Comparison) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Comparativo com "+c.Previous.String()) + "\n")

	for _, ch := range c.Changes {
		delta := faintStyle.Render("sem base")
		if ch.ChangePct != nil {
			switch pct := *ch.ChangePct; {
			case pct > 0:
				delta = successStyle.Render(fmt.Sprintf("⬆ %.2f%%", pct))
			case pct < 0:
				delta = errorStyle.Render(fmt.Sprintf("⬇ %.2f%%", -pct))
			default:
				delta = warningStyle.Render("➡ 0.00%")
			}
		}

		fmt.Fprintf(&b, "%-18s %16s %16s  %s\n", ch.Metric, ch.Format(ch.Current), ch.Format(ch.Previous), delta)
	}

	return b.String()
}

func renderAmounts(title string, amounts []metrics.Amount) string {
	rows := make([]table.Row, 0, len(amounts))
	for _, a := range amounts {
		rows = append(rows, table.Row{a.Name, money.Format(a.Total)})
	}

	return breakdownTable([]table.Column{{Title: title, Width: 30}, {Title: "Faturamento", Width: 18}}, rows)
}

func renderCounts(title string, counts []metrics.Count) string {
	rows := make([]table.Row, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, table.Row{c.Name, strconv.Itoa(c.Count)})
	}

	return breakdownTable([]table.Column{{Title: title, Width: 30}, {Title: "Vendas", Width: 10}}, rows)
}

func breakdownTable(columns []table.Column, rows []table.Row) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Cell
	t.SetStyles(s)

	return t.View() + "\n"
}

func describeFilters(d filter.Dimensions) string {
	var parts []string

	add := func(label string, values []string) {
		if len(values) > 0 {
			parts = append(parts, label+": "+strings.Join(values, ", "))
		}
	}

	add("afiliados", d.Affiliates)
	add("cidades", d.Cities)
	add("status", d.Statuses)
	add("pagamento", d.PaymentMethods)

	return strings.Join(parts, " | ")
}

func errorText(err error) string {
	switch {
	case errors.Is(err, sale.ErrNoDateData):
		return "A planilha não tem datas válidas em \"Iniciada em\"; não é possível filtrar por período."
	case errors.Is(err, period.ErrInvalidRange):
		return "Período personalizado inválido: informe início e fim, com início antes do fim."
	default:
		return fmt.Sprintf("Erro: %v", err)
	}
}

type reportMsg struct {
	report *dashboard.Report
	err    error
}

type answerMsg struct {
	answer *dashboard.Answer
	err    error
}

func (m DashboardModel) buildCmd() tea.Cmd {
	svc, loaded, req := m.svc, m.loaded, m.req
	req.Question, req.Intent = "", ""

	return func() tea.Msg {
		report, err := svc.Build(loaded, req)
		return reportMsg{report: report, err: err}
	}
}

func (m DashboardModel) askCmd(req dashboard.Request) tea.Cmd {
	svc, ds := m.svc, m.loaded.Dataset

	return func() tea.Msg {
		answer, err := svc.Ask(ds, req)
		return answerMsg{answer: answer, err: err}
	}
}
