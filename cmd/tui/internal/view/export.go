package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/export"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

// exportBinding holds the huh form values across model copies.
type exportBinding struct {
	path    string
	formats []string
}

type ExportModel struct {
	CommonModel
	exportService *export.Service
	report        *dashboard.Report

	state   exportState
	err     error
	form    *huh.Form
	binding *exportBinding
	spinner spinner.Model
	paths   []string
}

func NewExportModel(svc *export.Service, report *dashboard.Report) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		exportService: svc,
		report:        report,
		state:         exportStateForm,
		binding:       &exportBinding{path: "./relatorios", formats: []string{string(export.FormatCSV)}},
		spinner:       s,
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) Title() string { return "Exportar relatório" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: voltar ao dashboard"
	case exportStateExporting:
		return "Exportando..."
	}

	return "Esc: voltar | Enter: confirmar"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.paths = result.paths

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	return m, nil
}

func (m ExportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("formats").
				Title("Formatos").
				Options(
					huh.NewOption("CSV (linhas filtradas)", string(export.FormatCSV)),
					huh.NewOption("JSON (relatório completo)", string(export.FormatJSON)),
					huh.NewOption("PDF (resumo)", string(export.FormatPDF)),
				).
				Validate(func(v []string) error {
					if len(v) == 0 {
						return errors.New("escolha ao menos um formato")
					}

					return nil
				}).
				Value(&m.binding.formats),
			huh.NewInput().
				Key("path").
				Title("Pasta de destino").
				Description("A pasta será criada se não existir").
				Placeholder("./relatorios").
				Value(&m.binding.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Gerando relatórios...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Erro: %v", m.err)))
	}

	header := successStyle.Bold(true).Render("Exportação concluída!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("%s (%s), gerado em %s:", m.report.PeriodLabel, m.report.Range, FormatDate(m.report.GeneratedAt)),
			"",
			strings.Join(m.paths, "\n"),
		),
	)
}

type exportResultMsg struct {
	paths []string
	err   error
}

func (m ExportModel) runExportCmd() tea.Cmd {
	svc, report := m.exportService, m.report
	path, selected := m.binding.path, m.binding.formats

	return func() tea.Msg {
		formats, err := export.ParseFormats(strings.Join(selected, ","))
		if err != nil {
			return exportResultMsg{err: err}
		}

		paths, err := svc.ToDir(report, formats, path)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{paths: paths}
	}
}
