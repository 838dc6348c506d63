package view

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/salesagent/internal/importer"
)

type importState int

const (
	importStateFilePick importState = iota
	importStateLoading
	importStateResult
)

// DatasetLoadedMsg carries a successfully read sales export to the dashboard.
type DatasetLoadedMsg struct {
	Path   string
	Result *importer.Result
}

type ImportModel struct {
	CommonModel
	importService *importer.Service

	state      importState
	filePicker filepicker.Model
	spinner    spinner.Model

	path   string
	status string
	err    error
}

func NewImportModel(impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".CSV"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ImportModel{
		importService: impSvc,
		filePicker:    fp,
		spinner:       s,
	}
}

func (m ImportModel) Title() string { return "Carregar exportação de vendas" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: escolher outro arquivo"
	}

	return "Esc: voltar | Enter: selecionar"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case loadResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Erro: %v", msg.err)

			return m, nil
		}

		m.state = importStateFilePick
		m.status = ""

		return m, func() tea.Msg {
			return DatasetLoadedMsg{Path: msg.path, Result: msg.result}
		}
	}

	switch m.state {
	case importStateLoading:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case importStateResult:
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateLoading
		m.path = path
		m.err = nil

		return m, tea.Batch(m.spinner.Tick, m.loadCmd(path))
	}

	if didSelect, path := m.filePicker.DidSelectDisabledFile(msg); didSelect {
		m.status = fmt.Sprintf("%s não é um arquivo CSV.", filepath.Base(path))
		return m, cmd
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == importStateResult {
		m.state = importStateFilePick
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateLoading:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s Lendo %s...", m.spinner.View(), filepath.Base(m.path)),
		)
	case importStateResult:
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(m.status) + "\n\n(Esc para voltar)")
	}

	status := ""
	if m.status != "" {
		status = "\n" + warningStyle.Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("Selecione a exportação de vendas (.csv):\n\n%s%s", m.filePicker.View(), status),
	)
}

type loadResultMsg struct {
	path   string
	result *importer.Result
	err    error
}

func (m ImportModel) loadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return loadResultMsg{err: err}
		}
		defer f.Close()

		result, err := m.importService.Load(f)
		if err != nil {
			return loadResultMsg{err: err}
		}

		return loadResultMsg{path: path, result: result}
	}
}
