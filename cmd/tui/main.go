package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/salesagent/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/salesagent/internal/config"
	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/export"
	"github.com/MrJamesThe3rd/salesagent/internal/importer"
)

type model struct {
	importService    *importer.Service
	dashboardService *dashboard.Service
	exportService    *export.Service
	loc              *time.Location
	appName          string

	currentView View
	size        tea.WindowSizeMsg
	loaded      bool

	importView    view.ImportModel
	dashboardView view.DashboardModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewImport    View = 1
	ViewDashboard View = 2
	ViewExport    View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load timezone", "error", err)
		os.Exit(1)
	}

	impSvc := importer.NewService(loc)

	return model{
		importService:    impSvc,
		dashboardService: dashboard.NewService(dashboard.SystemClock, loc, cfg.Limits()),
		exportService:    export.NewService(),
		loc:              loc,
		appName:          cfg.App.Name,
		currentView:      ViewMenu,
		importView:       view.NewImportModel(impSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService)

				return m, m.importView.Init()
			case "2":
				if !m.loaded {
					return m, nil
				}

				m.currentView = ViewDashboard

				return m, nil
			}
		}
	case view.DatasetLoadedMsg:
		m.loaded = true
		m.currentView = ViewDashboard
		m.dashboardView = view.NewDashboardModel(m.dashboardService, m.loc, msg.Path, msg.Result)

		return m, tea.Batch(m.dashboardView.Init(), m.resize())
	case view.ExportRequestedMsg:
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.exportService, msg.Report)

		return m, m.exportView.Init()
	case view.BackMsg:
		if m.currentView == ViewExport {
			m.currentView = ViewDashboard
			return m, nil
		}

		m.currentView = ViewMenu

		return m, nil
	}

	switch m.currentView {
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

// resize replays the last window size so a freshly built view can lay itself out.
func (m model) resize() tea.Cmd {
	if m.size.Width == 0 {
		return nil
	}

	size := m.size

	return func() tea.Msg { return size }
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		dashboardItem := "2. Dashboard (carregue um arquivo primeiro)"
		if m.loaded {
			dashboardItem = "2. Voltar ao dashboard"
		}

		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Carregar exportação de vendas (.csv)\n" +
				dashboardItem + "\n\n" +
				"q. Sair",
		)
	case ViewImport:
		return m.importView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	logFile := filepath.Join(os.TempDir(), "salesagent-tui.log")

	if f, err := tea.LogToFile(logFile, "tui"); err == nil {
		defer f.Close()
		slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	}

	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
