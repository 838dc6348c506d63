package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MrJamesThe3rd/salesagent/internal/config"
	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/export"
	"github.com/MrJamesThe3rd/salesagent/internal/filter"
	"github.com/MrJamesThe3rd/salesagent/internal/importer"
	"github.com/MrJamesThe3rd/salesagent/internal/period"
)

// App is the one-shot report command.
type App struct {
	rootCmd   *cobra.Command
	importSvc *importer.Service
	dashboard *dashboard.Service
	export    *export.Service
	loc       *time.Location
	version   string
}

func NewApp(version string, importSvc *importer.Service, dashboardSvc *dashboard.Service, exportSvc *export.Service, loc *time.Location) *App {
	app := &App{
		importSvc: importSvc,
		dashboard: dashboardSvc,
		export:    exportSvc,
		loc:       loc,
		version:   version,
	}

	rootCmd := &cobra.Command{
		Use:           "report",
		Short:         "Sales export dashboard in the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON profile")
	flags.StringP("file", "f", "", "Sales export CSV to read")
	flags.StringP("period", "p", "", "Period: all, today, yesterday, last-7-days, last-30-days, last-12-months, custom")
	flags.String("start", "", "Custom period start (YYYY-MM-DD or DD/MM/YYYY)")
	flags.String("end", "", "Custom period end (YYYY-MM-DD or DD/MM/YYYY)")
	flags.StringSlice("affiliate", nil, "Only sales by these affiliates (comma-separated)")
	flags.StringSlice("city", nil, "Only sales from these customer cities (comma-separated)")
	flags.StringSlice("status", nil, "Only sales with these statuses (comma-separated)")
	flags.StringSlice("payment-method", nil, "Only sales with these payment methods (comma-separated)")
	flags.StringP("ask", "q", "", "Question to answer about the selected sales")
	flags.String("intent", "", "Predefined question to answer, e.g. \"faturamento por cidade\"")
	flags.StringSliceP("report-type", "y", nil, "Also write reports: csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.Bool("no-banner", false, "Do not print the banner")

	app.rootCmd = rootCmd

	return app
}

func (app *App) Execute() error {
	return app.rootCmd.Execute()
}

// Command exposes the root command, mainly to set args and output in tests.
func (app *App) Command() *cobra.Command {
	return app.rootCmd
}

// parseArgs merges the profile named by --config-file with the flags. Flags
// given explicitly win over the profile.
func (app *App) parseArgs(flags *pflag.FlagSet) (*config.Profile, error) {
	p := &config.Profile{}

	if path, _ := flags.GetString("config-file"); path != "" {
		loaded, err := config.LoadProfile(path)
		if err != nil {
			return nil, err
		}

		p = loaded
	}

	str := func(name string, dst *string) {
		if v, _ := flags.GetString(name); flags.Changed(name) || *dst == "" {
			*dst = v
		}
	}

	slice := func(name string, dst *[]string) {
		if v, _ := flags.GetStringSlice(name); flags.Changed(name) || len(*dst) == 0 {
			*dst = v
		}
	}

	str("file", &p.File)
	str("period", &p.Period)
	str("start", &p.Start)
	str("end", &p.End)
	str("ask", &p.Ask)
	str("intent", &p.Intent)
	str("dir", &p.Dir)
	slice("affiliate", &p.Affiliates)
	slice("city", &p.Cities)
	slice("status", &p.Statuses)
	slice("payment-method", &p.PaymentMethods)
	slice("report-type", &p.ReportType)

	if p.File == "" {
		return nil, errors.New("no sales export given: use --file or a profile with file set")
	}

	return p, nil
}

func (app *App) runCommand(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if noBanner, _ := cmd.Flags().GetBool("no-banner"); !noBanner {
		displayWelcomeBanner(out, app.version)
	}

	p, err := app.parseArgs(cmd.Flags())
	if err != nil {
		return err
	}

	formats, err := export.ParseFormats(strings.Join(p.ReportType, ","))
	if err != nil {
		return err
	}

	sel, err := period.NewSelection(p.Period, p.Start, p.End, app.loc)
	if err != nil {
		return err
	}

	file, err := os.Open(p.File)
	if err != nil {
		return fmt.Errorf("opening sales export: %w", err)
	}
	defer file.Close()

	loaded, err := app.importSvc.Load(file)
	if err != nil {
		return err
	}

	report, err := app.dashboard.Build(loaded, dashboard.Request{
		Selection: sel,
		Filters: filter.Dimensions{
			Affiliates:     p.Affiliates,
			Cities:         p.Cities,
			Statuses:       p.Statuses,
			PaymentMethods: p.PaymentMethods,
		},
		Question: p.Ask,
		Intent:   p.Intent,
	})
	if err != nil {
		return err
	}

	fmt.Fprint(out, Render(report))

	if len(formats) == 0 {
		return nil
	}

	paths, err := app.export.ToDir(report, formats, p.Dir)
	if err != nil {
		return fmt.Errorf("exporting report: %w", err)
	}

	for _, path := range paths {
		fmt.Fprintln(out, pterm.Success.Sprintf("Relatório salvo em %s", path))
	}

	return nil
}
