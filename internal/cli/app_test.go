package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/salesagent/internal/cli"
	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/export"
	"github.com/MrJamesThe3rd/salesagent/internal/importer"
	"github.com/MrJamesThe3rd/salesagent/internal/trend"
)

const salesCSV = `Código;Status;Iniciada em;Total;Comissão;Cliente (E-mail);Cliente (Cidade);Produto;Afiliado (Nome)
A;aprovada;04/03/2024 10:00:00;R$ 100,00;R$ 10,00;a@x.com;Recife;Curso A;Joana
A;estornada;05/03/2024 10:00:00;R$ 200,00;R$ 20,00;a@x.com;Recife;Curso A;Joana
B;recusada;11/03/2024 10:00:00;R$ 300,00;R$ 30,00;b@x.com;Natal;Curso B;Carlos
B;aprovada;12/03/2024 10:00:00;R$ 400,00;R$ 40,00;b@x.com;Natal;Curso B;Carlos
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	pterm.DisableColor()

	ctrl := gomock.NewController(t)
	clock := dashboard.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)).AnyTimes()

	app := cli.NewApp(
		"test",
		importer.NewService(time.UTC),
		dashboard.NewService(clock, time.UTC, trend.DefaultLimits),
		export.NewService(),
		time.UTC,
	)

	var out bytes.Buffer

	cmd := app.Command()
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{"--no-banner"}, args...))

	err := app.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestApp(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "vendas.csv", salesCSV)

	t.Run("Dashboard", func(t *testing.T) {
		out, err := run(t, "--file", csvPath)
		require.NoError(t, err)

		assert.Contains(t, out, "Todo o Período")
		assert.Contains(t, out, "R$ 1.000,00")
		assert.Contains(t, out, "Chargeback elevado (25.00%)")
		assert.Contains(t, out, "Recife")
	})

	t.Run("FilterAndAsk", func(t *testing.T) {
		out, err := run(t, "--file", csvPath, "--city", "Natal", "--ask", "quanto vendi")
		require.NoError(t, err)

		assert.Contains(t, out, "💰 Total de vendas: R$ 700,00")
	})

	t.Run("ProfileWithExport", func(t *testing.T) {
		outDir := filepath.Join(dir, "out")
		profile := writeFile(t, dir, "perfil.yaml",
			"file: "+csvPath+"\nperiod: last-7-days\nreport_type: [csv, json]\ndir: "+outDir+"\n")

		out, err := run(t, "--config-file", profile, "--period", "all")
		require.NoError(t, err)

		assert.Contains(t, out, "Todo o Período")

		entries, err := os.ReadDir(outDir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := run(t)
		assert.ErrorContains(t, err, "no sales export given")
	})

	t.Run("NoDates", func(t *testing.T) {
		path := writeFile(t, dir, "sem_datas.csv", "Código;Total\nA;10,00\n")

		_, err := run(t, "--file", path)
		assert.ErrorContains(t, err, "no usable date data")
	})

	t.Run("BadReportType", func(t *testing.T) {
		_, err := run(t, "--file", csvPath, "--report-type", "xlsx")
		assert.ErrorContains(t, err, "unknown report type")
	})
}
