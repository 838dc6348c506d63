package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salesagent/internal/config"
	"github.com/MrJamesThe3rd/salesagent/internal/trend"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "SalesAgent", cfg.App.Name)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, trend.DefaultLimits, cfg.Limits())
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("CHARGEBACK_ALERT_PCT", "2.5")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 2.5, cfg.Limits().Chargeback)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestConfig_LocationInvalid(t *testing.T) {
	var cfg config.Config
	cfg.App.Timezone = "Mars/Olympus"

	_, err := cfg.Location()
	assert.Error(t, err)
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"p.toml": "file = \"vendas.csv\"\nperiod = \"last-30-days\"\ncities = [\"Recife\"]\nreport_type = [\"pdf\"]\n",
		"p.yaml": "file: vendas.csv\nperiod: last-30-days\ncities: [Recife]\nreport_type: [pdf]\n",
		"p.json": `{"file":"vendas.csv","period":"last-30-days","cities":["Recife"],"report_type":["pdf"]}`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			p, err := config.LoadProfile(path)
			require.NoError(t, err)

			assert.Equal(t, "vendas.csv", p.File)
			assert.Equal(t, "last-30-days", p.Period)
			assert.Equal(t, []string{"Recife"}, p.Cities)
			assert.Equal(t, []string{"pdf"}, p.ReportType)
		})
	}

	t.Run("Unsupported", func(t *testing.T) {
		path := filepath.Join(dir, "p.ini")
		require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o600))

		_, err := config.LoadProfile(path)
		assert.ErrorContains(t, err, "unsupported config file format")
	})

	t.Run("Directory", func(t *testing.T) {
		_, err := config.LoadProfile(dir)
		assert.ErrorContains(t, err, "is a directory")
	})
}
