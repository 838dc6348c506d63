package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/salesagent/internal/trend"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"SalesAgent"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Timezone string `envconfig:"TIMEZONE" default:"America/Sao_Paulo"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		UploadMaxBytes int64         `envconfig:"UPLOAD_MAX_BYTES" default:"33554432"`
		CORSOrigins    []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Alerts struct {
		ChargebackPct float64 `envconfig:"CHARGEBACK_ALERT_PCT" default:"5"`
		RefundPct     float64 `envconfig:"REFUND_ALERT_PCT" default:"5"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

// Location is the zone "today" is computed in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.App.Timezone, err)
	}

	return loc, nil
}

func (c *Config) Limits() trend.Limits {
	return trend.Limits{Chargeback: c.Alerts.ChargebackPct, Refund: c.Alerts.RefundPct}
}

func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
