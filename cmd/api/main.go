package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/salesagent/internal/config"
	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/export"
	salesHttp "github.com/MrJamesThe3rd/salesagent/internal/http"
	dashboardHandler "github.com/MrJamesThe3rd/salesagent/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/salesagent/internal/http/export"
	"github.com/MrJamesThe3rd/salesagent/internal/http/form"
	"github.com/MrJamesThe3rd/salesagent/internal/importer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load timezone", "error", err)
		os.Exit(1)
	}

	var (
		importService    = importer.NewService(loc)
		dashboardService = dashboard.NewService(dashboard.SystemClock, loc, cfg.Limits())
		exportService    = export.NewService()
		parser           = form.NewParser(importService, loc, cfg.Server.UploadMaxBytes)
	)

	var (
		dashboardH = dashboardHandler.NewHandler(dashboardService, parser)
		exportH    = exportHandler.NewHandler(exportService, dashboardService, parser)
	)

	router := salesHttp.New(cfg.Server.CORSOrigins, dashboardH, exportH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "timezone", loc.String())

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
