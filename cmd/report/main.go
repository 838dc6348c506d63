package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/salesagent/internal/cli"
	"github.com/MrJamesThe3rd/salesagent/internal/config"
	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/export"
	"github.com/MrJamesThe3rd/salesagent/internal/importer"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := cli.NewApp(
		version,
		importer.NewService(loc),
		dashboard.NewService(dashboard.SystemClock, loc, cfg.Limits()),
		export.NewService(),
		loc,
	)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
