package main

import (
	"os"

	_ "github.com/lib/pq"
	"github.com/link-services/link-gateway-backend/pkg/commands"
	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/link-services/link-gateway-backend/pkg/db"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	config.Load()
	config.ConfigureLogging()

	if err := db.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}()

	app := &cli.App{
		Name:  "domains",
		Usage: "Admin tooling for custom domains",
		Commands: []*cli.Command{
			{
				Name:   "sweep",
				Usage:  "Run one verification batch, oldest-checked first",
				Action: commands.SweepAction,
			},
			{
				Name:      "check",
				Usage:     "Verify specific domains immediately",
				ArgsUsage: "SLUG [SLUG2]...",
				Action:    commands.CheckAction,
			},
			{
				Name:      "import",
				Usage:     "Bulk-load domains from a JSON file",
				ArgsUsage: "FILE",
				Action:    commands.ImportAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}
