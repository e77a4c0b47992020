package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tregmine/webapi/cmd/app/commands"
	"github.com/tregmine/webapi/internal/app"
	"github.com/tregmine/webapi/internal/config"
	"github.com/tregmine/webapi/internal/database"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "dir",
					Aliases: []string{"d"},
					Value:   "migrations",
					Usage:   "Directory holding the postgresql/ and mysql/ migration sets",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), database.Config{
					Driver:             cfg.DBDriver,
					ConnectionString:   cfg.DBConnectionString,
					MaxOpenConnections: 1,
					MaxIdleConnections: 1,
					ConnMaxLifetime:    cfg.DBConnMaxLifetime,
				}, cmd.String("dir"))
			},
		},
	}
}
