package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tregmine/webapi/cmd/app/commands"
	"github.com/tregmine/webapi/internal/app"
	"github.com/tregmine/webapi/internal/config"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func idFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "id",
		Aliases:  []string{"i"},
		Required: true,
		Usage:    "Application ID (snowflake)",
	}
}

func getApplicationCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-application",
			Usage: "Register an application and print its first token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable application name",
				},
				&cli.StringFlag{
					Name:    "access-level",
					Aliases: []string{"a"},
					Value:   "basic",
					Usage:   "Access level: basic, trusted or admin",
				},
				&cli.BoolFlag{
					Name:  "disabled",
					Value: false,
					Usage: "Register the application in a disabled state",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				appUseCase, err := container.ApplicationUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateApplication(
					ctx,
					appUseCase,
					container.Logger(),
					cmd.String("name"),
					cmd.String("access-level"),
					cmd.Bool("disabled"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "roll-salt",
			Usage: "Rotate an application's salt, revoking every token issued so far",
			Flags: []cli.Flag{idFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				appUseCase, err := container.ApplicationUseCase()
				if err != nil {
					return err
				}

				return commands.RunRollSalt(
					ctx,
					appUseCase,
					container.Logger(),
					cmd.String("id"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "issue-token",
			Usage: "Mint an additional token for an application",
			Flags: []cli.Flag{idFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				appUseCase, err := container.ApplicationUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueToken(
					ctx,
					appUseCase,
					container.Logger(),
					cmd.String("id"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "list-applications",
			Usage: "List registered applications",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "offset",
					Value: 0,
					Usage: "Number of applications to skip",
				},
				&cli.IntFlag{
					Name:  "limit",
					Value: 50,
					Usage: "Maximum number of applications to print",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				appUseCase, err := container.ApplicationUseCase()
				if err != nil {
					return err
				}

				return commands.RunListApplications(
					ctx,
					appUseCase,
					int(cmd.Int("offset")),
					int(cmd.Int("limit")),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
