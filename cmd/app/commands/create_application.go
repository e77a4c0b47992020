package commands

import (
	"context"
	"fmt"
	"log/slog"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	applicationUseCase "github.com/tregmine/webapi/internal/application/usecase"
)

// applicationTokenOutput is the JSON output of commands that mint a token.
type applicationTokenOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessLevel string `json:"access_level"`
	Disabled    bool   `json:"disabled"`
	Token       string `json:"token"`
}

func newApplicationTokenOutput(app *applicationDomain.Application, token string) applicationTokenOutput {
	return applicationTokenOutput{
		ID:          app.ID.String(),
		Name:        app.Name,
		AccessLevel: string(app.AccessLevel),
		Disabled:    app.Disabled,
		Token:       token,
	}
}

func printApplicationToken(io IOTuple, format string, app *applicationDomain.Application, token string) error {
	if format == "json" {
		return writeJSON(io.Writer, newApplicationTokenOutput(app, token))
	}
	_, err := fmt.Fprintf(io.Writer,
		"Application ID: %s\nName: %s\nAccess level: %s\nDisabled: %t\nToken: %s\n",
		app.ID, app.Name, app.AccessLevel, app.Disabled, token,
	)
	return err
}

// RunCreateApplication registers an application and prints its id and first token.
// The token is shown once; store it with the application's configuration.
func RunCreateApplication(
	ctx context.Context,
	appUseCase applicationUseCase.ApplicationUseCase,
	logger *slog.Logger,
	name string,
	accessLevel string,
	disabled bool,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	level, err := applicationDomain.ParseAccessLevel(accessLevel)
	if err != nil {
		return err
	}

	logger.Info("creating application", slog.String("name", name), slog.String("access_level", accessLevel))

	output, err := appUseCase.Create(ctx, &applicationDomain.CreateApplicationInput{
		Name:        name,
		AccessLevel: level,
		Disabled:    disabled,
	})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	if err := printApplicationToken(io, format, output.Application, output.Token); err != nil {
		return err
	}

	logger.Info("application created", slog.String("application_id", output.Application.ID.String()))
	return nil
}
