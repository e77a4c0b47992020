package commands

import (
	"context"
	"fmt"
	"log/slog"

	applicationUseCase "github.com/tregmine/webapi/internal/application/usecase"
)

// RunIssueToken mints an additional token for an existing application.
func RunIssueToken(
	ctx context.Context,
	appUseCase applicationUseCase.ApplicationUseCase,
	logger *slog.Logger,
	rawID string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	id, err := parseApplicationID(rawID)
	if err != nil {
		return err
	}

	token, err := appUseCase.IssueToken(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	if format == "json" {
		err = writeJSON(io.Writer, map[string]string{"id": id.String(), "token": token})
	} else {
		_, err = fmt.Fprintf(io.Writer, "Application ID: %s\nToken: %s\n", id, token)
	}
	if err != nil {
		return err
	}

	logger.Info("application token issued", slog.String("application_id", id.String()))
	return nil
}
