package commands

import (
	"context"
	"fmt"
	"log/slog"

	applicationUseCase "github.com/tregmine/webapi/internal/application/usecase"
)

// RunRollSalt rotates an application's salt and prints the replacement token.
// Every token issued before the roll stops verifying.
func RunRollSalt(
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

	output, err := appUseCase.RollSalt(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to roll salt: %w", err)
	}

	if err := printApplicationToken(io, format, output.Application, output.Token); err != nil {
		return err
	}

	logger.Info("application salt rolled", slog.String("application_id", id.String()))
	return nil
}
