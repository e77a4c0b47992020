// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-migrate/migrate/v4"
	validation "github.com/jellydator/validation"

	"github.com/tregmine/webapi/internal/app"
	customValidation "github.com/tregmine/webapi/internal/validation"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(m *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := m.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// parseApplicationID parses a decimal snowflake id given on the command line.
func parseApplicationID(raw string) (snowflake.ID, error) {
	if err := validation.Validate(raw, validation.Required, customValidation.Snowflake); err != nil {
		return 0, fmt.Errorf("invalid application id %q: %w", raw, err)
	}
	id, err := snowflake.ParseString(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid application id %q", raw)
	}
	return id, nil
}

// validateFormat accepts the two output formats of the application commands.
func validateFormat(format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q (valid options: text, json)", format)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
