package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	applicationUseCase "github.com/tregmine/webapi/internal/application/usecase"
)

// RunListApplications prints one page of applications, newest first. Salts are never printed.
func RunListApplications(
	ctx context.Context,
	appUseCase applicationUseCase.ApplicationUseCase,
	offset, limit int,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if offset < 0 || limit < 1 {
		return fmt.Errorf("invalid pagination: offset must be >= 0 and limit >= 1")
	}

	apps, err := appUseCase.List(ctx, offset, limit)
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	if format == "json" {
		infos := make([]applicationDomain.ApplicationInfo, 0, len(apps))
		for _, app := range apps {
			infos = append(infos, app.Info())
		}
		return writeJSON(io.Writer, infos)
	}

	tw := tabwriter.NewWriter(io.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tACCESS\tDISABLED")
	for _, app := range apps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", app.ID, app.Name, app.AccessLevel, app.Disabled)
	}
	return tw.Flush()
}
