package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/relay-go/internal/app"
	"github.com/doeshing/relay-go/internal/domain"
)

// NewCheckCommand creates the check command
func NewCheckCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Diagnose pipeline configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(cmd, cmd.OutOrStdout(), container)
		},
	}
}

func runChecks(cmd *cobra.Command, out io.Writer, container *app.Container) error {
	if container.CheckService == nil {
		return fmt.Errorf("check service unavailable")
	}

	report, err := container.CheckService.Run(cmd.Context())

	// Display report even if there were errors
	displayReport(out, report)

	if err != nil {
		return fmt.Errorf("diagnostics completed with errors: %w", err)
	}
	return nil
}

func displayReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}
