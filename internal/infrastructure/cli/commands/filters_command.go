package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/relay-go/internal/app"
	"github.com/doeshing/relay-go/internal/domain"
)

// NewFiltersCommand creates the filters listing command
func NewFiltersCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List configured filters in attachment order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFilters(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

func listFilters(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return err
	}
	if len(cfg.Filters) == 0 {
		fmt.Fprintln(out, "No filters configured.")
		return nil
	}
	for i, filter := range cfg.Filters {
		fmt.Fprintf(out, "%d. %s (%s)%s\n", i+1, filter.Name, filter.Type, patternSummary(filter))
	}
	return nil
}

func patternSummary(filter domain.FilterDefinition) string {
	var parts []string
	if len(filter.Only) > 0 {
		parts = append(parts, "only: "+strings.Join(filter.Only, ", "))
	}
	if len(filter.Except) > 0 {
		parts = append(parts, "except: "+strings.Join(filter.Except, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, "; ") + "]"
}
