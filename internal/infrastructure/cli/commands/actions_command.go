package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/relay-go/internal/app"
)

// NewActionsCommand creates the actions listing command
func NewActionsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List configured actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listActions(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

func listActions(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return err
	}
	if len(cfg.Actions) == 0 {
		fmt.Fprintln(out, "No actions configured.")
		return nil
	}
	if cfg.Scope != "" {
		fmt.Fprintf(out, "Scope: %s\n\n", cfg.Scope)
	}
	for _, action := range cfg.Actions {
		fmt.Fprintf(out, "%-30s %s\n", action.ID, action.Command)
	}
	return nil
}
