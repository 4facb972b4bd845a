package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/relay-go/internal/app"
	"github.com/doeshing/relay-go/internal/domain"
)

const (
	msgNoHistoryRecorded = "No invocations recorded yet."
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded invocations",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent invocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listInvocations(cmd.OutOrStdout(), container, limit, "")
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show")
	return cmd
}

// newHistorySearchCommand creates the 'history search' subcommand
func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var query string
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search invocations by action id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf("--query required")
			}
			return listInvocations(cmd.OutOrStdout(), container, searchLimit, query)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search keyword")
	cmd.Flags().IntVar(&searchLimit, "limit", DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear recorded invocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return container.InvocationStore.Clear()
		},
	}
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export invocations to JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return container.InvocationStore.ExportJSON(args[0])
		},
	}
}

func listInvocations(out io.Writer, container *app.Container, limit int, search string) error {
	records, err := container.InvocationStore.Records(limit, search)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, msgNoHistoryRecorded)
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%-14s %-30s %s\n", humanize.Time(rec.Timestamp), rec.ActionID, outcome(rec))
	}
	return nil
}

func outcome(rec domain.InvocationRecord) string {
	switch {
	case rec.FromCache:
		return "served from cache"
	case !rec.Executed:
		return fmt.Sprintf("vetoed by %s", rec.VetoedBy)
	case rec.ExitCode != 0:
		return fmt.Sprintf("exit %d (%dms)", rec.ExitCode, rec.DurationMS)
	default:
		return fmt.Sprintf("ok (%dms)", rec.DurationMS)
	}
}
