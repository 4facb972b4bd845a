package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/relay-go/internal/app"
	"github.com/doeshing/relay-go/internal/application/dispatch"
	"github.com/doeshing/relay-go/internal/infrastructure/cli/commands"
)

// ErrVetoed reports a vetoed invocation. The outcome was already rendered;
// the entrypoint maps it to a nonzero exit without an error line so scripts
// can tell a blocked action from a successful one.
var ErrVetoed = errors.New("action vetoed")

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// dispatchFlags carries the dispatch command's flag values.
type dispatchFlags struct {
	noCache bool
	debug   bool
	quiet   bool
	asJSON  bool
	timeout time.Duration
}

// NewRootCmd wires the cobra root command. A bare `relay <action-id>` is
// shorthand for `relay dispatch <action-id>` with default flags.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "relay [action-id]",
		Short: "relay - filtered action pipeline runner",
		Long:  "relay dispatches named actions through an ordered chain of before/after filters.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if len(args) > 1 {
				return fmt.Errorf("expected a single action id, got %d arguments", len(args))
			}
			return runDispatch(cmd.Context(), cmd.OutOrStdout(), container, args[0], dispatchFlags{})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newDispatchCommand(container))
	root.AddCommand(commands.NewActionsCommand(container))
	root.AddCommand(commands.NewFiltersCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewCheckCommand(container))
	return root, nil
}

func newDispatchCommand(container *app.Container) *cobra.Command {
	var flags dispatchFlags

	cmd := &cobra.Command{
		Use:   "dispatch <action-id>",
		Short: "Dispatch an action through the filter chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(cmd.Context(), cmd.OutOrStdout(), container, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "Bypass cache filters for this invocation")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Print command output only")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Emit the outcome as JSON")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Enable verbose logging")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Override action timeout (default from config)")

	return cmd
}

func runDispatch(ctx context.Context, out io.Writer, container *app.Container, actionID string, flags dispatchFlags) error {
	resp, err := container.DispatchService.Run(dispatch.Request{
		Context:  ctx,
		ActionID: actionID,
		NoCache:  flags.noCache,
		Timeout:  flags.timeout,
		Debug:    flags.debug,
	})
	if err != nil {
		return err
	}
	if flags.asJSON {
		if err := RenderResponseJSON(out, resp); err != nil {
			return err
		}
	} else {
		RenderResponse(out, resp, flags.quiet)
	}
	if !resp.Valid && (resp.Result == nil || !resp.Result.FromCache) {
		return ErrVetoed
	}
	return nil
}
