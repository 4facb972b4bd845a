package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/relay-go/internal/application/dispatch"
)

const (
	colorReset  = "\x1b[0m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorRed    = "\x1b[31m"
)

// RenderResponse prints the dispatch outcome in a friendly, ASCII-only
// format. Color is used only on a TTY.
func RenderResponse(out io.Writer, resp dispatch.Response, quiet bool) {
	if quiet {
		if resp.Result != nil {
			fmt.Fprint(out, resp.Result.Stdout)
		}
		return
	}

	if !resp.Valid && (resp.Result == nil || !resp.Result.FromCache) {
		fmt.Fprintf(out, "%s: action %s vetoed by filter %q\n",
			paint(colorYellow, "blocked"), resp.ActionID, resp.VetoedBy)
		return
	}

	if resp.Result == nil {
		fmt.Fprintf(out, "action %s finished with no result\n", resp.ActionID)
		return
	}

	result := resp.Result
	status := paint(colorGreen, "ok")
	if result.ExitCode != 0 {
		status = paint(colorRed, fmt.Sprintf("exit %d", result.ExitCode))
	}
	origin := ""
	if result.FromCache {
		origin = " (cached)"
	}
	fmt.Fprintf(out, "action %s: %s in %dms%s\n", resp.ActionID, status, result.DurationMS, origin)

	if result.Stdout != "" {
		fmt.Fprintln(out, "\nstdout:")
		fmt.Fprintln(out, result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprintln(out, "\nstderr:")
		fmt.Fprintln(out, result.Stderr)
	}
	if result.Err != nil && result.ExitCode < 0 {
		fmt.Fprintf(out, "\naction failed to start: %v\n", result.Err)
	}
}

// RenderResponseJSON prints the dispatch outcome as a single JSON object for
// scripting. Command errors are flattened to strings.
func RenderResponseJSON(out io.Writer, resp dispatch.Response) error {
	payload := struct {
		ActionID   string `json:"action_id"`
		RelativeID string `json:"relative_id"`
		Valid      bool   `json:"valid"`
		VetoedBy   string `json:"vetoed_by,omitempty"`
		Stdout     string `json:"stdout,omitempty"`
		Stderr     string `json:"stderr,omitempty"`
		ExitCode   int    `json:"exit_code"`
		DurationMS int64  `json:"duration_ms"`
		FromCache  bool   `json:"from_cache"`
		Error      string `json:"error,omitempty"`
	}{
		ActionID:   resp.ActionID,
		RelativeID: resp.RelativeID,
		Valid:      resp.Valid,
		VetoedBy:   resp.VetoedBy,
	}
	if resp.Result != nil {
		payload.Stdout = resp.Result.Stdout
		payload.Stderr = resp.Result.Stderr
		payload.ExitCode = resp.Result.ExitCode
		payload.DurationMS = resp.Result.DurationMS
		payload.FromCache = resp.Result.FromCache
		if resp.Result.Err != nil {
			payload.Error = resp.Result.Err.Error()
		}
	}
	enc := json.NewEncoder(out)
	return enc.Encode(payload)
}

func paint(color, text string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return text
	}
	return color + text + colorReset
}
