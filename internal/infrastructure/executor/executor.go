package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/ports"
)

// LocalRunner executes command actions on the host shell. It is the
// default action body for configured actions: the command's outcome
// becomes the chain result and is threaded through after-hooks.
type LocalRunner struct {
	shell string
}

// NewLocalRunner builds a runner; shell "auto" or "" resolves to $SHELL,
// then /bin/sh.
func NewLocalRunner(shell string) *LocalRunner {
	if shell == "" || shell == "auto" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &LocalRunner{shell: shell}
}

// Run implements ports.CommandRunner. Failures are carried in the result
// rather than returned: the chain treats a failing command as a normal
// outcome for after-hooks to observe.
func (r *LocalRunner) Run(ctx context.Context, command string) domain.CommandResult {
	c := exec.CommandContext(ctx, r.shell, "-c", command)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	duration := time.Since(start).Milliseconds()

	result := domain.CommandResult{
		Ran:        true,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMS: duration,
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		result.Err = err
	default:
		result.Ran = false
		result.ExitCode = -1
		result.Err = err
	}
	return result
}

var _ ports.CommandRunner = (*LocalRunner)(nil)
