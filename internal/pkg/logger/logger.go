package logger

import (
	"io"
	"log"
	"os"
)

// StdLogger writes leveled lines through the standard log package. Debug
// and Info are suppressed unless verbose; Warn and Error always emit since
// they signal degraded pipeline behavior (failed record saves, unreadable
// cache entries) that should not vanish silently.
type StdLogger struct {
	verbose bool
	out     *log.Logger
}

// NewStd creates a StdLogger writing to stderr, keeping stdout clean for
// action output.
func NewStd(verbose bool) *StdLogger {
	return NewStdWithWriter(verbose, os.Stderr)
}

// NewStdWithWriter creates a StdLogger writing to w.
func NewStdWithWriter(verbose bool, w io.Writer) *StdLogger {
	return &StdLogger{
		verbose: verbose,
		out:     log.New(w, "relay: ", log.LstdFlags),
	}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[DEBUG]", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[INFO]", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.out.Println("[WARN]", msg, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.out.Println("[ERROR]", msg, err, fields)
}
