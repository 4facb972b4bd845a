package domain

import "time"

// InvocationRecord captures one trip through the pipeline for auditing.
type InvocationRecord struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	ActionID   string    `json:"action_id"`
	Executed   bool      `json:"executed"`
	VetoedBy   string    `json:"vetoed_by,omitempty"`
	FromCache  bool      `json:"from_cache"`
	ExitCode   int       `json:"exit_code"`
	DurationMS int64     `json:"duration_ms"`
}

// CacheEntry stores a cached action result addressed by action id.
type CacheEntry struct {
	Key        string    `json:"key"`
	Stdout     string    `json:"stdout"`
	Stderr     string    `json:"stderr"`
	ExitCode   int       `json:"exit_code"`
	CreatedAt  time.Time `json:"created_at"`
	DurationMS int64     `json:"duration_ms"`
}

// CommandResult is the result value produced by command action bodies and
// threaded through after-hooks.
type CommandResult struct {
	Ran        bool
	Stdout     string
	Stderr     string
	ExitCode   int
	DurationMS int64
	FromCache  bool
	Err        error
}
