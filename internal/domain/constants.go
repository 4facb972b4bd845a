package domain

import "time"

// Separator joins segments of hierarchical action identifiers.
const Separator = "/"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultCommandTimeout bounds command action execution
	DefaultCommandTimeout = 30 * time.Second
	// DefaultCacheTTL is how long cached action results stay valid
	DefaultCacheTTL = time.Hour
)

// History constants
const (
	// DefaultHistoryLimit is the default number of invocation records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
	// DefaultHistoryRetainDays is the default number of days to retain records
	DefaultHistoryRetainDays = 30
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
