package commands

import "github.com/doeshing/relay-go/internal/domain"

const (
	// DefaultHistoryLimit caps history listings.
	DefaultHistoryLimit = domain.DefaultHistoryLimit
	// DefaultHistorySearchLimit caps history search results.
	DefaultHistorySearchLimit = domain.DefaultHistorySearchLimit
)
