// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the pipeline core to remain independent of specific
// implementations like databases, result caches, or CLI frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Filter, Host, InvocationStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/relay-go/internal/domain"
)

// Filter observes action invocations and may veto or post-process them.
// Applicability is decided per invocation from the filter's only/except
// patterns. Hooks are ordinary synchronous calls with no error channel;
// a veto is a normal outcome and internal failures are logged, not raised.
type Filter interface {
	// Name identifies the filter in veto attribution and diagnostics.
	Name() string

	// Applies reports whether the filter participates in an invocation of
	// the given scope-relative action identifier.
	Applies(id domain.ActionID) bool

	// BeforeAction runs before the action body. Returning false vetoes the
	// invocation: no later before-hook, the action itself, nor any
	// after-hook will run.
	BeforeAction(actx *domain.ActionContext) bool

	// AfterAction consumes the prior result and returns the (possibly
	// transformed) result. It fires only if BeforeAction ran, approved, and
	// the action executed.
	AfterAction(actx *domain.ActionContext, result any) any
}

// AttachableFilter is a filter owning its attach/detach lifecycle. The
// self parameter is the outer filter value to register on the host; Go's
// embedded-struct promotion cannot recover it, so lifecycle methods take
// it explicitly.
type AttachableFilter interface {
	Filter
	Attach(h Host, self Filter)
	Detach(self Filter)
}

// Host is the hook registry filters attach to. Registration order is
// preserved and load-bearing: before-hooks fire in attachment order,
// after-hooks in the mirrored order of the filters that armed.
type Host interface {
	On(ch domain.Channel, f Filter)
	Off(ch domain.Channel, f Filter)
}

// ConfigProvider loads the latest pipeline configuration from persistent
// storage. Implementations typically read from ~/.relay/pipeline.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.PipelineConfig, error)
}

// CommandRunner executes the shell command backing a command action.
type CommandRunner interface {
	Run(ctx context.Context, command string) domain.CommandResult
}

// FilterFactory builds filter instances from pipeline configuration.
// It abstracts the creation of the built-in filter types (access, cache,
// timing, audit).
type FilterFactory interface {
	Build(def domain.FilterDefinition) (AttachableFilter, error)
}

// InvocationStore persists invocation records for auditing.
type InvocationStore interface {
	Save(record domain.InvocationRecord) error
	Records(limit int, search string) ([]domain.InvocationRecord, error)
	Clear() error
	ExportJSON(dest string) error
}

// ResultCache stores action results for cache filters.
type ResultCache interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Set(entry domain.CacheEntry) error
	Clear() error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
