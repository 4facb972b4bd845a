package filters

import (
	"github.com/doeshing/relay-go/internal/application/dispatch"
	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/ports"
)

// AuditFilter is an after-channel observer logging a summary of every
// executed invocation it applies to. It never vetoes and never rewrites
// the result.
type AuditFilter struct {
	dispatch.Lifecycle
	logger ports.Logger
}

// NewAuditFilter builds an audit observer. It defaults to the after-action
// channel; on the before channel it participates in the full protocol and
// still only observes.
func NewAuditFilter(lc dispatch.Lifecycle, logger ports.Logger) *AuditFilter {
	return &AuditFilter{
		Lifecycle: lc,
		logger:    logger,
	}
}

// AfterAction logs the outcome and passes the result through untouched.
func (f *AuditFilter) AfterAction(actx *domain.ActionContext, result any) any {
	if f.logger == nil {
		return result
	}
	fields := map[string]interface{}{
		"action": string(actx.ID),
	}
	if cmdResult, ok := result.(domain.CommandResult); ok {
		fields["exit_code"] = cmdResult.ExitCode
		fields["duration_ms"] = cmdResult.DurationMS
		fields["from_cache"] = cmdResult.FromCache
	}
	f.logger.Info("action completed", fields)
	return result
}

var _ ports.Filter = (*AuditFilter)(nil)
