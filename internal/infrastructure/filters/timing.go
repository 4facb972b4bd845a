package filters

import (
	"time"

	"github.com/doeshing/relay-go/internal/application/dispatch"
	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/ports"
)

// TimingFilter measures wall time of everything nested inside it: inner
// filters plus the action body. The elapsed time lands in the context
// scratch space and the log.
type TimingFilter struct {
	dispatch.Lifecycle
	logger ports.Logger
	now    func() time.Time
}

// NewTimingFilter builds a timing filter. On the after-action channel it
// degrades to a no-op since no start timestamp gets recorded.
func NewTimingFilter(lc dispatch.Lifecycle, logger ports.Logger) *TimingFilter {
	return &TimingFilter{
		Lifecycle: lc,
		logger:    logger,
		now:       time.Now,
	}
}

func (f *TimingFilter) startKey() string {
	return f.Name() + ".start"
}

// ElapsedKey is where the measured duration (milliseconds) is stored on
// the context.
func (f *TimingFilter) ElapsedKey() string {
	return f.Name() + ".elapsed_ms"
}

// BeforeAction stamps the start time into the invocation context.
func (f *TimingFilter) BeforeAction(actx *domain.ActionContext) bool {
	actx.Values[f.startKey()] = f.now()
	return true
}

// AfterAction computes the elapsed time and logs it.
func (f *TimingFilter) AfterAction(actx *domain.ActionContext, result any) any {
	start, ok := actx.Values[f.startKey()].(time.Time)
	if !ok {
		return result
	}
	elapsed := f.now().Sub(start).Milliseconds()
	actx.Values[f.ElapsedKey()] = elapsed
	if f.logger != nil {
		f.logger.Info("action timed", map[string]interface{}{
			"action":     string(actx.ID),
			"elapsed_ms": elapsed,
		})
	}
	return result
}

var _ ports.Filter = (*TimingFilter)(nil)
