package filters

import (
	"time"

	"github.com/doeshing/relay-go/internal/application/dispatch"
	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/ports"
)

// CacheFilter serves stored results for repeat invocations. On a hit its
// before-hook places the cached result on the context and vetoes the
// invocation, so the action body and inner filters never run; on a miss
// its after-hook stores the fresh result. Cache failures fail open: a
// read error is a miss, a write error is logged and dropped.
type CacheFilter struct {
	dispatch.Lifecycle
	cache  ports.ResultCache
	logger ports.Logger
}

// NewCacheFilter builds a cache filter over the given result cache. It
// needs the full before/after protocol, so its lifecycle must register on
// the before-action channel.
func NewCacheFilter(lc dispatch.Lifecycle, cache ports.ResultCache, logger ports.Logger) *CacheFilter {
	return &CacheFilter{
		Lifecycle: lc,
		cache:     cache,
		logger:    logger,
	}
}

// BeforeAction serves a hit and halts, or approves on a miss.
func (f *CacheFilter) BeforeAction(actx *domain.ActionContext) bool {
	entry, ok, err := f.cache.Get(string(actx.ID))
	if err != nil {
		if f.logger != nil {
			f.logger.Warn("cache read failed", map[string]interface{}{
				"action": string(actx.ID),
				"error":  err.Error(),
			})
		}
		return true
	}
	if !ok {
		return true
	}

	actx.Result = domain.CommandResult{
		Ran:        false,
		Stdout:     entry.Stdout,
		Stderr:     entry.Stderr,
		ExitCode:   entry.ExitCode,
		DurationMS: entry.DurationMS,
		FromCache:  true,
	}
	return false
}

// AfterAction stores successful fresh results.
func (f *CacheFilter) AfterAction(actx *domain.ActionContext, result any) any {
	cmdResult, ok := result.(domain.CommandResult)
	if !ok || cmdResult.FromCache || !cmdResult.Ran || cmdResult.ExitCode != 0 {
		return result
	}

	err := f.cache.Set(domain.CacheEntry{
		Key:        string(actx.ID),
		Stdout:     cmdResult.Stdout,
		Stderr:     cmdResult.Stderr,
		ExitCode:   cmdResult.ExitCode,
		DurationMS: cmdResult.DurationMS,
		CreatedAt:  time.Now(),
	})
	if err != nil && f.logger != nil {
		f.logger.Warn("cache write failed", map[string]interface{}{
			"action": string(actx.ID),
			"error":  err.Error(),
		})
	}
	return result
}

var _ ports.Filter = (*CacheFilter)(nil)
