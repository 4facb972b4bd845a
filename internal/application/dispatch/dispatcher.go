package dispatch

import (
	"context"

	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/ports"
)

// Dispatcher owns the action-dispatch lifecycle: an ordered hook registry
// per channel and the before/after nesting protocol. Registration order is
// insertion order and determines hook ordering.
//
// Dispatch is single-threaded and cooperative: one invocation runs to
// completion before the next begins. Per-invocation state lives entirely
// in locals and the ActionContext, so unrelated dispatchers never
// interfere.
type Dispatcher struct {
	scope  string
	before []ports.Filter
	after  []ports.Filter
	logger ports.Logger
}

// NewDispatcher builds a dispatcher. Scope is the host's own hierarchical
// identifier ("" for a top-level host); action identifiers are resolved
// relative to it before pattern matching.
func NewDispatcher(scope string, logger ports.Logger) *Dispatcher {
	return &Dispatcher{scope: scope, logger: logger}
}

// Scope returns the host's hierarchical identifier.
func (d *Dispatcher) Scope() string {
	return d.scope
}

// On implements ports.Host: appends f to the channel's ordered list.
// A filter already registered on the channel is not duplicated.
func (d *Dispatcher) On(ch domain.Channel, f ports.Filter) {
	if f == nil {
		return
	}
	list := d.list(ch)
	if list == nil {
		return
	}
	for _, existing := range *list {
		if existing == f {
			return
		}
	}
	*list = append(*list, f)
}

// Off implements ports.Host: removes f from the channel's list, preserving
// the order of the remaining filters. Removing an unregistered filter is a
// no-op.
func (d *Dispatcher) Off(ch domain.Channel, f ports.Filter) {
	list := d.list(ch)
	if list == nil {
		return
	}
	for i, existing := range *list {
		if existing == f {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}

// Filters returns a copy of the channel's registration list for
// diagnostics and listings.
func (d *Dispatcher) Filters(ch domain.Channel) []ports.Filter {
	list := d.list(ch)
	if list == nil {
		return nil
	}
	out := make([]ports.Filter, len(*list))
	copy(out, *list)
	return out
}

func (d *Dispatcher) list(ch domain.Channel) *[]ports.Filter {
	switch ch {
	case domain.ChannelBeforeAction:
		return &d.before
	case domain.ChannelAfterAction:
		return &d.after
	default:
		return nil
	}
}

// Dispatch runs one action through the chain and returns its context.
//
// Before-hooks of applicable before-channel filters fire in registration
// order; each approving filter is armed. A veto stops propagation
// immediately: later before-hooks, the action body and every after-hook
// are skipped and the context is marked invalid. After the action body
// runs, after-hooks fire over the armed list in reverse, innermost first,
// so each filter observes the result produced by the filters registered
// after it. After-channel observers run last, also in reverse order.
func (d *Dispatcher) Dispatch(ctx context.Context, action domain.Action) *domain.ActionContext {
	rid := Relative(action.ID, d.scope)
	actx := domain.NewActionContext(rid)

	var armed []ports.Filter
	for _, f := range d.before {
		if !f.Applies(rid) {
			continue
		}
		if !f.BeforeAction(actx) {
			actx.Veto(f.Name())
			d.logDebug("invocation vetoed", map[string]interface{}{
				"action": string(rid),
				"filter": f.Name(),
			})
			return actx
		}
		armed = append(armed, f)
	}

	if action.Handler != nil {
		actx.Result = action.Handler(ctx, actx)
	}

	for i := len(armed) - 1; i >= 0; i-- {
		actx.Result = armed[i].AfterAction(actx, actx.Result)
	}
	for i := len(d.after) - 1; i >= 0; i-- {
		f := d.after[i]
		if !f.Applies(rid) {
			continue
		}
		actx.Result = f.AfterAction(actx, actx.Result)
	}

	return actx
}

func (d *Dispatcher) logDebug(msg string, fields map[string]interface{}) {
	if d.logger != nil {
		d.logger.Debug(msg, fields)
	}
}

var _ ports.Host = (*Dispatcher)(nil)
