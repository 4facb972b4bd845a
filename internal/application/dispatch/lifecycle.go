package dispatch

import (
	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/ports"
)

// Lifecycle is the reusable half of a filter: applicability plus the
// attach/detach lifecycle against a host. Concrete filters embed it and
// override the hooks they care about; the defaults approve continuation
// and return the result unchanged.
//
// Go has no base classes, so lifecycle methods take the outer filter as an
// explicit self parameter for hook registration.
type Lifecycle struct {
	spec    domain.FilterSpec
	channel domain.Channel
	host    ports.Host
}

// NewLifecycle builds a lifecycle registering on the before-action channel,
// the normal mode for filters participating in the nesting protocol.
func NewLifecycle(spec domain.FilterSpec) Lifecycle {
	return Lifecycle{spec: spec, channel: domain.ChannelBeforeAction}
}

// NewObserverLifecycle builds a lifecycle registering on the after-action
// channel only. Such filters never veto; they post-process results of
// actions that actually executed.
func NewObserverLifecycle(spec domain.FilterSpec) Lifecycle {
	return Lifecycle{spec: spec, channel: domain.ChannelAfterAction}
}

// NewLifecycleOn builds a lifecycle registering on the given channel. An
// empty channel defaults to before-action.
func NewLifecycleOn(spec domain.FilterSpec, ch domain.Channel) Lifecycle {
	if ch == domain.ChannelAfterAction {
		return NewObserverLifecycle(spec)
	}
	return NewLifecycle(spec)
}

// Channel reports which channel the lifecycle registers on.
func (l *Lifecycle) Channel() domain.Channel {
	return l.channel
}

// Name identifies the filter.
func (l *Lifecycle) Name() string {
	return l.spec.Name
}

// Spec exposes the applicability configuration.
func (l *Lifecycle) Spec() domain.FilterSpec {
	return l.spec
}

// Applies implements the only/except check for ports.Filter.
func (l *Lifecycle) Applies(id domain.ActionID) bool {
	return l.spec.Applies(id)
}

// Attach stores the host back-reference and registers self on the
// lifecycle's channel. Re-attaching to the same host is a no-op; attaching
// to a different host detaches from the old one first, keeping the filter
// attached to exactly one host at a time.
func (l *Lifecycle) Attach(h ports.Host, self ports.Filter) {
	if h == nil || l.host == h {
		return
	}
	if l.host != nil {
		l.Detach(self)
	}
	l.host = h
	h.On(l.channel, self)
}

// Detach deregisters self from both channels and clears the back-reference.
// Calling it while unattached is a safe no-op; a later Attach starts a
// fresh cycle.
func (l *Lifecycle) Detach(self ports.Filter) {
	if l.host == nil {
		return
	}
	l.host.Off(domain.ChannelBeforeAction, self)
	l.host.Off(domain.ChannelAfterAction, self)
	l.host = nil
}

// Host returns the current attachment host, nil when detached. The
// reference is non-owning.
func (l *Lifecycle) Host() ports.Host {
	return l.host
}

// BeforeAction is the default before-hook: approve continuation.
func (l *Lifecycle) BeforeAction(*domain.ActionContext) bool {
	return true
}

// AfterAction is the default after-hook: pass the result through.
func (l *Lifecycle) AfterAction(_ *domain.ActionContext, result any) any {
	return result
}
