package domain

import "context"

// ActionID is a hierarchical action identifier with "/"-separated segments,
// e.g. "admin/users/delete". Identifiers are opaque to the pipeline beyond
// pattern matching and scope stripping.
type ActionID string

// String returns the raw identifier.
func (id ActionID) String() string {
	return string(id)
}

// HandlerFunc is the action body. The returned value seeds the context
// result slot and is then threaded through the after-hooks of the chain.
type HandlerFunc func(ctx context.Context, actx *ActionContext) any

// Action pairs an identifier with its body. The ID is fully qualified; a
// dispatcher with a scope matches filters against the scope-relative form.
type Action struct {
	ID      ActionID
	Handler HandlerFunc
}

// Channel names a hook position on the dispatch host.
type Channel string

const (
	// ChannelBeforeAction fires before the action body; subscribers here
	// participate in the full before/after nesting protocol.
	ChannelBeforeAction Channel = "before_action"

	// ChannelAfterAction fires after the action body executed. Subscribers
	// registered only here act as post-processors and never veto.
	ChannelAfterAction Channel = "after_action"
)
