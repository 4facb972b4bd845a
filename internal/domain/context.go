package domain

// ActionContext is the per-invocation state threaded through the filter
// chain. One context is created per dispatch and discarded afterwards.
type ActionContext struct {
	// ID is the scope-relative identifier filters match against.
	ID ActionID

	// Result holds the action outcome. Each after-hook consumes the prior
	// value and replaces it with its transformed value.
	Result any

	// Valid starts true. A filter vetoing execution sets it false; the
	// dispatcher then stops before-hook propagation and skips the action.
	Valid bool

	// VetoedBy names the filter that set Valid false, when any.
	VetoedBy string

	// Values is scratch space for cooperating hooks of one filter within a
	// single invocation (e.g. a start timestamp). Never shared across
	// invocations.
	Values map[string]any
}

// NewActionContext builds a fresh context for one invocation.
func NewActionContext(id ActionID) *ActionContext {
	return &ActionContext{
		ID:     id,
		Valid:  true,
		Values: make(map[string]any),
	}
}

// Veto marks the invocation invalid and records the vetoing filter.
// The first veto wins; later calls keep the original attribution.
func (c *ActionContext) Veto(filterName string) {
	if !c.Valid {
		return
	}
	c.Valid = false
	c.VetoedBy = filterName
}
