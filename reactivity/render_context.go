package reactivity

// RenderContext resolves names for a component render function. Lookups try
// the component state, then its props, then the setup state.
type RenderContext struct {
	rs    *System
	state *RecordProxy
	props *RecordProxy
	setup *RecordProxy
}

// NewRenderContext wraps state and setup deeply and props shallowly. Any of
// them may be nil.
func NewRenderContext(rs *System, state, props, setup *Record) *RenderContext {
	c := &RenderContext{rs: rs}
	if state != nil {
		c.state = Reactive(rs, state).(*RecordProxy)
	}
	if props != nil {
		c.props = ShallowReactive(rs, props).(*RecordProxy)
	}
	if setup != nil {
		c.setup = Reactive(rs, setup).(*RecordProxy)
	}
	return c
}

func (c *RenderContext) layer(name string) *RecordProxy {
	for _, p := range []*RecordProxy{c.state, c.props, c.setup} {
		if p != nil && p.Has(name) {
			return p
		}
	}
	return nil
}

// Get returns nil and reports ErrMissingKey when no layer defines name.
func (c *RenderContext) Get(name string) any {
	if p := c.layer(name); p != nil {
		return p.Get(name)
	}
	c.rs.report("render.get", name, ErrMissingKey)
	return nil
}

// Set writes name in the layer that defines it. Props cannot be written
// through the context.
func (c *RenderContext) Set(name string, value any) bool {
	p := c.layer(name)
	switch {
	case p == nil:
		c.rs.report("render.set", name, ErrMissingKey)
		return false
	case p == c.props:
		c.rs.report("render.set", name, ErrReadonly)
		return false
	}
	p.Set(name, value)
	return true
}

func (c *RenderContext) State() *RecordProxy { return c.state }
func (c *RenderContext) Props() *RecordProxy { return c.props }
func (c *RenderContext) Setup() *RecordProxy { return c.setup }
