package reactivity

// ComputedRef memoizes getter. The cached value is reused until one of the
// getter's dependencies changes.
type ComputedRef[T any] struct {
	id     uint64
	rs     *System
	runner *EffectRunner
	value  T
	dirty  bool
}

func Computed[T any](rs *System, getter func() T) *ComputedRef[T] {
	c := &ComputedRef[T]{id: nextID(), rs: rs, dirty: true}
	c.runner = newEffect(rs, func() any {
		return getter()
	}, Lazy(), WithScheduler(func(*EffectRunner) {
		c.dirty = true
		rs.trigger(c, valueKey, TriggerSet, nil)
	}))
	return c
}

func (c *ComputedRef[T]) ID() uint64 {
	return c.id
}

// Value recomputes if a dependency changed since the last read, and is
// itself a tracked read.
func (c *ComputedRef[T]) Value() T {
	if c.dirty {
		v, _ := c.runner.run().(T)
		c.value = v
		c.dirty = false
	}
	c.rs.track(c, valueKey)
	return c.value
}

// SetValue always fails: computed values are derived.
func (c *ComputedRef[T]) SetValue(T) {
	c.rs.report("computed.set", nil, ErrComputedReadonly)
}

func (c *ComputedRef[T]) Dirty() bool {
	return c.dirty
}

// Stop detaches the getter from its dependencies. The last value stays
// readable.
func (c *ComputedRef[T]) Stop() {
	c.runner.Stop()
}

func (c *ComputedRef[T]) describe() (string, uint64) {
	return "computed", c.id
}
