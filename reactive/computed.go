package reactive

// Computed is a lazy, self-invalidating derived cell: an effect with
// lazy=true, computed=true and a scheduler that only flips a dirty flag,
// generalized from the teacher's ReadonlySignal[T] (alien/computed.go)
// from a link-list dependency model onto this port's map-based dep
// registry.
type Computed[T any] struct {
	sys    *System
	runner *Effect
	getter func() T
	setter func(T)

	dirty bool
	value T
}

// ComputedOptions configures a writable computed. Get is required; Set,
// if nil, yields a readonly computed whose Set warns and no-ops.
type ComputedOptions[T any] struct {
	Get func() T
	Set func(T)
}

// NewComputed builds a readonly computed from a plain getter.
func NewComputed[T any](sys *System, getter func() T) *Computed[T] {
	return NewComputedWithOptions(sys, ComputedOptions[T]{Get: getter})
}

// NewComputedWithOptions builds a computed from a {get, set} pair,
// yielding a writable computed when Set is provided.
func NewComputedWithOptions[T any](sys *System, opts ComputedOptions[T]) *Computed[T] {
	c := &Computed[T]{sys: sys, getter: opts.Get, setter: opts.Set, dirty: true}
	c.runner = NewEffect(sys, func() {
		c.value = c.getter()
	}, &EffectOptions{
		Lazy:     true,
		Computed: true,
		Scheduler: func(*Effect) {
			c.dirty = true
		},
	})
	return c
}

// Value returns the current value, re-running the getter first if dirty,
// then bridge-tracking: the raw deps collected inside the computed's own
// effect frame get copied onto whichever effect is currently reading
// through this computed, so chained computeds invalidate transitively
// (see spec §4.5 "Why bridge-tracking").
func (c *Computed[T]) Value() T {
	if c.dirty {
		c.runner.Run()
		c.dirty = false
	}
	c.bridgeTrack()
	return c.value
}

func (c *Computed[T]) bridgeTrack() {
	reader := c.sys.currentEffect()
	if reader == nil || reader == c.runner {
		return
	}
	for _, dep := range c.runner.deps {
		if !dep.Contains(reader) {
			dep.Add(reader)
			reader.addDep(dep)
		}
	}
}

// SetValue invokes the user-provided setter, or warns and no-ops for a
// readonly computed.
func (c *Computed[T]) SetValue(v T) {
	if c.setter == nil {
		c.sys.warnf("write to readonly computed ignored")
		return
	}
	c.setter(v)
}

// Dirty reports whether the next Value() call will re-run the getter.
func (c *Computed[T]) Dirty() bool { return c.dirty }
