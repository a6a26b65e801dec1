package reactive

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// EffectOptions configures Effect. All fields are optional.
type EffectOptions struct {
	// Lazy suppresses the first, immediate run.
	Lazy bool
	// Computed marks this effect as a computed's invalidation scheduler
	// for the priority partition in Trigger.
	Computed bool
	// Scheduler, if set, is called instead of re-running the effect
	// directly when one of its deps triggers.
	Scheduler func(*Effect)
	OnTrack   func(TrackEvent)
	OnTrigger func(TriggerEvent)
	OnStop    func()
}

// Effect is a callable whose reads are tracked and which is re-invoked
// when any tracked cell it read is mutated.
type Effect struct {
	sys    *System
	fn     func()
	active bool

	computed  bool
	scheduler func(*Effect)
	onTrack   func(TrackEvent)
	onTrigger func(TriggerEvent)
	onStop    func()

	deps []Dep
	id   uint64
}

// NewEffect wraps fn into a reactive effect and, unless opts.Lazy is set,
// runs it immediately.
func NewEffect(sys *System, fn func(), opts *EffectOptions) *Effect {
	if opts == nil {
		opts = &EffectOptions{}
	}
	e := &Effect{
		sys:       sys,
		fn:        fn,
		active:    true,
		computed:  opts.Computed,
		scheduler: opts.Scheduler,
		onTrack:   opts.OnTrack,
		onTrigger: opts.OnTrigger,
		onStop:    opts.OnStop,
		id:        sys.nextID(),
	}
	if !opts.Lazy {
		e.Run()
	}
	return e
}

// DevID is a stable, hashed identity for this effect, derived from its
// creation sequence number rather than its pointer, so it stays the same
// across runs with the same sequence of operations. The package itself
// does not log it.
func (e *Effect) DevID() uint64 {
	return xxhash.Sum64String(fmt.Sprintf("effect#%d", e.id))
}

// addDep records d in e.deps. Callers only call it right after adding e
// to d for the first time, so d is never already listed.
func (e *Effect) addDep(d Dep) {
	e.deps = append(e.deps, d)
}

func (e *Effect) clearDeps() {
	for _, d := range e.deps {
		d.Remove(e)
	}
	e.deps = e.deps[:0]
}

// Run executes the effect's function, per the run protocol:
//
//  1. if inactive, call the raw function outside any tracking context;
//  2. if already on the active stack, call it without re-pushing (a
//     non-tracking re-entrant pass-through, preventing self-triggered
//     infinite recursion);
//  3. otherwise clear previous deps, push, run with a deferred pop so
//     the stack unwinds correctly even if fn panics.
func (e *Effect) Run() {
	if !e.active {
		e.fn()
		return
	}
	if e.sys.onStackTop(e) {
		e.fn()
		return
	}

	e.clearDeps()
	e.sys.activeStack = append(e.sys.activeStack, e)
	defer func() {
		e.sys.activeStack = e.sys.activeStack[:len(e.sys.activeStack)-1]
		if r := recover(); r != nil {
			if e.sys.onPanic != nil {
				e.sys.onPanic(e, r)
			}
			panic(r)
		}
	}()
	e.fn()
}

// Stop deactivates the effect, removes it from every dep it is a member
// of, and invokes its onStop hook. Subsequent calls to Run execute the
// raw function once, untracked.
func (e *Effect) Stop() {
	if !e.active {
		return
	}
	e.clearDeps()
	e.active = false
	if e.onStop != nil {
		e.onStop()
	}
}

// Active reports whether the effect has not been stopped.
func (e *Effect) Active() bool { return e.active }
