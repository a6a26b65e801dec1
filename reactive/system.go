package reactive

import (
	"log"
)

// iterateKeyType is the type of the sentinel used as a targetMap key for operations that
// observed the whole shape of a container (iteration, ownKeys, size).
// Ordered sequences use the literal key "length" instead, see Array.
type iterateKeyType struct{}

// IterateKey is the sentinel key for "the shape of this target was read".
var IterateKey any = iterateKeyType{}

// LengthKey is the shape sentinel used by ordered sequences (Array) in
// place of IterateKey, so that add/delete also triggers length observers.
const LengthKey = "length"

// System is one self-contained reactivity graph: the active-effect stack,
// the pause-tracking flag, the readonly lock, the raw<->observed
// registries, and the dependency registry all live here instead of on
// package-level globals, so independent tests (and independent hosts in
// the same process) never see each other's effects.
//
// A System is not safe for concurrent use from multiple goroutines. The
// engine is single-threaded and cooperative by design; adding a mutex
// here would promise a guarantee the design explicitly does not make.
type System struct {
	logger  *log.Logger
	devMode bool
	onPanic func(e *Effect, recovered any)

	// raw <-> observed registries, keyed by pointer identity of the raw
	// container. Entries are never removed except via Forget.
	rawToReactive  map[any]any
	reactiveToRaw  map[any]any
	rawToReadonly  map[any]any
	readonlyToRaw  map[any]any
	readonlySet    map[any]struct{}
	nonReactiveSet map[any]struct{}

	// targetMap: raw -> (key -> Dep). Allocated lazily on first track.
	targetMap map[any]map[any]Dep

	activeStack []*Effect
	shouldTrack bool
	lockEngaged bool

	idSeq uint64
}

// SystemOption configures a System at construction time.
type SystemOption func(*System)

// WithLogger overrides the default logger (log.Default()) used for
// dev-time warnings and diagnostics.
func WithLogger(l *log.Logger) SystemOption {
	return func(s *System) { s.logger = l }
}

// WithDevMode enables onTrack/onTrigger tracing and readonly-write
// warnings at construction time.
func WithDevMode(on bool) SystemOption {
	return func(s *System) { s.devMode = on }
}

// WithOnPanic installs a diagnostic hook called when an effect's function
// panics, before the panic is re-raised. It never swallows the panic.
func WithOnPanic(fn func(e *Effect, recovered any)) SystemOption {
	return func(s *System) { s.onPanic = fn }
}

// NewSystem allocates an independent reactivity graph. The readonly lock
// starts engaged, matching the source material's default of blocking
// readonly writes outside of internal bookkeeping.
func NewSystem(opts ...SystemOption) *System {
	s := &System{
		logger:         log.Default(),
		rawToReactive:  make(map[any]any),
		reactiveToRaw:  make(map[any]any),
		rawToReadonly:  make(map[any]any),
		readonlyToRaw:  make(map[any]any),
		readonlySet:    make(map[any]struct{}),
		nonReactiveSet: make(map[any]struct{}),
		targetMap:      make(map[any]map[any]Dep),
		shouldTrack:    true,
		lockEngaged:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DevMode reports whether development diagnostics are enabled.
func (s *System) DevMode() bool { return s.devMode }

// SetDevMode toggles development diagnostics at runtime.
func (s *System) SetDevMode(on bool) { s.devMode = on }

// EngageReadonlyLock re-engages the process-wide readonly write guard.
func (s *System) EngageReadonlyLock() { s.lockEngaged = true }

// DisengageReadonlyLock allows readonly proxies' mutating operations to
// pass through to the underlying raw container until EngageReadonlyLock
// is called. Nothing inside the package disengages it.
func (s *System) DisengageReadonlyLock() { s.lockEngaged = false }

func (s *System) readonlyLockEngaged() bool { return s.lockEngaged }

// PauseTracking suspends dependency collection; triggers are unaffected.
func (s *System) PauseTracking() { s.shouldTrack = false }

// ResumeTracking resumes dependency collection.
func (s *System) ResumeTracking() { s.shouldTrack = true }

// Forget removes every registry and targetMap entry for raw, the
// explicit dispose(target) escape hatch this port substitutes for true
// GC-weak retention (see spec §9, §3.1).
func (s *System) Forget(raw any) {
	if p, ok := s.rawToReactive[raw]; ok {
		delete(s.reactiveToRaw, p)
	}
	if p, ok := s.rawToReadonly[raw]; ok {
		delete(s.readonlyToRaw, p)
	}
	delete(s.rawToReactive, raw)
	delete(s.rawToReadonly, raw)
	delete(s.readonlySet, raw)
	delete(s.nonReactiveSet, raw)
	delete(s.targetMap, raw)
}

func (s *System) warnf(format string, args ...any) {
	if s.devMode {
		s.logger.Printf("reactive: "+format, args...)
	}
}

func (s *System) currentEffect() *Effect {
	if len(s.activeStack) == 0 {
		return nil
	}
	return s.activeStack[len(s.activeStack)-1]
}

func (s *System) onStackTop(e *Effect) bool {
	for _, running := range s.activeStack {
		if running == e {
			return true
		}
	}
	return false
}

func (s *System) nextID() uint64 {
	s.idSeq++
	return s.idSeq
}
