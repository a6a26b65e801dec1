package reactive

// observedProxy is implemented by every exported container wrapper
// (Object, Array, MapMap, SetMap, WeakMapMap, WeakSetMap). The raw value
// behind a proxy is what the target map and the registries key on, so
// that a mutable view and a readonly view of the same data collide in
// the dependency table exactly as spec §4.1 requires.
type observedProxy interface {
	rawTarget() any
	isReadonlyView() bool
}

// Reactive returns a mutable observed view over target. If target is
// already a readonly proxy it is returned unchanged; if the user
// pre-marked the raw value readonly via MarkReadonly, the readonly view
// is returned instead; if a mutable view already exists it is reused;
// non-observable values (including nil and anything in the
// nonreactive opt-out set) pass through unchanged.
func (s *System) Reactive(target any) any {
	if target == nil {
		return target
	}
	if p, ok := target.(observedProxy); ok {
		if p.isReadonlyView() {
			return target
		}
		return target
	}
	if _, explicitlyReadonly := s.readonlySet[target]; explicitlyReadonly {
		return s.Readonly(target)
	}
	if cached, ok := s.rawToReactive[target]; ok {
		return cached
	}
	if !s.isObservable(target) {
		s.warnf("value passed to Reactive is not observable: %#v", target)
		return target
	}
	p := wrapContainer(s, target, false)
	s.rawToReactive[target] = p
	s.reactiveToRaw[p] = target
	return p
}

// Readonly returns a readonly observed view over target, resolving an
// already-mutable proxy back to its raw value first so that readonly and
// mutable views of the same data share one underlying identity.
func (s *System) Readonly(target any) any {
	if target == nil {
		return target
	}
	if p, ok := target.(observedProxy); ok {
		if p.isReadonlyView() {
			return target
		}
		target = p.rawTarget()
	}
	if cached, ok := s.rawToReadonly[target]; ok {
		return cached
	}
	if !s.isObservable(target) {
		s.warnf("value passed to Readonly is not observable: %#v", target)
		return target
	}
	p := wrapContainer(s, target, true)
	s.rawToReadonly[target] = p
	s.readonlyToRaw[p] = target
	return p
}

// ToRaw unwraps a mutable or readonly proxy back to its raw value, else
// returns x unchanged.
func (s *System) ToRaw(x any) any {
	if p, ok := x.(observedProxy); ok {
		return p.rawTarget()
	}
	return x
}

// IsReactive reports whether x is a mutable observed proxy registered
// with this System.
func (s *System) IsReactive(x any) bool {
	_, ok := s.reactiveToRaw[x]
	return ok
}

// IsReadonly reports whether x is a readonly observed proxy registered
// with this System.
func (s *System) IsReadonly(x any) bool {
	_, ok := s.readonlyToRaw[x]
	return ok
}

// MarkReadonly opts raw into always resolving through Readonly from
// Reactive, and returns raw unchanged.
func (s *System) MarkReadonly(raw any) any {
	s.readonlySet[raw] = struct{}{}
	return raw
}

// MarkNonReactive opts raw out of observability entirely; Reactive and
// Readonly both return it unchanged, unless a view of that mode was
// already cached for raw, in which case the cached view is returned.
func (s *System) MarkNonReactive(raw any) any {
	s.nonReactiveSet[raw] = struct{}{}
	return raw
}

func (s *System) isObservable(target any) bool {
	if _, opted := s.nonReactiveSet[target]; opted {
		return false
	}
	switch target.(type) {
	case *rawObject, *rawArray, *rawMapMap, *rawSetMap, *rawWeakMapMap, *rawWeakSetMap:
		return true
	default:
		return false
	}
}

// wrapContainer builds the exported proxy type matching raw's concrete
// shape. raw must already have passed isObservable.
func wrapContainer(sys *System, raw any, readonly bool) any {
	switch r := raw.(type) {
	case *rawObject:
		return &Object{sys: sys, raw: r, readonly: readonly}
	case *rawArray:
		return &Array{sys: sys, raw: r, readonly: readonly}
	case *rawMapMap:
		return &MapMap{sys: sys, raw: r, readonly: readonly}
	case *rawSetMap:
		return &SetMap{sys: sys, raw: r, readonly: readonly}
	case *rawWeakMapMap:
		return &WeakMapMap{sys: sys, raw: r, readonly: readonly}
	case *rawWeakSetMap:
		return &WeakSetMap{sys: sys, raw: r, readonly: readonly}
	default:
		panic("reactive: wrapContainer called on unobservable value")
	}
}

// wrapRead applies the recursive-wrapping and ref-unwrap rules (spec
// §4.2) to a value freshly read out of a container: compound children
// are wrapped via Reactive/Readonly, refs are unwrapped to their current
// value, everything else passes through as-is.
func wrapRead(sys *System, v any, readonly bool) any {
	if unwrapped, ok := unwrapRef(v); ok {
		return unwrapped
	}
	switch v.(type) {
	case *rawObject, *rawArray, *rawMapMap, *rawSetMap, *rawWeakMapMap, *rawWeakSetMap:
		if readonly {
			return sys.Readonly(v)
		}
		return sys.Reactive(v)
	default:
		return v
	}
}
