package reactive

// refSentinelKey is the sentinel key a Ref tracks/triggers under — its
// "key" is the empty string, per spec §3/§4.6.
const refSentinelKey = ""

type refMarker interface {
	isRef()
}

// anyRef is implemented by every ref-shaped type (Ref[T], ProxyRef) so
// the base interceptors can unwrap a ref read out of a container without
// knowing its concrete value type.
type anyRef interface {
	refMarker
	valueAny() any
}

// unwrapRef implements the ref-unwrap-on-read rule: if v is ref-shaped,
// return its current value (tracking through the ref itself) instead of
// the ref.
func unwrapRef(v any) (any, bool) {
	r, ok := v.(anyRef)
	if !ok {
		return nil, false
	}
	return r.valueAny(), true
}

// Ref is a single-slot reactive cell. Reads track GET on the ref itself
// with the sentinel key; writes trigger SET on the same, grounded on
// alien.WriteableSignal[T]'s Value()/SetValue() shape.
type Ref[T any] struct {
	sys   *System
	value T
}

// NewRef allocates a ref holding initial. If initial is itself a
// compound value observable by this System, it is replaced by its
// reactive wrapper; primitives are stored as-is.
func NewRef[T any](sys *System, initial T) *Ref[T] {
	return &Ref[T]{sys: sys, value: autoWrap(sys, initial)}
}

func (r *Ref[T]) isRef() {}

func (r *Ref[T]) valueAny() any { return r.Value() }

// Value reads the current value, tracking through the owning System.
func (r *Ref[T]) Value() T {
	r.sys.Track(r, OpGet, refSentinelKey)
	return r.value
}

// SetValue stores v (auto-wrapping compound values) and triggers SET on
// every write, whether or not the value changed.
func (r *Ref[T]) SetValue(v T) {
	wrapped := autoWrap(r.sys, v)
	old := r.value
	r.value = wrapped
	r.sys.Trigger(r, OpSet, refSentinelKey, &TriggerInfo{OldValue: old, NewValue: wrapped})
}

// IsRef reports whether x is ref-shaped: a Ref[T] for some T, or a
// ProxyRef.
func IsRef(x any) bool {
	_, ok := x.(refMarker)
	return ok
}

// autoWrap converts compound values into their reactive wrapper via the
// owning System's container registry, leaving non-observable values
// (including primitives) untouched. It is used by NewRef and
// Ref.SetValue, and so by ref-forwarding writes from the base
// interceptors; recursive wrapping on read goes through wrapRead.
func autoWrap[T any](sys *System, v T) T {
	var asAny any = v
	wrapped := sys.Reactive(asAny)
	if w, ok := wrapped.(T); ok {
		return w
	}
	return v
}

// ProxyRef is a ref-shaped wrapper produced by ToRefs: it reads and
// writes through to an underlying Object's key without establishing any
// additional tracking of its own, since the Object already tracks that
// key (spec §4.6).
type ProxyRef struct {
	obj *Object
	key string
}

func (p *ProxyRef) isRef() {}

func (p *ProxyRef) valueAny() any { return p.Value() }

// Value reads the current value of the underlying key.
func (p *ProxyRef) Value() any {
	return p.obj.Get(p.key)
}

// SetValue writes v into the underlying key.
func (p *ProxyRef) SetValue(v any) {
	p.obj.Set(p.key, v)
}

// ToRefs returns a sibling map whose entries are ProxyRefs over obj's
// current keys.
func ToRefs(obj *Object) map[string]*ProxyRef {
	keys := obj.Keys()
	out := make(map[string]*ProxyRef, len(keys))
	for _, k := range keys {
		out[k] = &ProxyRef{obj: obj, key: k}
	}
	return out
}
