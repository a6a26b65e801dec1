package reactive

// rawObject is the plain, untracked data behind an Object proxy: a
// string-keyed map plus an insertion-order key slice. It never knows
// about a System; all tracking happens in Object's methods.
type rawObject struct {
	data map[string]any
	keys []string
}

// Object is the plain-object container shape (spec §3.1): a mutable or
// readonly observed view over a rawObject.
type Object struct {
	sys      *System
	raw      *rawObject
	readonly bool
}

// NewObject allocates a fresh plain-object container, seeded from
// initial, and returns its mutable observed view.
func NewObject(sys *System, initial map[string]any) *Object {
	raw := &rawObject{data: make(map[string]any, len(initial))}
	for k, v := range initial {
		raw.data[k] = sys.ToRaw(v)
		raw.keys = append(raw.keys, k)
	}
	return sys.Reactive(raw).(*Object)
}

func (o *Object) rawTarget() any      { return o.raw }
func (o *Object) isReadonlyView() bool { return o.readonly }

// Readonly reports whether this view is a readonly proxy.
func (o *Object) Readonly() bool { return o.readonly }

// Get reads key, tracking GET on (raw, key), recursively wrapping
// compound children and unwrapping refs.
func (o *Object) Get(key string) any {
	o.sys.Track(o.raw, OpGet, key)
	v, ok := o.raw.data[key]
	if !ok {
		return nil
	}
	return wrapRead(o.sys, v, o.readonly)
}

// Has tests key presence, tracking HAS on (raw, key).
func (o *Object) Has(key string) bool {
	o.sys.Track(o.raw, OpHas, key)
	_, ok := o.raw.data[key]
	return ok
}

// Keys enumerates the object's keys in insertion order, tracking
// ITERATE on raw.
func (o *Object) Keys() []string {
	o.sys.Track(o.raw, OpIterate, IterateKey)
	out := make([]string, len(o.raw.keys))
	copy(out, o.raw.keys)
	return out
}

// Set writes value at key. If the existing value at key is a ref and
// value is not, the write is forwarded into the ref instead of
// replacing it (spec §4.2 "ref forward on write"). On a readonly view
// with the lock engaged the write is a no-op dev warning.
func (o *Object) Set(key string, value any) {
	if o.readonly && o.sys.readonlyLockEngaged() {
		o.sys.warnf("set on readonly object key %q ignored", key)
		return
	}

	old, existed := o.raw.data[key]
	if existed {
		if ref, ok := old.(anyRef); ok {
			if _, isRef := value.(refMarker); !isRef {
				forwardToRef(ref, value)
				return
			}
		}
	}

	newValue := o.sys.ToRaw(value)
	if existed {
		if identicalAny(old, newValue) {
			return
		}
		o.raw.data[key] = newValue
		o.sys.Trigger(o.raw, OpSet, key, &TriggerInfo{OldValue: old, NewValue: newValue})
		return
	}

	o.raw.data[key] = newValue
	o.raw.keys = append(o.raw.keys, key)
	o.sys.Trigger(o.raw, OpAdd, key, &TriggerInfo{NewValue: newValue})
}

// Delete removes key if present, triggering DELETE. Returns whether the
// key was present.
func (o *Object) Delete(key string) bool {
	if o.readonly && o.sys.readonlyLockEngaged() {
		o.sys.warnf("delete on readonly object key %q ignored", key)
		return false
	}

	old, existed := o.raw.data[key]
	if !existed {
		return false
	}
	delete(o.raw.data, key)
	for i, k := range o.raw.keys {
		if k == key {
			o.raw.keys = append(o.raw.keys[:i], o.raw.keys[i+1:]...)
			break
		}
	}
	o.sys.Trigger(o.raw, OpDelete, key, &TriggerInfo{OldValue: old})
	return true
}

// forwardToRef assigns value into ref's slot using its own SetValue,
// which triggers through the ref itself rather than the outer container.
func forwardToRef(ref anyRef, value any) {
	switch r := ref.(type) {
	case *Ref[any]:
		r.SetValue(value)
	case *ProxyRef:
		r.SetValue(value)
	default:
		// A Ref[T] for a concrete, non-any T can't accept an untyped
		// value generically; the write silently drops, matching the
		// source material's dynamic-language assumption that refs
		// assigned into a container hold dynamically-typed values.
	}
}
