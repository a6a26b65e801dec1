package reactive

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// rawMapMap is the plain, untracked data behind a MapMap proxy: a
// key-value container storing state outside of generic property
// interception, matching spec §4.3's rationale for the collection
// interceptors.
type rawMapMap struct {
	data map[any]any
	keys []any
}

// MapMap is the key-value container shape ("Map" in the source
// material; renamed to avoid colliding with Go's builtin map type in
// doc comments and call sites).
type MapMap struct {
	sys      *System
	raw      *rawMapMap
	readonly bool
}

// NewMapMap allocates a fresh, empty key-value container and returns its
// mutable observed view.
func NewMapMap(sys *System) *MapMap {
	raw := &rawMapMap{data: make(map[any]any)}
	return sys.Reactive(raw).(*MapMap)
}

func (m *MapMap) rawTarget() any       { return m.raw }
func (m *MapMap) isReadonlyView() bool { return m.readonly }
func (m *MapMap) Readonly() bool       { return m.readonly }

// Get tracks GET on (raw, toRaw(key)) and returns the wrapped value, or
// nil if absent.
func (m *MapMap) Get(key any) any {
	nk := m.sys.ToRaw(key)
	m.sys.Track(m.raw, OpGet, nk)
	v, ok := m.raw.data[nk]
	if !ok {
		return nil
	}
	return wrapRead(m.sys, v, m.readonly)
}

// Has tracks HAS on (raw, toRaw(key)).
func (m *MapMap) Has(key any) bool {
	nk := m.sys.ToRaw(key)
	m.sys.Track(m.raw, OpHas, nk)
	_, ok := m.raw.data[nk]
	return ok
}

// Size tracks ITERATE on raw and returns the element count.
func (m *MapMap) Size() int {
	m.sys.Track(m.raw, OpIterate, IterateKey)
	return len(m.raw.keys)
}

// Set normalizes key and value with ToRaw, then triggers ADD if key is
// new or SET if the value differs from the previous one.
func (m *MapMap) Set(key, value any) {
	if m.readonly && m.sys.readonlyLockEngaged() {
		m.sys.warnf("set on readonly map key %v ignored", key)
		return
	}
	nk := m.sys.ToRaw(key)
	nv := m.sys.ToRaw(value)

	old, existed := m.raw.data[nk]
	if existed {
		if identicalAny(old, nv) {
			return
		}
		m.raw.data[nk] = nv
		m.sys.Trigger(m.raw, OpSet, nk, &TriggerInfo{OldValue: old, NewValue: nv})
		return
	}
	m.raw.data[nk] = nv
	m.raw.keys = append(m.raw.keys, nk)
	m.sys.Trigger(m.raw, OpAdd, nk, &TriggerInfo{NewValue: nv})
}

// Delete removes key if present, triggering DELETE. Returns whether the
// key was present.
func (m *MapMap) Delete(key any) bool {
	if m.readonly && m.sys.readonlyLockEngaged() {
		m.sys.warnf("delete on readonly map key %v ignored", key)
		return false
	}
	nk := m.sys.ToRaw(key)
	old, existed := m.raw.data[nk]
	if !existed {
		return false
	}
	delete(m.raw.data, nk)
	removeFromSlice(&m.raw.keys, nk)
	m.sys.Trigger(m.raw, OpDelete, nk, &TriggerInfo{OldValue: old})
	return true
}

// Clear removes every entry, triggering CLEAR once if the container was
// non-empty.
func (m *MapMap) Clear() {
	if m.readonly && m.sys.readonlyLockEngaged() {
		m.sys.warnf("clear on readonly map ignored")
		return
	}
	if len(m.raw.keys) == 0 {
		return
	}
	m.raw.data = make(map[any]any)
	m.raw.keys = nil
	m.sys.Trigger(m.raw, OpClear, nil, nil)
}

// MapEntry is a single key/value pair as yielded by Entries.
type MapEntry struct {
	Key   any
	Value any
}

// Keys tracks ITERATE and returns the container's keys in insertion
// order, each passed through the ref-unwrap/recursive-wrap rule.
func (m *MapMap) Keys() []any {
	m.sys.Track(m.raw, OpIterate, IterateKey)
	out := make([]any, len(m.raw.keys))
	for i, k := range m.raw.keys {
		out[i] = wrapRead(m.sys, k, m.readonly)
	}
	return out
}

// Values tracks ITERATE and returns the container's values in insertion
// order, each wrapped.
func (m *MapMap) Values() []any {
	m.sys.Track(m.raw, OpIterate, IterateKey)
	out := make([]any, len(m.raw.keys))
	for i, k := range m.raw.keys {
		out[i] = wrapRead(m.sys, m.raw.data[k], m.readonly)
	}
	return out
}

// Entries tracks ITERATE and returns key/value pairs with both sides
// wrapped, the pair-yielding case of spec §4.3's iterator rule.
func (m *MapMap) Entries() []MapEntry {
	m.sys.Track(m.raw, OpIterate, IterateKey)
	out := make([]MapEntry, len(m.raw.keys))
	for i, k := range m.raw.keys {
		out[i] = MapEntry{
			Key:   wrapRead(m.sys, k, m.readonly),
			Value: wrapRead(m.sys, m.raw.data[k], m.readonly),
		}
	}
	return out
}

// ForEach tracks ITERATE and invokes cb(value, key) for every entry in
// insertion order, both sides wrapped.
func (m *MapMap) ForEach(cb func(value, key any)) {
	m.sys.Track(m.raw, OpIterate, IterateKey)
	for _, k := range m.raw.keys {
		cb(wrapRead(m.sys, m.raw.data[k], m.readonly), wrapRead(m.sys, k, m.readonly))
	}
}

// rawSetMap is the plain, untracked data behind a SetMap proxy.
type rawSetMap struct {
	members mapset.Set[any]
	order   []any
}

// SetMap is the set-like container shape.
type SetMap struct {
	sys      *System
	raw      *rawSetMap
	readonly bool
}

// NewSetMap allocates a fresh, empty set-like container and returns its
// mutable observed view.
func NewSetMap(sys *System) *SetMap {
	raw := &rawSetMap{members: mapset.NewThreadUnsafeSet[any]()}
	return sys.Reactive(raw).(*SetMap)
}

func (s *SetMap) rawTarget() any       { return s.raw }
func (s *SetMap) isReadonlyView() bool { return s.readonly }
func (s *SetMap) Readonly() bool       { return s.readonly }

// Has tracks HAS on (raw, toRaw(v)).
func (s *SetMap) Has(v any) bool {
	nv := s.sys.ToRaw(v)
	s.sys.Track(s.raw, OpHas, nv)
	return s.raw.members.Contains(nv)
}

// Size tracks ITERATE on raw and returns the element count.
func (s *SetMap) Size() int {
	s.sys.Track(s.raw, OpIterate, IterateKey)
	return s.raw.members.Cardinality()
}

// Add inserts v, triggering ADD only when v was not previously present.
func (s *SetMap) Add(v any) {
	if s.readonly && s.sys.readonlyLockEngaged() {
		s.sys.warnf("add on readonly set ignored")
		return
	}
	nv := s.sys.ToRaw(v)
	if s.raw.members.Contains(nv) {
		return
	}
	s.raw.members.Add(nv)
	s.raw.order = append(s.raw.order, nv)
	s.sys.Trigger(s.raw, OpAdd, nv, &TriggerInfo{NewValue: nv})
}

// Delete removes v if present, triggering DELETE. Returns whether v was
// present.
func (s *SetMap) Delete(v any) bool {
	if s.readonly && s.sys.readonlyLockEngaged() {
		s.sys.warnf("delete on readonly set ignored")
		return false
	}
	nv := s.sys.ToRaw(v)
	if !s.raw.members.Contains(nv) {
		return false
	}
	s.raw.members.Remove(nv)
	removeFromSlice(&s.raw.order, nv)
	s.sys.Trigger(s.raw, OpDelete, nv, &TriggerInfo{OldValue: nv})
	return true
}

// Clear removes every member, triggering CLEAR once if the set was
// non-empty.
func (s *SetMap) Clear() {
	if s.readonly && s.sys.readonlyLockEngaged() {
		s.sys.warnf("clear on readonly set ignored")
		return
	}
	if s.raw.members.Cardinality() == 0 {
		return
	}
	s.raw.members = mapset.NewThreadUnsafeSet[any]()
	s.raw.order = nil
	s.sys.Trigger(s.raw, OpClear, nil, nil)
}

// Values tracks ITERATE and returns members in insertion order, wrapped.
func (s *SetMap) Values() []any {
	s.sys.Track(s.raw, OpIterate, IterateKey)
	out := make([]any, len(s.raw.order))
	for i, v := range s.raw.order {
		out[i] = wrapRead(s.sys, v, s.readonly)
	}
	return out
}

// ForEach tracks ITERATE and invokes cb(value) for every member in
// insertion order, wrapped.
func (s *SetMap) ForEach(cb func(value any)) {
	s.sys.Track(s.raw, OpIterate, IterateKey)
	for _, v := range s.raw.order {
		cb(wrapRead(s.sys, v, s.readonly))
	}
}

func removeFromSlice(slice *[]any, v any) {
	for i, x := range *slice {
		if identicalAny(x, v) {
			*slice = append((*slice)[:i], (*slice)[i+1:]...)
			return
		}
	}
}
