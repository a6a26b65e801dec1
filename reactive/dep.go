package reactive

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

func sortEffectsByID(effects []*Effect) {
	sort.Slice(effects, func(i, j int) bool { return effects[i].id < effects[j].id })
}

// Dep is the set of effects that have read a particular (target, key)
// pair, realized with the same set type the teacher reaches for when it
// needs an observer set (pkg/flimsy.Signal.observers).
type Dep = mapset.Set[*Effect]

func newDep() Dep {
	return mapset.NewThreadUnsafeSet[*Effect]()
}

// TrackEvent is the payload delivered to an effect's onTrack hook.
type TrackEvent struct {
	Effect *Effect
	Target any
	Type   OpType
	Key    any
}

// TriggerEvent is the payload delivered to an effect's onTrigger hook.
type TriggerEvent struct {
	Effect    *Effect
	Target    any
	Type      OpType
	Key       any
	OldValue  any
	NewValue  any
	OldTarget any
}

// Track records that the currently running effect read (raw, key) under
// operation op. It is the single entry point every interceptor in
// object.go/array.go/mapset_container.go calls on a read. Callers doing
// an ITERATE-class read must pass the shape sentinel as key themselves
// (IterateKey, or LengthKey for Array) rather than relying on Track to
// substitute one, since the correct sentinel depends on the container
// shape, not just the operation.
func (s *System) Track(raw any, op OpType, key any) {
	if !s.shouldTrack {
		return
	}
	effect := s.currentEffect()
	if effect == nil {
		return
	}

	trackKey := key

	deps, ok := s.targetMap[raw]
	if !ok {
		deps = make(map[any]Dep)
		s.targetMap[raw] = deps
	}
	dep, ok := deps[trackKey]
	if !ok {
		dep = newDep()
		deps[trackKey] = dep
	}

	if dep.Contains(effect) {
		return
	}
	dep.Add(effect)
	effect.addDep(dep)

	if s.devMode && effect.onTrack != nil {
		effect.onTrack(TrackEvent{Effect: effect, Target: raw, Type: op, Key: trackKey})
	}
}

// Trigger runs every effect that depends on (raw, key) under operation
// op, computed-class effects first, then ordinary effects, matching the
// class-priority rule that makes chained computeds observe fresh values.
func (s *System) Trigger(raw any, op OpType, key any, extra *TriggerInfo) {
	deps, ok := s.targetMap[raw]
	if !ok {
		return
	}

	var toRun []Dep

	if op == OpClear {
		for _, dep := range deps {
			toRun = append(toRun, dep)
		}
	} else {
		if dep, ok := deps[key]; ok {
			toRun = append(toRun, dep)
		}
		if op == OpAdd || op == OpDelete {
			shapeKey := IterateKey
			if _, isArray := raw.(*rawArray); isArray {
				shapeKey = LengthKey
			}
			if dep, ok := deps[shapeKey]; ok {
				toRun = append(toRun, dep)
			}
		}
	}

	var computedRunners, effects []*Effect
	seen := make(map[*Effect]struct{})
	for _, dep := range toRun {
		for _, e := range dep.ToSlice() {
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			if e.computed {
				computedRunners = append(computedRunners, e)
			} else {
				effects = append(effects, e)
			}
		}
	}
	// mapset's ToSlice order follows Go's native map iteration, which is
	// randomized per run. Sort by each effect's creation sequence so a
	// trigger's firing order is deterministic and reproducible across
	// runs, approximating the dep-set insertion order the design calls
	// for without threading a second ordered index through every Dep.
	sortEffectsByID(computedRunners)
	sortEffectsByID(effects)

	fire := func(e *Effect) {
		if s.devMode && e.onTrigger != nil {
			ev := TriggerEvent{Effect: e, Target: raw, Type: op, Key: key}
			if extra != nil {
				ev.OldValue = extra.OldValue
				ev.NewValue = extra.NewValue
				ev.OldTarget = extra.OldTarget
			}
			e.onTrigger(ev)
		}
		if e.scheduler != nil {
			e.scheduler(e)
		} else {
			e.Run()
		}
	}

	for _, e := range computedRunners {
		fire(e)
	}
	for _, e := range effects {
		fire(e)
	}
}

// TriggerInfo carries the optional dev-mode payload for Trigger.
type TriggerInfo struct {
	OldValue  any
	NewValue  any
	OldTarget any
}
