package reactive_test

import (
	"testing"

	"github.com/delaneyj/reactive/reactive"
	"github.com/stretchr/testify/assert"
)

func TestSelfWriteGuardDoesNotRecurse(t *testing.T) {
	sys := reactive.NewSystem()
	a := reactive.NewObject(sys, map[string]any{"n": 0})

	runs := 0
	reactive.NewEffect(sys, func() {
		runs++
		if n, _ := a.Get("n").(int); n < 1 {
			a.Set("n", 1)
		}
	}, nil)

	assert.LessOrEqual(t, runs, 2)
	assert.GreaterOrEqual(t, runs, 1)
	assert.Equal(t, 1, a.Get("n"))
}

func TestStopRemovesEffectFromAllDeps(t *testing.T) {
	sys := reactive.NewSystem()
	a := reactive.NewObject(sys, map[string]any{"n": 1})
	b := reactive.NewObject(sys, map[string]any{"n": 1})

	runs := 0
	e := reactive.NewEffect(sys, func() {
		runs++
		a.Get("n")
		b.Get("n")
	}, nil)
	assert.Equal(t, 1, runs)

	e.Stop()
	a.Set("n", 2)
	b.Set("n", 2)
	assert.Equal(t, 1, runs)
	assert.False(t, e.Active())
}

func TestReentrantEffectIsNonTrackingPassThrough(t *testing.T) {
	sys := reactive.NewSystem()
	a := reactive.NewObject(sys, map[string]any{"n": 1})

	var e *reactive.Effect
	calls := 0
	e = reactive.NewEffect(sys, func() {
		calls++
		if calls == 1 {
			a.Get("n")
			e.Run()
		}
	}, &reactive.EffectOptions{Lazy: true})
	e.Run()

	assert.Equal(t, 2, calls)
}

func TestPauseResumeTracking(t *testing.T) {
	sys := reactive.NewSystem()
	a := reactive.NewObject(sys, map[string]any{"n": 1})

	runs := 0
	reactive.NewEffect(sys, func() {
		runs++
		sys.PauseTracking()
		a.Get("n")
		sys.ResumeTracking()
	}, nil)
	assert.Equal(t, 1, runs)

	a.Set("n", 2)
	assert.Equal(t, 1, runs)
}

func TestStoppedEffectRunsUntracked(t *testing.T) {
	sys := reactive.NewSystem()
	a := reactive.NewObject(sys, map[string]any{"n": 1})

	calls := 0
	e := reactive.NewEffect(sys, func() {
		calls++
		a.Get("n")
	}, nil)
	e.Stop()

	e.Run()
	assert.Equal(t, 2, calls)

	a.Set("n", 99)
	assert.Equal(t, 2, calls)
}
