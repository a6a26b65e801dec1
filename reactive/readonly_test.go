package reactive_test

import (
	"testing"

	"github.com/delaneyj/reactive/reactive"
	"github.com/stretchr/testify/assert"
)

func TestReadonlyLockBlocksWrites(t *testing.T) {
	sys := reactive.NewSystem()
	raw := reactive.NewObject(sys, map[string]any{"a": 1})
	r := sys.Readonly(sys.ToRaw(raw)).(*reactive.Object)

	runs := 0
	reactive.NewEffect(sys, func() {
		runs++
		r.Get("a")
	}, nil)
	assert.Equal(t, 1, runs)

	r.Set("a", 2)
	assert.Equal(t, 1, r.Get("a"))
	assert.Equal(t, 1, runs)
}

func TestReadonlyLockDisengagedAllowsForwarding(t *testing.T) {
	sys := reactive.NewSystem()
	r := sys.Readonly(sys.ToRaw(reactive.NewObject(sys, map[string]any{"a": 1}))).(*reactive.Object)

	sys.DisengageReadonlyLock()
	r.Set("a", 2)
	sys.EngageReadonlyLock()

	assert.Equal(t, 2, r.Get("a"))
}

func TestReadonlyAndMutableShareRawIdentity(t *testing.T) {
	sys := reactive.NewSystem()
	mutable := reactive.NewObject(sys, map[string]any{"a": 1})
	readonly := sys.Readonly(mutable).(*reactive.Object)

	assert.Equal(t, sys.ToRaw(mutable), sys.ToRaw(readonly))
	assert.True(t, sys.IsReadonly(readonly))
	assert.False(t, sys.IsReadonly(mutable))
}

func TestReactiveOfReadonlyReturnsItself(t *testing.T) {
	sys := reactive.NewSystem()
	mutable := reactive.NewObject(sys, map[string]any{"a": 1})
	readonly := sys.Readonly(mutable).(*reactive.Object)

	assert.Same(t, readonly, sys.Reactive(readonly).(*reactive.Object))
}
