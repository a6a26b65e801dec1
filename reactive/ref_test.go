package reactive_test

import (
	"testing"

	"github.com/delaneyj/reactive/reactive"
	"github.com/stretchr/testify/assert"
)

func TestRefUnwrapAndForward(t *testing.T) {
	sys := reactive.NewSystem()
	r := reactive.NewRef[any](sys, 1)
	obj := reactive.NewObject(sys, map[string]any{"r": r})

	var v any
	reactive.NewEffect(sys, func() {
		v = obj.Get("r")
	}, nil)
	assert.Equal(t, 1, v)

	obj.Set("r", 5)
	assert.Equal(t, 5, r.Value())
	assert.Equal(t, 5, v)
}

func TestIsRef(t *testing.T) {
	sys := reactive.NewSystem()
	r := reactive.NewRef(sys, 1)
	assert.True(t, reactive.IsRef(r))
	assert.False(t, reactive.IsRef(1))
}

func TestToRefsProjection(t *testing.T) {
	sys := reactive.NewSystem()
	obj := reactive.NewObject(sys, map[string]any{"a": 1, "b": 2})
	refs := reactive.ToRefs(obj)

	assert.Equal(t, 1, refs["a"].Value())
	refs["b"].SetValue(9)
	assert.Equal(t, 9, obj.Get("b"))
}

func TestRefLeavesNonReactiveValueUnwrapped(t *testing.T) {
	sys := reactive.NewSystem()
	raw := map[string]any{"n": 1}
	sys.MarkNonReactive(raw)

	r := reactive.NewRef[any](sys, raw)
	assert.Equal(t, raw, r.Value())
}
