package reactive_test

import (
	"testing"

	"github.com/delaneyj/reactive/reactive"
	"github.com/stretchr/testify/assert"
)

func TestComputedChainOrdering(t *testing.T) {
	sys := reactive.NewSystem()
	s := reactive.NewObject(sys, map[string]any{"x": 1})

	c1 := reactive.NewComputed(sys, func() int {
		return s.Get("x").(int) + 1
	})
	c2 := reactive.NewComputed(sys, func() int {
		return c1.Value() * 10
	})

	var out int
	reactive.NewEffect(sys, func() {
		out = c2.Value()
	}, nil)
	assert.Equal(t, 20, out)

	s.Set("x", 4)
	assert.Equal(t, 50, out)
	assert.False(t, c1.Dirty())
	assert.False(t, c2.Dirty())
}

func TestComputedIsLazy(t *testing.T) {
	sys := reactive.NewSystem()
	s := reactive.NewObject(sys, map[string]any{"x": 1})

	evals := 0
	c := reactive.NewComputed(sys, func() int {
		evals++
		return s.Get("x").(int)
	})
	assert.Equal(t, 0, evals)

	_ = c.Value()
	assert.Equal(t, 1, evals)
	_ = c.Value()
	assert.Equal(t, 1, evals)

	s.Set("x", 2)
	assert.Equal(t, 1, evals)
	_ = c.Value()
	assert.Equal(t, 2, evals)
}

func TestWritableComputedSetter(t *testing.T) {
	sys := reactive.NewSystem()
	s := reactive.NewObject(sys, map[string]any{"x": 1})

	c := reactive.NewComputedWithOptions(sys, reactive.ComputedOptions[int]{
		Get: func() int { return s.Get("x").(int) },
		Set: func(v int) { s.Set("x", v) },
	})

	assert.Equal(t, 1, c.Value())
	c.SetValue(9)
	assert.Equal(t, 9, c.Value())
}

func TestReadonlyComputedSetWarnsAndNoops(t *testing.T) {
	sys := reactive.NewSystem()
	c := reactive.NewComputed(sys, func() int { return 1 })
	c.SetValue(5)
	assert.Equal(t, 1, c.Value())
}
