package reactive_test

import (
	"testing"

	"github.com/delaneyj/reactive/reactive"
	"github.com/stretchr/testify/assert"
)

func TestMapSizeTracksSetDeleteClear(t *testing.T) {
	sys := reactive.NewSystem()
	m := reactive.NewMapMap(sys)

	var count int
	reactive.NewEffect(sys, func() {
		count = m.Size()
	}, nil)
	assert.Equal(t, 0, count)

	m.Set("a", 1)
	assert.Equal(t, 1, count)

	m.Delete("a")
	assert.Equal(t, 0, count)

	m.Set("x", 1)
	assert.Equal(t, 1, count)
	m.Clear()
	assert.Equal(t, 0, count)
}

func TestMapClearOnEmptyDoesNotTrigger(t *testing.T) {
	sys := reactive.NewSystem()
	m := reactive.NewMapMap(sys)

	runs := 0
	reactive.NewEffect(sys, func() {
		runs++
		m.Size()
	}, nil)
	assert.Equal(t, 1, runs)

	m.Clear()
	assert.Equal(t, 1, runs)
}

func TestMapClearTriggersEveryKeyReader(t *testing.T) {
	sys := reactive.NewSystem()
	m := reactive.NewMapMap(sys)
	m.Set("a", 1)
	m.Set("b", 2)

	var a, b any
	reactive.NewEffect(sys, func() { a = m.Get("a") }, nil)
	reactive.NewEffect(sys, func() { b = m.Get("b") }, nil)
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)

	m.Clear()
	assert.Nil(t, m.Get("a"))
	assert.Nil(t, a)
	assert.Nil(t, b)
}

func TestSetAddHasDelete(t *testing.T) {
	sys := reactive.NewSystem()
	s := reactive.NewSetMap(sys)

	runs := 0
	reactive.NewEffect(sys, func() {
		runs++
		s.Has("x")
	}, nil)
	assert.Equal(t, 1, runs)

	s.Add("x")
	assert.Equal(t, 2, runs)
	assert.True(t, s.Has("x"))

	s.Add("x")
	assert.Equal(t, 2, runs)

	s.Delete("x")
	assert.Equal(t, 3, runs)
	assert.False(t, s.Has("x"))
}

func TestWeakMapGetSetHasDelete(t *testing.T) {
	sys := reactive.NewSystem()
	wm := reactive.NewWeakMapMap(sys)
	key := reactive.NewObject(sys, nil)

	wm.Set(key, "value")
	assert.Equal(t, "value", wm.Get(key))
	assert.True(t, wm.Delete(key))
	assert.False(t, wm.Has(key))
}
