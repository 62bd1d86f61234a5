package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrictEqual(t *testing.T) {
	t.Run("scalars", func(t *testing.T) {
		assert.True(t, StrictEqual(1, 1))
		assert.True(t, StrictEqual("a", "a"))
		assert.False(t, StrictEqual(1, 2))
		assert.False(t, StrictEqual(1, int64(1)))
		assert.True(t, StrictEqual(nil, nil))
		assert.False(t, StrictEqual(nil, 0))
		assert.True(t, StrictEqual(Null, Null))
	})

	t.Run("maps by reference", func(t *testing.T) {
		a := map[string]any{"x": 1}
		b := map[string]any{"x": 1}

		assert.True(t, StrictEqual(a, a))
		assert.False(t, StrictEqual(a, b))
	})

	t.Run("slices by backing array and length", func(t *testing.T) {
		s := []int{1, 2, 3}

		assert.True(t, StrictEqual(s, s))
		assert.False(t, StrictEqual(s, s[:2]))
		assert.False(t, StrictEqual(s, []int{1, 2, 3}))
	})

	t.Run("structs field by field", func(t *testing.T) {
		type point struct{ X, Y int }
		type holder struct {
			Items []int
		}
		items := []int{1}

		assert.True(t, StrictEqual(point{1, 2}, point{1, 2}))
		assert.False(t, StrictEqual(point{1, 2}, point{2, 1}))
		assert.True(t, StrictEqual(holder{items}, holder{items}))
		assert.False(t, StrictEqual(holder{items}, holder{[]int{1}}))
	})

	t.Run("funcs by code", func(t *testing.T) {
		f := func() {}
		g := func() {}

		assert.True(t, StrictEqual(f, f))
		assert.False(t, StrictEqual(f, g))
	})
}

func TestShallowEqual(t *testing.T) {
	shared := []int{1}

	assert.True(t, ShallowEqual(map[string]any{"a": 1, "b": shared}, map[string]any{"a": 1, "b": shared}))
	assert.False(t, ShallowEqual(map[string]any{"a": 1}, map[string]any{"a": 2}))
	assert.False(t, ShallowEqual(map[string]any{"a": 1}, map[string]any{"a": 1, "b": 2}))
	assert.False(t, ShallowEqual(map[string]any{"a": []int{1}}, map[string]any{"a": []int{1}}))
	assert.True(t, ShallowEqual(map[string]any{"a": nil}, map[string]any{"a": nil}))
	assert.False(t, ShallowEqual(map[string]any{"a": nil}, map[string]any{"b": nil}))
	assert.True(t, ShallowEqual(map[string]any{}, Props{}))
	assert.False(t, ShallowEqual(1, 2))
	assert.False(t, ShallowEqual(map[string]any{}, nil))
}
