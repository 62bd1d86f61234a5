package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type typed struct{}

func (typed) ActionType() string { return "TYPED" }

type labelled string

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name   string
		action any
		want   any
	}{
		{name: "action", action: Action{"type": "A"}, want: "A"},
		{name: "map", action: map[string]any{"type": 1}, want: 1},
		{name: "string map", action: map[string]string{"type": "B"}, want: "B"},
		{name: "named keys", action: map[labelled]any{"type": "C"}, want: "C"},
		{name: "struct field", action: struct{ Type string }{"D"}, want: "D"},
		{name: "typed", action: typed{}, want: "TYPED"},
		{name: "missing key", action: Action{}, want: nil},
		{name: "nil type", action: Action{"type": nil}, want: nil},
		{name: "nil pointer type", action: struct{ Type *int }{}, want: nil},
		{name: "unexported field", action: struct{ kind string }{"E"}, want: nil},
		{name: "scalar", action: 42, want: nil},
		{name: "nil", action: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.action))
		})
	}
}

func TestIsPlainRecord(t *testing.T) {
	assert.True(t, IsPlainRecord(Action{}))
	assert.True(t, IsPlainRecord(map[string]int{}))
	assert.True(t, IsPlainRecord(struct{}{}))
	assert.False(t, IsPlainRecord(map[int]any{}))
	assert.False(t, IsPlainRecord(&struct{}{}))
	assert.False(t, IsPlainRecord([]any{}))
	assert.False(t, IsPlainRecord("type"))
	assert.False(t, IsPlainRecord(nil))
	assert.False(t, IsPlainRecord(func() {}))
}

func TestValidateAction(t *testing.T) {
	assert.NoError(t, validateAction(Action{"type": "A"}))
	assert.ErrorContains(t, validateAction(42), "plain records, got int")
	assert.ErrorContains(t, validateAction(Action{}), "undefined type")
	assert.ErrorIs(t, validateAction(nil), ErrType)
}
