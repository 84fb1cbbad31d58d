package suffixtree

import (
	"errors"
	"testing"

	goerrors "github.com/go-errors/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireInvariantPanic runs fn and checks that it panics with an internal
// error carrying a stack.
func requireInvariantPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(*goerrors.Error)
		require.True(t, ok, "panic value %T is not a stack-carrying error", r)
		assert.True(t, errors.Is(err, ErrInternal), "got %v", err)
		assert.NotEmpty(t, err.ErrorStack())
	}()
	fn()
}

func TestEdgeLength(t *testing.T) {
	keys := []int32{0, 1, 2, 0, 1, 3}

	fixed := makeEdge(1, 3, false, 7)
	assert.Equal(t, 3, fixed.length(5))
	assert.Equal(t, 3, fixed.endAt(5))

	open := makeEdge(2, openEnd, true, 8)
	assert.Equal(t, 1, open.length(2))
	assert.Equal(t, 4, open.length(5))

	k, err := open.at(keys, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, int32(3), k)

	_, err = open.at(keys, 4, 5)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = fixed.at(keys, 3, 5)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestEdgeFix(t *testing.T) {
	e := makeEdge(4, openEnd, true, 1)
	e.fix(5)
	assert.False(t, e.open)
	assert.Equal(t, 2, e.length(100))

	requireInvariantPanic(t, func() { e.fix(3) })
}

func TestMakeEdgeInvariants(t *testing.T) {
	tests := []struct {
		name  string
		start int
		end   int
		open  bool
	}{
		{"neither end nor open", 3, openEnd, false},
		{"open with fixed end", 3, 5, true},
		{"empty fixed edge", 3, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireInvariantPanic(t, func() { makeEdge(tt.start, tt.end, tt.open, 0) })
		})
	}
}

func TestActivePoint(t *testing.T) {
	keys := []int32{5, 6, 7, 8}
	ap := activePoint{start: 0, end: -1}

	assert.Equal(t, 0, ap.length())
	_, ok := ap.firstCharacter(keys)
	assert.False(t, ok)

	ap.growBack(1)
	assert.Equal(t, 1, ap.length())
	c, ok := ap.firstCharacter(keys)
	require.True(t, ok)
	assert.Equal(t, int32(5), c)

	ap.growBack(2)
	ap.shrinkFront(2)
	assert.Equal(t, 1, ap.length())
	c, _ = ap.firstCharacter(keys)
	assert.Equal(t, int32(7), c)

	ap.shrinkFront(1)
	assert.Equal(t, 0, ap.length())
	ap.shift(1)
	assert.Equal(t, 0, ap.length())
	assert.Equal(t, 4, ap.start)

	requireInvariantPanic(t, func() { ap.shrinkFront(1) })
}
