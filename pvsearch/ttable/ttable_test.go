package ttable

import (
	"testing"

	"github.com/nullmove/pvsearch/pvsearch/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertSeedsAgeToTwo(t *testing.T) {
	tt := New[string, int]()
	tt.Insert("root", Entry[int]{Depth: 3, Value: 5, Bound: Exact})
	entry, ok := tt.Get("root")
	require.True(t, ok)
	assert.Equal(t, uint8(2), entry.Age)
}

func TestAgeAndEvict(t *testing.T) {
	tt := New[string, int]()
	tt.Insert("root", Entry[int]{})

	tt.AgeAndEvict() // age 2 -> 1, kept
	e, ok := tt.Get("root")
	require.True(t, ok)
	assert.Equal(t, uint8(1), e.Age)

	tt.AgeAndEvict() // age 1 -> 0, kept
	e, ok = tt.Get("root")
	require.True(t, ok)
	assert.Equal(t, uint8(0), e.Age)

	tt.AgeAndEvict() // age already 0 -> evicted
	_, ok = tt.Get("root")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	tt := New[string, int]()
	tt.Insert("a", Entry[int]{})
	tt.Insert("b", Entry[int]{})
	tt.Clear()
	assert.Equal(t, 0, tt.Len())
}

func TestUsableExactAlwaysWhenDeepEnough(t *testing.T) {
	e := Entry[int]{Depth: 4, Value: 5, Bound: Exact}
	assert.True(t, e.Usable(4, 0, 10))
	assert.False(t, Entry[int]{Depth: 3, Value: 5, Bound: Exact}.Usable(4, 0, 10))
}

func TestUsableTerminalExactIgnoresDepth(t *testing.T) {
	e := Entry[int]{Depth: 0, Value: eval.Win, Bound: Exact}
	assert.True(t, e.Usable(99, -100, 100))
}

func TestUsableLowerRequiresBetaCutoff(t *testing.T) {
	e := Entry[int]{Depth: 5, Value: 20, Bound: Lower}
	assert.True(t, e.Usable(5, 0, 20))
	assert.False(t, e.Usable(5, 0, 21))
}

func TestUsableUpperRequiresAlphaCutoff(t *testing.T) {
	e := Entry[int]{Depth: 5, Value: 10, Bound: Upper}
	assert.True(t, e.Usable(5, 11, 100))
	assert.False(t, e.Usable(5, 10, 100))
}

func TestWithCapacityDoesNotPanic(t *testing.T) {
	tt := New[string, int](WithCapacity(128))
	assert.Equal(t, 0, tt.Len())
}

func TestWithMemoryFractionDoesNotPanic(t *testing.T) {
	tt := New[string, int](WithMemoryFraction(0.01))
	assert.Equal(t, 0, tt.Len())
}
