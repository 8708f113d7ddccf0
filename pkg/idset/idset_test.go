package idset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ids(vs ...int) []ID {
	out := make([]ID, len(vs))
	for i, v := range vs {
		out[i] = ID(v)
	}
	return out
}

func TestLeafNextAndAdvanceTo(t *testing.T) {
	l := Leaf(ids(1, 3, 5, 7, 9))

	v, ok := l.Next()
	require.True(t, ok)
	require.Equal(t, ID(1), v)

	v, ok = l.AdvanceTo(5)
	require.True(t, ok)
	require.Equal(t, ID(5), v)

	v, ok = l.Next()
	require.True(t, ok)
	require.Equal(t, ID(7), v)

	v, ok = l.AdvanceTo(100)
	require.False(t, ok)
	_ = v
}

func TestLeafBinarySearchAdvanceTo(t *testing.T) {
	var long []ID
	for i := 0; i < 1000; i++ {
		long = append(long, ID(i*2))
	}
	l := Leaf(long)
	v, ok := l.AdvanceTo(777)
	require.True(t, ok)
	require.Equal(t, ID(778), v)
}

func TestAnd(t *testing.T) {
	a := Leaf(ids(1, 2, 3, 5, 8, 13))
	b := Leaf(ids(2, 3, 4, 8, 21))

	got := Collect(And(a, b))
	require.Equal(t, ids(2, 3, 8), got)
}

func TestAndEmptyResult(t *testing.T) {
	a := Leaf(ids(1, 2))
	b := Leaf(ids(3, 4))
	require.Empty(t, Collect(And(a, b)))
}

func TestDiff(t *testing.T) {
	a := Leaf(ids(1, 2, 3, 4, 5))
	b := Leaf(ids(2, 4))

	got := Collect(Diff(a, b))
	require.Equal(t, ids(1, 3, 5), got)
}

func TestDiffNoOverlap(t *testing.T) {
	a := Leaf(ids(1, 2, 3))
	b := Leaf(ids(10, 20))
	require.Equal(t, ids(1, 2, 3), Collect(Diff(a, b)))
}

func TestAndAdvanceToSkipsAhead(t *testing.T) {
	a := Leaf(ids(1, 2, 3, 4, 5, 6))
	b := Leaf(ids(1, 2, 3, 4, 5, 6))
	combined := And(a, b)

	v, ok := combined.AdvanceTo(4)
	require.True(t, ok)
	require.Equal(t, ID(4), v)

	v, ok = combined.Next()
	require.True(t, ok)
	require.Equal(t, ID(5), v)
}

func TestThreeWayAndViaNesting(t *testing.T) {
	a := Leaf(ids(1, 2, 3, 4, 5, 6, 7, 8))
	b := Leaf(ids(2, 3, 4, 5, 6, 7))
	c := Leaf(ids(3, 4, 5, 6))

	got := Collect(And(And(a, b), c))
	require.Equal(t, ids(3, 4, 5, 6), got)
}
