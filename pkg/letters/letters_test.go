package letters

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexOf(t *testing.T) {
	i, ok := IndexOf('C')
	require.True(t, ok)
	require.Equal(t, Index(2), i)
	require.Equal(t, byte('C'), i.Letter())

	_, ok = IndexOf('1')
	require.False(t, ok)
}

func TestSetOperations(t *testing.T) {
	a := NewSet(0, 1, 2) // A, B, C
	b := NewSet(1, 2, 3) // B, C, D

	require.Equal(t, NewSet(0, 1, 2, 3), a.Union(b))
	require.Equal(t, NewSet(1, 2), a.Intersect(b))
	require.Equal(t, NewSet(0), a.Difference(b))
	require.Equal(t, 3, a.Size())
	require.False(t, a.Empty())
	require.True(t, Set(0).Empty())
	require.Equal(t, []Index{0, 1, 2}, a.Letters())
}

func TestInventoryEntriesAndTotal(t *testing.T) {
	var inv Inventory
	inv.Add(0, 3) // A:3
	inv.Add(4, 1) // E:1

	require.Equal(t, 3, inv.Count(0))
	require.Equal(t, 0, inv.Count(1))
	require.Equal(t, 4, inv.Total())
	require.Equal(t, []Entry{{Letter: 0, Count: 3}, {Letter: 4, Count: 1}}, inv.Entries())
	require.Equal(t, NewSet(0, 4), inv.LetterSet())
}

func TestInventoryLetterSetEmptyIffTotalZero(t *testing.T) {
	var inv Inventory
	require.True(t, inv.LetterSet().Empty())
	require.Equal(t, 0, inv.Total())

	inv.Add(5, 1)
	require.False(t, inv.LetterSet().Empty())
	require.NotEqual(t, 0, inv.Total())
}

func TestProduct(t *testing.T) {
	var a, b Inventory
	a.Add(0, 2)
	a.Add(1, 3)
	b.Add(0, 5)
	b.Add(2, 1)

	p := Product(a, b)
	require.Equal(t, 10, p.Count(0))
	require.Equal(t, 0, p.Count(1))
	require.Equal(t, 0, p.Count(2))
	require.Equal(t, 10, p.Total())
}
