package puzzlegrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuild2x2(t *testing.T) {
	occ := Rectangle(2, 2, nil)
	layout := Build(occ)

	require.Len(t, layout.Slots, 4) // 2 across + 2 down
	for _, s := range layout.Slots {
		require.Equal(t, 2, s.Len())
	}

	for c := range occ {
		require.GreaterOrEqual(t, layout.AcrossOf[c], 0)
		require.GreaterOrEqual(t, layout.DownOf[c], 0)
	}
}

func TestBuildExcludesSingleCellRuns(t *testing.T) {
	// An L-shape: (0,0),(1,0),(0,1). (0,1) has no across neighbor and
	// (1,0) has no down neighbor, so their respective single-cell runs
	// are excluded.
	occ := map[Coord]bool{
		{0, 0}: true, {1, 0}: true,
		{0, 1}: true,
	}
	layout := Build(occ)

	// Across: row0 = (0,0),(1,0) length 2; row1 = (0,1) alone, excluded.
	// Down: col0 = (0,0),(0,1) length 2; col1 = (1,0) alone, excluded.
	require.Len(t, layout.Slots, 2)

	require.Equal(t, -1, layout.DownOf[Coord{1, 0}])
	require.Equal(t, -1, layout.AcrossOf[Coord{0, 1}])
}

func TestBuildDiamondSingleAxisCells(t *testing.T) {
	// A plus-shape diamond: center crosses both axes, tips only one.
	occ := map[Coord]bool{
		{1, 0}: true,
		{0, 1}: true, {1, 1}: true, {2, 1}: true,
		{1, 2}: true,
	}
	layout := Build(occ)

	// Across run at y=1: (0,1),(1,1),(2,1) length 3.
	// Down run at x=1: (1,0),(1,1),(1,2) length 3.
	require.Len(t, layout.Slots, 2)

	require.Equal(t, -1, layout.AcrossOf[Coord{1, 0}])
	require.GreaterOrEqual(t, layout.DownOf[Coord{1, 0}], 0)

	require.GreaterOrEqual(t, layout.AcrossOf[Coord{1, 1}], 0)
	require.GreaterOrEqual(t, layout.DownOf[Coord{1, 1}], 0)
}

func TestRectangleRemovesBlackSquares(t *testing.T) {
	black := map[Coord]bool{{1, 1}: true}
	occ := Rectangle(3, 3, black)
	require.Len(t, occ, 8)
	require.False(t, occ[Coord{1, 1}])
}
