package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nog-wm/nog/geom"
	"github.com/nog-wm/nog/graph"
)

// Single row, two windows: renders as an even left/right split.
func TestRenderTwoWindowsSplitEvenly(t *testing.T) {
	g := graph.New()
	root := g.Root()
	_, err := g.AddWindow(root, 100)
	require.NoError(t, err)
	_, err = g.AddWindow(root, 200)
	require.NoError(t, err)

	placements := g.Render(geom.NewRect(0, 0, 1920, 1040))
	require.Len(t, placements, 2)
	assert.Equal(t, geom.NewRect(0, 0, 960, 1040), placements[0].Rect)
	assert.Equal(t, graph.WindowID(100), placements[0].WindowID)
	assert.Equal(t, geom.NewRect(960, 0, 960, 1040), placements[1].Rect)
	assert.Equal(t, graph.WindowID(200), placements[1].WindowID)
}

// Nested column splits the right half vertically.
func TestRenderNestedColumn(t *testing.T) {
	g := graph.New()
	root := g.Root()
	_, err := g.AddWindow(root, 100)
	require.NoError(t, err)
	w200, err := g.AddWindow(root, 200)
	require.NoError(t, err)

	idx := 1
	col, err := g.AddCol(root)
	require.NoError(t, err)
	require.NoError(t, g.MoveNode(root, col, &idx))
	require.NoError(t, g.MoveNode(col, w200, nil))
	_, err = g.AddWindow(col, 300)
	require.NoError(t, err)

	byWin := map[graph.WindowID]geom.Rect{}
	for _, p := range g.Render(geom.NewRect(0, 0, 1920, 1040)) {
		byWin[p.WindowID] = p.Rect
	}

	assert.Equal(t, geom.NewRect(0, 0, 960, 1040), byWin[100])
	assert.Equal(t, geom.NewRect(960, 0, 960, 520), byWin[200])
	assert.Equal(t, geom.NewRect(960, 520, 960, 520), byWin[300])
}

// Property 11: a Group with zero children yields no placements.
func TestRenderEmptyGroupYieldsNoPlacements(t *testing.T) {
	g := graph.New()
	placements := g.Render(geom.NewRect(0, 0, 800, 600))
	assert.Empty(t, placements)
}

// Property 12: width < len(children) still places every child with a
// nonnegative width summing to the total.
func TestRenderNarrowAreaNeverGoesNegative(t *testing.T) {
	g := graph.New()
	root := g.Root()
	for i := 0; i < 5; i++ {
		_, err := g.AddWindow(root, graph.WindowID(i))
		require.NoError(t, err)
	}

	placements := g.Render(geom.NewRect(0, 0, 3, 100))
	require.Len(t, placements, 5)
	total := 0
	for _, p := range placements {
		assert.GreaterOrEqual(t, p.Rect.Size.W, 0)
		total += p.Rect.Size.W
	}
	assert.Equal(t, 3, total)
}
