package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nog-wm/nog/graph"
)

func TestNodesAndEdgesThenRebuildRoundTrips(t *testing.T) {
	g := graph.New()
	row, err := g.AddRow(g.Root())
	require.NoError(t, err)
	w1, err := g.AddWindow(row, 100)
	require.NoError(t, err)
	w2, err := g.AddWindow(row, 200)
	require.NoError(t, err)

	nodes := g.Nodes()
	edges := g.Edges()

	g2 := graph.Rebuild(g.Root(), nodes, edges)

	assert.False(t, g2.Dirty())
	assert.Equal(t, g.MaxID(), g2.MaxID())

	children := g2.GetChildren(row)
	assert.ElementsMatch(t, []graph.NodeID{w1, w2}, children)

	n, ok := g2.Node(w1)
	require.True(t, ok)
	assert.True(t, n.IsWindow())
	assert.Equal(t, graph.WindowID(100), n.WindowID())
}

func TestRebuildPreservesEdgeOrderWithinParent(t *testing.T) {
	g := graph.New()
	a, err := g.AddWindow(g.Root(), 1)
	require.NoError(t, err)
	b, err := g.AddWindow(g.Root(), 2)
	require.NoError(t, err)
	c, err := g.AddWindow(g.Root(), 3)
	require.NoError(t, err)

	g2 := graph.Rebuild(g.Root(), g.Nodes(), g.Edges())
	assert.Equal(t, []graph.NodeID{a, b, c}, g2.GetChildren(g.Root()))
}
