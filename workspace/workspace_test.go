package workspace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nog-wm/nog/config"
	"github.com/nog-wm/nog/geom"
	"github.com/nog-wm/nog/graph"
	"github.com/nog-wm/nog/platform"
	"github.com/nog-wm/nog/workspace"
)

func TestFocusWindowFailsWhenAbsent(t *testing.T) {
	ws := workspace.New(0, "main")
	err := ws.FocusWindow(999)
	require.Error(t, err)
}

func TestFocusWindowThenDirectionRoundTrip(t *testing.T) {
	ws := workspace.New(0, "main")
	_, err := ws.Graph.AddWindow(ws.Graph.Root(), 100)
	require.NoError(t, err)
	_, err = ws.Graph.AddWindow(ws.Graph.Root(), 200)
	require.NoError(t, err)

	require.NoError(t, ws.FocusWindow(100))

	moved, err := ws.FocusInDirection(graph.Right)
	require.NoError(t, err)
	assert.True(t, moved)

	win, ok := ws.Graph.Node(*ws.FocusedNodeID)
	require.True(t, ok)
	assert.Equal(t, graph.WindowID(200), win.WindowID())
}

func TestSwapInDirectionSwapsFocusedWithSibling(t *testing.T) {
	ws := workspace.New(0, "main")
	n100, _ := ws.Graph.AddWindow(ws.Graph.Root(), 100)
	ws.Graph.AddWindow(ws.Graph.Root(), 200)
	ws.FocusedNodeID = &n100

	swapped, err := ws.SwapInDirection(graph.Right)
	require.NoError(t, err)
	assert.True(t, swapped)

	children := ws.Graph.GetChildren(ws.Graph.Root())
	require.Len(t, children, 2)
	first, _ := ws.Graph.Node(children[0])
	assert.Equal(t, graph.WindowID(200), first.WindowID())
}

// Single row, two windows: renders as reposition/resize calls in
// left-to-right order.
func TestRenderAppliesPlatformCallsInOrder(t *testing.T) {
	ws := workspace.New(0, "main")
	ws.Graph.AddWindow(ws.Graph.Root(), 100)
	ws.Graph.AddWindow(ws.Graph.Root(), 200)

	m := platform.NewMock()
	require.NoError(t, ws.Render(m, geom.NewRect(0, 0, 1920, 1040)))

	calls := m.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, "reposition(100,(0,0))", calls[0].String())
	assert.Equal(t, "resize(100,(960,1040))", calls[1].String())
	assert.Equal(t, "reposition(200,(960,0))", calls[2].String())
}

func TestRenderFullscreenPlacesOnlyFocusedWindow(t *testing.T) {
	ws := workspace.New(0, "main")
	n100, _ := ws.Graph.AddWindow(ws.Graph.Root(), 100)
	ws.Graph.AddWindow(ws.Graph.Root(), 200)
	ws.FocusedNodeID = &n100
	ws.WorkspaceState = workspace.Fullscreen

	m := platform.NewMock()
	require.NoError(t, ws.Render(m, geom.NewRect(0, 0, 1920, 1040)))

	calls := m.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "reposition(100,(0,0))", calls[0].String())
	assert.Equal(t, "resize(100,(1920,1040))", calls[1].String())
}

func TestGetRenderAreaSubtractsBarAndGap(t *testing.T) {
	cfg := config.Defaults()
	cfg.DisplayAppBar = true
	cfg.BarHeight = 20
	cfg.OuterGap = 10

	area := workspace.GetRenderArea(geom.NewRect(0, 0, 1920, 1080), cfg)
	assert.Equal(t, geom.NewRect(10, 30, 1900, 1040), area)
}

func TestGetRenderAreaNoBarNoGap(t *testing.T) {
	cfg := config.Defaults()
	cfg.DisplayAppBar = false
	cfg.OuterGap = 0

	area := workspace.GetRenderArea(geom.NewRect(0, 0, 1920, 1080), cfg)
	assert.Equal(t, geom.NewRect(0, 0, 1920, 1080), area)
}
