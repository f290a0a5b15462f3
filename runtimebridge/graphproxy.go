// Package runtimebridge exposes the proxy objects the scripting Runtime
// binds into its global scope: a narrow view of one workspace's
// LayoutGraph and of the shared Config, never the Workspace or State
// themselves.
package runtimebridge

import (
	"fmt"

	"github.com/nog-wm/nog/graph"
	"github.com/nog-wm/nog/workspace"
)

// GraphProxy exposes LayoutGraph operations against a single workspace's
// graph, in script-friendly (int/uint64) types rather than the
// package's own NodeID/WindowID.
type GraphProxy struct {
	ws *workspace.Workspace
}

// NewGraphProxy binds a proxy to ws. nogd's graph accessor for scripts
// builds a fresh proxy on each call. Layout hooks are not given a proxy:
// they receive only the event name and the window id.
func NewGraphProxy(ws *workspace.Workspace) *GraphProxy {
	return &GraphProxy{ws: ws}
}

func (p *GraphProxy) AddRow(parent int) (int, error) {
	id, err := p.ws.Graph.AddRow(graph.NodeID(parent))
	return int(id), err
}

func (p *GraphProxy) AddCol(parent int) (int, error) {
	id, err := p.ws.Graph.AddCol(graph.NodeID(parent))
	return int(id), err
}

func (p *GraphProxy) AddWindow(parent int, win uint64) (int, error) {
	id, err := p.ws.Graph.AddWindow(graph.NodeID(parent), graph.WindowID(win))
	return int(id), err
}

func (p *GraphProxy) DeleteNode(id int) error {
	return p.ws.Graph.DeleteNode(graph.NodeID(id))
}

func (p *GraphProxy) MoveNode(newParent, node int, index *int) error {
	return p.ws.Graph.MoveNode(graph.NodeID(newParent), graph.NodeID(node), index)
}

func (p *GraphProxy) SwapNodes(a, b int) error {
	return p.ws.Graph.SwapNodes(graph.NodeID(a), graph.NodeID(b))
}

func (p *GraphProxy) GetChildren(parent int) []int {
	children := p.ws.Graph.GetChildren(graph.NodeID(parent))
	out := make([]int, len(children))
	for i, c := range children {
		out[i] = int(c)
	}
	return out
}

func (p *GraphProxy) GetWindowNode(win uint64) (int, bool) {
	id, ok := p.ws.Graph.GetWindowNode(graph.WindowID(win))
	return int(id), ok
}

func (p *GraphProxy) GetWindowNodeInDirection(start int, dir string) (int, bool) {
	d, err := parseDirection(dir)
	if err != nil {
		return 0, false
	}
	id, ok := p.ws.Graph.GetWindowNodeInDirection(graph.NodeID(start), d)
	return int(id), ok
}

func (p *GraphProxy) Root() int { return int(p.ws.Graph.Root()) }

func parseDirection(s string) (graph.Direction, error) {
	switch s {
	case "left", "Left":
		return graph.Left, nil
	case "right", "Right":
		return graph.Right, nil
	case "up", "Up":
		return graph.Up, nil
	case "down", "Down":
		return graph.Down, nil
	default:
		return 0, fmt.Errorf("runtimebridge: unknown direction %q", s)
	}
}
