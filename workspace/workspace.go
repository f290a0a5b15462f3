// Package workspace implements the Workspace and Display containers: a
// LayoutGraph plus focus state, and a monitor-bound grouping of
// workspaces with a render-area calculation.
package workspace

import (
	"github.com/nog-wm/nog/config"
	"github.com/nog-wm/nog/errs"
	"github.com/nog-wm/nog/geom"
	"github.com/nog-wm/nog/graph"
	"github.com/nog-wm/nog/platform"
)

// State distinguishes a normal tiled workspace from one whose focused
// window is shown fullscreen.
type State int

const (
	Normal State = iota
	Fullscreen
)

func (s State) String() string {
	switch s {
	case Fullscreen:
		return "fullscreen"
	default:
		return "normal"
	}
}

// ID identifies a Workspace within a WindowManager.
type ID uint32

// Workspace owns one LayoutGraph and the currently focused node, if any.
type Workspace struct {
	ID            ID
	Graph         *graph.Graph
	FocusedNodeID *graph.NodeID
	DisplayName   string
	WorkspaceState State
}

// New returns an empty, normal-state workspace with a fresh LayoutGraph.
func New(id ID, displayName string) *Workspace {
	return &Workspace{ID: id, Graph: graph.New(), DisplayName: displayName, WorkspaceState: Normal}
}

// HasWindow reports whether win is present anywhere in the graph.
func (w *Workspace) HasWindow(win graph.WindowID) bool {
	_, ok := w.Graph.GetWindowNode(win)
	return ok
}

// FocusWindow sets focus to the node carrying win. Fails if absent.
func (w *Workspace) FocusWindow(win graph.WindowID) error {
	id, ok := w.Graph.GetWindowNode(win)
	if !ok {
		return errs.NewWorkspaceError(errs.WindowNodeNotFound, uint64(win))
	}
	w.FocusedNodeID = &id
	return nil
}

// FocusInDirection moves focus to the Window node reached by directional
// navigation from the currently focused node. No-op (returns false, nil)
// if there is no focus or no node in that direction.
func (w *Workspace) FocusInDirection(dir graph.Direction) (bool, error) {
	if w.FocusedNodeID == nil {
		return false, nil
	}
	next, ok := w.Graph.GetWindowNodeInDirection(*w.FocusedNodeID, dir)
	if !ok {
		return false, nil
	}
	w.FocusedNodeID = &next
	return true, nil
}

// SwapInDirection swaps the focused Window node with the one reached by
// directional navigation. Both nodes must exist; focus follows the
// swapped identity of the originally-focused node (its GraphNodeId is
// unchanged by SwapNodes, only edge targets move).
func (w *Workspace) SwapInDirection(dir graph.Direction) (bool, error) {
	if w.FocusedNodeID == nil {
		return false, nil
	}
	other, ok := w.Graph.GetWindowNodeInDirection(*w.FocusedNodeID, dir)
	if !ok {
		return false, nil
	}
	if err := w.Graph.SwapNodes(*w.FocusedNodeID, other); err != nil {
		return false, err
	}
	return true, nil
}

// Render lays the workspace's graph out into renderArea and applies the
// result to the platform, unless the workspace is Fullscreen, in which
// case only the focused window is placed, occupying the whole area.
func (w *Workspace) Render(api platform.API, renderArea geom.Rect) error {
	if w.WorkspaceState == Fullscreen && w.FocusedNodeID != nil {
		node, ok := w.Graph.Node(*w.FocusedNodeID)
		if ok && node.IsWindow() {
			return applyPlacement(api, graph.Placement{WindowID: node.WindowID(), Rect: renderArea})
		}
	}

	for _, p := range w.Graph.Render(renderArea) {
		if err := applyPlacement(api, p); err != nil {
			return err
		}
	}
	return nil
}

func applyPlacement(api platform.API, p graph.Placement) error {
	win, err := api.NewWindow(uint64(p.WindowID))
	if err != nil {
		return errs.NewPlatformError("new_window", err)
	}
	if err := win.Reposition(p.Rect.Pos); err != nil {
		return errs.NewPlatformError("reposition", err)
	}
	if err := win.Resize(p.Rect.Size); err != nil {
		return errs.NewPlatformError("resize", err)
	}
	return nil
}

// GetRenderArea computes the area available to a workspace on this
// display: the monitor's work area minus the bar height (if
// display_app_bar is set) and minus outer_gap on every side.
func GetRenderArea(workArea geom.Rect, cfg config.Config) geom.Rect {
	area := workArea
	if cfg.DisplayAppBar {
		h := int(cfg.BarHeight)
		area = geom.NewRect(area.Pos.X, area.Pos.Y+h, area.Size.W, area.Size.H-h)
	}
	return area.Inset(int(cfg.OuterGap))
}
