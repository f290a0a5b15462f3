// Package wm implements the per-display ordered set of workspaces, the
// manage/unmanage decision logic, and the per-window cleanup registry
// that undoes manage's side effects.
package wm

import (
	"github.com/nog-wm/nog/config"
	"github.com/nog-wm/nog/errs"
	"github.com/nog-wm/nog/geom"
	"github.com/nog-wm/nog/graph"
	"github.com/nog-wm/nog/platform"
	"github.com/nog-wm/nog/workspace"
)

// LayoutHook is the narrow view of the Runtime bridge's layout callback
// that WindowManager needs: a single entry point invoked with a string
// discriminator, never the whole Runtime.
type LayoutHook interface {
	Invoke(eventName string, win graph.WindowID)
}

// NopHook discards every call; used where no script runtime is wired
// (tests, or a daemon run with scripting disabled).
type NopHook struct{}

func (NopHook) Invoke(string, graph.WindowID) {}

// WindowCleanup holds the deferred actions manage recorded for a window,
// run on unmanage, hibernate, or process exit.
type WindowCleanup struct {
	RestoreDecorations platform.RestoreFunc
	RestoreTransform   func() error
}

// WindowManager owns an ordered sequence of workspaces, tracks which one
// is focused, and keeps a cleanup entry per managed window.
type WindowManager struct {
	Workspaces         []*workspace.Workspace
	FocusedWorkspaceID workspace.ID
	windowCleanup      map[graph.WindowID]WindowCleanup
	Hook               LayoutHook
}

// New returns a WindowManager with a single, empty, focused workspace.
func New(hook LayoutHook) *WindowManager {
	if hook == nil {
		hook = NopHook{}
	}
	ws := workspace.New(0, "1")
	return &WindowManager{
		Workspaces:         []*workspace.Workspace{ws},
		FocusedWorkspaceID: 0,
		windowCleanup:      map[graph.WindowID]WindowCleanup{},
		Hook:               hook,
	}
}

// FocusedWorkspace returns the currently focused workspace, or nil if
// FocusedWorkspaceID names none (should not happen under normal use).
func (wm *WindowManager) FocusedWorkspace() *workspace.Workspace {
	for _, ws := range wm.Workspaces {
		if ws.ID == wm.FocusedWorkspaceID {
			return ws
		}
	}
	return nil
}

// Manage inserts win into the focused workspace's graph, positioned per
// the focused node, strips decorations if configured, records the
// cleanup needed to undo both, focuses the new node, fires the "managed"
// hook, and rerenders.
func (wm *WindowManager) Manage(api platform.API, cfg config.Config, renderArea geom.Rect, win platform.Window) error {
	ws := wm.FocusedWorkspace()
	if ws == nil {
		return errs.NewWorkspaceError(errs.WindowNodeNotFound, win.ID())
	}

	if err := wm.recordCleanup(cfg, win); err != nil {
		return err
	}

	nodeID, err := insertManaged(ws, graph.WindowID(win.ID()))
	if err != nil {
		return err
	}

	ws.FocusedNodeID = &nodeID
	wm.Hook.Invoke("managed", graph.WindowID(win.ID()))
	if err := ws.Render(api, renderArea); err != nil {
		return err
	}
	ws.Graph.ClearDirty()
	return nil
}

// recordCleanup captures win's pre-manage transform and, if configured,
// strips its decorations, storing both inverses in windowCleanup. Shared
// by Manage and AdoptExisting.
func (wm *WindowManager) recordCleanup(cfg config.Config, win platform.Window) error {
	pos, err := win.Position()
	if err != nil {
		return errs.NewPlatformError("get_position", err)
	}
	size, err := win.Size()
	if err != nil {
		return errs.NewPlatformError("get_size", err)
	}
	cleanup := WindowCleanup{
		RestoreTransform: func() error {
			if err := win.Reposition(pos); err != nil {
				return err
			}
			return win.Resize(size)
		},
	}

	if cfg.RemoveDecorations {
		restore, err := win.RemoveDecorations()
		if err != nil {
			return errs.NewPlatformError("remove_decorations", err)
		}
		cleanup.RestoreDecorations = restore
	}

	wm.windowCleanup[graph.WindowID(win.ID())] = cleanup
	return nil
}

// AdoptExisting records manage's side effects (cleanup capture,
// decoration stripping, "managed" hook) for a window whose node already
// exists in the graph -- used when a loaded session reintroduces
// windows that are already laid out: LoadSession re-manages every
// Window node it finds.
func (wm *WindowManager) AdoptExisting(cfg config.Config, win platform.Window) error {
	if err := wm.recordCleanup(cfg, win); err != nil {
		return err
	}
	wm.Hook.Invoke("managed", graph.WindowID(win.ID()))
	return nil
}

// insertManaged places a new Window(id) node as a sibling immediately
// after the focused node if it is a Window, or appended to the root
// otherwise.
func insertManaged(ws *workspace.Workspace, win graph.WindowID) (graph.NodeID, error) {
	g := ws.Graph

	if ws.FocusedNodeID != nil {
		if n, ok := g.Node(*ws.FocusedNodeID); ok && n.IsWindow() {
			if parent, ok := g.Parent(*ws.FocusedNodeID); ok {
				siblings := g.GetChildren(parent)
				pos := indexOf(siblings, *ws.FocusedNodeID)
				if pos >= 0 {
					id, err := g.AddWindow(parent, win)
					if err != nil {
						return 0, err
					}
					index := pos + 1
					if err := g.MoveNode(parent, id, &index); err != nil {
						return 0, err
					}
					return id, nil
				}
			}
		}
	}
	return g.AddWindow(g.Root(), win)
}

func indexOf(ids []graph.NodeID, target graph.NodeID) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}

// Unmanage runs the recorded cleanup for win, removes the Window node
// for win from every workspace (idempotent), clears focus if it pointed
// at the removed node, fires the "unmanaged" hook, and rerenders every
// workspace whose graph came out dirty.
func (wm *WindowManager) Unmanage(api platform.API, renderArea geom.Rect, win graph.WindowID) error {
	if cleanup, ok := wm.windowCleanup[win]; ok {
		if cleanup.RestoreDecorations != nil {
			errs.Log(cleanup.RestoreDecorations())
		}
		if cleanup.RestoreTransform != nil {
			errs.Log(cleanup.RestoreTransform())
		}
		delete(wm.windowCleanup, win)
	}

	for _, ws := range wm.Workspaces {
		nodeID, found := ws.Graph.GetWindowNode(win)
		if !found {
			continue
		}
		if err := ws.Graph.DeleteNode(nodeID); err != nil {
			return err
		}
		if ws.FocusedNodeID != nil && *ws.FocusedNodeID == nodeID {
			ws.FocusedNodeID = nil
		}
	}

	wm.Hook.Invoke("unmanaged", win)

	for _, ws := range wm.Workspaces {
		if ws.Graph.Dirty() {
			if err := ws.Render(api, renderArea); err != nil {
				return err
			}
			ws.Graph.ClearDirty()
		}
	}
	return nil
}
