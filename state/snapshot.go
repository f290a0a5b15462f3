package state

import (
	"hash/fnv"

	"github.com/nog-wm/nog/graph"
	"github.com/nog-wm/nog/workspace"
)

// monitorID maps a platform.Monitor's string id (an opaque OS handle
// rendered as a string) onto the uint the GetState schema expects.
func monitorID(id string) uint {
	h := fnv.New32a()
	h.Write([]byte(id))
	return uint(h.Sum32())
}

// The DTOs below are the JSON shapes returned by the IPC server's
// GetState request.

type WindowSnapshot struct {
	ID uint64 `json:"id"`
}

type WorkspaceSnapshot struct {
	ID              uint32           `json:"id"`
	Layout          string           `json:"layout"`
	FocusedWindowID *uint64          `json:"focused_window_id,omitempty"`
	Windows         []WindowSnapshot `json:"windows"`
}

type DisplaySnapshot struct {
	ID                 string              `json:"id"`
	MonitorID          uint                `json:"monitor_id"`
	FocusedWorkspaceID uint32              `json:"focused_workspace_id"`
	Workspaces         []WorkspaceSnapshot `json:"workspaces"`
}

type Snapshot struct {
	FocusedDisplayID string            `json:"focused_display_id"`
	Displays         []DisplaySnapshot `json:"displays"`
}

func windowsOf(ws *workspace.Workspace) []graph.WindowID {
	var out []graph.WindowID
	var walk func(id graph.NodeID)
	walk = func(id graph.NodeID) {
		n, ok := ws.Graph.Node(id)
		if !ok {
			return
		}
		if n.IsWindow() {
			out = append(out, n.WindowID())
			return
		}
		for _, c := range ws.Graph.GetChildren(id) {
			walk(c)
		}
	}
	walk(ws.Graph.Root())
	return out
}

// Snapshot renders the current State into the GetState JSON payload.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := Snapshot{FocusedDisplayID: string(s.focusedDisplayID)}
	for _, d := range s.displays {
		ds := DisplaySnapshot{ID: string(d.ID)}
		if d.Monitor != nil {
			ds.MonitorID = monitorID(d.Monitor.ID())
		}
		for i, ws := range d.WM.Workspaces {
			wsSnap := WorkspaceSnapshot{ID: uint32(ws.ID), Layout: ws.WorkspaceState.String()}
			if ws.FocusedNodeID != nil {
				if n, ok := ws.Graph.Node(*ws.FocusedNodeID); ok && n.IsWindow() {
					id := uint64(n.WindowID())
					wsSnap.FocusedWindowID = &id
				}
			}
			for _, win := range windowsOf(ws) {
				wsSnap.Windows = append(wsSnap.Windows, WindowSnapshot{ID: uint64(win)})
			}
			if ws.ID == d.WM.FocusedWorkspaceID {
				ds.FocusedWorkspaceID = uint32(i)
			}
			ds.Workspaces = append(ds.Workspaces, wsSnap)
		}
		out.Displays = append(out.Displays, ds)
	}
	return out
}
