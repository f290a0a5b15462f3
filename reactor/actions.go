package reactor

import (
	"errors"

	"github.com/nog-wm/nog/errs"
	"github.com/nog-wm/nog/graph"
	"github.com/nog-wm/nog/state"
	"github.com/nog-wm/nog/workspace"
)

// handleAction is the exhaustive Action dispatch table.
func (r *Reactor) handleAction(a state.Action) {
	switch act := a.(type) {
	case state.SaveSessionAction:
		r.saveSession()
	case state.LoadSessionAction:
		r.loadSession()
	case state.ShowBarsAction:
		r.forEachDisplay(func(d *state.Display) error {
			if r.Bar == nil {
				return nil
			}
			return r.Bar.Show(d)
		})
	case state.HideBarsAction:
		r.forEachDisplay(func(d *state.Display) error {
			if r.Bar == nil {
				return nil
			}
			return r.Bar.Hide(d)
		})
	case state.ShowTaskbarsAction:
		r.setTaskbarsVisible(true)
	case state.HideTaskbarsAction:
		r.setTaskbarsVisible(false)
	case state.AwakeAction:
		r.awake()
	case state.HibernateAction:
		r.hibernate()
	case state.SimulateKeyPressAction:
		errs.Log(r.Platform.SimulateKeyPress(act.Key, act.Modifiers))
	case state.WindowAction:
		r.handleWindowAction(act)
	case state.WorkspaceAction:
		r.handleWorkspaceAction(act)
	case state.UpdateConfigAction:
		if act.Update != nil {
			r.State.Config.Update(act.Update)
		}
	case state.CreateKeybindingAction:
		r.Keybinding.Register(act.CombinationID)
		if r.Runtime != nil && act.Callback != nil {
			r.Runtime.RegisterCallback(act.CombinationID, act.Callback)
		}
	case state.RemoveKeybindingAction:
		r.Keybinding.Unregister(act.CombinationID)
	case state.ExecuteLuaAction:
		r.executeLua(act)
	}
}

func (r *Reactor) forEachDisplay(fn func(d *state.Display) error) {
	for _, d := range r.State.Displays() {
		if err := fn(d); err != nil {
			errs.Log(err)
		}
	}
}

func (r *Reactor) setTaskbarsVisible(visible bool) {
	r.forEachDisplay(func(d *state.Display) error {
		win, err := r.Platform.NewWindow(d.TaskbarWindow)
		if err != nil {
			return errs.NewPlatformError("new_window", err)
		}
		if visible {
			return win.Show()
		}
		return win.Hide()
	})
}

// awake restores bars and taskbars per config and marks the process
// awake.
func (r *Reactor) awake() {
	cfg := r.State.Config.Get()
	if cfg.DisplayAppBar {
		r.handleAction(state.ShowBarsAction{})
	}
	if !cfg.RemoveTaskBar {
		r.setTaskbarsVisible(true)
	}
	r.State.SetPower(state.Awake)
}

// hibernate hides bars, shows taskbars, runs per-display cleanup, and
// marks the process hibernated.
func (r *Reactor) hibernate() {
	r.handleAction(state.HideBarsAction{})
	r.setTaskbarsVisible(true)
	r.forEachDisplay(func(d *state.Display) error {
		return d.Cleanup.Run()
	})
	r.State.SetPower(state.Hibernated)
}

func (r *Reactor) handleWindowAction(act state.WindowAction) {
	win, ok := r.resolveTarget(act.Target)
	if !ok {
		return
	}

	switch act.Kind {
	case state.WindowFocus:
		d, ok := r.State.DisplayOf(uint64(win))
		if !ok {
			return
		}
		for _, ws := range d.WM.Workspaces {
			if ws.HasWindow(win) {
				errs.Log(ws.FocusWindow(win))
				break
			}
		}
		errs.Log(r.focusPlatformWindow(win))

	case state.WindowClose:
		errs.Log(r.closePlatformWindow(win))

	case state.WindowManage:
		d := r.State.FocusedDisplay()
		if d == nil {
			return
		}
		area, err := r.renderAreaFor(d)
		if err != nil {
			errs.Log(err)
			return
		}
		platWin, err := r.Platform.NewWindow(uint64(win))
		if err != nil {
			errs.Log(err)
			return
		}
		errs.Log(d.WM.Manage(r.Platform, r.State.Config.Get(), area, platWin))

	case state.WindowUnmanage:
		for _, d := range r.State.Displays() {
			area, err := r.renderAreaFor(d)
			if err != nil {
				errs.Log(err)
				continue
			}
			errs.Log(d.WM.Unmanage(r.Platform, area, win))
		}
	}
}

// resolveTarget returns target if set, otherwise the id of the current
// foreground window: a Manage/Unmanage action with no explicit target
// operates on whatever window currently has focus.
func (r *Reactor) resolveTarget(target *graph.WindowID) (graph.WindowID, bool) {
	if target != nil {
		return *target, true
	}
	fg, err := r.Platform.ForegroundWindow()
	if err != nil {
		errs.Log(err)
		return 0, false
	}
	return graph.WindowID(fg.ID()), true
}

func (r *Reactor) focusPlatformWindow(win graph.WindowID) error {
	w, err := r.Platform.NewWindow(uint64(win))
	if err != nil {
		return err
	}
	return w.Focus()
}

func (r *Reactor) closePlatformWindow(win graph.WindowID) error {
	w, err := r.Platform.NewWindow(uint64(win))
	if err != nil {
		return err
	}
	return w.Close()
}

func (r *Reactor) handleWorkspaceAction(act state.WorkspaceAction) {
	d := r.State.FocusedDisplay()
	if d == nil {
		return
	}

	switch act.Kind {
	case state.WorkspaceChange:
		d.WM.FocusedWorkspaceID = workspace.ID(act.WorkspaceIndex)

	case state.WorkspaceSetFullscreen:
		ws := d.WM.FocusedWorkspace()
		if ws == nil {
			return
		}
		if act.Fullscreen {
			ws.WorkspaceState = workspace.Fullscreen
		} else {
			ws.WorkspaceState = workspace.Normal
		}

	case state.WorkspaceSetName:
		if ws := d.WM.FocusedWorkspace(); ws != nil {
			ws.DisplayName = act.Name
		}

	case state.WorkspaceFocus:
		d.WM.FocusedWorkspaceID = workspace.ID(act.WorkspaceIndex)
		ws := d.WM.FocusedWorkspace()
		if ws == nil || ws.FocusedNodeID == nil {
			return
		}
		if n, ok := ws.Graph.Node(*ws.FocusedNodeID); ok && n.IsWindow() {
			win := n.WindowID()
			r.State.Events.Send(state.ActionEvent{Action: state.WindowAction{Kind: state.WindowFocus, Target: &win}})
		}

	case state.WorkspaceSwap:
		ws := d.WM.FocusedWorkspace()
		if ws == nil {
			return
		}
		errs.Log1(ws.SwapInDirection(act.Direction))
	}
}

func (r *Reactor) executeLua(act state.ExecuteLuaAction) {
	if r.Runtime == nil {
		if act.Callback != nil {
			act.Callback("", errs.NewRuntimeError(errors.New("no runtime configured")))
		}
		return
	}
	stdout, result, err := r.Runtime.Eval(act.Code, act.CaptureStdout)
	if act.Callback == nil {
		return
	}
	out := stdout
	if act.PrintType {
		out += result
	}
	act.Callback(out, err)
}

func (r *Reactor) saveSession() {
	if r.Session == nil {
		return
	}
	d := r.State.FocusedDisplay()
	if d == nil {
		return
	}
	errs.Log(r.Session.Save(d.WM.Workspaces))
}

func (r *Reactor) loadSession() {
	if r.Session == nil {
		return
	}
	d := r.State.FocusedDisplay()
	if d == nil {
		return
	}
	workspaces, err := r.Session.Load()
	if err != nil {
		errs.Log(err)
		return
	}
	d.WM.Workspaces = workspaces
	cfg := r.State.Config.Get()
	for _, ws := range workspaces {
		for _, win := range allWindows(ws) {
			platWin, err := r.Platform.NewWindow(uint64(win))
			if err != nil {
				errs.Log(err)
				continue
			}
			errs.Log(d.WM.AdoptExisting(cfg, platWin))
		}
	}
}

func allWindows(ws *workspace.Workspace) []graph.WindowID {
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
