// Package reactor implements the Reactor: the single consumer of the
// unified event stream, delegating to WindowManager, Workspace,
// LayoutGraph, and the platform shim on every event.
package reactor

import (
	"github.com/nog-wm/nog/errs"
	"github.com/nog-wm/nog/geom"
	"github.com/nog-wm/nog/graph"
	"github.com/nog-wm/nog/keybinding"
	"github.com/nog-wm/nog/platform"
	"github.com/nog-wm/nog/state"
	"github.com/nog-wm/nog/wm"
	"github.com/nog-wm/nog/workspace"
)

// SessionStore is the narrow view of a session codec the reactor needs:
// persist and restore one display's workspace list.
type SessionStore interface {
	Save(workspaces []*workspace.Workspace) error
	Load() ([]*workspace.Workspace, error)
}

// BarController starts and stops the out-of-process bar for a display.
type BarController interface {
	Show(d *state.Display) error
	Hide(d *state.Display) error
}

// Runtime is the narrow view of the embedded scripting runtime the
// reactor drives: the layout hook, keybinding callback dispatch, and
// code evaluation.
type Runtime interface {
	wm.LayoutHook
	RegisterCallback(id int, callable func())
	CallCallback(id int) error
	Eval(code string, captureStdout bool) (stdout string, result string, err error)
}

// Reactor owns State and every external collaborator it dispatches to.
// It is the sole structural mutator of displays/workspaces/graphs/
// config.
type Reactor struct {
	State      *state.State
	Platform   platform.API
	Keybinding *keybinding.Engine
	Session    SessionStore
	Runtime    Runtime
	Bar        BarController
}

// New constructs a Reactor. Any of Session/Runtime/Bar may be nil; the
// corresponding actions then do nothing and log nothing, except that an
// ExecuteLua action with no Runtime hands an error to its callback, so a
// daemon can be brought up incrementally during tests.
func New(st *state.State, api platform.API, kb *keybinding.Engine, session SessionStore, rt Runtime, bar BarController) *Reactor {
	return &Reactor{State: st, Platform: api, Keybinding: kb, Session: session, Runtime: rt, Bar: bar}
}

// Run consumes events until an ExitEvent is seen. Intended to run on
// the single reactor goroutine/thread for the life of the process.
func (r *Reactor) Run() {
	for {
		ev := r.State.Events.NextEvent()
		if _, ok := ev.(state.ExitEvent); ok {
			return
		}
		r.dispatch(ev)
		r.rerenderDirty()
	}
}

func (r *Reactor) dispatch(ev state.Event) {
	switch e := ev.(type) {
	case state.WindowEvent:
		r.handleWindowEvent(e)
	case state.KeybindingEvent:
		r.handleKeybindingEvent(e)
	case state.ActionEvent:
		r.handleAction(e.Action)
	case state.RenderGraphEvent:
		r.rerenderDirty()
	case state.DeferredFunctionEvent:
		if e.Fn != nil {
			e.Fn()
		}
	}
}

// renderAreaFor computes a display's current render area from its
// monitor work area and the live config.
func (r *Reactor) renderAreaFor(d *state.Display) (geom.Rect, error) {
	workArea, err := d.WorkArea()
	if err != nil {
		return geom.Rect{}, errs.NewPlatformError("get_work_area", err)
	}
	return workspace.GetRenderArea(workArea, r.State.Config.Get()), nil
}

// rerenderDirty rerenders every workspace whose graph is dirty, across
// every display, clearing the flag once rendered.
func (r *Reactor) rerenderDirty() {
	for _, d := range r.State.Displays() {
		area, err := r.renderAreaFor(d)
		if err != nil {
			errs.Log(err)
			continue
		}
		for _, ws := range d.WM.Workspaces {
			if !ws.Graph.Dirty() {
				continue
			}
			if err := ws.Render(r.Platform, area); err != nil {
				errs.Log(err)
			}
			ws.Graph.ClearDirty()
		}
	}
}

func (r *Reactor) handleWindowEvent(e state.WindowEvent) {
	cfg := r.State.Config.Get()
	switch e.Kind {
	case state.Created:
		if uint(e.Width) >= cfg.MinWidth && uint(e.Height) >= cfg.MinHeight {
			d := r.State.FocusedDisplay()
			if d == nil {
				return
			}
			area, err := r.renderAreaFor(d)
			if err != nil {
				errs.Log(err)
				return
			}
			if err := d.WM.Manage(r.Platform, cfg, area, e.Window); err != nil {
				errs.Log(err)
			}
		}
		r.invokeHook("created", graph.WindowID(e.Window.ID()))

	case state.Deleted, state.Minimized:
		win := graph.WindowID(e.Window.ID())
		for _, d := range r.State.Displays() {
			area, err := r.renderAreaFor(d)
			if err != nil {
				errs.Log(err)
				continue
			}
			if err := d.WM.Unmanage(r.Platform, area, win); err != nil {
				errs.Log(err)
			}
		}
		r.invokeHook("deleted", win)

	case state.FocusChanged:
		win := graph.WindowID(e.Window.ID())
		d, ok := r.State.DisplayOf(e.Window.ID())
		if !ok {
			return
		}
		for _, ws := range d.WM.Workspaces {
			if ws.HasWindow(win) {
				errs.Log(ws.FocusWindow(win))
				break
			}
		}
		if focused := r.State.FocusedDisplay(); focused == nil || focused.ID != d.ID {
			r.State.FocusDisplay(d.ID)
		}
	}
}

func (r *Reactor) invokeHook(event string, win graph.WindowID) {
	if r.Runtime != nil {
		r.Runtime.Invoke(event, win)
	}
}

func (r *Reactor) handleKeybindingEvent(e state.KeybindingEvent) {
	if !e.Down || r.Runtime == nil {
		return
	}
	if err := r.Runtime.CallCallback(e.CombinationID); err != nil {
		errs.Log(errs.NewRuntimeError(err))
	}
}
