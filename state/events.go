package state

import (
	"github.com/nog-wm/nog/config"
	"github.com/nog-wm/nog/graph"
	"github.com/nog-wm/nog/platform"
)

// Event is the tagged union the reactor consumes from the single,
// unbounded, multi-producer/single-consumer Queue: Window, Keybinding,
// Action, RenderGraph, DeferredFunction, and Exit.
type Event interface {
	eventMarker()
}

// WindowEventKind classifies a surviving OS window lifecycle event,
// after WindowEventSource's filtering has run.
type WindowEventKind int

const (
	Created WindowEventKind = iota
	Deleted
	Minimized
	FocusChanged
)

func (k WindowEventKind) String() string {
	switch k {
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	case Minimized:
		return "minimized"
	case FocusChanged:
		return "focus_changed"
	default:
		return "unknown"
	}
}

// WindowEvent wraps a classified OS window event.
type WindowEvent struct {
	Kind   WindowEventKind
	Window platform.Window
	Width  int
	Height int
}

func (WindowEvent) eventMarker() {}

// KeybindingEvent is emitted by the keyboard hook when a registered
// combination is observed.
type KeybindingEvent struct {
	CombinationID int
	Down          bool
}

func (KeybindingEvent) eventMarker() {}

// ActionEvent wraps a user- or script-submitted Action.
type ActionEvent struct {
	Action Action
}

func (ActionEvent) eventMarker() {}

// RenderGraphEvent requests a rerender without any other structural
// change. The reactor rerenders every dirty workspace on every display;
// WorkspaceID is not consulted, and a graph that is not dirty is not
// rerendered.
type RenderGraphEvent struct {
	WorkspaceID int
}

func (RenderGraphEvent) eventMarker() {}

// DeferredFunctionEvent runs fn on the reactor thread. Used to marshal
// work (e.g. a Runtime callback result) back onto the single consumer.
type DeferredFunctionEvent struct {
	Fn func()
}

func (DeferredFunctionEvent) eventMarker() {}

// ExitEvent asks the reactor to break its loop.
type ExitEvent struct{}

func (ExitEvent) eventMarker() {}

// Action is the tagged union of reactor-handled actions.
type Action interface {
	actionMarker()
}

type SaveSessionAction struct{}

func (SaveSessionAction) actionMarker() {}

type LoadSessionAction struct{}

func (LoadSessionAction) actionMarker() {}

type ShowBarsAction struct{}

func (ShowBarsAction) actionMarker() {}

type HideBarsAction struct{}

func (HideBarsAction) actionMarker() {}

type ShowTaskbarsAction struct{}

func (ShowTaskbarsAction) actionMarker() {}

type HideTaskbarsAction struct{}

func (HideTaskbarsAction) actionMarker() {}

type AwakeAction struct{}

func (AwakeAction) actionMarker() {}

type HibernateAction struct{}

func (HibernateAction) actionMarker() {}

type SimulateKeyPressAction struct {
	Key       string
	Modifiers platform.Modifiers
}

func (SimulateKeyPressAction) actionMarker() {}

// WindowActionKind discriminates the four Window(...) actions.
type WindowActionKind int

const (
	WindowFocus WindowActionKind = iota
	WindowClose
	WindowManage
	WindowUnmanage
)

// WindowAction targets a specific window, or nil for "use the
// foreground window" (Manage/Unmanage only).
type WindowAction struct {
	Kind   WindowActionKind
	Target *graph.WindowID
}

func (WindowAction) actionMarker() {}

// WorkspaceActionKind discriminates the five Workspace(...) actions.
type WorkspaceActionKind int

const (
	WorkspaceChange WorkspaceActionKind = iota
	WorkspaceSetFullscreen
	WorkspaceSetName
	WorkspaceFocus
	WorkspaceSwap
)

// WorkspaceAction mutates workspace state. Direction is used by Swap;
// Fullscreen by SetFullscreen; Name by SetName; WorkspaceIndex by
// Change/Focus.
type WorkspaceAction struct {
	Kind           WorkspaceActionKind
	WorkspaceIndex int
	Direction      graph.Direction
	Fullscreen     bool
	Name           string
}

func (WorkspaceAction) actionMarker() {}

// UpdateConfigAction applies Update to the shared Config under its
// write lock.
type UpdateConfigAction struct {
	Update func(*config.Config)
}

func (UpdateConfigAction) actionMarker() {}

// CreateKeybindingAction registers a combination id against a callback.
type CreateKeybindingAction struct {
	CombinationID int
	Callback      func()
}

func (CreateKeybindingAction) actionMarker() {}

// RemoveKeybindingAction unregisters a combination id.
type RemoveKeybindingAction struct {
	CombinationID int
}

func (RemoveKeybindingAction) actionMarker() {}

// ExecuteLuaAction evaluates code in the Runtime and hands the formatted
// result to Callback. The field and type names keep the Lua-era naming
// even though this runtime evaluates Go source snippets instead.
type ExecuteLuaAction struct {
	Code          string
	PrintType     bool
	CaptureStdout bool
	Callback      func(result string, err error)
}

func (ExecuteLuaAction) actionMarker() {}
