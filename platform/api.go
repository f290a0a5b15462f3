// Package platform defines the narrow capabilities the window-management
// engine consumes from an OS-specific shim and from the set of attached
// monitors. The shim itself -- moving/resizing/enumerating real Win32/X11
// windows -- has no implementation here; this package only names the
// interface and ships an in-memory Mock used by every test in this
// module.
package platform

import "github.com/nog-wm/nog/geom"

// Modifiers mirrors the keybinding engine's modifier snapshot, reused here
// so SimulateKeyPress doesn't need to import the keybinding package.
type Modifiers struct {
	LAlt  bool
	RAlt  bool
	Shift bool
	Win   bool
	Ctrl  bool
}

// RestoreFunc undoes a prior mutating call (e.g. the decoration removal
// done by Window.RemoveDecorations).
type RestoreFunc func() error

// Window is the set of operations the engine performs against a single
// top-level window.
type Window interface {
	ID() uint64
	Title() (string, error)
	ClassName() (string, error)

	// Size/Position report the window's client rectangle, excluding the
	// OS's extended window frame.
	Size() (geom.Size, error)
	Position() (geom.Point, error)

	// Reposition/Resize compensate for the extended window frame so
	// that the window's visible edges land on the given rectangle.
	Reposition(geom.Point) error
	Resize(geom.Size) error

	Focus() error
	Close() error
	Exists() bool
	Show() error
	Hide() error
	Minimize() error
	Maximize() error
	Unminimize() error

	// RemoveDecorations strips title bar/borders and returns a function
	// that restores them.
	RemoveDecorations() (RestoreFunc, error)
}

// Monitor is a single attached display.
type Monitor interface {
	ID() string
	WorkArea() (geom.Rect, error)
}

// Display groups a monitor with the taskbar window that belongs to it,
// as returned by API.Displays.
type Display struct {
	Monitor       Monitor
	TaskbarWindow uint64
}

// API is the process-wide platform shim: window construction, monitor
// enumeration, and the primitives that don't belong to one window.
type API interface {
	// NewWindow wraps an existing OS window id.
	NewWindow(id uint64) (Window, error)

	ForegroundWindow() (Window, error)
	Displays() ([]Display, error)

	SimulateKeyPress(key string, mods Modifiers) error
}
