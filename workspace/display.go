package workspace

import (
	"github.com/nog-wm/nog/geom"
	"github.com/nog-wm/nog/platform"
)

// DisplayID identifies a Display within process-wide State.
type DisplayID string

// Cleanup holds deferred actions run when a Display is torn down (e.g.
// on Hibernate): restoring any taskbar visibility this display's
// WindowManager hid.
type Cleanup struct {
	RestoreTaskbar func() error
}

// Run executes every non-nil deferred action, collecting the first error
// encountered (subsequent actions still run, matching the best-effort
// cleanup convention used for per-window restores in WindowCleanup).
func (c Cleanup) Run() error {
	var first error
	if c.RestoreTaskbar != nil {
		if err := c.RestoreTaskbar(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Display groups a monitor, its taskbar window, an optional bar process
// handle, and deferred cleanup actions. The WindowManager that owns its
// workspaces is paired with it by state.Display, not held here.
type Display struct {
	ID            DisplayID
	Monitor       platform.Monitor
	TaskbarWindow uint64
	BarPID        int
	HasBar        bool
	Cleanup       Cleanup
}

// NewDisplay wraps a platform monitor/taskbar pairing.
func NewDisplay(id DisplayID, monitor platform.Monitor, taskbarWindow uint64) *Display {
	return &Display{ID: id, Monitor: monitor, TaskbarWindow: taskbarWindow}
}

// WorkArea reports the monitor's work area.
func (d *Display) WorkArea() (geom.Rect, error) {
	return d.Monitor.WorkArea()
}
