// Package state implements the process-wide structure shared by the
// reactor, the runtime bridge, and the IPC server -- displays, config,
// a bar-content snapshot, and the single event queue producers enqueue
// onto. It is constructed once, before any other thread is spawned, and
// lives until process exit.
package state

import (
	"sync"

	"github.com/nog-wm/nog/config"
	"github.com/nog-wm/nog/graph"
	"github.com/nog-wm/nog/platform"
	"github.com/nog-wm/nog/wm"
	"github.com/nog-wm/nog/workspace"
)

// Display pairs a workspace.Display (monitor, taskbar, bar process,
// cleanup) with the WindowManager that owns its workspaces. The two
// live in separate packages (workspace doesn't import wm) so this
// composition happens here, at the point they're actually used
// together.
type Display struct {
	*workspace.Display
	WM *wm.WindowManager
}

// NewDisplay constructs a Display with a fresh single-workspace
// WindowManager.
func NewDisplay(id workspace.DisplayID, monitor platform.Monitor, taskbarWindow uint64, hook wm.LayoutHook) *Display {
	return &Display{
		Display: workspace.NewDisplay(id, monitor, taskbarWindow),
		WM:      wm.New(hook),
	}
}

// PowerState tracks whether the process is awake or hibernated.
type PowerState int

const (
	Awake PowerState = iota
	Hibernated
)

// State is the shared aggregate. Every field besides Events, Config and
// BarContent is guarded by mu; those three have their own internal
// locking (config.Shared, Queue, barContentBox) since each is a single
// independently-guarded resource.
type State struct {
	mu               sync.RWMutex
	displays         []*Display
	focusedDisplayID workspace.DisplayID
	power            PowerState

	Config     *config.Shared
	BarContent barContentBox
	Events     *Queue
}

// New constructs State with no displays; displays are added once the
// platform enumerates monitors at startup.
func New(cfg config.Config) *State {
	return &State{
		Config: config.NewShared(cfg),
		Events: &Queue{},
	}
}

// SetDisplays replaces the display list. Only the reactor calls this,
// typically once at startup from PlatformApi.Displays.
func (s *State) SetDisplays(displays []*Display) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displays = displays
	if len(displays) > 0 {
		found := false
		for _, d := range displays {
			if d.ID == s.focusedDisplayID {
				found = true
				break
			}
		}
		if !found {
			s.focusedDisplayID = displays[0].ID
		}
	}
}

// Displays returns a shallow copy of the current display list.
func (s *State) Displays() []*Display {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Display, len(s.displays))
	copy(out, s.displays)
	return out
}

// FocusedDisplay returns the currently focused display, or nil if none
// is registered yet.
func (s *State) FocusedDisplay() *Display {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.displays {
		if d.ID == s.focusedDisplayID {
			return d
		}
	}
	return nil
}

// FocusDisplay sets the focused display id, if it names a registered
// display.
func (s *State) FocusDisplay(id workspace.DisplayID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.displays {
		if d.ID == id {
			s.focusedDisplayID = id
			return true
		}
	}
	return false
}

// DisplayOf returns the display whose WindowManager manages win, if any.
func (s *State) DisplayOf(win uint64) (*Display, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.displays {
		for _, ws := range d.WM.Workspaces {
			if ws.HasWindow(graph.WindowID(win)) {
				return d, true
			}
		}
	}
	return nil, false
}

// Power reports whether the process is Awake or Hibernated.
func (s *State) Power() PowerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.power
}

// SetPower updates the Awake/Hibernate flag.
func (s *State) SetPower(p PowerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.power = p
}
