// Package keybinding implements the modifier-state tracker and
// registered-combination set a global low-level keyboard hook consults
// to decide whether to suppress a key event and forward it to the
// reactor instead.
package keybinding

import (
	"sync"

	"github.com/nog-wm/nog/platform"
)

// Modifiers is the bit-record of the five tracked modifier keys. Field
// order fixes the base-10 digit weight used by CombinationID: lalt is
// the units digit, ralt tens, shift hundreds, win thousands, ctrl
// ten-thousands.
type Modifiers struct {
	LAlt  bool
	RAlt  bool
	Shift bool
	Win   bool
	Ctrl  bool
}

// ID packs the five flags into modifier_id, the digit string
// `ctrl,win,shift,ralt,lalt` read as a base-10 number.
func (m Modifiers) ID() int {
	id := 0
	for i, set := range []bool{m.LAlt, m.RAlt, m.Shift, m.Win, m.Ctrl} {
		if set {
			id += digitWeight(i)
		}
	}
	return id
}

func digitWeight(i int) int {
	w := 1
	for ; i > 0; i-- {
		w *= 10
	}
	return w
}

// ModifiersFromID is the inverse of Modifiers.ID: every Modifiers value
// round-trips through ID/ModifiersFromID.
func ModifiersFromID(id int) Modifiers {
	var m Modifiers
	bits := [5]*bool{&m.LAlt, &m.RAlt, &m.Shift, &m.Win, &m.Ctrl}
	for i := range bits {
		*bits[i] = (id/digitWeight(i))%10 != 0
	}
	return m
}

// Combination is a (key code, modifier set) pair, identified uniquely
// by CombinationID for O(1) registered-set lookups.
type Combination struct {
	KeyCode   int
	Modifiers Modifiers
}

// CombinationID computes key_code*10^5 + modifier_id.
func (c Combination) CombinationID() int {
	return c.KeyCode*100000 + c.Modifiers.ID()
}

// Engine tracks live modifier state (touched only by the hook thread,
// so unguarded) and the registered-combination set (touched by the
// reactor as writer, the hook thread as reader, serialized by a
// readers/writer lock).
type Engine struct {
	modifiers Modifiers

	mu         sync.RWMutex
	registered map[int]bool
}

// New returns an Engine with no registered combinations and a zeroed
// modifier state.
func New() *Engine {
	return &Engine{registered: map[int]bool{}}
}

// Register adds id to the registered set. Called by the reactor only.
func (e *Engine) Register(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registered[id] = true
}

// Unregister removes id from the registered set. Called by the reactor only.
func (e *Engine) Unregister(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.registered, id)
}

// IsRegistered reports whether id is currently registered. Safe to call
// concurrently with Register/Unregister from any thread.
func (e *Engine) IsRegistered(id int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registered[id]
}

// ModifierCode identifies which modifier key, if any, a key code names.
type ModifierCode int

const (
	NotAModifier ModifierCode = iota
	CodeLAlt
	CodeRAlt
	CodeShift
	CodeWin
	CodeCtrl
)

// HandleKeyEvent is called by the hook thread for every raw key event.
// If code names a tracked modifier, it updates the live modifier state
// and returns suppress=false (modifiers are never themselves
// suppressed). Otherwise it builds the current Combination from code
// plus the live modifier snapshot; if that combination is registered it
// returns suppress=true and the combination so the caller can emit a
// KeybindingEvent, otherwise suppress=false.
func (e *Engine) HandleKeyEvent(code int, modCode ModifierCode, down bool) (combo Combination, suppress bool) {
	if modCode != NotAModifier {
		switch modCode {
		case CodeLAlt:
			e.modifiers.LAlt = down
		case CodeRAlt:
			e.modifiers.RAlt = down
		case CodeShift:
			e.modifiers.Shift = down
		case CodeWin:
			e.modifiers.Win = down
		case CodeCtrl:
			e.modifiers.Ctrl = down
		}
		return Combination{}, false
	}

	combo = Combination{KeyCode: code, Modifiers: e.modifiers}
	if e.IsRegistered(combo.CombinationID()) {
		return combo, true
	}
	return combo, false
}

// toPlatform converts the engine's modifier record to the platform
// package's equivalent, since PlatformApi.SimulateKeyPress doesn't know
// about this package.
func (m Modifiers) toPlatform() platform.Modifiers {
	return platform.Modifiers{LAlt: m.LAlt, RAlt: m.RAlt, Shift: m.Shift, Win: m.Win, Ctrl: m.Ctrl}
}

// SimulateKeyPress synthesizes the key combination through the platform
// shim: modifiers down, key down, key up, modifiers up, in that order --
// delegated to PlatformApi.SimulateKeyPress, which owns the actual
// OS-level event synthesis and ordering.
func SimulateKeyPress(api platform.API, key string, mods Modifiers) error {
	return api.SimulateKeyPress(key, mods.toPlatform())
}
