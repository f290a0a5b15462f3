// Package winevents implements the filtering and classification of raw
// OS window lifecycle notifications, turning a noisy hook stream into
// the four event kinds the reactor understands.
package winevents

import (
	"github.com/nog-wm/nog/errs"
	"github.com/nog-wm/nog/platform"
	"github.com/nog-wm/nog/state"
)

// RawKind enumerates the OS notifications the platform hook delivers,
// before filtering or classification.
type RawKind int

const (
	OSForeground RawKind = iota
	OSCreateOrShow
	OSDestroyOrHide
	OSMinimize
	OSUnminimize
)

// Style mirrors the subset of an OS window's style bits the filter
// cares about.
type Style struct {
	Child bool
	Popup bool
}

// Raw is a single unfiltered notification from the platform hook.
type Raw struct {
	Kind     RawKind
	ObjectID int32 // 0 for the window object itself; any other id is filtered out
	WindowID uint64
	Title    string
	Style    Style
	Width    int
	Height   int
}

// isWindowObject matches the platform convention that a non-window
// accessibility object reports id 0 (OBJID_WINDOW equivalent); anything
// else is not a top-level window notification.
func isWindowObject(objectID int32) bool { return objectID == 0 }

// Survives reports whether ev passes every filter: a window object id,
// not a Child/Popup-styled window, and a non-empty title at event time.
func Survives(ev Raw) bool {
	if !isWindowObject(ev.ObjectID) {
		return false
	}
	if ev.Style.Child || ev.Style.Popup {
		return false
	}
	if ev.Title == "" {
		return false
	}
	return true
}

// Classify maps a surviving Raw event to the reactor's WindowEventKind.
func Classify(ev Raw) (state.WindowEventKind, bool) {
	switch ev.Kind {
	case OSCreateOrShow:
		return state.Created, true
	case OSDestroyOrHide:
		return state.Deleted, true
	case OSMinimize:
		return state.Minimized, true
	case OSForeground:
		return state.FocusChanged, true
	case OSUnminimize:
		return state.Created, true
	default:
		return 0, false
	}
}

// Source is the platform-side producer of raw notifications. The real
// implementation installs an OS hook; tests and the in-process Mock
// feed it a fixed sequence.
type Source interface {
	Next() (Raw, bool)
}

// Pump reads from src until it's exhausted (Next returns ok=false),
// filtering and classifying each Raw event and enqueuing a
// state.WindowEvent for every one that survives. Intended to run on its
// own goroutine, grounded on the single-purpose hook-thread model spec
// §5 describes.
func Pump(src Source, api platform.API, queue *state.Queue) {
	for {
		raw, ok := src.Next()
		if !ok {
			return
		}
		if !Survives(raw) {
			continue
		}
		kind, ok := Classify(raw)
		if !ok {
			continue
		}
		win, err := api.NewWindow(raw.WindowID)
		if err != nil {
			errs.Log(err)
			continue
		}
		queue.Send(state.WindowEvent{
			Kind:   kind,
			Window: win,
			Width:  raw.Width,
			Height: raw.Height,
		})
	}
}
