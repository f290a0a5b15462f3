package platform

import (
	"fmt"
	"sync"

	"github.com/nog-wm/nog/geom"
)

// Call records a single method invocation against a Mock, in the order
// they happened, so tests can assert on exact call sequences like
// "reposition(100,(0,0))" literally.
type Call struct {
	Op       string
	WindowID uint64
	Point    geom.Point
	Size     geom.Size
}

func (c Call) String() string {
	switch c.Op {
	case "reposition":
		return fmt.Sprintf("reposition(%d,(%d,%d))", c.WindowID, c.Point.X, c.Point.Y)
	case "resize":
		return fmt.Sprintf("resize(%d,(%d,%d))", c.WindowID, c.Size.W, c.Size.H)
	default:
		return fmt.Sprintf("%s(%d)", c.Op, c.WindowID)
	}
}

// Mock is an in-memory API implementation. The zero value is not usable;
// construct with NewMock.
type Mock struct {
	mu sync.Mutex

	calls     []Call
	windows   map[uint64]*mockWindowState
	displays  []Display
	foreground uint64
}

type mockWindowState struct {
	title, class    string
	size            geom.Size
	pos             geom.Point
	visible         bool
	minimized       bool
	decorated       bool
	exists          bool
}

// NewMock returns an empty Mock with no registered windows or displays.
func NewMock() *Mock {
	return &Mock{windows: map[uint64]*mockWindowState{}}
}

// AddWindow registers a window the mock will report as existing, with
// the given initial (pre-manage) position and size -- mirroring what a
// real PlatformApi.NewWindow would already know about an OS window.
func (m *Mock) AddWindow(id uint64, title string, pos geom.Point, size geom.Size) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows[id] = &mockWindowState{title: title, pos: pos, size: size, visible: true, decorated: true, exists: true}
}

// SetDisplays configures what Displays() returns.
func (m *Mock) SetDisplays(d []Display) { m.displays = d }

// SetForeground sets what ForegroundWindow() returns.
func (m *Mock) SetForeground(id uint64) { m.foreground = id }

// Calls returns a snapshot of every call made so far, in order.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *Mock) record(c Call) {
	m.calls = append(m.calls, c)
}

func (m *Mock) NewWindow(id uint64) (Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.windows[id]
	if !ok {
		st = &mockWindowState{exists: true, visible: true, decorated: true}
		m.windows[id] = st
	}
	return &mockWindow{id: id, m: m}, nil
}

func (m *Mock) ForegroundWindow() (Window, error) {
	return m.NewWindow(m.foreground)
}

func (m *Mock) Displays() ([]Display, error) {
	return m.displays, nil
}

func (m *Mock) SimulateKeyPress(key string, mods Modifiers) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(Call{Op: "simulate_key_press:" + key})
	return nil
}

// mockWindow implements Window against a Mock's shared state map.
type mockWindow struct {
	id uint64
	m  *Mock
}

func (w *mockWindow) ID() uint64 { return w.id }

func (w *mockWindow) state() *mockWindowState {
	st, ok := w.m.windows[w.id]
	if !ok {
		st = &mockWindowState{exists: true, visible: true, decorated: true}
		w.m.windows[w.id] = st
	}
	return st
}

func (w *mockWindow) Title() (string, error) {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	return w.state().title, nil
}

func (w *mockWindow) ClassName() (string, error) {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	return w.state().class, nil
}

func (w *mockWindow) Size() (geom.Size, error) {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	return w.state().size, nil
}

func (w *mockWindow) Position() (geom.Point, error) {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	return w.state().pos, nil
}

func (w *mockWindow) Reposition(p geom.Point) error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	w.state().pos = p
	w.m.record(Call{Op: "reposition", WindowID: w.id, Point: p})
	return nil
}

func (w *mockWindow) Resize(s geom.Size) error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	w.state().size = s
	w.m.record(Call{Op: "resize", WindowID: w.id, Size: s})
	return nil
}

func (w *mockWindow) Focus() error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	w.m.record(Call{Op: "focus", WindowID: w.id})
	return nil
}

func (w *mockWindow) Close() error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	w.state().exists = false
	w.m.record(Call{Op: "close", WindowID: w.id})
	return nil
}

func (w *mockWindow) Exists() bool {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	return w.state().exists
}

func (w *mockWindow) Show() error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	w.state().visible = true
	w.m.record(Call{Op: "show", WindowID: w.id})
	return nil
}

func (w *mockWindow) Hide() error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	w.state().visible = false
	w.m.record(Call{Op: "hide", WindowID: w.id})
	return nil
}

func (w *mockWindow) Minimize() error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	w.state().minimized = true
	w.m.record(Call{Op: "minimize", WindowID: w.id})
	return nil
}

func (w *mockWindow) Maximize() error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	w.m.record(Call{Op: "maximize", WindowID: w.id})
	return nil
}

func (w *mockWindow) Unminimize() error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	w.state().minimized = false
	w.m.record(Call{Op: "unminimize", WindowID: w.id})
	return nil
}

func (w *mockWindow) RemoveDecorations() (RestoreFunc, error) {
	w.m.mu.Lock()
	st := w.state()
	wasDecorated := st.decorated
	st.decorated = false
	w.m.record(Call{Op: "remove_decorations", WindowID: w.id})
	w.m.mu.Unlock()

	return func() error {
		w.m.mu.Lock()
		defer w.m.mu.Unlock()
		w.state().decorated = wasDecorated
		w.m.record(Call{Op: "restore_decorations", WindowID: w.id})
		return nil
	}, nil
}

// mockMonitor is a fixed-work-area Monitor, for tests that need to
// populate Mock.SetDisplays.
type mockMonitor struct {
	id       string
	workArea geom.Rect
}

// NewMockMonitor returns a Monitor reporting a fixed work area.
func NewMockMonitor(id string, workArea geom.Rect) Monitor {
	return &mockMonitor{id: id, workArea: workArea}
}

func (m *mockMonitor) ID() string                  { return m.id }
func (m *mockMonitor) WorkArea() (geom.Rect, error) { return m.workArea, nil }

var _ API = (*Mock)(nil)
var _ Window = (*mockWindow)(nil)
var _ Monitor = (*mockMonitor)(nil)
