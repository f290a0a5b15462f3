package reactor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nog-wm/nog/config"
	"github.com/nog-wm/nog/geom"
	"github.com/nog-wm/nog/graph"
	"github.com/nog-wm/nog/keybinding"
	"github.com/nog-wm/nog/platform"
	"github.com/nog-wm/nog/reactor"
	"github.com/nog-wm/nog/state"
	"github.com/nog-wm/nog/wm"
	"github.com/nog-wm/nog/workspace"
)

// stubRuntime is a minimal reactor.Runtime double recording hook/callback
// invocations so tests can assert on them without a yaegi interpreter.
type stubRuntime struct {
	invoked   []string
	callbacks map[int]func()
	evalOut   string
	evalErr   error
}

func newStubRuntime() *stubRuntime {
	return &stubRuntime{callbacks: map[int]func(){}}
}

func (s *stubRuntime) Invoke(event string, win graph.WindowID) {
	s.invoked = append(s.invoked, event)
}

func (s *stubRuntime) RegisterCallback(id int, callable func()) {
	s.callbacks[id] = callable
}

func (s *stubRuntime) CallCallback(id int) error {
	cb, ok := s.callbacks[id]
	if !ok {
		return errors.New("no callback registered")
	}
	cb()
	return nil
}

func (s *stubRuntime) Eval(code string, captureStdout bool) (string, string, error) {
	return s.evalOut, code, s.evalErr
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.DisplayAppBar = false
	cfg.RemoveDecorations = false
	return cfg
}

func setup(t *testing.T) (*reactor.Reactor, *platform.Mock, *state.State) {
	t.Helper()
	m := platform.NewMock()
	st := state.New(testConfig())
	monitor := platform.NewMockMonitor("mon0", geom.NewRect(0, 0, 1920, 1080))
	d := state.NewDisplay(workspace.DisplayID("d0"), monitor, 999, wm.NopHook{})
	st.SetDisplays([]*state.Display{d})

	kb := keybinding.New()
	r := reactor.New(st, m, kb, nil, nil, nil)
	return r, m, st
}

func TestManageViaWindowActionInsertsAndRenders(t *testing.T) {
	r, m, st := setup(t)
	m.AddWindow(100, "term", geom.Point{}, geom.Size{W: 300, H: 200})

	win := graph.WindowID(100)
	st.Events.Send(state.ActionEvent{Action: state.WindowAction{Kind: state.WindowManage, Target: &win}})
	st.Events.Send(state.ExitEvent{})
	r.Run()

	d := st.FocusedDisplay()
	require.NotNil(t, d)
	ws := d.WM.FocusedWorkspace()
	require.NotNil(t, ws)
	assert.True(t, ws.HasWindow(win))

	calls := m.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, "reposition(100,(0,0))", calls[0].String())
	assert.Equal(t, "resize(100,(1920,1080))", calls[1].String())
}

func TestUnmanageViaWindowActionRemovesAndRestores(t *testing.T) {
	r, m, st := setup(t)
	m.AddWindow(100, "term", geom.Point{X: 5, Y: 5}, geom.Size{W: 300, H: 200})

	win := graph.WindowID(100)
	st.Events.Send(state.ActionEvent{Action: state.WindowAction{Kind: state.WindowManage, Target: &win}})
	st.Events.Send(state.ActionEvent{Action: state.WindowAction{Kind: state.WindowUnmanage, Target: &win}})
	st.Events.Send(state.ExitEvent{})
	r.Run()

	d := st.FocusedDisplay()
	ws := d.WM.FocusedWorkspace()
	assert.False(t, ws.HasWindow(win))

	calls := m.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, "reposition(100,(5,5))", calls[2].String())
	assert.Equal(t, "resize(100,(300,200))", calls[3].String())
}

func TestWindowEventCreatedManagesAboveMinSize(t *testing.T) {
	r, m, st := setup(t)
	m.AddWindow(200, "term", geom.Point{}, geom.Size{W: 300, H: 200})
	win, err := m.NewWindow(200)
	require.NoError(t, err)

	st.Events.Send(state.WindowEvent{Kind: state.Created, Window: win, Width: 300, Height: 200})
	st.Events.Send(state.ExitEvent{})
	r.Run()

	d := st.FocusedDisplay()
	ws := d.WM.FocusedWorkspace()
	assert.True(t, ws.HasWindow(graph.WindowID(200)))
}

func TestWindowEventCreatedSkipsBelowMinSize(t *testing.T) {
	r, m, st := setup(t)
	m.AddWindow(201, "tiny", geom.Point{}, geom.Size{W: 10, H: 10})
	win, err := m.NewWindow(201)
	require.NoError(t, err)

	st.Events.Send(state.WindowEvent{Kind: state.Created, Window: win, Width: 10, Height: 10})
	st.Events.Send(state.ExitEvent{})
	r.Run()

	d := st.FocusedDisplay()
	ws := d.WM.FocusedWorkspace()
	assert.False(t, ws.HasWindow(graph.WindowID(201)))
}

func TestFocusChangedSetsDisplayAndWorkspaceFocus(t *testing.T) {
	r, m, st := setup(t)
	m.AddWindow(300, "term", geom.Point{}, geom.Size{W: 300, H: 200})

	win := graph.WindowID(300)
	st.Events.Send(state.ActionEvent{Action: state.WindowAction{Kind: state.WindowManage, Target: &win}})

	platWin, err := m.NewWindow(300)
	require.NoError(t, err)
	st.Events.Send(state.WindowEvent{Kind: state.FocusChanged, Window: platWin})
	st.Events.Send(state.ExitEvent{})
	r.Run()

	d := st.FocusedDisplay()
	require.NotNil(t, d)
	ws := d.WM.FocusedWorkspace()
	require.NotNil(t, ws.FocusedNodeID)
	node, ok := ws.Graph.Node(*ws.FocusedNodeID)
	require.True(t, ok)
	assert.Equal(t, win, node.WindowID())
}

func TestUpdateConfigActionMutatesSharedConfig(t *testing.T) {
	r, _, st := setup(t)
	st.Events.Send(state.ActionEvent{Action: state.UpdateConfigAction{Update: func(c *config.Config) {
		c.BarHeight = 40
	}}})
	st.Events.Send(state.ExitEvent{})
	r.Run()

	assert.Equal(t, uint32(40), st.Config.Get().BarHeight)
}

func TestCreateKeybindingThenKeybindingEventCallsRuntime(t *testing.T) {
	m := platform.NewMock()
	st := state.New(testConfig())
	monitor := platform.NewMockMonitor("mon0", geom.NewRect(0, 0, 1920, 1080))
	d := state.NewDisplay(workspace.DisplayID("d0"), monitor, 999, wm.NopHook{})
	st.SetDisplays([]*state.Display{d})
	kb := keybinding.New()
	rt := newStubRuntime()
	r := reactor.New(st, m, kb, nil, rt, nil)

	called := false
	st.Events.Send(state.ActionEvent{Action: state.CreateKeybindingAction{
		CombinationID: 42,
		Callback:      func() { called = true },
	}})
	st.Events.Send(state.KeybindingEvent{CombinationID: 42, Down: true})
	st.Events.Send(state.ExitEvent{})
	r.Run()

	assert.True(t, called)
	assert.True(t, kb.IsRegistered(42))
}

func TestRemoveKeybindingActionUnregisters(t *testing.T) {
	m := platform.NewMock()
	st := state.New(testConfig())
	monitor := platform.NewMockMonitor("mon0", geom.NewRect(0, 0, 1920, 1080))
	d := state.NewDisplay(workspace.DisplayID("d0"), monitor, 999, wm.NopHook{})
	st.SetDisplays([]*state.Display{d})
	kb := keybinding.New()
	r := reactor.New(st, m, kb, nil, nil, nil)

	kb.Register(7)
	st.Events.Send(state.ActionEvent{Action: state.RemoveKeybindingAction{CombinationID: 7}})
	st.Events.Send(state.ExitEvent{})
	r.Run()

	assert.False(t, kb.IsRegistered(7))
}

func TestExecuteLuaActionInvokesCallbackWithRuntimeOutput(t *testing.T) {
	m := platform.NewMock()
	st := state.New(testConfig())
	monitor := platform.NewMockMonitor("mon0", geom.NewRect(0, 0, 1920, 1080))
	d := state.NewDisplay(workspace.DisplayID("d0"), monitor, 999, wm.NopHook{})
	st.SetDisplays([]*state.Display{d})
	kb := keybinding.New()
	rt := newStubRuntime()
	rt.evalOut = "hello\n"
	r := reactor.New(st, m, kb, nil, rt, nil)

	var gotOut string
	var gotErr error
	st.Events.Send(state.ActionEvent{Action: state.ExecuteLuaAction{
		Code:          "print('hello')",
		CaptureStdout: true,
		Callback: func(out string, err error) {
			gotOut = out
			gotErr = err
		},
	}})
	st.Events.Send(state.ExitEvent{})
	r.Run()

	assert.NoError(t, gotErr)
	assert.Equal(t, "hello\n", gotOut)
}

func TestExecuteLuaActionWithoutRuntimeReportsError(t *testing.T) {
	r, _, st := setup(t)
	var gotErr error
	st.Events.Send(state.ActionEvent{Action: state.ExecuteLuaAction{
		Code: "print(1)",
		Callback: func(out string, err error) {
			gotErr = err
		},
	}})
	st.Events.Send(state.ExitEvent{})
	r.Run()

	assert.Error(t, gotErr)
}

func TestSimulateKeyPressActionDelegatesToPlatform(t *testing.T) {
	r, m, st := setup(t)
	st.Events.Send(state.ActionEvent{Action: state.SimulateKeyPressAction{
		Key:       "a",
		Modifiers: platform.Modifiers{Ctrl: true},
	}})
	st.Events.Send(state.ExitEvent{})
	r.Run()

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].String(), "simulate_key")
}

func TestAwakeAndHibernateActionsTogglePowerState(t *testing.T) {
	r, _, st := setup(t)
	st.Events.Send(state.ActionEvent{Action: state.HibernateAction{}})
	st.Events.Send(state.ExitEvent{})
	r.Run()
	assert.Equal(t, state.Hibernated, st.Power())

	st.Events.Send(state.ActionEvent{Action: state.AwakeAction{}})
	st.Events.Send(state.ExitEvent{})
	r.Run()
	assert.Equal(t, state.Awake, st.Power())
}

func TestManageTwoWindowsProducesExactPlatformCallSequence(t *testing.T) {
	r, m, st := setup(t)
	m.AddWindow(100, "a", geom.Point{}, geom.Size{W: 300, H: 200})
	m.AddWindow(200, "b", geom.Point{}, geom.Size{W: 300, H: 200})

	w1, w2 := graph.WindowID(100), graph.WindowID(200)
	st.Events.Send(state.ActionEvent{Action: state.WindowAction{Kind: state.WindowManage, Target: &w1}})
	st.Events.Send(state.ActionEvent{Action: state.WindowAction{Kind: state.WindowManage, Target: &w2}})
	st.Events.Send(state.ExitEvent{})
	r.Run()

	calls := m.Calls()
	require.Len(t, calls, 6)
	assert.Equal(t, "reposition(100,(0,0))", calls[0].String())
	assert.Equal(t, "resize(100,(1920,1080))", calls[1].String())
	assert.Equal(t, "reposition(100,(0,0))", calls[2].String())
	assert.Equal(t, "resize(100,(960,1080))", calls[3].String())
	assert.Equal(t, "reposition(200,(960,0))", calls[4].String())
	assert.Equal(t, "resize(200,(960,1080))", calls[5].String())
}
