// Package yaegirt is the default reactor.Runtime implementation, built
// on the embedded Go interpreter github.com/traefik/yaegi. It
// interprets Go source snippets, sufficient to drive ExecuteLua,
// keybinding callbacks, and the layout hook end-to-end; it is explicitly
// swappable -- nothing downstream of reactor.Runtime assumes Go syntax.
package yaegirt

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/nog-wm/nog/errs"
	"github.com/nog-wm/nog/graph"
	"github.com/nog-wm/nog/reactor"
	"github.com/nog-wm/nog/runtimebridge"
)

// GraphAccessor resolves the GraphProxy a layout hook call should see --
// ordinarily the focused workspace of the focused display at invocation
// time. Wired in by the daemon once State exists.
type GraphAccessor func() *runtimebridge.GraphProxy

// Interp is a yaegi-backed Runtime. The zero value is not usable;
// construct with New.
type Interp struct {
	mu        sync.Mutex
	vm        *interp.Interp
	callbacks map[int]func()
	hooks     []func(event string, win uint64)
	graphOf   GraphAccessor
}

// New constructs an Interp with the Go standard library symbols loaded
// and the "nog" package bound for scripts to import, exposing RegisterHook
// and CurrentGraph.
func New() (*Interp, error) {
	vm := interp.New(interp.Options{})
	if err := vm.Use(stdlib.Symbols); err != nil {
		return nil, errs.NewRuntimeError(err)
	}

	rt := &Interp{vm: vm, callbacks: map[int]func(){}}
	exports := interp.Exports{
		"nog/nog": map[string]reflect.Value{
			"RegisterHook": reflect.ValueOf(rt.registerHook),
			"CurrentGraph": reflect.ValueOf(rt.currentGraph),
		},
	}
	if err := vm.Use(exports); err != nil {
		return nil, errs.NewRuntimeError(err)
	}
	return rt, nil
}

// BindGraph sets the accessor CurrentGraph() calls into from scripts.
func (rt *Interp) BindGraph(accessor GraphAccessor) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.graphOf = accessor
}

func (rt *Interp) currentGraph() *runtimebridge.GraphProxy {
	rt.mu.Lock()
	accessor := rt.graphOf
	rt.mu.Unlock()
	if accessor == nil {
		return nil
	}
	return accessor()
}

func (rt *Interp) registerHook(fn func(event string, win uint64)) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.hooks = append(rt.hooks, fn)
}

// Invoke fires every hook a script registered via nog.RegisterHook,
// satisfying wm.LayoutHook.
func (rt *Interp) Invoke(event string, win graph.WindowID) {
	rt.mu.Lock()
	hooks := append([]func(string, uint64){}, rt.hooks...)
	rt.mu.Unlock()
	for _, h := range hooks {
		h(event, uint64(win))
	}
}

// RegisterCallback associates a keybinding combination id with a Go
// closure, for CreateKeybindingAction.
func (rt *Interp) RegisterCallback(id int, callable func()) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.callbacks[id] = callable
}

// CallCallback invokes the closure registered against id. Always run
// from the reactor goroutine.
func (rt *Interp) CallCallback(id int) error {
	rt.mu.Lock()
	cb, ok := rt.callbacks[id]
	rt.mu.Unlock()
	if !ok {
		return errs.NewRuntimeError(fmt.Errorf("yaegirt: no callback registered for combination %d", id))
	}
	cb()
	return nil
}

// Eval interprets code as a Go source snippet, returning its result or a
// RuntimeError, optionally capturing anything written to stdout during
// evaluation.
func (rt *Interp) Eval(code string, captureStdout bool) (stdout string, result string, err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if !captureStdout {
		v, evalErr := rt.vm.Eval(code)
		return "", valueString(v), wrapEvalErr(evalErr)
	}

	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		return "", "", errs.NewRuntimeError(pipeErr)
	}
	prevStdout := os.Stdout
	os.Stdout = w

	v, evalErr := rt.vm.Eval(code)

	os.Stdout = prevStdout
	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)

	return buf.String(), valueString(v), wrapEvalErr(evalErr)
}

func valueString(v reflect.Value) string {
	if !v.IsValid() || !v.CanInterface() {
		return ""
	}
	return fmt.Sprint(v.Interface())
}

func wrapEvalErr(err error) error {
	if err == nil {
		return nil
	}
	return errs.NewRuntimeError(err)
}

var _ reactor.Runtime = (*Interp)(nil)
