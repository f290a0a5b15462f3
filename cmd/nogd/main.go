// Command nogd is the nog window-management daemon: it loads Config,
// constructs State, the embedded script runtime and the IPC server,
// then runs the Reactor on the main goroutine, since it is the sole
// mutator of window-manager state. No window-event source is wired, so
// the window-event pump is not started.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/nog-wm/nog/config"
	"github.com/nog-wm/nog/errs"
	"github.com/nog-wm/nog/geom"
	"github.com/nog-wm/nog/ipc"
	"github.com/nog-wm/nog/keybinding"
	"github.com/nog-wm/nog/platform"
	"github.com/nog-wm/nog/procspawn"
	"github.com/nog-wm/nog/reactor"
	"github.com/nog-wm/nog/runtimebridge"
	"github.com/nog-wm/nog/runtimebridge/yaegirt"
	"github.com/nog-wm/nog/session"
	"github.com/nog-wm/nog/state"
	"github.com/nog-wm/nog/wm"
	"github.com/nog-wm/nog/workspace"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file; unset uses compiled-in defaults")
	ipcAddr := flag.String("ipc-addr", "127.0.0.1:17562", "address the IPC server listens on")
	flag.Parse()

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = *loaded
	}

	st := state.New(cfg)

	if cfg.EnableHotReloading && *configPath != "" {
		stop, err := config.Watch(*configPath, func(c *config.Config) {
			st.Config.Update(func(cur *config.Config) { *cur = *c })
		})
		if err != nil {
			slog.Warn("config hot reload disabled", "error", err)
		} else {
			defer stop()
		}
	}

	rt, err := yaegirt.New()
	if err != nil {
		slog.Error("init runtime", "error", err)
		os.Exit(1)
	}
	rt.BindGraph(func() *runtimebridge.GraphProxy {
		d := st.FocusedDisplay()
		if d == nil {
			return nil
		}
		ws := d.WM.FocusedWorkspace()
		if ws == nil {
			return nil
		}
		return runtimebridge.NewGraphProxy(ws)
	})

	api := platform.NewMock()
	seedDisplays(st, api)

	kb := keybinding.New()
	codec, err := session.DefaultCodec()
	if err != nil {
		slog.Error("init session codec", "error", err)
		os.Exit(1)
	}

	bar := procspawn.NewSpawner("")

	r := reactor.New(st, api, kb, codec, rt, bar)

	// A real winevents.Source -- the OS hook feeding window create/
	// destroy/focus notifications -- has no implementation in this
	// module; winevents.Pump(src, api, st.Events) is ready to run on
	// its own goroutine once one is wired.

	srv := ipc.NewServer(st)
	addr, err := srv.Listen(*ipcAddr)
	if err != nil {
		slog.Error("listen ipc", "addr", *ipcAddr, "error", err)
		os.Exit(1)
	}
	slog.Info("nogd listening", "addr", addr)
	go func() { errs.Log(srv.Serve()) }()
	defer srv.Close()
	defer bar.StopAll()

	r.Run()
}

// seedDisplays enumerates platform.API's attached monitors into State.
// No real OS-backed platform shim is part of this module, so a single
// synthetic monitor stands in on a *platform.Mock until a real one is
// wired.
func seedDisplays(st *state.State, api platform.API) {
	if m, ok := api.(*platform.Mock); ok {
		m.SetDisplays([]platform.Display{{
			Monitor:       platform.NewMockMonitor("primary", geom.NewRect(0, 0, 1920, 1080)),
			TaskbarWindow: 1,
		}})
	}

	displays, err := api.Displays()
	if err != nil {
		errs.Log(err)
		return
	}

	out := make([]*state.Display, 0, len(displays))
	for i, d := range displays {
		out = append(out, state.NewDisplay(workspace.DisplayID(d.Monitor.ID()), d.Monitor, d.TaskbarWindow, wm.NopHook{}))
		if i == 0 {
			st.FocusDisplay(workspace.DisplayID(d.Monitor.ID()))
		}
	}
	st.SetDisplays(out)
}
