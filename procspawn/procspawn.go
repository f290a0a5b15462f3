// Package procspawn runs and tracks the out-of-process bar child a
// display owns, supporting the ShowBars/HideBars reactor actions.
package procspawn

import (
	"fmt"
	"os"
	"os/exec"
	"sync"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/nog-wm/nog/state"
	"github.com/nog-wm/nog/workspace"
)

// Handle tracks one spawned child process and its command line, so it
// can be stopped again without the caller keeping its own bookkeeping.
type Handle struct {
	mu  sync.Mutex
	cmd *exec.Cmd
}

// PID reports the child's process id, or 0 if nothing is running.
func (h *Handle) PID() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cmd == nil || h.cmd.Process == nil {
		return 0
	}
	return h.cmd.Process.Pid
}

// Stop terminates the child, if any, and waits for it to exit. Calling
// Stop on an already-stopped or never-started Handle is a no-op.
func (h *Handle) Stop() error {
	h.mu.Lock()
	cmd := h.cmd
	h.cmd = nil
	h.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("procspawn: kill pid %d: %w", cmd.Process.Pid, err)
	}
	cmd.Wait() // reap; exit status from a killed child is uninteresting here
	return nil
}

// Spawner starts the bar binary configured for a display and keeps the
// resulting Handles so BarController.Hide and StopAll can stop them
// again. BarCommand is the shellwords-tokenized command line to run; an
// empty command makes Show a no-op, matching a deployment with no bar
// configured. NotificationCommand is stored, but nothing starts it.
type Spawner struct {
	BarCommand          string
	NotificationCommand string

	mu    sync.Mutex
	bars  map[workspace.DisplayID]*Handle
	notif map[workspace.DisplayID]*Handle
}

// NewSpawner returns a Spawner that starts barCommand for ShowBars.
func NewSpawner(barCommand string) *Spawner {
	return &Spawner{
		BarCommand: barCommand,
		bars:       map[workspace.DisplayID]*Handle{},
		notif:      map[workspace.DisplayID]*Handle{},
	}
}

// Start tokenizes commandLine with shellwords and starts it as a
// detached child, returning a Handle that can be used to stop it. An
// empty commandLine is a no-op returning a nil Handle.
func Start(commandLine string) (*Handle, error) {
	if commandLine == "" {
		return nil, nil
	}
	args, err := shellwords.Parse(commandLine)
	if err != nil {
		return nil, fmt.Errorf("procspawn: parse command %q: %w", commandLine, err)
	}
	if len(args) == 0 {
		return nil, nil
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("procspawn: start %q: %w", commandLine, err)
	}
	return &Handle{cmd: cmd}, nil
}

// Show starts BarCommand for d's display, recording its PID on the
// display record, unless one is already running. Implements
// reactor.BarController.
func (s *Spawner) Show(d *state.Display) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := d.Display.ID
	if h, ok := s.bars[id]; ok && h.PID() != 0 {
		return nil
	}
	h, err := Start(s.BarCommand)
	if err != nil {
		return err
	}
	if h == nil {
		return nil
	}
	s.bars[id] = h
	d.HasBar = true
	d.BarPID = h.PID()
	return nil
}

// Hide stops the running bar child for d's display, if any. Implements
// reactor.BarController.
func (s *Spawner) Hide(d *state.Display) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := d.Display.ID
	h, ok := s.bars[id]
	if !ok {
		return nil
	}
	delete(s.bars, id)
	d.HasBar = false
	d.BarPID = 0
	if h == nil {
		return nil
	}
	return h.Stop()
}

// StopAll stops every tracked bar and notification child, used during
// shutdown.
func (s *Spawner) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, h := range s.bars {
		h.Stop()
		delete(s.bars, k)
	}
	for k, h := range s.notif {
		h.Stop()
		delete(s.notif, k)
	}
}
