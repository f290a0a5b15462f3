// Package config holds the recognized runtime options, their
// TOML-backed persistence, and filesystem hot reload.
//
// Load/Save follow an Open/Save naming convention for TOML round trips,
// built directly on github.com/pelletier/go-toml/v2.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/nog-wm/nog/errs"
)

// RGB is a color option, accepted from TOML either as a single hex int
// or as a [r,g,b] array -- see UnmarshalTOML.
type RGB struct {
	R, G, B uint8
}

// Config is the set of recognized runtime options. Every field has a
// compiled-in default (see Defaults); Load only overwrites fields present
// in the file, so a partial file behaves like a partial overwrite rather
// than a reset to zero values.
type Config struct {
	Color                   RGB    `toml:"color"`
	BarHeight               uint32 `toml:"bar_height"`
	FontSize                uint32 `toml:"font_size"`
	FontName                string `toml:"font_name"`
	LightTheme              bool   `toml:"light_theme"`
	MultiMonitor            bool   `toml:"multi_monitor"`
	OuterGap                uint32 `toml:"outer_gap"`
	InnerGap                uint32 `toml:"inner_gap"`
	RemoveDecorations       bool   `toml:"remove_decorations"`
	RemoveTaskBar           bool   `toml:"remove_task_bar"`
	IgnoreFullscreenActions bool   `toml:"ignore_fullscreen_actions"`
	DisplayAppBar           bool   `toml:"display_app_bar"`
	MinWidth                uint   `toml:"min_width"`
	MinHeight               uint   `toml:"min_height"`
	LaunchOnStartup         bool   `toml:"launch_on_startup"`
	WorkMode                bool   `toml:"work_mode"`
	EnableHotReloading      bool   `toml:"enable_hot_reloading"`
}

// Defaults returns the compiled-in option values, matching the original
// implementation's nog/src/config.rs.
func Defaults() Config {
	return Config{
		Color:             RGB{R: 0x4f, G: 0x81, B: 0xbd},
		BarHeight:         20,
		FontSize:          14,
		FontName:          "Consolas",
		OuterGap:          0,
		InnerGap:          0,
		RemoveDecorations: true,
		DisplayAppBar:     true,
		MinWidth:          100,
		MinHeight:         100,
	}
}

// Load reads path and merges it onto the compiled-in defaults: fields
// absent from the file keep their default value.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes cfg to path as TOML, creating the parent directory if
// necessary.
func (c *Config) Save(path string) error {
	b, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// Watch watches path for writes and renames (the way editors and `cp`
// commonly replace a config file) and calls onChange with the
// newly-loaded Config after each one, logging and skipping a reload
// that fails to parse. The returned stop function closes the watcher;
// callers should only use Watch when EnableHotReloading is set.
func Watch(path string, onChange func(*Config)) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					errs.Log(err)
					continue
				}
				onChange(cfg)
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return func() {
		close(done)
		w.Close()
	}, nil
}

// DefaultDir returns <home>/.nog, the directory session files and the
// config file itself live under, resolved with go-homedir rather than a
// hand-rolled $HOME lookup so it also works when invoked from a service
// context without a shell-exported HOME.
func DefaultDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home dir: %w", err)
	}
	return home + string(os.PathSeparator) + ".nog", nil
}

// Shared is a Config guarded for a readers/writer access pattern: the
// reactor is the only writer (via an UpdateConfig action), every other
// goroutine only reads.
type Shared struct {
	mu  sync.RWMutex
	cfg Config
}

// NewShared wraps an initial Config for concurrent access.
func NewShared(initial Config) *Shared {
	return &Shared{cfg: initial}
}

// Get returns a copy of the current config.
func (s *Shared) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update applies fn to the stored config in place, under the write
// lock. Only the reactor should call this, in response to an
// UpdateConfig action.
func (s *Shared) Update(fn func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cfg)
}
