package runtimebridge

import "github.com/nog-wm/nog/config"

// ConfigProxy exposes the shared Config to scripts: a read snapshot plus
// a locked read-modify-write, mirroring config.Shared's own contract.
type ConfigProxy struct {
	shared *config.Shared
}

func NewConfigProxy(shared *config.Shared) *ConfigProxy {
	return &ConfigProxy{shared: shared}
}

func (p *ConfigProxy) Get() config.Config {
	return p.shared.Get()
}

func (p *ConfigProxy) Update(fn func(*config.Config)) {
	p.shared.Update(fn)
}
