/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go builds the plugin registry and wires it into extensions.
//
// Separated from root.go to isolate the composition logic: load config,
// construct the one registry for this process, register every provided
// plugin, and hand the result to extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern lets extensions declare
// commands and plugins before config is loaded.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/lens/extension"
	"github.com/jpl-au/lens/internal/config"
	"github.com/jpl-au/lens/internal/service"
	"github.com/jpl-au/lens/plugin"
)

// standaloneCommands lists commands that skip registry construction.
// Built from extension-declared standalone commands.
var standaloneCommands map[string]bool

func buildStandaloneCommands() map[string]bool {
	cmds := map[string]bool{
		// help and shell completion never touch the registry
		"help":       true,
		"completion": true,
	}
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Standalone); ok {
			for _, name := range s.StandaloneCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

// Process-wide state, created during initialisation.
var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions builds the registry and injects it into extensions.
//
// sync.Once guarantees exactly one registry per process even if several
// code paths trigger initialisation.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		svc := NewService(cfg, "cli")
		extContext = extension.NewContext(svc)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// NewService constructs a registry populated with every provided plugin
// except those listed in render.disabled, and returns a Service over it.
// The configured default plugin becomes the registry's fallback.
func NewService(cfg *config.Config, source string) *service.Service {
	logger := Logger()
	reg := plugin.New(
		plugin.WithLogger(logger),
		plugin.WithDefaultID(cfg.DefaultPlugin()),
	)
	svc := service.New(reg, cfg, source, logger)
	svc.Populate(extension.Plugins)
	logger.Debug("plugin registry ready", "plugins", reg.Len(), "default", reg.DefaultID(),
		"disabled", cfg.Disabled())
	return svc
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		standaloneCommands = buildStandaloneCommands()
	})
}
