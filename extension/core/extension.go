// Package core provides the core extension for lens.
// It registers commands: config, theme, log, guide, serve, version.
package core

import (
	"github.com/jpl-au/lens/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Standalone    = (*Extension)(nil)
)

// Name returns "core" - this extension provides fundamental lens commands.
func (e *Extension) Name() string { return "core" }

// Init keeps the shared context for the theme command.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newConfigCmd(),
		e.newThemeCmd(),
		newLogCmd(),
		newGuideCmd(),
		newServeCmd(),
		newVersionCmd(),
	}
}

// StandaloneCommands returns commands that run without the registry.
// config: Must work when the config file is malformed so it can be fixed.
// log: Reads the audit database only.
// guide, version: Print static information.
// serve: Builds its own registry so audit entries carry the MCP source.
func (e *Extension) StandaloneCommands() []string {
	return []string{"config", "log", "guide", "serve", "version"}
}
