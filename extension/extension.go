// Package extension provides the command architecture for lens. Extensions
// group related commands, may contribute renderer plugins, and register at
// init time so new features need no changes to core code.
package extension

import (
	"github.com/jpl-au/lens/plugin"
	"github.com/spf13/cobra"
)

// Extension defines the contract for lens extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command
}

// Initializable extensions receive the shared context before any of their
// commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Provider extensions contribute renderer plugins. Plugins are registered
// in extension registration order, then in the order returned, so a later
// provider can replace an earlier one's plugin by reusing its identifier.
type Provider interface {
	Extension
	Plugins() []plugin.Descriptor
}

// Standalone is an optional interface for extensions with commands that
// run without the shared context: no config load, no plugin registry.
//
// Use cases:
// 1. Commands that must work when the config file is broken (config)
// 2. Commands that only print static information (version, guide)
type Standalone interface {
	StandaloneCommands() []string
}
