// Package all imports all core lens extensions.
// Import this package to register all built-in commands and plugins.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/lens/extension/core"
	_ "github.com/jpl-au/lens/extension/plugins"
	_ "github.com/jpl-au/lens/extension/render"
)
