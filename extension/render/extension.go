// Package render provides the render extension: the built-in renderer
// plugins and the commands that use them (view, diff, resolve).
//
// Each command file is separated to isolate its flag handling and output
// formatting.
package render

import (
	"github.com/jpl-au/lens/extension"
	"github.com/jpl-au/lens/internal/service"
	"github.com/jpl-au/lens/plugin"
	"github.com/jpl-au/lens/renderer/all"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the render extension.
type Extension struct {
	svc *service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Provider      = (*Extension)(nil)
)

// Name returns "render" - this extension renders files.
func (e *Extension) Name() string { return "render" }

// Init connects to the shared render service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Plugins returns the built-in renderers.
func (e *Extension) Plugins() []plugin.Descriptor {
	return all.Descriptors()
}

// Commands returns the rendering commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newViewCmd(),
		e.newDiffCmd(),
		e.newResolveCmd(),
	}
}
