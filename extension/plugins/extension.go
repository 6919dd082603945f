// Package plugins provides the plugins extension for inspecting the
// plugin registry. Registers commands: plugins, plugins info, plugins status.
package plugins

import (
	"fmt"

	"github.com/jpl-au/lens/cmd"
	"github.com/jpl-au/lens/extension"
	"github.com/jpl-au/lens/internal/format"
	"github.com/jpl-au/lens/internal/log"
	"github.com/jpl-au/lens/internal/service"
	"github.com/jpl-au/lens/plugin"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the plugins extension.
type Extension struct {
	reg *plugin.Registry
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "plugins".
func (e *Extension) Name() string { return "plugins" }

// Init connects to the shared registry.
func (e *Extension) Init(ctx extension.Context) error {
	e.reg = ctx.Registry()
	return nil
}

// Commands returns the plugins command tree.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "plugins",
		Short: "List registered plugins",
		Long: `List registered plugins in resolution order. The default plugin is marked *.

  lens plugins
  lens plugins --theme light
  lens plugins --type markdown
  lens plugins info code
  lens plugins status`,
		Args: cobra.NoArgs,
		RunE: e.runList,
	}
	c.Flags().StringP(extension.FlagTheme, "t", "", "Only plugins declaring this theme")
	c.Flags().String(extension.FlagFileType, "", "Only plugins declaring this file type")
	c.AddCommand(e.newInfoCmd(), e.newStatusCmd())
	return []*cobra.Command{c}
}

func (e *Extension) runList(c *cobra.Command, _ []string) error {
	t, _ := c.Flags().GetString(extension.FlagTheme)
	ft, _ := c.Flags().GetString(extension.FlagFileType)

	ds := e.reg.Find(plugin.Theme(t), plugin.FileType(ft))
	log.Event("cli:plugins", "list").Theme(t).FileType(ft).Detail("count", len(ds)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(ds)
	}
	return format.Plugins(cmd.Out(), ds, e.reg.DefaultID())
}

func (e *Extension) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <id>",
		Short: "Show one plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			d, ok := e.reg.Get(args[0])
			var err error
			if !ok {
				err = fmt.Errorf("%w: %s", service.ErrUnknownPlugin, args[0])
			}
			log.Event("cli:plugins", "info").Plugin(args[0], "").Write(err)
			if err != nil {
				return cmd.PrintJSONError(err)
			}

			if cmd.JSON() {
				return cmd.PrintJSON(d)
			}
			return format.Plugin(cmd.Out(), d, d.ID == e.reg.DefaultID())
		},
	}
}

func (e *Extension) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarise the registry",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s := e.reg.Status()
			log.Event("cli:plugins", "status").Detail("count", s.Count).Write(nil)
			if cmd.JSON() {
				return cmd.PrintJSON(s)
			}
			return format.Status(cmd.Out(), s)
		},
	}
}
