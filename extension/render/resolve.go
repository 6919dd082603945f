// resolve.go implements the "lens resolve" command, which explains which
// plugin a request would use without rendering anything.

package render

import (
	"github.com/jpl-au/lens/cmd"
	"github.com/jpl-au/lens/extension"
	"github.com/jpl-au/lens/internal/format"
	"github.com/jpl-au/lens/internal/log"
	"github.com/jpl-au/lens/internal/service"
	"github.com/jpl-au/lens/internal/validate"
	"github.com/jpl-au/lens/plugin"
	"github.com/spf13/cobra"
)

func (e *Extension) newResolveCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "resolve <theme> [file-type]",
		Short: "Show which plugin would render a theme and file type",
		Long: `Show which plugin would render a theme and file type, and which rule chose it.

  lens resolve dark markdown
  lens resolve light               # file type unknown
  lens resolve auto --file data.csv

Rules, first match wins:
  filetype+theme  a plugin declares both
  filetype        a plugin declares the file type only
  theme           no plugin declares the file type; first declaring the theme
  default         nothing matched; the default plugin`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runResolve,
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Detect the file type from this file name")
	return c
}

func (e *Extension) runResolve(c *cobra.Command, args []string) error {
	file, _ := c.Flags().GetString(extension.FlagFile)

	req := service.Request{
		Filename: file,
		Theme:    args[0],
		IsTTY:    cmd.IsTTY(),
	}
	if len(args) == 2 {
		if err := validate.FileType(args[1]); err != nil {
			return cmd.PrintJSONError(err)
		}
		req.FileType = plugin.FileType(args[1])
	}

	_, out, err := e.svc.Resolve(req)
	log.Event("cli:resolve", "resolve").Path(file).
		Theme(string(out.Theme)).FileType(string(out.FileType)).Plugin(out.Plugin, out.Rule).Write(err)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	if cmd.JSON() {
		return cmd.PrintJSON(out)
	}
	return format.Outcome(cmd.Out(), out)
}
