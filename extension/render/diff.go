// diff.go implements the "lens diff" command.
//
// Design: lens computes the diff itself and renders the text through
// whichever plugin resolves for the "diff" file type, so replacing the
// diff plugin changes how diffs look everywhere.

package render

import (
	"fmt"
	"os"

	"github.com/jpl-au/lens/cmd"
	"github.com/jpl-au/lens/extension"
	"github.com/jpl-au/lens/internal/diff"
	"github.com/jpl-au/lens/internal/log"
	"github.com/jpl-au/lens/internal/service"
	"github.com/spf13/cobra"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Show differences between two files",
		Long: `Show line differences between two files, rendered through the diff plugin.

  lens diff draft.md final.md
  lens diff --theme notty a.go b.go > changes.diff`,
		Args: cobra.ExactArgs(2),
		RunE: e.runDiff,
	}
	c.Flags().StringP(extension.FlagTheme, "t", "", "Theme (default: render.theme)")
	c.Flags().StringP(extension.FlagPlugin, "p", "", "Force a plugin by identifier")
	return c
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	themeName, _ := c.Flags().GetString(extension.FlagTheme)
	pluginID, _ := c.Flags().GetString(extension.FlagPlugin)
	maxLen := e.svc.Config().MaxContent()

	oldContent, err := readInput(c.InOrStdin(), args[0], maxLen)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	newContent, err := readInput(c.InOrStdin(), args[1], maxLen)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	r := diff.Compute(string(oldContent), string(newContent), args[0], args[1])
	log.Event("cli:diff", "diff").Path(args[0]).Detail("new", args[1]).
		Detail("added", r.Added).Detail("removed", r.Removed).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(r)
	}
	if r.Equal() {
		return nil
	}

	_, err = e.svc.Render(c.Context(), cmd.Out(), service.Request{
		Content:  []byte(r.Format(false)),
		Theme:    themeName,
		FileType: "diff",
		Plugin:   pluginID,
		IsTTY:    cmd.IsTTY(),
		Source:   "cli:diff",
	})
	if err != nil {
		// Fall back to the uncoloured diff rather than showing nothing.
		fmt.Fprintf(os.Stderr, "lens: %v\n", err)
		fmt.Fprint(cmd.Out(), r.Format(false))
	}
	return nil
}
