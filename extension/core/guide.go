// guide.go implements the "lens guide" command for documentation access.
//
// Design: Guides are embedded in the binary via the guide package, ensuring
// documentation is always available without external files. Terminal output
// goes through the markdown renderer; pipe/redirect gets raw markdown for
// machine consumption and LLM context loading.

package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/lens/cmd"
	"github.com/jpl-au/lens/guide"
	"github.com/jpl-au/lens/internal/log"
	"github.com/jpl-au/lens/internal/theme"
	"github.com/jpl-au/lens/plugin"
	"github.com/jpl-au/lens/renderer/markdown"
	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the lens usage guide",
		Long: `Outputs the lens guide for LLMs and humans.

  lens guide           # main guide
  lens guide resolve   # how a plugin is chosen
  lens guide config    # configuration keys`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			log.Event("cli:guide", "read").Detail("topic", name).Write(err)
			if err != nil {
				if !errors.Is(err, guide.ErrUnknownTopic) {
					return cmd.PrintJSONError(err)
				}
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"topic": name, "content": content})
			}

			if t := theme.Resolve(theme.Auto, cmd.IsTTY()); t != theme.NoTTY {
				opts := plugin.RenderOptions{Theme: t, FileType: "markdown", Width: cmd.TermWidth()}
				if err := (markdown.Renderer{}).Render(c.Context(), cmd.Out(), []byte(content), opts); err == nil {
					return nil
				}
			}

			fmt.Fprint(cmd.Out(), content)
			return nil
		},
	}
}
