// theme.go implements the "lens theme" command.
//
// Design: Only themes some registered plugin declares can be saved, plus
// "auto". A theme no plugin declares would always fall through to the
// default plugin, which is almost certainly a typo.

package core

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jpl-au/lens/cmd"
	"github.com/jpl-au/lens/extension"
	"github.com/jpl-au/lens/internal/log"
	"github.com/jpl-au/lens/internal/theme"
	"github.com/jpl-au/lens/plugin"
	"github.com/spf13/cobra"
)

// ErrUnknownTheme is returned when saving a theme no plugin declares.
var ErrUnknownTheme = errors.New("no plugin declares theme")

func (e *Extension) newThemeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "theme [name]",
		Short: "Show, set or pick the render theme",
		Long: `Show, set or pick the render theme.

  lens theme            # configured and effective theme, and what is available
  lens theme dracula    # save render.theme
  lens theme auto       # follow the terminal background
  lens theme --pick     # choose interactively`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runTheme,
	}
	c.Flags().Bool(extension.FlagPick, false, "Choose a theme interactively")
	c.Flags().Bool(extension.FlagLocal, false, "Save to local config (.lens/config.yaml)")
	return c
}

// themeInfo is the JSON shape of "lens theme".
type themeInfo struct {
	Configured string         `json:"configured"`
	Effective  plugin.Theme   `json:"effective"`
	Available  []plugin.Theme `json:"available"`
}

func (e *Extension) runTheme(c *cobra.Command, args []string) error {
	pick, _ := c.Flags().GetBool(extension.FlagPick)
	reg := e.ctx.Registry()
	available := reg.Themes()

	if len(args) == 0 && !pick {
		configured := e.ctx.Config().Theme()
		info := themeInfo{
			Configured: configured,
			Effective:  theme.Resolve(configured, cmd.IsTTY()),
			Available:  available,
		}
		log.Event("cli:theme", "get").Theme(string(info.Effective)).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(info)
		}
		fmt.Fprintf(cmd.Out(), "Configured:  %s\n", info.Configured)
		fmt.Fprintf(cmd.Out(), "Effective:   %s\n", info.Effective)
		fmt.Fprintf(cmd.Out(), "Available:   %s\n", joinThemes(info.Available))
		return nil
	}

	var name string
	if pick {
		t, err := theme.Pick(available, plugin.Theme(e.ctx.Config().Theme()))
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		name = string(t)
	} else {
		name = args[0]
	}

	ev := log.Event("cli:theme", "set").Theme(name)
	if name != theme.Auto && !slices.Contains(available, plugin.Theme(name)) {
		err := fmt.Errorf("%w %q (available: %s)", ErrUnknownTheme, name, joinThemes(available))
		ev.Write(err)
		return cmd.PrintJSONError(err)
	}

	cfg, err := loadConfig(c)
	if err == nil {
		err = cfg.Set("render.theme", name)
	}
	if err == nil {
		err = cfg.Save()
	}
	ev.Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("saving theme: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"theme": name, "scope": scopeName(cfg)})
	}
	fmt.Fprintf(cmd.Out(), "render.theme = %s (%s)\n", name, scopeName(cfg))
	return nil
}

func joinThemes(ts []plugin.Theme) string {
	if len(ts) == 0 {
		return "-"
	}
	s := string(ts[0])
	for _, t := range ts[1:] {
		s += ", " + string(t)
	}
	return s
}
