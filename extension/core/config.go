// config.go implements the "lens config" command for configuration management.
//
// Design: Config follows a cascade model similar to git: local config
// (.lens/config.yaml) takes precedence over global (~/.lens/config.yaml).
// The --local flag forces use of local config even if it doesn't exist yet.

package core

import (
	"errors"
	"fmt"

	"github.com/jpl-au/lens/cmd"
	"github.com/jpl-au/lens/extension"
	"github.com/jpl-au/lens/internal/config"
	"github.com/jpl-au/lens/internal/format"
	"github.com/jpl-au/lens/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  lens config                        # show config
  lens config render.theme           # show render.theme
  lens config render.theme dracula   # set render.theme
  lens config 'detect.*.mdx' markdown
  lens config 'detect.*.mdx' ''      # remove a detection override

Configuration locations:
  Global: ~/.lens/config.yaml
  Local:  .lens/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.lens/config.yaml)")
	return c
}

// loadConfig loads local config when forced, otherwise the cascade.
func loadConfig(c *cobra.Command) (*config.Config, error) {
	if forceLocal, _ := c.Flags().GetBool(extension.FlagLocal); forceLocal {
		return config.LoadScope(config.ScopeLocal)
	}
	return config.Load()
}

func scopeName(cfg *config.Config) string {
	if cfg.Scope() == config.ScopeLocal {
		return "local"
	}
	return "global"
}

func runConfig(c *cobra.Command, args []string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	switch len(args) {
	case 0:
		log.Event("cli:config", "list").Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(cfg.All())
		}
		return format.Config(cmd.Out(), cfg.Keys(), cfg.All(), cfg.IsSet)

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("cli:config", "get").Detail("key", args[0]).Write(err)
		if err != nil {
			if errors.Is(err, config.ErrUnknownKey) {
				err = fmt.Errorf("%w (valid: %v, detect.<glob>)", err, config.ValidKeys())
			}
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		// Set value - write to same place we read from
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("cli:config", "set").Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		log.Event("cli:config", "set").Detail("key", args[0]).Detail("scope", scopeName(cfg)).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": args[0], "value": args[1], "scope": scopeName(cfg)})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], args[1], scopeName(cfg))
	}
	return nil
}
