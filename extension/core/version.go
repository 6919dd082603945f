// version.go implements the version command.

package core

import (
	"fmt"

	"github.com/jpl-au/lens/cmd"
	"github.com/jpl-au/lens/extension"
	"github.com/jpl-au/lens/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, git commit, Go version, platform and built-in plugins.`,
		Run: func(_ *cobra.Command, _ []string) {
			var ids []string
			for _, d := range extension.Plugins() {
				ids = append(ids, d.ID)
			}
			info := version.Get(ids)
			if cmd.JSON() {
				_ = cmd.PrintJSON(info)
				return
			}
			fmt.Fprint(cmd.Out(), info.String())
		},
	}
}
