// view.go implements the "lens view" command.
//
// Design: each file is resolved on its own, so a batch of mixed files
// renders each through its best plugin. A failing file is reported and the
// rest still render; the command fails if any file failed.

package render

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/lens/cmd"
	"github.com/jpl-au/lens/extension"
	"github.com/jpl-au/lens/internal/progress"
	"github.com/jpl-au/lens/internal/service"
	"github.com/jpl-au/lens/internal/validate"
	"github.com/jpl-au/lens/plugin"
	"github.com/spf13/cobra"
)

// ErrViewFailed is returned when at least one file could not be rendered.
var ErrViewFailed = errors.New("some files could not be rendered")

// stdinName is the file argument that reads standard input.
const stdinName = "-"

func (e *Extension) newViewCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "view <file>...",
		Short: "Render files through the best matching plugin",
		Long: `Render files through the best matching plugin. Use - for standard input.

  lens view README.md
  lens view --theme light main.go data.csv
  lens view --type markdown notes.txt
  cat changes.patch | lens view -`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runView,
	}
	c.Flags().StringP(extension.FlagTheme, "t", "", "Theme (default: render.theme)")
	c.Flags().String(extension.FlagFileType, "", "File type, skipping detection")
	c.Flags().StringP(extension.FlagPlugin, "p", "", "Force a plugin by identifier")
	c.Flags().IntP(extension.FlagWidth, "w", 0, "Wrap width (default: render.width)")
	c.Flags().Bool(extension.FlagRaw, false, "Write files unchanged")
	return c
}

// viewResult is the JSON shape of one rendered file.
type viewResult struct {
	File string `json:"file"`
	service.Outcome
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (e *Extension) runView(c *cobra.Command, args []string) error {
	themeName, _ := c.Flags().GetString(extension.FlagTheme)
	fileType, _ := c.Flags().GetString(extension.FlagFileType)
	pluginID, _ := c.Flags().GetString(extension.FlagPlugin)
	width, _ := c.Flags().GetInt(extension.FlagWidth)
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	if fileType != "" {
		if err := validate.FileType(fileType); err != nil {
			return cmd.PrintJSONError(err)
		}
	}

	p := progress.New("rendering", len(args))
	var results []viewResult
	var firstErr error
	failed := false

	for i, name := range args {
		p.Step(name)
		content, err := readInput(c.InOrStdin(), name, e.svc.Config().MaxContent())
		if err != nil {
			failed = true
			firstErr = cmp.Or(firstErr, err)
			results = append(results, viewResult{File: name, Error: err.Error()})
			continue
		}

		if raw {
			_, _ = cmd.Out().Write(content)
			continue
		}

		var buf bytes.Buffer
		out, err := e.svc.Render(c.Context(), &buf, service.Request{
			Filename: inputName(name),
			Content:  content,
			Theme:    themeName,
			FileType: plugin.FileType(fileType),
			Plugin:   pluginID,
			Width:    width,
			IsTTY:    cmd.IsTTY(),
			Source:   "cli:view",
		})
		r := viewResult{File: name, Outcome: out}
		if err != nil {
			failed = true
			firstErr = cmp.Or(firstErr, err)
			r.Error = err.Error()
		} else {
			r.Output = buf.String()
		}
		results = append(results, r)

		if cmd.JSON() || err != nil {
			continue
		}
		if len(args) > 1 {
			if i > 0 {
				fmt.Fprintln(cmd.Out())
			}
			fmt.Fprintf(cmd.Out(), "==> %s <==\n", name)
		}
		_, _ = buf.WriteTo(cmd.Out())
	}
	p.Done()

	if cmd.JSON() {
		if err := cmd.PrintJSON(results); err != nil {
			return err
		}
		if failed {
			c.SilenceErrors = true
			c.SilenceUsage = true
			return ErrViewFailed
		}
		return nil
	}

	if !failed {
		return nil
	}
	c.SilenceUsage = true
	if len(args) == 1 {
		return firstErr
	}
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(os.Stderr, "lens: %s: %s\n", r.File, r.Error)
		}
	}
	return ErrViewFailed
}

// readInput reads a named file or standard input, refusing anything larger
// than maxLen before reading it all into memory.
func readInput(stdin io.Reader, name string, maxLen int64) ([]byte, error) {
	var r io.Reader
	if name == stdinName {
		r = stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if info, err := f.Stat(); err == nil {
			if err := validate.Content(info.Size(), maxLen); err != nil {
				return nil, err
			}
		}
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxLen+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if err := validate.Content(int64(len(data)), maxLen); err != nil {
		return nil, err
	}
	return data, nil
}

// inputName is the name used for file type detection.
func inputName(name string) string {
	if name == stdinName {
		return ""
	}
	return name
}
