// Package plain provides the fallback text renderer registered under
// plugin.DefaultID.
package plain

import (
	"context"
	"io"

	"github.com/jpl-au/lens/plugin"
	"github.com/muesli/reflow/wordwrap"
)

// Renderer writes text as-is, word wrapped to the requested width.
type Renderer struct{}

// Descriptor returns the registration for the plain renderer.
func Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:        plugin.DefaultID,
		Themes:    []plugin.Theme{"dark", "light", "dracula", "tokyo-night", "pink", "ascii", "notty"},
		FileTypes: []plugin.FileType{"text"},
		Renderer:  Renderer{},
	}
}

// Render writes src, wrapping long lines when a width is set.
func (Renderer) Render(_ context.Context, w io.Writer, src []byte, opts plugin.RenderOptions) error {
	if opts.Width <= 0 {
		_, err := w.Write(src)
		return err
	}
	_, err := io.WriteString(w, wordwrap.String(string(src), opts.Width))
	return err
}
