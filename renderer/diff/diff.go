// Package diff renders unified diffs and patches with +/- colouring.
package diff

import (
	"context"
	"io"

	"github.com/jpl-au/lens/internal/diff"
	"github.com/jpl-au/lens/plugin"
)

// ID is the registry identifier of the diff renderer.
const ID = "diff"

// Renderer colourises diff content.
type Renderer struct{}

// Descriptor returns the registration for the diff renderer.
func Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:        ID,
		Themes:    []plugin.Theme{"dark", "light", "notty"},
		FileTypes: []plugin.FileType{"diff", "patch"},
		Renderer:  Renderer{},
	}
}

// Render writes src with added and removed lines coloured, unless the
// theme is notty.
func (Renderer) Render(_ context.Context, w io.Writer, src []byte, opts plugin.RenderOptions) error {
	if opts.Theme == "notty" {
		_, err := w.Write(src)
		return err
	}
	_, err := io.WriteString(w, diff.Colourise(string(src)))
	return err
}
