// Package markdown provides the glamour-backed markdown renderer.
package markdown

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/lens/plugin"
)

// ID is the registry identifier of the markdown renderer.
const ID = "markdown"

// defaultWidth matches glamour's own default word wrap.
const defaultWidth = 80

// Themes lists the glamour standard styles this renderer exposes.
var Themes = []plugin.Theme{"dark", "light", "dracula", "tokyo-night", "pink", "ascii", "notty"}

// Renderer renders markdown with glamour.
type Renderer struct{}

// Descriptor returns the registration for the markdown renderer.
func Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:        ID,
		Themes:    Themes,
		FileTypes: []plugin.FileType{"markdown"},
		Renderer:  Renderer{},
	}
}

// Render writes src as styled terminal markdown. Themes glamour does not
// know fall back to "dark".
func (Renderer) Render(_ context.Context, w io.Writer, src []byte, opts plugin.RenderOptions) error {
	style := string(opts.Theme)
	if !slices.Contains(Themes, opts.Theme) {
		style = "dark"
	}
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(string(src))
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
