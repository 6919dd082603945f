// Package plugin provides the renderer plugin model for lens. A plugin
// declares the themes and file types it can present and carries a Renderer
// that does the actual work. The Registry picks one plugin per request.
package plugin

import (
	"context"
	"io"
	"slices"
)

// Theme names a presentation style (e.g. "dark", "light", "notty").
type Theme string

// FileType names a content kind (e.g. "markdown", "go", "csv").
// The empty FileType means "unknown".
type FileType string

// DefaultID is the identifier of the fallback plugin returned when no
// capability matches a request.
const DefaultID = "default"

// Descriptor is the unit of registration: an identifier, the capability
// sets, and the behaviour payload.
type Descriptor struct {
	ID        string     `json:"id"`
	Themes    []Theme    `json:"themes"`
	FileTypes []FileType `json:"file_types"`

	// Renderer is opaque to the registry. Callers type-switch on it
	// when they need a specific built-in.
	Renderer Renderer `json:"-"`
}

// SupportsTheme reports whether t is in the declared theme set.
func (d Descriptor) SupportsTheme(t Theme) bool {
	return slices.Contains(d.Themes, t)
}

// SupportsFileType reports whether ft is in the declared file type set.
func (d Descriptor) SupportsFileType(ft FileType) bool {
	return slices.Contains(d.FileTypes, ft)
}

// clone copies the capability slices so registry state can't be mutated
// through a descriptor handed in or out.
func (d Descriptor) clone() Descriptor {
	d.Themes = slices.Clone(d.Themes)
	d.FileTypes = slices.Clone(d.FileTypes)
	return d
}

// RenderOptions carries per-request presentation settings.
type RenderOptions struct {
	Theme    Theme
	FileType FileType
	Filename string // optional, used by renderers that pick a lexer by name
	Width    int    // wrap width in columns; 0 means renderer default
}

// Renderer writes a presentation of src to w.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, src []byte, opts RenderOptions) error
}

// RenderFunc adapts an ordinary function to the Renderer interface.
type RenderFunc func(ctx context.Context, w io.Writer, src []byte, opts RenderOptions) error

// Render calls f.
func (f RenderFunc) Render(ctx context.Context, w io.Writer, src []byte, opts RenderOptions) error {
	return f(ctx, w, src, opts)
}
