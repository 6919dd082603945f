// Package code provides the chroma-backed source code highlighter.
package code

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/jpl-au/lens/plugin"
)

// ID is the registry identifier of the code highlighter.
const ID = "code"

// styleFor maps lens themes to chroma styles. notty has no entry: it is
// rendered without colour.
var styleFor = map[plugin.Theme]string{
	"dark":    "monokai",
	"light":   "github",
	"dracula": "dracula",
}

// FileTypes lists the languages this renderer declares. Each name is a
// chroma lexer alias.
var FileTypes = []plugin.FileType{
	"go", "python", "rust", "javascript", "typescript", "json", "yaml", "toml",
	"shell", "sql", "html", "css", "c", "cpp", "java", "ruby", "dockerfile", "makefile",
	"php", "kotlin", "swift", "lua", "perl", "scala", "csharp",
}

// Renderer highlights source code with chroma.
type Renderer struct{}

// Descriptor returns the registration for the code highlighter.
func Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:        ID,
		Themes:    []plugin.Theme{"dark", "light", "dracula", "notty"},
		FileTypes: FileTypes,
		Renderer:  Renderer{},
	}
}

// Render writes highlighted src. The lexer is chosen by file type, then
// filename, then content analysis.
func (Renderer) Render(_ context.Context, w io.Writer, src []byte, opts plugin.RenderOptions) error {
	lexer := lexerFor(opts, src)

	formatter := formatters.Get("terminal256")
	style := styles.Get("monokai")
	if name, ok := styleFor[opts.Theme]; ok {
		style = styles.Get(name)
	} else if opts.Theme == "notty" {
		formatter = formatters.Get("noop")
	}

	it, err := lexer.Tokenise(nil, string(src))
	if err != nil {
		return fmt.Errorf("tokenise: %w", err)
	}
	if err := formatter.Format(w, style, it); err != nil {
		return fmt.Errorf("format code: %w", err)
	}
	return nil
}

func lexerFor(opts plugin.RenderOptions, src []byte) chroma.Lexer {
	var l chroma.Lexer
	if opts.FileType != "" {
		l = lexers.Get(string(opts.FileType))
	}
	if l == nil && opts.Filename != "" {
		l = lexers.Match(opts.Filename)
	}
	if l == nil {
		l = lexers.Analyse(string(src))
	}
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}
