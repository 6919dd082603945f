// Package detect works out a file type for content lens is asked to render.
//
// Detection order: configured glob overrides, well-known extensions and
// base names, chroma's filename registry, then content sniffing. The result
// is a plugin.FileType, or "" when nothing matched; the registry then falls
// back to theme-only resolution.
package detect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/jpl-au/lens/internal/glob"
	"github.com/jpl-au/lens/plugin"
)

// Override maps a glob pattern to a file type. Overrides are tried in the
// order given; the first match wins.
type Override struct {
	Pattern  string
	FileType plugin.FileType
}

// byExtension covers types chroma has no lexer for, or names lens prefers
// over chroma's alias.
var byExtension = map[string]plugin.FileType{
	".md":       "markdown",
	".markdown": "markdown",
	".mdx":      "markdown",
	".csv":      "csv",
	".tsv":      "tsv",
	".diff":     "diff",
	".patch":    "patch",
	".txt":      "text",
	".text":     "text",
	".log":      "text",
	".sh":       "shell",
	".bash":     "shell",
	".zsh":      "shell",
	".yml":      "yaml",
	".yaml":     "yaml",
}

var byBase = map[string]plugin.FileType{
	"dockerfile":  "dockerfile",
	"makefile":    "makefile",
	"gnumakefile": "makefile",
	"readme":      "markdown",
}

// aliases maps chroma aliases to the names lens uses.
var aliases = map[string]plugin.FileType{
	"bash":   "shell",
	"sh":     "shell",
	"docker": "dockerfile",
	"make":   "makefile",
	"js":     "javascript",
	"ts":     "typescript",
	"py":     "python",
	"golang": "go",
}

// Detect returns the file type of the named content. Either argument may
// be empty.
func Detect(filename string, content []byte, overrides []Override) plugin.FileType {
	if filename != "" {
		if ft := FromName(filename, overrides); ft != "" {
			return ft
		}
	}
	return FromContent(content)
}

// FromName detects a file type from the file name alone.
func FromName(filename string, overrides []Override) plugin.FileType {
	for _, o := range overrides {
		if ok, err := glob.Match(o.Pattern, filename); err == nil && ok {
			return o.FileType
		}
	}

	base := filepath.Base(filename)
	if ft, ok := byExtension[strings.ToLower(filepath.Ext(base))]; ok {
		return ft
	}
	if ft, ok := byBase[strings.ToLower(base)]; ok {
		return ft
	}
	if l := lexers.Match(base); l != nil {
		return fromLexerConfig(l.Config().Name, l.Config().Aliases)
	}
	return ""
}

// FromContent sniffs a file type from content. Diffs are recognised by
// their headers; everything else is left to chroma's analysers.
func FromContent(content []byte) plugin.FileType {
	if len(bytes.TrimSpace(content)) == 0 {
		return ""
	}
	if isDiff(content) {
		return "diff"
	}
	if l := lexers.Analyse(string(content)); l != nil {
		return fromLexerConfig(l.Config().Name, l.Config().Aliases)
	}
	return ""
}

func isDiff(content []byte) bool {
	return bytes.HasPrefix(content, []byte("diff --git ")) ||
		(bytes.HasPrefix(content, []byte("--- ")) && bytes.Contains(content, []byte("\n+++ ")))
}

func fromLexerConfig(name string, lexerAliases []string) plugin.FileType {
	alias := strings.ToLower(name)
	if len(lexerAliases) > 0 {
		alias = lexerAliases[0]
	}
	if ft, ok := aliases[alias]; ok {
		return ft
	}
	return plugin.FileType(alias)
}
