// Package all collects the built-in renderers. The composition root
// registers them in the order returned by Descriptors.
package all

import (
	"github.com/jpl-au/lens/plugin"
	"github.com/jpl-au/lens/renderer/code"
	"github.com/jpl-au/lens/renderer/diff"
	"github.com/jpl-au/lens/renderer/markdown"
	"github.com/jpl-au/lens/renderer/plain"
	"github.com/jpl-au/lens/renderer/table"
)

// Descriptors returns every built-in renderer. The plain renderer comes
// first and declares every built-in theme, so content whose file type no
// renderer declares is shown as text rather than through a specialised
// renderer that happens to share the theme. File-type matches are
// unaffected because plain only declares text.
func Descriptors() []plugin.Descriptor {
	return []plugin.Descriptor{
		plain.Descriptor(),
		markdown.Descriptor(),
		code.Descriptor(),
		table.Descriptor(),
		diff.Descriptor(),
	}
}
