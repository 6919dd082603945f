// name.go validates plugin identifiers, theme names and file type names
// supplied on the command line, through MCP, or in config.
//
// The registry itself accepts any identifier. These checks only run at the
// edges where a user types a name, so a typo like "Dark " is reported
// instead of silently matching nothing.

package validate

import (
	"fmt"
	"strings"
)

// maxNameLen bounds names well beyond any real theme or language name.
const maxNameLen = 64

// PluginID validates a plugin identifier.
func PluginID(id string) error {
	return name("plugin id", id)
}

// Theme validates a theme name.
func Theme(t string) error {
	return name("theme", t)
}

// FileType validates a file type name.
func FileType(ft string) error {
	return name("file type", ft)
}

// name accepts lower-case ASCII letters, digits, '.', '_', '-' and '+'.
func name(kind, s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidName, kind)
	}
	if len(s) > maxNameLen {
		return fmt.Errorf("%w: %s longer than %d characters", ErrInvalidName, kind, maxNameLen)
	}
	if i := strings.IndexFunc(s, func(r rune) bool { return !valid(r) }); i >= 0 {
		return fmt.Errorf("%w: %s %q contains %q", ErrInvalidName, kind, s, s[i])
	}
	return nil
}

func valid(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-', r == '+':
		return true
	}
	return false
}
