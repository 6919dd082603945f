// Package glob provides glob pattern matching for file paths.
//
// Wraps doublestar so patterns like "docs/**/*.txt" match at any depth.
// Patterns without a slash also match against the base name, so "*.mdx"
// matches "notes/intro.mdx".
package glob

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Valid reports whether pattern is well formed.
func Valid(pattern string) bool {
	return doublestar.ValidatePattern(filepath.ToSlash(pattern))
}

// Match reports whether path matches the glob pattern.
// Supports standard glob patterns (*, ?, [...], {a,b}) plus ** for matching
// any path segments. Returns an error if the pattern is malformed.
func Match(pattern, path string) (bool, error) {
	pattern = filepath.ToSlash(pattern)
	path = filepath.ToSlash(path)

	if !doublestar.ValidatePattern(pattern) {
		return false, fmt.Errorf("%w: %q", doublestar.ErrBadPattern, pattern)
	}

	matched, err := doublestar.Match(pattern, path)
	if err != nil || matched {
		return matched, err
	}

	// Try matching just the filename
	if !strings.Contains(pattern, "/") {
		return doublestar.Match(pattern, filepath.Base(path))
	}
	return false, nil
}
