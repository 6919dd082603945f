// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the MCP and CLI interface where config
// is accessed by string keys (e.g., "render.theme").
//
// render.disabled is a list in YAML and a comma-separated string here.
// Setting it to an empty value enables every plugin again.
//
// Detection overrides use dynamic keys: "detect.<pattern>" where the
// pattern is everything after the first dot ("detect.*.mdx" -> "*.mdx").
// Setting an empty value removes the override.

package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/lens/internal/glob"
	"github.com/jpl-au/lens/internal/validate"
)

const detectPrefix = "detect."

// ValidKeys returns all fixed configuration keys.
func ValidKeys() []string {
	return []string{
		"render.theme", "render.width", "render.default_plugin",
		"render.disabled", "limits.max_content",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	if p, ok := strings.CutPrefix(key, detectPrefix); ok {
		return p != ""
	}
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	if p, ok := strings.CutPrefix(key, detectPrefix); ok && p != "" {
		return c.Detect[p], nil
	}
	switch key {
	case "render.theme":
		return c.Theme(), nil
	case "render.width":
		return strconv.Itoa(c.Width()), nil
	case "render.default_plugin":
		return c.DefaultPlugin(), nil
	case "render.disabled":
		return strings.Join(c.Render.Disabled, ","), nil
	case "limits.max_content":
		return strconv.FormatInt(c.MaxContent(), 10), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	if p, ok := strings.CutPrefix(key, detectPrefix); ok && p != "" {
		return c.setDetect(p, value)
	}
	switch key {
	case "render.theme":
		if value != DefaultTheme {
			if err := validate.Theme(value); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidValue, err)
			}
		}
		c.Render.Theme = value
	case "render.width":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinWidth || n > MaxWidth {
			return fmt.Errorf("%w: render.width must be an integer between %d and %d", ErrInvalidValue, MinWidth, MaxWidth)
		}
		c.Render.Width = &n
	case "render.default_plugin":
		if err := validate.PluginID(value); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		c.Render.DefaultPlugin = value
	case "render.disabled":
		return c.setDisabled(value)
	case "limits.max_content":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < MinMaxContent || n > MaxMaxContent {
			return fmt.Errorf("%w: limits.max_content must be a positive integer up to %d", ErrInvalidValue, int64(MaxMaxContent))
		}
		c.Limits.MaxContent = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func (c *Config) setDisabled(value string) error {
	var ids []string
	for id := range strings.SplitSeq(value, ",") {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(ids, id) {
			continue
		}
		if err := validate.PluginID(id); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		ids = append(ids, id)
	}
	c.Render.Disabled = ids
	return nil
}

func (c *Config) setDetect(pattern, ft string) error {
	if ft == "" {
		delete(c.Detect, pattern)
		return nil
	}
	if !glob.Valid(pattern) {
		return fmt.Errorf("%w: detect pattern %q is malformed", ErrInvalidValue, pattern)
	}
	if err := validate.FileType(ft); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if c.Detect == nil {
		c.Detect = make(map[string]string)
	}
	c.Detect[pattern] = ft
	return nil
}

// All returns all configuration values as a map, including one
// "detect.<pattern>" entry per override.
func (c *Config) All() map[string]string {
	all := map[string]string{
		"render.theme":          c.Theme(),
		"render.width":          strconv.Itoa(c.Width()),
		"render.default_plugin": c.DefaultPlugin(),
		"render.disabled":       strings.Join(c.Render.Disabled, ","),
		"limits.max_content":    strconv.FormatInt(c.MaxContent(), 10),
	}
	for p, ft := range c.Detect {
		all[detectPrefix+p] = ft
	}
	return all
}

// Keys returns the keys of All in sorted order for stable display.
func (c *Config) Keys() []string {
	return slices.Sorted(maps.Keys(c.All()))
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	if p, ok := strings.CutPrefix(key, detectPrefix); ok {
		_, set := c.Detect[p]
		return set
	}
	switch key {
	case "render.theme":
		return c.Render.Theme != ""
	case "render.width":
		return c.Render.Width != nil
	case "render.default_plugin":
		return c.Render.DefaultPlugin != ""
	case "render.disabled":
		return len(c.Render.Disabled) > 0
	case "limits.max_content":
		return c.Limits.MaxContent != nil
	default:
		return false
	}
}
