// Package config provides reading and writing of lens configuration.
// Supports both global (~/.lens/config.yaml) and local (.lens/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/jpl-au/lens/internal/glob"
	"github.com/jpl-au/lens/internal/validate"
	"github.com/jpl-au/lens/plugin"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.lens/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .lens/config.yaml
	ScopeLocal
)

// Render holds presentation preferences.
type Render struct {
	Theme         string `yaml:"theme,omitempty"`
	Width         *int   `yaml:"width,omitempty"`
	DefaultPlugin string `yaml:"default_plugin,omitempty"`

	// Disabled lists plugin identifiers removed from the registry after
	// the built-ins are registered.
	Disabled []string `yaml:"disabled,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxContent *int64 `yaml:"max_content,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultTheme      = "auto"
	DefaultWidth      = 80
	DefaultMaxContent = 10 * 1024 * 1024 // 10 MB
)

// Validation bounds for configuration values.
const (
	MinWidth      = 20
	MaxWidth      = 500
	MinMaxContent = 1
	MaxMaxContent = 1024 * 1024 * 1024 // 1 GB
)

// Config contains configuration for lens.
type Config struct {
	Render Render `yaml:"render,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// Detect maps glob patterns to file types, overriding built-in
	// detection (e.g. "*.mdx": markdown).
	Detect map[string]string `yaml:"detect,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Render.Theme != "" && c.Render.Theme != DefaultTheme {
		if err := validate.Theme(c.Render.Theme); err != nil {
			return fmt.Errorf("%w: render.theme: %v", ErrInvalidValue, err)
		}
	}
	if c.Render.DefaultPlugin != "" {
		if err := validate.PluginID(c.Render.DefaultPlugin); err != nil {
			return fmt.Errorf("%w: render.default_plugin: %v", ErrInvalidValue, err)
		}
	}
	for _, id := range c.Render.Disabled {
		if err := validate.PluginID(id); err != nil {
			return fmt.Errorf("%w: render.disabled: %v", ErrInvalidValue, err)
		}
	}
	if c.Render.Width != nil {
		v := *c.Render.Width
		if v < MinWidth || v > MaxWidth {
			return fmt.Errorf("%w: width must be between %d and %d, got %d",
				ErrInvalidValue, MinWidth, MaxWidth, v)
		}
	}
	if c.Limits.MaxContent != nil {
		v := *c.Limits.MaxContent
		if v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	for pattern, ft := range c.Detect {
		if !glob.Valid(pattern) {
			return fmt.Errorf("%w: detect pattern %q is malformed", ErrInvalidValue, pattern)
		}
		if err := validate.FileType(ft); err != nil {
			return fmt.Errorf("%w: detect.%s: %v", ErrInvalidValue, pattern, err)
		}
	}
	return nil
}

// Theme returns the configured theme (defaults to "auto").
func (c *Config) Theme() string {
	if c.Render.Theme == "" {
		return DefaultTheme
	}
	return c.Render.Theme
}

// Width returns the wrap width in columns (defaults to 80).
func (c *Config) Width() int {
	if c.Render.Width == nil {
		return DefaultWidth
	}
	return *c.Render.Width
}

// DefaultPlugin returns the identifier of the fallback plugin
// (defaults to plugin.DefaultID).
func (c *Config) DefaultPlugin() string {
	if c.Render.DefaultPlugin == "" {
		return plugin.DefaultID
	}
	return c.Render.DefaultPlugin
}

// Disabled returns the identifiers of disabled plugins.
func (c *Config) Disabled() []string {
	return slices.Clone(c.Render.Disabled)
}

// IsDisabled reports whether id is in render.disabled.
func (c *Config) IsDisabled(id string) bool {
	return slices.Contains(c.Render.Disabled, id)
}

// Disable adds id to render.disabled and reports whether it was added.
func (c *Config) Disable(id string) (bool, error) {
	if err := validate.PluginID(id); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if c.IsDisabled(id) {
		return false, nil
	}
	c.Render.Disabled = append(c.Render.Disabled, id)
	return true, nil
}

// Enable removes id from render.disabled and reports whether it was there.
func (c *Config) Enable(id string) bool {
	i := slices.Index(c.Render.Disabled, id)
	if i < 0 {
		return false
	}
	c.Render.Disabled = slices.Delete(c.Render.Disabled, i, i+1)
	return true
}

// MaxContent returns the maximum input size in bytes (defaults to 10 MB).
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// DetectPatterns returns the configured detection patterns in sorted order,
// so the first matching pattern is stable across runs.
func (c *Config) DetectPatterns() []string {
	patterns := make([]string, 0, len(c.Detect))
	for p := range c.Detect {
		patterns = append(patterns, p)
	}
	slices.Sort(patterns)
	return patterns
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".lens", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.lens/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lens", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	// Check if local config exists
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	// Fall back to global
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	return loadPath(pathForScope(scope), scope)
}

// loadPath reads configuration from path. A missing file yields an empty
// config bound to that path.
func loadPath(path string, scope Scope) (*Config, error) {
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Path returns the file this config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
