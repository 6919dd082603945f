// Package service joins the plugin registry to configuration, detection
// and the audit log. Commands and MCP tools go through a Service rather
// than talking to the registry directly, so every render is resolved and
// recorded the same way.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jpl-au/lens/internal/config"
	"github.com/jpl-au/lens/internal/detect"
	"github.com/jpl-au/lens/internal/log"
	"github.com/jpl-au/lens/internal/theme"
	"github.com/jpl-au/lens/internal/validate"
	"github.com/jpl-au/lens/plugin"
)

var (
	// ErrNoPlugin is returned when no registered plugin can serve a request
	// and no default plugin is registered.
	ErrNoPlugin = errors.New("no plugin available")
	// ErrUnknownPlugin is returned when a request names a plugin that is
	// not registered.
	ErrUnknownPlugin = errors.New("unknown plugin")
	// ErrNoRenderer is returned when the selected plugin carries no renderer.
	ErrNoRenderer = errors.New("plugin has no renderer")
	// ErrNotPopulated is returned by Reload before Populate has run.
	ErrNotPopulated = errors.New("registry has no plugin source")
)

// Request describes one render.
type Request struct {
	Filename string
	Content  []byte

	// Theme is the requested theme name; "" or "auto" is resolved against
	// the terminal.
	Theme string
	// FileType overrides detection when set.
	FileType plugin.FileType
	// Plugin forces a specific plugin, bypassing best-match resolution.
	Plugin string
	// Width overrides the configured wrap width when positive.
	Width int
	IsTTY bool

	// Source labels the audit entry; defaults to the service's source.
	Source string
}

// Outcome reports what a render or resolution decided.
type Outcome struct {
	Plugin   string          `json:"plugin"`
	Rule     string          `json:"rule"`
	Theme    plugin.Theme    `json:"theme"`
	FileType plugin.FileType `json:"file_type"`
}

// Service resolves and renders content.
//
// mu guards cfg and makes Reload atomic with respect to resolution: a
// request never sees the registry between Clear and RegisterAll.
type Service struct {
	mu      sync.RWMutex
	reg     *plugin.Registry
	cfg     *config.Config
	provide func() []plugin.Descriptor
	source  string
	logger  *slog.Logger
}

// New returns a Service over reg. source labels audit log entries
// ("cli", "mcp:lens_render").
func New(reg *plugin.Registry, cfg *config.Config, source string, logger *slog.Logger) *Service {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{reg: reg, cfg: cfg, source: source, logger: logger}
}

// Registry returns the registry the service resolves against.
func (s *Service) Registry() *plugin.Registry {
	return s.reg
}

// Config returns the configuration in use. Callers must not modify it;
// load a fresh copy and pass it to SetConfig instead.
func (s *Service) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SetConfig swaps the configuration, e.g. after a config_set, and applies
// render.default_plugin to the registry. Disabled plugins take effect on
// the next Reload.
func (s *Service) SetConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.reg.SetDefaultID(cfg.DefaultPlugin())
}

// Populate registers every descriptor from provide, then removes the
// plugins listed in render.disabled. provide is kept for Reload.
func (s *Service) Populate(provide func() []plugin.Descriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provide = provide
	s.reg.RegisterAll(provide()...)
	s.applyDisabled()
}

// Reload swaps in cfg and rebuilds the registry from the Populate source,
// restoring plugins disabled at runtime. A nil cfg keeps the current one.
func (s *Service) Reload(cfg *config.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.provide == nil {
		return ErrNotPopulated
	}
	if cfg != nil {
		s.cfg = cfg
	}
	s.reg.Clear()
	s.reg.SetDefaultID(s.cfg.DefaultPlugin())
	s.reg.RegisterAll(s.provide()...)
	s.applyDisabled()
	s.logger.Debug("plugins reloaded", "plugins", s.reg.IDs())
	return nil
}

// Disable removes id from the running registry. It stays registered in
// any other process; render.disabled makes it permanent.
func (s *Service) Disable(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.reg.Unregister(id) {
		return fmt.Errorf("%w: %s", ErrUnknownPlugin, id)
	}
	s.logger.Debug("plugin disabled", "id", id)
	return nil
}

// applyDisabled must be called with mu held for writing.
func (s *Service) applyDisabled() {
	for _, id := range s.cfg.Disabled() {
		if !s.reg.Has(id) {
			s.logger.Warn("disabled plugin is not registered", "id", id)
			continue
		}
		s.reg.Unregister(id)
	}
}

// Find lists the plugins declaring t and ft; empty values match anything.
func (s *Service) Find(t plugin.Theme, ft plugin.FileType) []plugin.Descriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.Find(t, ft)
}

// Overrides returns the configured detection overrides in pattern order.
func (s *Service) Overrides() []detect.Override {
	return overrides(s.Config())
}

func overrides(cfg *config.Config) []detect.Override {
	patterns := cfg.DetectPatterns()
	out := make([]detect.Override, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, detect.Override{Pattern: p, FileType: plugin.FileType(cfg.Detect[p])})
	}
	return out
}

// Resolve picks the plugin for req without rendering.
func (s *Service) Resolve(req Request) (plugin.Descriptor, Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve(s.cfg, req)
}

// resolve must be called with mu held.
func (s *Service) resolve(cfg *config.Config, req Request) (plugin.Descriptor, Outcome, error) {
	out := Outcome{
		Theme:    resolveTheme(cfg, req),
		FileType: req.FileType,
	}
	if out.FileType == "" {
		out.FileType = detect.Detect(req.Filename, req.Content, overrides(cfg))
	}

	if req.Plugin != "" {
		d, ok := s.reg.Get(req.Plugin)
		if !ok {
			return plugin.Descriptor{}, out, fmt.Errorf("%w: %s", ErrUnknownPlugin, req.Plugin)
		}
		out.Plugin = d.ID
		out.Rule = "explicit"
		return d, out, nil
	}

	res, ok := s.reg.Resolve(out.Theme, out.FileType)
	out.Rule = res.Rule.String()
	if !ok {
		return plugin.Descriptor{}, out, fmt.Errorf("%w for theme %q and file type %q", ErrNoPlugin, out.Theme, out.FileType)
	}
	out.Plugin = res.Descriptor.ID
	s.logger.Debug("resolved plugin", "plugin", out.Plugin, "rule", out.Rule,
		"theme", out.Theme, "file_type", out.FileType)
	return res.Descriptor, out, nil
}

// Render resolves a plugin for req and writes its rendering to w.
// Output is buffered so a failing renderer leaves w untouched.
func (s *Service) Render(ctx context.Context, w io.Writer, req Request) (Outcome, error) {
	source := req.Source
	if source == "" {
		source = s.source
	}
	ev := log.Event(source, "render").Path(req.Filename)

	// One snapshot for the whole request, so a concurrent SetConfig
	// cannot change limits or width halfway through.
	s.mu.RLock()
	cfg := s.cfg
	var (
		d   plugin.Descriptor
		out Outcome
		err error
	)
	if err = validate.Content(int64(len(req.Content)), cfg.MaxContent()); err == nil {
		d, out, err = s.resolve(cfg, req)
	}
	s.mu.RUnlock()

	if errors.Is(err, validate.ErrContentTooLarge) {
		ev.Write(err)
		return Outcome{}, err
	}
	ev.Theme(string(out.Theme)).FileType(string(out.FileType)).Plugin(out.Plugin, out.Rule)
	if err != nil {
		ev.Write(err)
		return out, err
	}
	if d.Renderer == nil {
		err := fmt.Errorf("%w: %s", ErrNoRenderer, d.ID)
		ev.Write(err)
		return out, err
	}

	width := req.Width
	if width <= 0 {
		width = cfg.Width()
	}
	opts := plugin.RenderOptions{
		Theme:    out.Theme,
		FileType: out.FileType,
		Filename: req.Filename,
		Width:    width,
	}

	var buf bytes.Buffer
	if err := d.Renderer.Render(ctx, &buf, req.Content, opts); err != nil {
		err = fmt.Errorf("rendering with %s: %w", d.ID, err)
		ev.Write(err)
		return out, err
	}
	ev.Detail("bytes", buf.Len())
	if _, err := buf.WriteTo(w); err != nil {
		ev.Write(err)
		return out, err
	}
	ev.Write(nil)
	return out, nil
}

func resolveTheme(cfg *config.Config, req Request) plugin.Theme {
	requested := req.Theme
	if requested == "" {
		requested = cfg.Theme()
	}
	return theme.Resolve(requested, req.IsTTY)
}
