// registry.go implements the plugin registry and best-match resolution.
//
// Separated from plugin.go to isolate the mutable state and locking from the
// plain data types. Callers construct one Registry at the composition root
// and pass it to whatever needs to resolve renderers.
//
// Design: Re-registering an identifier replaces the entry in full and moves
// it to the end of enumeration order. Enumeration order is the tie-break
// key for FindBestMatch. Overwrites are logged, not rejected: the latest
// registration wins.

package plugin

import (
	"log/slog"
	"slices"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Rule identifies which resolution rule selected a plugin.
type Rule int

const (
	// RuleNone means nothing matched and no default is registered.
	RuleNone Rule = iota
	// RuleFileTypeAndTheme: a plugin supports both the file type and theme.
	RuleFileTypeAndTheme
	// RuleFileType: a plugin supports the file type but not the theme.
	RuleFileType
	// RuleTheme: no plugin supports the file type; matched on theme alone.
	RuleTheme
	// RuleDefault: nothing matched; the default plugin was returned.
	RuleDefault
)

// String returns the rule name used in logs and JSON output.
func (r Rule) String() string {
	switch r {
	case RuleFileTypeAndTheme:
		return "filetype+theme"
	case RuleFileType:
		return "filetype"
	case RuleTheme:
		return "theme"
	case RuleDefault:
		return "default"
	default:
		return "none"
	}
}

// Resolution is the result of Resolve: the chosen plugin and why.
type Resolution struct {
	Descriptor Descriptor
	Rule       Rule
}

// Status summarises registry contents.
type Status struct {
	Count      int        `json:"count"`
	DefaultID  string     `json:"default_id"`
	HasDefault bool       `json:"has_default"`
	Themes     []Theme    `json:"themes"`
	FileTypes  []FileType `json:"file_types"`
}

// Registry maps plugin identifiers to descriptors. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	entries   *orderedmap.OrderedMap[string, Descriptor]
	defaultID string
	logger    *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithDefaultID changes the identifier treated as the fallback plugin.
func WithDefaultID(id string) Option {
	return func(r *Registry) {
		r.defaultID = id
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries:   orderedmap.New[string, Descriptor](),
		defaultID: DefaultID,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultID returns the identifier of the fallback plugin.
func (r *Registry) DefaultID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultID
}

// SetDefaultID changes the fallback identifier on a live registry.
func (r *Registry) SetDefaultID(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultID = id
}

// Register inserts d, replacing any entry with the same identifier.
// Descriptors are not validated; an empty ID is stored like any other.
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(d)
}

// RegisterAll registers each descriptor in order. Later descriptors
// overwrite earlier ones sharing an identifier.
func (r *Registry) RegisterAll(ds ...Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range ds {
		r.register(d)
	}
}

// register must be called with mu held for writing.
func (r *Registry) register(d Descriptor) {
	// The ordered map keeps an existing key's position on Set, so delete
	// first to move a replaced entry to the end.
	if _, exists := r.entries.Delete(d.ID); exists {
		r.logger.Warn("plugin overwritten", "id", d.ID)
	}
	r.entries.Set(d.ID, d.clone())
}

// Unregister removes the plugin with the given identifier and reports
// whether anything was removed.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, removed := r.entries.Delete(id)
	return removed
}

// Clear removes every plugin.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = orderedmap.New[string, Descriptor]()
}

// Get returns the plugin registered under id.
func (r *Registry) Get(id string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries.Get(id)
	if !ok {
		return Descriptor{}, false
	}
	return d.clone(), true
}

// Has reports whether a plugin is registered under id.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries.Get(id)
	return ok
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries.Len()
}

// All returns every plugin in enumeration order.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(Descriptor) bool { return true })
}

// IDs returns every identifier in enumeration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, r.entries.Len())
	for p := r.entries.Oldest(); p != nil; p = p.Next() {
		ids = append(ids, p.Key)
	}
	return ids
}

// FindByTheme returns the plugins supporting t, in enumeration order.
func (r *Registry) FindByTheme(t Theme) []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(d Descriptor) bool { return d.SupportsTheme(t) })
}

// FindByFileType returns the plugins supporting ft, in enumeration order.
func (r *Registry) FindByFileType(ft FileType) []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(d Descriptor) bool { return d.SupportsFileType(ft) })
}

// Find returns the plugins supporting both t and ft, in enumeration order.
// An empty t or ft places no constraint on that capability, so Find("", "")
// is All.
func (r *Registry) Find(t Theme, ft FileType) []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(d Descriptor) bool {
		return (t == "" || d.SupportsTheme(t)) && (ft == "" || d.SupportsFileType(ft))
	})
}

// FindBestMatch selects the single plugin best suited to render content of
// file type ft in theme t. An empty ft means the file type is unknown.
//
// Rules, first non-empty candidate set wins:
//  1. plugins supporting ft: the first that also supports t, else the first;
//  2. plugins supporting t: the first;
//  3. the default plugin, if registered.
//
// A false result means no plugin can serve the request.
func (r *Registry) FindBestMatch(t Theme, ft FileType) (Descriptor, bool) {
	res, ok := r.Resolve(t, ft)
	return res.Descriptor, ok
}

// Resolve is FindBestMatch that also reports which rule fired.
// The whole evaluation runs against one consistent snapshot.
func (r *Registry) Resolve(t Theme, ft FileType) (Resolution, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ft != "" {
		byFileType := r.filter(func(d Descriptor) bool { return d.SupportsFileType(ft) })
		if len(byFileType) > 0 {
			for _, d := range byFileType {
				if d.SupportsTheme(t) {
					return Resolution{Descriptor: d, Rule: RuleFileTypeAndTheme}, true
				}
			}
			return Resolution{Descriptor: byFileType[0], Rule: RuleFileType}, true
		}
	}

	for p := r.entries.Oldest(); p != nil; p = p.Next() {
		if p.Value.SupportsTheme(t) {
			return Resolution{Descriptor: p.Value.clone(), Rule: RuleTheme}, true
		}
	}

	if d, ok := r.entries.Get(r.defaultID); ok {
		return Resolution{Descriptor: d.clone(), Rule: RuleDefault}, true
	}
	return Resolution{Rule: RuleNone}, false
}

// Themes returns the union of declared themes in first-seen order.
func (r *Registry) Themes() []Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.themes()
}

func (r *Registry) themes() []Theme {
	var out []Theme
	for p := r.entries.Oldest(); p != nil; p = p.Next() {
		for _, t := range p.Value.Themes {
			if !slices.Contains(out, t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// FileTypes returns the union of declared file types in first-seen order.
func (r *Registry) FileTypes() []FileType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fileTypes()
}

func (r *Registry) fileTypes() []FileType {
	var out []FileType
	for p := r.entries.Oldest(); p != nil; p = p.Next() {
		for _, ft := range p.Value.FileTypes {
			if !slices.Contains(out, ft) {
				out = append(out, ft)
			}
		}
	}
	return out
}

// Status returns a summary of the registry.
func (r *Registry) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, hasDefault := r.entries.Get(r.defaultID)
	return Status{
		Count:      r.entries.Len(),
		DefaultID:  r.defaultID,
		HasDefault: hasDefault,
		Themes:     r.themes(),
		FileTypes:  r.fileTypes(),
	}
}

// filter must be called with mu held. Returned descriptors are copies.
func (r *Registry) filter(keep func(Descriptor) bool) []Descriptor {
	out := make([]Descriptor, 0, r.entries.Len())
	for p := r.entries.Oldest(); p != nil; p = p.Next() {
		if keep(p.Value) {
			out = append(out, p.Value.clone())
		}
	}
	return out
}
