// registry.go implements the extension registration system.
//
// Separated from extension.go to isolate the global registry state.
// Extensions self-register during init(), before main() runs.
//
// Design: Registration panics on a duplicate name, following
// database/sql.Register. A duplicate is a programmer error caught at
// start-up. This is deliberately stricter than the plugin registry, where
// re-registration replaces.

package extension

import (
	"sync"

	"github.com/jpl-au/lens/plugin"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	mu       sync.RWMutex
	registry = orderedmap.New[string, Extension]()
)

// Register adds an extension to the registry. Called from init() functions.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry.Get(name); exists {
		panic("extension already registered: " + name)
	}
	registry.Set(name, e)
}

// All returns all registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, registry.Len())
	for p := registry.Oldest(); p != nil; p = p.Next() {
		exts = append(exts, p.Value)
	}
	return exts
}

// Get returns a specific extension by name, or nil if not found.
func Get(name string) Extension {
	mu.RLock()
	defer mu.RUnlock()
	e, _ := registry.Get(name)
	return e
}

// Names returns the names of all registered extensions.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, registry.Len())
	for p := registry.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	return names
}

// Plugins collects the plugins of every Provider in registration order.
func Plugins() []plugin.Descriptor {
	var out []plugin.Descriptor
	for _, e := range All() {
		if p, ok := e.(Provider); ok {
			out = append(out, p.Plugins()...)
		}
	}
	return out
}
