// Package log provides centralised audit logging for lens operations.
// Logs are stored in ~/.lens/log/lens-log.db and record every plugin
// resolution and render across projects, so "why did this file render
// with that plugin" can be answered after the fact.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("cli:view", "render").
//		Path(file).
//		Theme(theme).
//		FileType(ft).
//		Plugin(res.Descriptor.ID, res.Rule.String()).
//		Write(err)
//
//	log.Event("mcp:resolve", "resolve").
//		Theme(theme).
//		Detail("candidates", n).
//		Write(nil)
//
// The source parameter follows the format "cli:{command}" for CLI commands
// or "mcp:{tool}" for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string `json:"source"`         // e.g., "cli:view", "mcp:render"
	Action string `json:"action"`         // verb: resolve, render, list, config, etc.
	Path   string `json:"path,omitempty"` // input: file being rendered, if any

	// Resolution fields
	Theme    string `json:"theme,omitempty"`     // requested theme after auto resolution
	FileType string `json:"file_type,omitempty"` // detected or requested file type; empty if unknown
	Plugin   string `json:"plugin,omitempty"`    // output: identifier of the chosen plugin
	Rule     string `json:"rule,omitempty"`      // output: resolution rule that selected the plugin

	// Timing
	Start int64 `json:"start"` // unix timestamp when Event() called
	End   int64 `json:"end"`   // unix timestamp when Write() called

	Success bool           `json:"success"`          // whether operation succeeded
	Error   string         `json:"error,omitempty"`  // error message if failed
	Detail  map[string]any `json:"detail,omitempty"` // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "cli:{command}" (e.g., "cli:view", "cli:resolve")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:render")
//
// The action describes what operation was performed:
//   - "resolve", "render", "list", "get", "set", etc.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Path sets the input file this operation affects.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Theme sets the theme the request resolved against.
func (b *Builder) Theme(theme string) *Builder {
	b.entry.Theme = theme
	return b
}

// FileType sets the file type the request resolved against.
func (b *Builder) FileType(ft string) *Builder {
	b.entry.FileType = ft
	return b
}

// Plugin records the chosen plugin and the rule that chose it.
//
// Example:
//
//	l.Plugin(res.Descriptor.ID, res.Rule.String())  // after resolution
func (b *Builder) Plugin(id, rule string) *Builder {
	b.entry.Plugin = id
	b.entry.Rule = rule
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// config keys, candidate counts, output sizes, etc.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute working directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Recent returns up to limit of the most recent entries, newest first.
// Returns nil if the logger is not initialised.
func Recent(limit int) ([]Entry, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return nil, nil
	}
	return l.recent(limit)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
