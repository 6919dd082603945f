// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// resolution and rendering while this package handles column alignment
// and the table views of plugins, status and the audit log.
package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jpl-au/lens/internal/log"
	"github.com/jpl-au/lens/internal/service"
	"github.com/jpl-au/lens/plugin"
)

// HumanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func HumanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// IDs prints plugin identifiers, one per line.
func IDs(w io.Writer, ds []plugin.Descriptor) error {
	for _, d := range ds {
		fmt.Fprintln(w, d.ID)
	}
	return nil
}

// Plugins prints plugins in resolution order with their capabilities.
// The default plugin is marked with "*".
//
// Column order is ID, THEMES, FILE TYPES. The capability lists vary most in
// width, so they go last.
func Plugins(w io.Writer, ds []plugin.Descriptor, defaultID string) error {
	if len(ds) == 0 {
		return nil
	}

	maxID := 2 // minimum "ID"
	for _, d := range ds {
		if len(d.ID)+1 > maxID {
			maxID = len(d.ID) + 1
		}
	}

	fmt.Fprintf(w, "%-*s  %-32s  %s\n", maxID, "ID", "THEMES", "FILE TYPES")
	for _, d := range ds {
		id := d.ID
		if id == defaultID {
			id += "*"
		}
		fmt.Fprintf(w, "%-*s  %-32s  %s\n", maxID, id, joinOr(d.Themes, "-"), joinOr(d.FileTypes, "-"))
	}
	return nil
}

// Plugin prints one plugin's details.
func Plugin(w io.Writer, d plugin.Descriptor, isDefault bool) error {
	fmt.Fprintf(w, "ID:          %s\n", d.ID)
	if isDefault {
		fmt.Fprintf(w, "Default:     yes\n")
	}
	fmt.Fprintf(w, "Themes:      %s\n", joinOr(d.Themes, "-"))
	fmt.Fprintf(w, "File types:  %s\n", joinOr(d.FileTypes, "-"))
	return nil
}

// Status prints a registry summary.
func Status(w io.Writer, s plugin.Status) error {
	def := s.DefaultID
	if !s.HasDefault {
		def += " (not registered)"
	}
	fmt.Fprintf(w, "Plugins:     %d\n", s.Count)
	fmt.Fprintf(w, "Default:     %s\n", def)
	fmt.Fprintf(w, "Themes:      %s\n", joinOr(s.Themes, "-"))
	fmt.Fprintf(w, "File types:  %s\n", joinOr(s.FileTypes, "-"))
	return nil
}

// Outcome prints the result of a resolution.
func Outcome(w io.Writer, o service.Outcome) error {
	ft := string(o.FileType)
	if ft == "" {
		ft = "(unknown)"
	}
	fmt.Fprintf(w, "Plugin:      %s\n", o.Plugin)
	fmt.Fprintf(w, "Rule:        %s\n", o.Rule)
	fmt.Fprintf(w, "Theme:       %s\n", o.Theme)
	fmt.Fprintf(w, "File type:   %s\n", ft)
	return nil
}

// Log prints audit log entries as a table. Styling is only applied when
// colour is true.
func Log(w io.Writer, entries []log.Entry, colour bool) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "error: " + e.Error
		}
		rows = append(rows, []string{
			time.Unix(e.Start, 0).Format("2006-01-02 15:04"),
			e.Source,
			dash(e.Path),
			dash(e.Theme),
			dash(e.FileType),
			dash(e.Plugin),
			dash(e.Rule),
			status,
		})
	}

	t := table.New().
		Headers("TIME", "SOURCE", "PATH", "THEME", "TYPE", "PLUGIN", "RULE", "STATUS").
		Rows(rows...)
	if colour {
		header := lipgloss.NewStyle().Bold(true)
		failed := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 7 && row >= 0 && row < len(rows) && rows[row][7] != "ok" {
				return failed
			}
			return lipgloss.NewStyle()
		})
	} else {
		t = t.Border(lipgloss.HiddenBorder())
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// Config prints configuration keys and values, marking defaults.
func Config(w io.Writer, keys []string, values map[string]string, isSet func(string) bool) error {
	maxKey := 0
	for _, k := range keys {
		maxKey = max(maxKey, len(k))
	}
	for _, k := range keys {
		suffix := ""
		if !isSet(k) {
			suffix = "  (default)"
		}
		fmt.Fprintf(w, "%-*s  %s%s\n", maxKey, k, values[k], suffix)
	}
	return nil
}

func joinOr[T ~string](vs []T, empty string) string {
	if len(vs) == 0 {
		return empty
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
