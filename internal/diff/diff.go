// Package diff computes line-oriented differences between two texts. The
// output is unified-style text that lens renders through whichever plugin
// resolves for the "diff" file type.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Result holds diff output.
type Result struct {
	Old     string `json:"old"`     // old label
	New     string `json:"new"`     // new label
	Diff    string `json:"diff"`    // plain diff text
	Added   int    `json:"added"`   // lines only in new
	Removed int    `json:"removed"` // lines only in old
}

// Equal reports whether the two inputs had no differences. Diff text is
// checked too, so a hand-built Result without counts still answers.
func (r Result) Equal() bool {
	if r.Added > 0 || r.Removed > 0 {
		return false
	}
	for _, line := range strings.Split(r.Diff, "\n") {
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "+ ") {
			return false
		}
	}
	return true
}

// Compute returns a diff between old and new content.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	d := dmp.DiffMain(a, b, false)
	d = dmp.DiffCharsToLines(d, lines)
	d = dmp.DiffCleanupSemantic(d)

	text, added, removed := format(d)
	return Result{
		Old:     oldLabel,
		New:     newLabel,
		Diff:    text,
		Added:   added,
		Removed: removed,
	}
}

// format converts diffs to unified-style text and counts changed lines.
func format(diffs []diffmatchpatch.Diff) (string, int, int) {
	var added, removed int
	var b strings.Builder
	for _, d := range diffs {
		// Trim trailing newline to avoid artefact empty string from Split
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			removed += len(lines)
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			added += len(lines)
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for i := range contextLines {
					b.WriteString("  " + lines[i] + "\n")
				}
				b.WriteString("  ...\n")
				for i := len(lines) - contextLines; i < len(lines); i++ {
					b.WriteString("  " + lines[i] + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String(), added, removed
}

// Colourise adds ANSI colours to diff output. Header lines (--- and +++)
// are bolded.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		bold  = "\033[1m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			b.WriteString(bold + line + reset + "\n")
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "--"):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "), strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "++"):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return Colourise(header + r.Diff)
	}
	return header + r.Diff
}
