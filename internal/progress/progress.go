// Package progress provides CLI progress indicators. Output goes to stderr
// to keep stdout clean for piping, and nothing is drawn unless stderr is
// a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the minimum number of items before showing progress.
// For small operations, progress adds noise without benefit.
const minItems = 5

// Progress tracks and displays progress across a batch of files.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	isTTY   bool
	width   int // widest line drawn so far, for clearing
}

// New creates a progress reporter that writes to stderr.
// If total is less than minItems, progress updates are suppressed.
func New(label string, total int) *Progress {
	return NewWriter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), label, total)
}

// NewWriter creates a progress reporter on w. isTTY controls whether
// anything is drawn.
func NewWriter(w io.Writer, isTTY bool, label string, total int) *Progress {
	return &Progress{w: w, label: label, total: total, isTTY: isTTY}
}

// Step advances the counter and redraws the line with the current item.
func (p *Progress) Step(item string) {
	p.current++
	if !p.visible() {
		return
	}
	line := fmt.Sprintf("%s %d/%d %s", p.label, p.current, p.total, item)
	pad := ""
	if len(line) < p.width {
		pad = strings.Repeat(" ", p.width-len(line))
	}
	p.width = max(p.width, len(line))
	fmt.Fprintf(p.w, "\r%s%s", line, pad)
}

// Done clears the progress line to make way for final output.
func (p *Progress) Done() {
	if !p.visible() || p.width == 0 {
		return
	}
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.width))
}

func (p *Progress) visible() bool {
	return p.isTTY && p.total >= minItems
}
