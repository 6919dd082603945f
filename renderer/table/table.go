// Package table renders delimited data (CSV, TSV) as a bordered table.
package table

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jpl-au/lens/plugin"
)

// ID is the registry identifier of the table renderer.
const ID = "table"

type palette struct {
	border lipgloss.Color
	header lipgloss.Color
}

var palettes = map[plugin.Theme]palette{
	"dark":  {border: "240", header: "212"},
	"light": {border: "250", header: "25"},
}

// Renderer renders CSV and TSV content with lipgloss.
type Renderer struct{}

// Descriptor returns the registration for the table renderer.
func Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:        ID,
		Themes:    []plugin.Theme{"dark", "light", "notty"},
		FileTypes: []plugin.FileType{"csv", "tsv"},
		Renderer:  Renderer{},
	}
}

// Render parses src and writes it as a table. The first record is the header.
func (Renderer) Render(_ context.Context, w io.Writer, src []byte, opts plugin.RenderOptions) error {
	records, err := parse(src, opts.FileType)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	t := table.New().
		Headers(records[0]...).
		Rows(records[1:]...)

	if p, ok := palettes[opts.Theme]; ok {
		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(p.header).Padding(0, 1)
		cellStyle := lipgloss.NewStyle().Padding(0, 1)
		t = t.Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(p.border)).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
	} else {
		cellStyle := lipgloss.NewStyle().Padding(0, 1)
		t = t.Border(lipgloss.NormalBorder()).
			StyleFunc(func(int, int) lipgloss.Style { return cellStyle })
	}

	_, err = fmt.Fprintln(w, t.String())
	return err
}

// parse reads delimited records. Rows may have differing field counts.
func parse(src []byte, ft plugin.FileType) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(src))
	if ft == "tsv" {
		r.Comma = '\t'
		r.LazyQuotes = true
	}
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ft, err)
	}
	return records, nil
}
