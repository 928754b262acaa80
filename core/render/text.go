package render

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gaurav-prasanna/worldometer/core"
)

// TextRenderer draws each document table as a terminal table.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) Render(doc core.Document) ([]byte, error) {
	var b strings.Builder
	for i, t := range doc.Tables {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(TextTable(t))
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}

// TextTable renders one table with a title row naming it.
func TextTable(t core.Table) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if t.Name != "" {
		tw.SetTitle(t.Name)
	}

	header := make(table.Row, 0, len(t.Columns))
	for _, col := range t.Columns {
		header = append(header, col)
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		cells := make(table.Row, 0, len(row))
		for _, v := range row {
			cells = append(cells, FormatCell(v))
		}
		tw.AppendRow(cells)
	}
	return tw.Render()
}
