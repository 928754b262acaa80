// Package extract turns HTML tables into validated, relabelled records.
// It:
//  1. Finds every <table> matching an optional attribute filter, in document order
//  2. Expands each into a rectangular grid (header rows + data rows)
//  3. Checks the table count and each table's width against the caller's schemas
//  4. Relabels columns positionally and emits one Record per data row
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Schema is the ordered list of field names assigned to a table's columns.
type Schema []string

// Record maps field names to cell values (int64, float64 or string).
type Record map[string]any

// Table is one extracted table: its schema and data rows in source order.
type Table struct {
	Schema  Schema
	Records []Record
}

// Grid is a raw table after span expansion. Every row has Width cells.
type Grid struct {
	Header [][]string
	Rows   [][]string
	Width  int
}

// Extract parses html, keeps the tables matching filter (nil keeps all),
// and relabels table i with schemas[i].
//
// It fails with ErrHTMLTablesNotFound when tables were expected but none
// matched, and with ErrColumnNamesLengthMismatch when the table count or the
// width of the first offending table differs from the schemas. Expecting no
// tables and finding none is not an error.
func Extract(html string, schemas []Schema, filter Filter) ([]Table, error) {
	grids, err := ParseGrids(html, filter)
	if err != nil {
		return nil, err
	}

	if len(grids) == 0 {
		if len(schemas) == 0 {
			return []Table{}, nil
		}
		return nil, &TablesNotFoundError{Selector: filter.Selector(), Expected: len(schemas)}
	}

	if len(grids) != len(schemas) {
		return nil, &ColumnCountError{
			Position: TableCountPosition,
			Expected: len(schemas),
			Actual:   len(grids),
		}
	}

	tables := make([]Table, 0, len(grids))
	for i, grid := range grids {
		if grid.Width != len(schemas[i]) {
			return nil, &ColumnCountError{
				Position: i,
				Expected: len(schemas[i]),
				Actual:   grid.Width,
			}
		}
		tables = append(tables, grid.relabel(schemas[i]))
	}
	return tables, nil
}

// ParseGrids returns the raw grids of all tables matching filter, without
// any schema validation.
func ParseGrids(html string, filter Filter) ([]Grid, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	matcher, err := filter.compile()
	if err != nil {
		return nil, err
	}

	var grids []Grid
	doc.FindMatcher(matcher).Each(func(_ int, table *goquery.Selection) {
		grids = append(grids, parseGrid(table))
	})
	return grids, nil
}

// relabel converts the data rows into records keyed by schema.
func (g Grid) relabel(schema Schema) Table {
	records := make([]Record, 0, len(g.Rows))
	for _, row := range g.Rows {
		rec := make(Record, len(schema))
		for j, name := range schema {
			rec[name] = InferValue(row[j])
		}
		records = append(records, rec)
	}
	return Table{Schema: schema, Records: records}
}

// rawCell is a cell before span expansion.
type rawCell struct {
	text    string
	rowspan int
	colspan int
}

// parseGrid reads the rows that belong to this table only; rows of nested
// tables are left to their own table.
func parseGrid(table *goquery.Selection) Grid {
	var head, body, foot []*goquery.Selection
	table.Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "thead":
			head = append(head, rowsOf(child)...)
		case "tbody":
			body = append(body, rowsOf(child)...)
		case "tfoot":
			foot = append(foot, rowsOf(child)...)
		case "tr":
			body = append(body, child)
		}
	})

	// Without a <thead>, leading rows made only of <th> cells are the header.
	if len(head) == 0 {
		for len(body) > 0 && allHeaderCells(body[0]) {
			head = append(head, body[0])
			body = body[1:]
		}
	}

	rows := make([][]rawCell, 0, len(head)+len(body)+len(foot))
	for _, tr := range append(append(append([]*goquery.Selection{}, head...), body...), foot...) {
		rows = append(rows, cellsOf(tr))
	}

	expanded := expandSpans(rows)
	width := 0
	for _, row := range expanded {
		width = max(width, len(row))
	}
	for i, row := range expanded {
		for len(row) < width {
			row = append(row, "")
		}
		expanded[i] = row
	}

	return Grid{
		Header: expanded[:len(head)],
		Rows:   expanded[len(head):],
		Width:  width,
	}
}

func rowsOf(section *goquery.Selection) []*goquery.Selection {
	var rows []*goquery.Selection
	section.ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		rows = append(rows, tr)
	})
	return rows
}

func allHeaderCells(tr *goquery.Selection) bool {
	cells := tr.ChildrenFiltered("th, td")
	return cells.Length() > 0 && cells.Length() == cells.Filter("th").Length()
}

func cellsOf(tr *goquery.Selection) []rawCell {
	var cells []rawCell
	tr.ChildrenFiltered("th, td").Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, rawCell{
			text:    cellText(td),
			rowspan: spanAttr(td, "rowspan"),
			colspan: spanAttr(td, "colspan"),
		})
	})
	return cells
}

// Span limits follow the HTML table model.
const (
	maxColspan = 1000
	maxRowspan = 65534
)

func spanAttr(td *goquery.Selection, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(td.AttrOr(name, "1")))
	if err != nil || n < 1 {
		return 1
	}
	limit := maxColspan
	if name == "rowspan" {
		limit = maxRowspan
	}
	return min(n, limit)
}

type carried struct {
	text string
	left int
}

// expandSpans repeats rowspan/colspan cells so every logical position in
// the table holds its own text.
func expandSpans(rows [][]rawCell) [][]string {
	var carry []*carried
	takeCarry := func(out []string, col int) []string {
		c := carry[col]
		out = append(out, c.text)
		c.left--
		if c.left == 0 {
			carry[col] = nil
		}
		return out
	}
	fillCarried := func(out []string, col *int) []string {
		for *col < len(carry) && carry[*col] != nil {
			out = takeCarry(out, *col)
			*col++
		}
		return out
	}

	grid := make([][]string, 0, len(rows))
	for _, row := range rows {
		var out []string
		col := 0
		out = fillCarried(out, &col)
		for _, cell := range row {
			for k := 0; k < cell.colspan; k++ {
				out = append(out, cell.text)
				if cell.rowspan > 1 {
					for len(carry) <= col {
						carry = append(carry, nil)
					}
					carry[col] = &carried{text: cell.text, left: cell.rowspan - 1}
				}
				col++
			}
			out = fillCarried(out, &col)
		}
		// Spans still pending further right of a short row.
		for j := col; j < len(carry); j++ {
			if carry[j] == nil {
				continue
			}
			for len(out) < j {
				out = append(out, "")
			}
			out = takeCarry(out, j)
		}
		grid = append(grid, out)
	}
	return grid
}
