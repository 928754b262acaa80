package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeHTML = `<!DOCTYPE html>
<html>
<head><title>HTML to Tests</title></head>
<body>
	<table class="table">
		<thead>
			<tr><th>A</th><th>B</th><th>C</th><th>D</th></tr>
		</thead>
		<tbody>
			<tr><td>test</td><td>1</td><td>1.0</td><td></td></tr>
			<tr><td>test</td><td>1</td><td>1.0</td><td></td></tr>
		</tbody>
	</table>

	<table>
		<thead>
			<tr><th>A</th><th>B</th><th>C</th><th>D</th></tr>
		</thead>
		<tbody>
			<tr><td>test</td><td>1</td><td>1.0</td><td></td></tr>
			<tr><td>test</td><td>1</td><td>1.0</td><td></td></tr>
		</tbody>
	</table>
</body>
</html>`

func TestExtractTwoTables(t *testing.T) {
	schemas := []Schema{
		{"a1", "b1", "c1", "d1"},
		{"a2", "b2", "c2", "d2"},
	}

	tables, err := Extract(fakeHTML, schemas, nil)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	for i, table := range tables {
		assert.Equal(t, schemas[i], table.Schema)
		require.Len(t, table.Records, 2)
		for _, rec := range table.Records {
			assert.Len(t, rec, 4)
			for _, name := range schemas[i] {
				assert.Contains(t, rec, name)
			}
		}
	}

	assert.Equal(t, Record{"a1": "test", "b1": int64(1), "c1": 1.0, "d1": ""}, tables[0].Records[0])
	assert.Equal(t, Record{"a2": "test", "b2": int64(1), "c2": 1.0, "d2": ""}, tables[1].Records[1])
}

func TestExtractWithClassFilter(t *testing.T) {
	tables, err := Extract(fakeHTML, []Schema{{"a1", "b1", "c1", "d1"}}, Filter{"class": "table"})
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Len(t, tables[0].Records, 2)
}

func TestExtractShapeErrors(t *testing.T) {
	tests := []struct {
		name     string
		schemas  []Schema
		position int
		expected int
		actual   int
	}{
		{
			name:     "no schemas",
			schemas:  nil,
			position: TableCountPosition,
			expected: 0,
			actual:   2,
		},
		{
			name:     "fewer schemas than tables",
			schemas:  []Schema{{"a1", "b1", "c1", "d1"}},
			position: TableCountPosition,
			expected: 1,
			actual:   2,
		},
		{
			name:     "more schemas than tables",
			schemas:  []Schema{{"a1"}, {"a2"}, {"a3"}},
			position: TableCountPosition,
			expected: 3,
			actual:   2,
		},
		{
			name:     "first table too narrow",
			schemas:  []Schema{{"a1", "b1", "c1"}, {"a2", "b2", "c2", "d2"}},
			position: 0,
			expected: 3,
			actual:   4,
		},
		{
			name:     "empty schemas",
			schemas:  []Schema{{}, {}},
			position: 0,
			expected: 0,
			actual:   4,
		},
		{
			name:     "second table too wide",
			schemas:  []Schema{{"a1", "b1", "c1", "d1"}, {"a2", "b2", "c2", "d2", "e2"}},
			position: 1,
			expected: 5,
			actual:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables, err := Extract(fakeHTML, tt.schemas, nil)
			require.Error(t, err)
			assert.Nil(t, tables)
			assert.ErrorIs(t, err, ErrColumnNamesLengthMismatch)
			assert.NotErrorIs(t, err, ErrHTMLTablesNotFound)

			var shape *ColumnCountError
			require.True(t, errors.As(err, &shape))
			assert.Equal(t, tt.position, shape.Position)
			assert.Equal(t, tt.expected, shape.Expected)
			assert.Equal(t, tt.actual, shape.Actual)
		})
	}
}

func TestExtractNoMatchingTables(t *testing.T) {
	_, err := Extract(fakeHTML, []Schema{{"a", "b", "c", "d"}}, Filter{"id": "missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTMLTablesNotFound)

	var notFound *TablesNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, `table[id="missing"]`, notFound.Selector)
	assert.Equal(t, 1, notFound.Expected)
}

func TestExtractNothingExpectedNothingFound(t *testing.T) {
	tables, err := Extract("<html><body><p>no tables</p></body></html>", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, tables)
	assert.Empty(t, tables)
}

func TestExtractHeaderlessTable(t *testing.T) {
	html := `<table>
		<tr><th>Country</th><th>Population</th></tr>
		<tr><td>China</td><td>1,425,671,352</td></tr>
		<tr><td>India</td><td>1,428,627,663</td></tr>
	</table>`

	tables, err := Extract(html, []Schema{{"country", "population"}}, nil)
	require.NoError(t, err)
	require.Len(t, tables[0].Records, 2)
	assert.Equal(t, Record{"country": "China", "population": int64(1425671352)}, tables[0].Records[0])
	assert.Equal(t, Record{"country": "India", "population": int64(1428627663)}, tables[0].Records[1])
}

func TestParseGridsExpandsSpans(t *testing.T) {
	html := `<table>
		<tr><th>A</th><th>B</th><th>C</th></tr>
		<tr><td rowspan="2">x</td><td colspan="2">y</td></tr>
		<tr><td>1</td><td>2</td></tr>
	</table>`

	grids, err := ParseGrids(html, nil)
	require.NoError(t, err)
	require.Len(t, grids, 1)

	grid := grids[0]
	assert.Equal(t, 3, grid.Width)
	assert.Equal(t, [][]string{{"A", "B", "C"}}, grid.Header)
	assert.Equal(t, [][]string{{"x", "y", "y"}, {"x", "1", "2"}}, grid.Rows)
}

func TestParseGridsCapsSpans(t *testing.T) {
	html := `<table>
		<tr><th>a</th><th>b</th></tr>
		<tr><td colspan="3000000">x</td></tr>
		<tr><td rowspan="99999999999">y</td><td>z</td></tr>
	</table>`

	grids, err := ParseGrids(html, nil)
	require.NoError(t, err)
	require.Len(t, grids, 1)

	grid := grids[0]
	assert.Equal(t, maxColspan, grid.Width)
	require.Len(t, grid.Rows, 2)
	assert.Len(t, grid.Rows[0], maxColspan)
	assert.Equal(t, "y", grid.Rows[1][0])
	assert.Equal(t, "z", grid.Rows[1][1])
}

func TestParseGridsPadsShortRows(t *testing.T) {
	html := `<table>
		<tr><td>a</td><td>b</td><td>c</td></tr>
		<tr><td>d</td></tr>
	</table>`

	grids, err := ParseGrids(html, nil)
	require.NoError(t, err)
	require.Len(t, grids, 1)
	assert.Empty(t, grids[0].Header)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d", "", ""}}, grids[0].Rows)
}

func TestParseGridsNestedTables(t *testing.T) {
	html := `<table id="outer">
		<tr><td>a</td><td><table id="inner"><tr><td>1</td></tr></table></td></tr>
	</table>`

	grids, err := ParseGrids(html, nil)
	require.NoError(t, err)
	require.Len(t, grids, 2)
	assert.Equal(t, [][]string{{"a", ""}}, grids[0].Rows)
	assert.Equal(t, [][]string{{"1"}}, grids[1].Rows)

	inner, err := ParseGrids(html, Filter{"id": "inner"})
	require.NoError(t, err)
	require.Len(t, inner, 1)
	assert.Equal(t, 1, inner[0].Width)
}

func TestParseGridsFooterFollowsBody(t *testing.T) {
	html := `<table>
		<thead><tr><th>Region</th><th>Population</th></tr></thead>
		<tfoot><tr><td>Total</td><td>300</td></tr></tfoot>
		<tbody>
			<tr><td>North</td><td>100</td></tr>
			<tr><td>South</td><td>200</td></tr>
		</tbody>
	</table>`

	tables, err := Extract(html, []Schema{{"region", "population"}}, nil)
	require.NoError(t, err)
	require.Len(t, tables[0].Records, 3)
	assert.Equal(t, "North", tables[0].Records[0]["region"])
	assert.Equal(t, "Total", tables[0].Records[2]["region"])
	assert.Equal(t, int64(300), tables[0].Records[2]["population"])
}

func TestCellTextCollapsesWhitespace(t *testing.T) {
	html := `<table><tr>
		<td>
			<a href="/world-population/china-population/">China</a>
			<script>var x = 1;</script>
		</td>
		<td>United<br>States</td>
	</tr></table>`

	grids, err := ParseGrids(html, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"China", "United States"}}, grids[0].Rows)
}
