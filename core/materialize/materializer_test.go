package materialize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/worldometer/core/extract"
)

type cityRow struct {
	Rank       int     `col:"rank"`
	City       string  `col:"city"`
	Country    string  `col:"country"`
	Population int64   `col:"population"`
	Share      float64 `col:"share"`
}

type looseRow struct {
	Name     string
	Migrants extract.Cell
	Note     string `col:"-"`
}

func cityTable() extract.Table {
	return extract.Table{
		Schema: extract.Schema{"rank", "city", "country", "population", "share"},
		Records: []extract.Record{
			{"rank": int64(1), "city": "Tokyo", "country": "Japan", "population": int64(37194105), "share": 0.5},
			{"rank": int64(2), "city": "Delhi", "country": "India", "population": int64(32941309), "share": int64(1)},
		},
	}
}

func TestRows(t *testing.T) {
	rows, err := Rows[cityRow](cityTable())
	require.NoError(t, err)
	assert.Equal(t, []cityRow{
		{Rank: 1, City: "Tokyo", Country: "Japan", Population: 37194105, Share: 0.5},
		{Rank: 2, City: "Delhi", Country: "India", Population: 32941309, Share: 1},
	}, rows)
}

func TestRowsEmptyTable(t *testing.T) {
	rows, err := Rows[cityRow](extract.Table{})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRowsFieldMismatch(t *testing.T) {
	table := cityTable()
	delete(table.Records[1], "share")
	table.Records[1]["extra"] = "x"

	_, err := Rows[cityRow](table)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFieldMismatch)

	var mismatch *FieldMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 1, mismatch.Row)
	assert.Equal(t, []string{"share"}, mismatch.Missing)
	assert.Equal(t, []string{"extra"}, mismatch.Unexpected)
}

func TestRowCoercion(t *testing.T) {
	tests := []struct {
		name    string
		rec     extract.Record
		want    cityRow
		wantErr bool
	}{
		{
			name: "integral float into int",
			rec:  extract.Record{"rank": 3.0, "city": "a", "country": "b", "population": int64(1), "share": 1.5},
			want: cityRow{Rank: 3, City: "a", Country: "b", Population: 1, Share: 1.5},
		},
		{
			name: "number into string",
			rec:  extract.Record{"rank": int64(1), "city": int64(1900), "country": 2.5, "population": int64(1), "share": 0.0},
			want: cityRow{Rank: 1, City: "1900", Country: "2.5", Population: 1},
		},
		{
			name:    "fractional float into int",
			rec:     extract.Record{"rank": 1.5, "city": "a", "country": "b", "population": int64(1), "share": 0.0},
			wantErr: true,
		},
		{
			name:    "text into int",
			rec:     extract.Record{"rank": int64(1), "city": "a", "country": "b", "population": "N.A.", "share": 0.0},
			wantErr: true,
		},
		{
			name:    "text into float",
			rec:     extract.Record{"rank": int64(1), "city": "a", "country": "b", "population": int64(1), "share": "1.1 %"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Row[cityRow](tt.rec)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrFieldType)
				var typeErr *FieldTypeError
				assert.True(t, errors.As(err, &typeErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellFieldsKeepWeakTyping(t *testing.T) {
	rows, err := Rows[looseRow](extract.Table{Records: []extract.Record{
		{"name": "Monaco", "migrants": "N.A."},
		{"name": "India", "migrants": int64(-486136)},
	}})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.False(t, rows[0].Migrants.IsNumber())
	assert.Equal(t, "N.A.", rows[0].Migrants.String())
	n, ok := rows[1].Migrants.Int64()
	require.True(t, ok)
	assert.Equal(t, int64(-486136), n)
}

func TestColumnsAndValues(t *testing.T) {
	assert.Equal(t, []string{"rank", "city", "country", "population", "share"}, Columns[cityRow]())
	assert.Equal(t, []string{"name", "migrants"}, Columns[looseRow]())

	row := looseRow{Name: "Monaco", Migrants: extract.NewCell("N.A."), Note: "ignored"}
	assert.Equal(t, []any{"Monaco", "N.A."}, Values(row))

	table := Table("cities", []cityRow{{Rank: 1, City: "Tokyo", Country: "Japan", Population: 5, Share: 0.5}})
	assert.Equal(t, "cities", table.Name)
	assert.Equal(t, Columns[cityRow](), table.Columns)
	assert.Equal(t, [][]any{{1, "Tokyo", "Japan", int64(5), 0.5}}, table.Rows)
}

func TestNonStructType(t *testing.T) {
	_, err := Rows[int](extract.Table{})
	require.Error(t, err)
	assert.Nil(t, Columns[string]())
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Name":                "name",
		"YearlyChangePercent": "yearly_change_percent",
		"ISOCode":             "iso_code",
		"Population2023":      "population2023",
		"CCA2":                "cca2",
		"UrbanPopPercent":     "urban_pop_percent",
	}
	for in, want := range tests {
		assert.Equal(t, want, snakeCase(in), in)
	}
}
