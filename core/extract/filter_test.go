package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSelector(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{name: "nil", filter: nil, want: "table"},
		{name: "class", filter: Filter{"class": "table"}, want: `table[class~="table"]`},
		{
			name:   "class tokens and id",
			filter: Filter{"id": "example2", "class": "table table-striped"},
			want:   `table[class~="table"][class~="table-striped"][id="example2"]`,
		},
		{name: "quoted value", filter: Filter{"summary": `say "hi"`}, want: `table[summary="say \"hi\""]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Selector())
			_, err := tt.filter.compile()
			require.NoError(t, err)
		})
	}
}

func TestFilterClassMatchesToken(t *testing.T) {
	html := `<table class="table table-striped"><tr><td>1</td></tr></table>
		<table class="tablesorter"><tr><td>2</td></tr></table>`

	grids, err := ParseGrids(html, Filter{"class": "table"})
	require.NoError(t, err)
	require.Len(t, grids, 1)
	assert.Equal(t, [][]string{{"1"}}, grids[0].Rows)
}
