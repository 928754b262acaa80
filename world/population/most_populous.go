package population

import (
	"slices"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/extract"
	"github.com/gaurav-prasanna/worldometer/core/materialize"
	"github.com/gaurav-prasanna/worldometer/core/topic"
)

// CurrentPopulousCountry is a row of the current top countries table.
type CurrentPopulousCountry struct {
	Idx          int    `col:"idx"`
	Country      string `col:"country"`
	Population   int64  `col:"population"`
	YearlyChange string `col:"yearly_change"`
	WorldShare   string `col:"world_share"`
}

// RankedPopulousCountry is a row of the past and future top countries tables.
type RankedPopulousCountry struct {
	Idx        int    `col:"idx"`
	Country    string `col:"country"`
	Population int64  `col:"population"`
	WorldShare string `col:"world_share"`
	Rank       string `col:"rank"`
}

var MostPopulousCountriesSource = topic.Source{
	Name: "most-populous-countries",
	Path: "/population/most-populous-countries",
	Tables: []extract.Schema{
		{"idx", "country", "population", "yearly_change", "world_share"},
		{"idx", "country", "population", "world_share", "rank"},
		{"idx", "country", "population", "world_share", "rank"},
	},
}

// MostPopulous holds the current, past and future top country tables.
type MostPopulous struct {
	Current []CurrentPopulousCountry
	Past    []RankedPopulousCountry
	Future  []RankedPopulousCountry
}

func (s MostPopulous) Clone() MostPopulous {
	return MostPopulous{
		Current: slices.Clone(s.Current),
		Past:    slices.Clone(s.Past),
		Future:  slices.Clone(s.Future),
	}
}

func (s MostPopulous) Tables() []core.Table {
	return []core.Table{
		materialize.Table("current", s.Current),
		materialize.Table("past", s.Past),
		materialize.Table("future", s.Future),
	}
}

func buildMostPopulous(tables []extract.Table) (MostPopulous, error) {
	var s MostPopulous
	var err error
	if s.Current, err = topic.TableAt[CurrentPopulousCountry](tables, 0); err != nil {
		return s, err
	}
	if s.Past, err = topic.TableAt[RankedPopulousCountry](tables, 1); err != nil {
		return s, err
	}
	if s.Future, err = topic.TableAt[RankedPopulousCountry](tables, 2); err != nil {
		return s, err
	}
	return s, nil
}

// MostPopulousCountries ranks the most populous countries now, in 1950 and
// in 2050.
type MostPopulousCountries struct {
	*topic.Holder[MostPopulous]
}

// NewMostPopulousCountries creates an unloaded MostPopulousCountries topic.
func NewMostPopulousCountries(loader *topic.Loader) *MostPopulousCountries {
	return &MostPopulousCountries{topic.NewHolder[MostPopulous](loader, MostPopulousCountriesSource, buildMostPopulous)}
}

func (t *MostPopulousCountries) Current() []CurrentPopulousCountry {
	return t.Snapshot().Current
}

func (t *MostPopulousCountries) Past() []RankedPopulousCountry {
	return t.Snapshot().Past
}

func (t *MostPopulousCountries) Future() []RankedPopulousCountry {
	return t.Snapshot().Future
}
