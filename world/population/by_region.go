package population

import (
	"slices"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/extract"
	"github.com/gaurav-prasanna/worldometer/core/materialize"
	"github.com/gaurav-prasanna/worldometer/core/topic"
)

// CurrentRegionPopulation is a row of the current population by region table.
type CurrentRegionPopulation struct {
	Idx             int          `col:"idx"`
	Region          string       `col:"region"`
	Population      int64        `col:"population"`
	YearlyChange    string       `col:"yearly_change"`
	NetChange       int64        `col:"net_change"`
	Density         int64        `col:"density"`
	Area            int64        `col:"area"`
	Migrants        extract.Cell `col:"migrants"`
	FertilityRate   extract.Cell `col:"fertility_rate"`
	MedianAge       extract.Cell `col:"median_age"`
	UrbanPopulation string       `col:"urban_population"`
	WorldShare      string       `col:"world_share"`
}

// RegionPopulationShare is a row of the past and future region tables.
type RegionPopulationShare struct {
	Idx        int    `col:"idx"`
	Region     string `col:"region"`
	Population int64  `col:"population"`
	WorldShare string `col:"world_share"`
}

var WorldPopulationByRegionSource = topic.Source{
	Name: "population-by-region",
	Path: "/world-population/population-by-region",
	Tables: []extract.Schema{
		{
			"idx",
			"region",
			"population",
			"yearly_change",
			"net_change",
			"density",
			"area",
			"migrants",
			"fertility_rate",
			"median_age",
			"urban_population",
			"world_share",
		},
		{"idx", "region", "population", "world_share"},
		{"idx", "region", "population", "world_share"},
	},
}

// ByRegion holds the current, past and future region tables.
type ByRegion struct {
	Current []CurrentRegionPopulation
	Past    []RegionPopulationShare
	Future  []RegionPopulationShare
}

func (s ByRegion) Clone() ByRegion {
	return ByRegion{
		Current: slices.Clone(s.Current),
		Past:    slices.Clone(s.Past),
		Future:  slices.Clone(s.Future),
	}
}

func (s ByRegion) Tables() []core.Table {
	return []core.Table{
		materialize.Table("current", s.Current),
		materialize.Table("past", s.Past),
		materialize.Table("future", s.Future),
	}
}

func buildByRegion(tables []extract.Table) (ByRegion, error) {
	var s ByRegion
	var err error
	if s.Current, err = topic.TableAt[CurrentRegionPopulation](tables, 0); err != nil {
		return s, err
	}
	if s.Past, err = topic.TableAt[RegionPopulationShare](tables, 1); err != nil {
		return s, err
	}
	if s.Future, err = topic.TableAt[RegionPopulationShare](tables, 2); err != nil {
		return s, err
	}
	return s, nil
}

// WorldPopulationByRegion is the population of the world's regions now, in
// 1950 and in 2050.
type WorldPopulationByRegion struct {
	*topic.Holder[ByRegion]
}

// NewWorldPopulationByRegion creates an unloaded WorldPopulationByRegion topic.
func NewWorldPopulationByRegion(loader *topic.Loader) *WorldPopulationByRegion {
	return &WorldPopulationByRegion{topic.NewHolder[ByRegion](loader, WorldPopulationByRegionSource, buildByRegion)}
}

func (t *WorldPopulationByRegion) Current() []CurrentRegionPopulation {
	return t.Snapshot().Current
}

func (t *WorldPopulationByRegion) Past() []RegionPopulationShare {
	return t.Snapshot().Past
}

func (t *WorldPopulationByRegion) Future() []RegionPopulationShare {
	return t.Snapshot().Future
}
