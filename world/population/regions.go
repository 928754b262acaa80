package population

import (
	"context"
	"fmt"
	"slices"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/counters"
	"github.com/gaurav-prasanna/worldometer/core/extract"
	"github.com/gaurav-prasanna/worldometer/core/materialize"
	"github.com/gaurav-prasanna/worldometer/core/topic"
)

// Subregion is a row of a region's subregion table.
type Subregion struct {
	Area       extract.Cell `col:"area"`
	Population extract.Cell `col:"population"`
}

// RegionYear is a row of a region's historical or forecast table.
type RegionYear struct {
	Year                   int          `col:"year"`
	Population             int64        `col:"population"`
	YearlyChangePercent    string       `col:"yearly_change_percent"`
	YearlyChange           int64        `col:"yearly_change"`
	Migrants               extract.Cell `col:"migrants"`
	MedianAge              extract.Cell `col:"median_age"`
	FertilityRate          extract.Cell `col:"fertility_rate"`
	Density                int64        `col:"density"`
	UrbanPopulationPercent string       `col:"urban_population_percent"`
	UrbanPopulation        extract.Cell `col:"urban_population"`
	WorldShare             string       `col:"world_share"`
	WorldPopulation        int64        `col:"world_population"`
	Rank                   int          `col:"rank"`
}

var regionYearSchema = extract.Schema{
	"year",
	"population",
	"yearly_change_percent",
	"yearly_change",
	"migrants",
	"median_age",
	"fertility_rate",
	"density",
	"urban_population_percent",
	"urban_population",
	"world_share",
	"world_population",
	"rank",
}

// Region identifies a region population page and its live counter.
type Region struct {
	Name       string
	Path       string
	// CounterKey is the page's live counter for the region's population.
	CounterKey string
}

var (
	Asia                        = Region{Name: "asia", Path: "/world-population/asia-population", CounterKey: "asia-population"}
	Africa                      = Region{Name: "africa", Path: "/world-population/africa-population", CounterKey: "africa-population"}
	Europe                      = Region{Name: "europe", Path: "/world-population/europe-population", CounterKey: "europe-population"}
	LatinAmericaAndTheCaribbean = Region{Name: "latin-america-and-the-caribbean", Path: "/world-population/latin-america-and-the-caribbean-population", CounterKey: "latin-america-and-the-caribbean-population"}
	NorthernAmerica             = Region{Name: "northern-america", Path: "/world-population/northern-america-population", CounterKey: "northern-america-population"}
	Oceania                     = Region{Name: "oceania", Path: "/world-population/oceania-population", CounterKey: "oceania-population"}
)

// Regions lists every region page.
func Regions() []Region {
	return []Region{Asia, Africa, Europe, LatinAmericaAndTheCaribbean, NorthernAmerica, Oceania}
}

// RegionByName finds a region by its Name.
func RegionByName(name string) (Region, bool) {
	for _, r := range Regions() {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// Source declares the region page's three tables.
func (r Region) Source() topic.Source {
	return topic.Source{
		Name: r.Name + "-population",
		Path: r.Path,
		Tables: []extract.Schema{
			{"area", "population"},
			regionYearSchema,
			regionYearSchema,
		},
	}
}

// RegionData holds a region's subregion, historical and forecast tables.
type RegionData struct {
	Subregions []Subregion
	Historical []RegionYear
	Forecast   []RegionYear
}

func (s RegionData) Clone() RegionData {
	return RegionData{
		Subregions: slices.Clone(s.Subregions),
		Historical: slices.Clone(s.Historical),
		Forecast:   slices.Clone(s.Forecast),
	}
}

func (s RegionData) Tables() []core.Table {
	return []core.Table{
		materialize.Table("subregions", s.Subregions),
		materialize.Table("historical", s.Historical),
		materialize.Table("forecast", s.Forecast),
	}
}

func buildRegionData(tables []extract.Table) (RegionData, error) {
	var s RegionData
	var err error
	if s.Subregions, err = topic.TableAt[Subregion](tables, 0); err != nil {
		return s, err
	}
	if s.Historical, err = topic.TableAt[RegionYear](tables, 1); err != nil {
		return s, err
	}
	if s.Forecast, err = topic.TableAt[RegionYear](tables, 2); err != nil {
		return s, err
	}
	return s, nil
}

// RegionPopulation is the population page of one world region.
type RegionPopulation struct {
	*topic.Holder[RegionData]
	region Region
	loader *topic.Loader
}

// NewRegionPopulation creates an unloaded population topic for region.
func NewRegionPopulation(loader *topic.Loader, region Region) *RegionPopulation {
	return &RegionPopulation{
		Holder: topic.NewHolder[RegionData](loader, region.Source(), buildRegionData),
		region: region,
		loader: loader,
	}
}

func (t *RegionPopulation) Region() Region {
	return t.region
}

func (t *RegionPopulation) Subregions() []Subregion {
	return t.Snapshot().Subregions
}

func (t *RegionPopulation) Historical() []RegionYear {
	return t.Snapshot().Historical
}

func (t *RegionPopulation) Forecast() []RegionYear {
	return t.Snapshot().Forecast
}

// Live reads the region's population counter from the page. It does not
// touch the held snapshot.
func (t *RegionPopulation) Live(ctx context.Context) (counters.Value, error) {
	v, err := t.loader.Live(ctx, t.region.Path, t.region.CounterKey)
	if err != nil {
		return v, fmt.Errorf("%s live population: %w", t.region.Name, err)
	}
	return v, nil
}
