// Package population declares the population topics: countries and cities
// ranked by population, regional breakdowns, historical series and
// projections, and the per-region pages with their live counters.
package population

import (
	"github.com/gaurav-prasanna/worldometer/core/extract"
	"github.com/gaurav-prasanna/worldometer/core/topic"
)

// CountryPopulation is one row of the population by country table.
type CountryPopulation struct {
	Idx             int          `col:"idx"`
	Country         string       `col:"country"`
	Population      int64        `col:"population"`
	YearlyChange    string       `col:"yearly_change"`
	NetChange       extract.Cell `col:"net_change"`
	Density         extract.Cell `col:"density"`
	LandArea        extract.Cell `col:"land_area"`
	Migrants        extract.Cell `col:"migrants"`
	FertilityRate   extract.Cell `col:"fertility_rate"`
	MedianAge       extract.Cell `col:"median_age"`
	UrbanPopulation string       `col:"urban_population"`
	WorldShare      string       `col:"world_share"`
}

var CountriesByPopulationSource = topic.Source{
	Name: "countries-by-population",
	Path: "/world-population/population-by-country",
	Tables: []extract.Schema{{
		"idx",
		"country",
		"population",
		"yearly_change",
		"net_change",
		"density",
		"land_area",
		"migrants",
		"fertility_rate",
		"median_age",
		"urban_population",
		"world_share",
	}},
}

// CountriesByPopulation is the table of every country ranked by population.
type CountriesByPopulation struct {
	*topic.Holder[topic.Rows[CountryPopulation]]
}

// NewCountriesByPopulation creates an unloaded CountriesByPopulation topic.
func NewCountriesByPopulation(loader *topic.Loader) *CountriesByPopulation {
	return &CountriesByPopulation{topic.NewRowsHolder[CountryPopulation](loader, CountriesByPopulationSource)}
}

// Data returns a copy of every row.
func (t *CountriesByPopulation) Data() []CountryPopulation {
	return t.Snapshot()
}
