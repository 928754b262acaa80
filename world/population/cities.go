package population

import (
	"github.com/gaurav-prasanna/worldometer/core/extract"
	"github.com/gaurav-prasanna/worldometer/core/topic"
)

// City is one row of the largest cities table.
type City struct {
	Rank               int          `col:"rank"`
	UrbanArea          string       `col:"urban_area"`
	PopulationEstimate extract.Cell `col:"population_estimate"`
	Country            string       `col:"country"`
	LandArea           int64        `col:"land_area"`
	Density            int64        `col:"density"`
}

var LargestCitiesSource = topic.Source{
	Name: "largest-cities",
	Path: "/population/largest-cities-in-the-world",
	Tables: []extract.Schema{{
		"rank",
		"urban_area",
		"population_estimate",
		"country",
		"land_area",
		"density",
	}},
}

// LargestCities is the table of the most populated urban areas.
type LargestCities struct {
	*topic.Holder[topic.Rows[City]]
}

// NewLargestCities creates an unloaded LargestCities topic.
func NewLargestCities(loader *topic.Loader) *LargestCities {
	return &LargestCities{topic.NewRowsHolder[City](loader, LargestCitiesSource)}
}

// Data returns a copy of every row.
func (t *LargestCities) Data() []City {
	return t.Snapshot()
}
