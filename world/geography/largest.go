package geography

import (
	"github.com/gaurav-prasanna/worldometer/core/extract"
	"github.com/gaurav-prasanna/worldometer/core/topic"
)

// LargestCountry is a row of the largest countries by area table.
type LargestCountry struct {
	Idx                       int    `col:"idx"`
	Country                   string `col:"country"`
	TotalAreaKm2              int64  `col:"total_area_km2"`
	TotalAreaMi2              int64  `col:"total_area_mi2"`
	LandAreaKm2               int64  `col:"land_area_km2"`
	LandAreaMi2               int64  `col:"land_area_mi2"`
	PercentageOfWorldLandmass string `col:"percentage_of_world_landmass"`
}

var LargestCountriesSource = topic.Source{
	Name: "largest-countries",
	Path: "/geography/largest-countries-in-the-world",
	Tables: []extract.Schema{{
		"idx",
		"country",
		"total_area_km2",
		"total_area_mi2",
		"land_area_km2",
		"land_area_mi2",
		"percentage_of_world_landmass",
	}},
}

// LargestCountries ranks the countries of the world by total area.
type LargestCountries struct {
	*topic.Holder[topic.Rows[LargestCountry]]
}

// NewLargestCountries creates an unloaded LargestCountries topic.
func NewLargestCountries(loader *topic.Loader) *LargestCountries {
	return &LargestCountries{topic.NewRowsHolder[LargestCountry](loader, LargestCountriesSource)}
}

func (t *LargestCountries) Data() []LargestCountry {
	return t.Snapshot()
}
