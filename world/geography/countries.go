// Package geography declares the geography topics: the world's countries,
// the countries and dependencies of each region, and the largest countries
// by area.
package geography

import (
	"slices"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/extract"
	"github.com/gaurav-prasanna/worldometer/core/materialize"
	"github.com/gaurav-prasanna/worldometer/core/topic"
)

// WorldCountry is a row of the table of every country in the world.
type WorldCountry struct {
	Idx        int    `col:"idx"`
	Country    string `col:"country"`
	Population int64  `col:"population"`
	WorldShare string `col:"world_share"`
	LandArea   int64  `col:"land_area"`
}

var WorldCountriesSource = topic.Source{
	Name:   "world-countries",
	Path:   "/geography/how-many-countries-are-there-in-the-world",
	Tables: []extract.Schema{{"idx", "country", "population", "world_share", "land_area"}},
}

// WorldCountries is the list of every country in the world.
type WorldCountries struct {
	*topic.Holder[topic.Rows[WorldCountry]]
}

// NewWorldCountries creates an unloaded WorldCountries topic.
func NewWorldCountries(loader *topic.Loader) *WorldCountries {
	return &WorldCountries{topic.NewRowsHolder[WorldCountry](loader, WorldCountriesSource)}
}

func (t *WorldCountries) Data() []WorldCountry {
	return t.Snapshot()
}

// Total is the number of countries in the held snapshot.
func (t *WorldCountries) Total() int {
	return len(t.Snapshot())
}

// RegionCountry is a row of a region's country table.
type RegionCountry struct {
	Idx        int    `col:"idx"`
	Country    string `col:"country"`
	Population int64  `col:"population"`
	Subregion  string `col:"subregion"`
}

// Dependency is a row of a region's dependencies table.
type Dependency struct {
	Idx          int    `col:"idx"`
	Territory    string `col:"territory"`
	Population   int64  `col:"population"`
	DependencyOf string `col:"dependency_of"`
}

// Region names a region's country list page.
type Region struct {
	Name string
	Path string
}

var (
	Asia                        = Region{Name: "asia", Path: "/geography/how-many-countries-in-asia"}
	Africa                      = Region{Name: "africa", Path: "/geography/how-many-countries-in-africa"}
	Europe                      = Region{Name: "europe", Path: "/geography/how-many-countries-in-europe"}
	LatinAmericaAndTheCaribbean = Region{Name: "latin-america-and-the-caribbean", Path: "/geography/how-many-countries-in-latin-america"}
	NorthernAmerica             = Region{Name: "northern-america", Path: "/geography/how-many-countries-in-northern-america"}
	Oceania                     = Region{Name: "oceania", Path: "/geography/how-many-countries-in-oceania"}
)

// Regions lists every region page.
func Regions() []Region {
	return []Region{Asia, Africa, Europe, LatinAmericaAndTheCaribbean, NorthernAmerica, Oceania}
}

// Source declares the region page's countries and dependencies tables.
func (r Region) Source() topic.Source {
	return topic.Source{
		Name: r.Name + "-countries",
		Path: r.Path,
		Tables: []extract.Schema{
			{"idx", "country", "population", "subregion"},
			{"idx", "territory", "population", "dependency_of"},
		},
	}
}

// RegionData holds a region's countries and dependencies.
type RegionData struct {
	Countries    []RegionCountry
	Dependencies []Dependency
}

func (s RegionData) Clone() RegionData {
	return RegionData{
		Countries:    slices.Clone(s.Countries),
		Dependencies: slices.Clone(s.Dependencies),
	}
}

func (s RegionData) Tables() []core.Table {
	return []core.Table{
		materialize.Table("countries", s.Countries),
		materialize.Table("dependencies", s.Dependencies),
	}
}

func buildRegionData(tables []extract.Table) (RegionData, error) {
	var s RegionData
	var err error
	if s.Countries, err = topic.TableAt[RegionCountry](tables, 0); err != nil {
		return s, err
	}
	if s.Dependencies, err = topic.TableAt[Dependency](tables, 1); err != nil {
		return s, err
	}
	return s, nil
}

// RegionCountries is the country list of one world region.
type RegionCountries struct {
	*topic.Holder[RegionData]
	region Region
}

// NewRegionCountries creates an unloaded country list topic for region.
func NewRegionCountries(loader *topic.Loader, region Region) *RegionCountries {
	return &RegionCountries{
		Holder: topic.NewHolder[RegionData](loader, region.Source(), buildRegionData),
		region: region,
	}
}

func (t *RegionCountries) Region() Region {
	return t.region
}

func (t *RegionCountries) Countries() []RegionCountry {
	return t.Snapshot().Countries
}

func (t *RegionCountries) Dependencies() []Dependency {
	return t.Snapshot().Dependencies
}

// Total is the number of countries in the region, dependencies excluded.
func (t *RegionCountries) Total() int {
	return len(t.Snapshot().Countries)
}
