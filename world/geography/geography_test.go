package geography_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/worldometer/core/topic"
	"github.com/gaurav-prasanna/worldometer/core/topic/topictest"
	"github.com/gaurav-prasanna/worldometer/world/geography"
)

const base = "https://www.example.com"

func newLoader(fetcher *topictest.Fetcher) *topic.Loader {
	loader := topic.NewLoader(fetcher, nil)
	loader.BaseURL = base
	return loader
}

const worldCountriesHTML = `<table>
	<thead><tr><th>#</th><th>Country</th><th>Population</th><th>World Share</th><th>Land Area (Km²)</th></tr></thead>
	<tbody>
		<tr><td>1</td><td>India</td><td>1,428,627,663</td><td>17.76 %</td><td>2,973,190</td></tr>
		<tr><td>2</td><td>China</td><td>1,425,671,352</td><td>17.72 %</td><td>9,388,211</td></tr>
		<tr><td>3</td><td>United States</td><td>339,996,563</td><td>4.23 %</td><td>9,147,420</td></tr>
	</tbody>
</table>`

func TestWorldCountries(t *testing.T) {
	fetcher := topictest.NewFetcher(map[string]string{base + geography.WorldCountriesSource.Path: worldCountriesHTML})
	countries := geography.NewWorldCountries(newLoader(fetcher))

	assert.Equal(t, 0, countries.Total())
	require.NoError(t, countries.Load(context.Background()))
	assert.Equal(t, 3, countries.Total())
	assert.Equal(t, geography.WorldCountry{
		Idx:        2,
		Country:    "China",
		Population: 1425671352,
		WorldShare: "17.72 %",
		LandArea:   9388211,
	}, countries.Data()[1])
}

const europeHTML = `
<table>
	<thead><tr><th>#</th><th>Country</th><th>Population</th><th>Subregion</th></tr></thead>
	<tbody>
		<tr><td>1</td><td>Russia</td><td>144,444,359</td><td>Eastern Europe</td></tr>
		<tr><td>2</td><td>Germany</td><td>83,294,633</td><td>Western Europe</td></tr>
	</tbody>
</table>
<table>
	<thead><tr><th>#</th><th>Territory</th><th>Population</th><th>Dependency of</th></tr></thead>
	<tbody>
		<tr><td>1</td><td>Isle of Man</td><td>84,710</td><td>United Kingdom</td></tr>
		<tr><td>2</td><td>Faeroe Islands</td><td>53,270</td><td>Denmark</td></tr>
		<tr><td>3</td><td>Gibraltar</td><td>32,688</td><td>United Kingdom</td></tr>
	</tbody>
</table>`

func TestRegionCountries(t *testing.T) {
	fetcher := topictest.NewFetcher(map[string]string{base + geography.Europe.Path: europeHTML})
	europe := geography.NewRegionCountries(newLoader(fetcher), geography.Europe)

	assert.Equal(t, "europe-countries", europe.Source().Name)
	assert.Equal(t, geography.Europe, europe.Region())
	require.NoError(t, europe.Load(context.Background()))

	assert.Equal(t, 2, europe.Total())
	assert.Equal(t, "Western Europe", europe.Countries()[1].Subregion)
	require.Len(t, europe.Dependencies(), 3)
	assert.Equal(t, geography.Dependency{
		Idx:          3,
		Territory:    "Gibraltar",
		Population:   32688,
		DependencyOf: "United Kingdom",
	}, europe.Dependencies()[2])

	doc := europe.Document()
	require.Len(t, doc.Tables, 2)
	assert.Equal(t, "countries", doc.Tables[0].Name)
	assert.Equal(t, []string{"idx", "territory", "population", "dependency_of"}, doc.Tables[1].Columns)
}

func TestLargestCountries(t *testing.T) {
	page := `<table>
		<tr><th>#</th><th>Country</th><th colspan="2">Total Area</th><th colspan="2">Land Area</th><th>%</th></tr>
		<tr><td>1</td><td>Russia</td><td>17,098,242</td><td>6,601,665</td><td>16,376,870</td><td>6,323,142</td><td>11.0 %</td></tr>
	</table>`
	fetcher := topictest.NewFetcher(map[string]string{base + geography.LargestCountriesSource.Path: page})
	largest := geography.NewLargestCountries(newLoader(fetcher))

	require.NoError(t, largest.Load(context.Background()))
	require.Len(t, largest.Data(), 1)
	assert.Equal(t, geography.LargestCountry{
		Idx:                       1,
		Country:                   "Russia",
		TotalAreaKm2:              17098242,
		TotalAreaMi2:              6601665,
		LandAreaKm2:               16376870,
		LandAreaMi2:               6323142,
		PercentageOfWorldLandmass: "11.0 %",
	}, largest.Data()[0])
}

func TestRegions(t *testing.T) {
	names := map[string]bool{}
	for _, r := range geography.Regions() {
		assert.NotEmpty(t, r.Path)
		names[r.Source().Name] = true
	}
	assert.Len(t, names, 6)
}
