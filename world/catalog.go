package world

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/topic"
	"github.com/gaurav-prasanna/worldometer/world/geography"
	"github.com/gaurav-prasanna/worldometer/world/population"
)

// Topic is a loadable table topic.
type Topic interface {
	Source() topic.Source
	Load(ctx context.Context) error
	Reload(ctx context.Context) error
	Loaded() bool
	Document() core.Document
}

// Entry describes one topic of the catalog.
type Entry struct {
	Name        string
	Path        string
	Description string
	New         func(loader *topic.Loader) Topic
}

// Catalog lists every table topic, sorted by name.
func Catalog() []Entry {
	entries := []Entry{
		{
			Name:        population.CountriesByPopulationSource.Name,
			Path:        population.CountriesByPopulationSource.Path,
			Description: "Countries of the world ranked by population",
			New:         func(l *topic.Loader) Topic { return population.NewCountriesByPopulation(l) },
		},
		{
			Name:        population.LargestCitiesSource.Name,
			Path:        population.LargestCitiesSource.Path,
			Description: "Largest cities of the world by population",
			New:         func(l *topic.Loader) Topic { return population.NewLargestCities(l) },
		},
		{
			Name:        population.MostPopulousCountriesSource.Name,
			Path:        population.MostPopulousCountriesSource.Path,
			Description: "Most populous countries today, in 1950 and in 2050",
			New:         func(l *topic.Loader) Topic { return population.NewMostPopulousCountries(l) },
		},
		{
			Name:        population.WorldPopulationByRegionSource.Name,
			Path:        population.WorldPopulationByRegionSource.Path,
			Description: "World population by region, with past and future shares",
			New:         func(l *topic.Loader) Topic { return population.NewWorldPopulationByRegion(l) },
		},
		{
			Name:        population.WorldPopulationByYearSource.Name,
			Path:        population.WorldPopulationByYearSource.Path,
			Description: "World population by year",
			New:         func(l *topic.Loader) Topic { return population.NewWorldPopulationByYear(l) },
		},
		{
			Name:        population.WorldPopulationProjectionsSource.Name,
			Path:        population.WorldPopulationProjectionsSource.Path,
			Description: "Projections of the world population",
			New:         func(l *topic.Loader) Topic { return population.NewWorldPopulationProjections(l) },
		},
		{
			Name:        geography.WorldCountriesSource.Name,
			Path:        geography.WorldCountriesSource.Path,
			Description: "Every country in the world with population and land area",
			New:         func(l *topic.Loader) Topic { return geography.NewWorldCountries(l) },
		},
		{
			Name:        geography.LargestCountriesSource.Name,
			Path:        geography.LargestCountriesSource.Path,
			Description: "Largest countries in the world by area",
			New:         func(l *topic.Loader) Topic { return geography.NewLargestCountries(l) },
		},
		{
			Name:        CountryCodesSource.Name,
			Path:        CountryCodesSource.Path,
			Description: "Calling codes and ISO codes of every country",
			New:         func(l *topic.Loader) Topic { return NewCountryCodes(l) },
		},
	}

	for _, r := range population.Regions() {
		entries = append(entries, Entry{
			Name:        r.Source().Name,
			Path:        r.Path,
			Description: "Population of " + r.Name + " by subregion and year",
			New:         func(l *topic.Loader) Topic { return population.NewRegionPopulation(l, r) },
		})
	}
	for _, r := range geography.Regions() {
		entries = append(entries, Entry{
			Name:        r.Source().Name,
			Path:        r.Path,
			Description: "Countries and dependencies of " + r.Name,
			New:         func(l *topic.Loader) Topic { return geography.NewRegionCountries(l, r) },
		})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries
}

// Lookup returns the catalog entry for name.
func Lookup(name string) (Entry, error) {
	for _, e := range Catalog() {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("unknown topic %q", name)
}
