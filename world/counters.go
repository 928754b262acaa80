// Package world exposes the statistics published on the site's home page
// and the catalog of table topics.
package world

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/gaurav-prasanna/worldometer/core/counters"
	"github.com/gaurav-prasanna/worldometer/core/topic"
)

// CountersPath is the page publishing the live counters.
const CountersPath = "/"

// Counter categories, in home page order.
const (
	CategoryWorldPopulation        = "world_population"
	CategoryGovernmentAndEconomics = "government_and_economics"
	CategorySocietyAndMedia        = "society_and_media"
	CategoryEnvironment            = "environment"
	CategoryFood                   = "food"
	CategoryWater                  = "water"
	CategoryEnergy                 = "energy"
	CategoryHealth                 = "health"
)

// WorldPopulation holds the population growth counters.
type WorldPopulation struct {
	CurrentPopulation           counters.Value `json:"current_population"`
	BirthsToday                 counters.Value `json:"births_today"`
	BirthsThisYear              counters.Value `json:"births_this_year"`
	DeathsToday                 counters.Value `json:"deaths_today"`
	DeathsThisYear              counters.Value `json:"deaths_this_year"`
	NetPopulationGrowthToday    counters.Value `json:"net_population_growth_today"`
	NetPopulationGrowthThisYear counters.Value `json:"net_population_growth_this_year"`
}

// GovernmentAndEconomics holds public expenditure and production counters.
type GovernmentAndEconomics struct {
	PublicHealthcareExpenditureToday counters.Value `json:"public_healthcare_expenditure_today"`
	PublicEducationExpenditureToday  counters.Value `json:"public_education_expenditure_today"`
	PublicMilitaryExpenditureToday   counters.Value `json:"public_military_expenditure_today"`
	CarsProducedThisYear             counters.Value `json:"cars_produced_this_year"`
	BicyclesProducedThisYear         counters.Value `json:"bicycles_produced_this_year"`
	ComputersProducedThisYear        counters.Value `json:"computers_produced_this_year"`
}

// SocietyAndMedia holds the publishing and internet counters.
type SocietyAndMedia struct {
	NewBookTitlesPublishedThisYear counters.Value `json:"new_book_titles_published_this_year"`
	NewspapersCirculatedToday      counters.Value `json:"newspapers_circulated_today"`
	TVSetsSoldWorldwideToday       counters.Value `json:"tv_sets_sold_worldwide_today"`
	CellularPhonesSoldToday        counters.Value `json:"cellular_phones_sold_today"`
	MoneySpentOnVideogamesToday    counters.Value `json:"money_spent_on_videogames_today"`
	InternetUsersInTheWorldToday   counters.Value `json:"internet_users_in_the_world_today"`
	EmailsSentToday                counters.Value `json:"emails_sent_today"`
	BlogPostsWrittenToday          counters.Value `json:"blog_posts_written_today"`
	TweetsSentToday                counters.Value `json:"tweets_sent_today"`
	GoogleSearchesToday            counters.Value `json:"google_searches_today"`
}

// Environment holds the land loss and emission counters.
type Environment struct {
	ForestLossThisYear                             counters.Value `json:"forest_loss_this_year"`
	LandLostToSoilErosionThisYear                  counters.Value `json:"land_lost_to_soil_erosion_this_year"`
	CO2EmissionsThisYear                           counters.Value `json:"co2_emissions_this_year"`
	DesertificationThisYear                        counters.Value `json:"desertification_this_year"`
	ToxicChemicalsReleasedInTheEnvironmentThisYear counters.Value `json:"toxic_chemicals_released_in_the_environment_this_year"`
}

// Food holds the nutrition counters.
type Food struct {
	UndernourishedPeopleInTheWorld                   counters.Value `json:"undernourished_people_in_the_world"`
	OverweightPeopleInTheWorld                       counters.Value `json:"overweight_people_in_the_world"`
	ObesePeopleInTheWorld                            counters.Value `json:"obese_people_in_the_world"`
	PeopleWhoDiedOfHungerToday                       counters.Value `json:"people_who_died_of_hunger_today"`
	MoneySpentForObesityRelatedDiseasesInTheUSAToday counters.Value `json:"money_spent_for_obesity_related_diseases_in_the_usa_today"`
	MoneySpentOnWeightLossProgramsInTheUSAToday      counters.Value `json:"money_spent_on_weight_loss_programs_in_the_usa_today"`
}

// Water holds water use and safe water access counters.
type Water struct {
	WaterUsedThisYear                            counters.Value `json:"water_used_this_year"`
	DeathsCausedByWaterRelatedDiseasesThisYear   counters.Value `json:"deaths_caused_by_water_related_diseases_this_year"`
	PeopleWithNoAccessToASafeDrinkingWaterSource counters.Value `json:"people_with_no_access_to_a_safe_drinking_water_source"`
}

// Energy holds energy use and fossil fuel reserve counters.
type Energy struct {
	EnergyUsedToday               counters.Value `json:"energy_used_today"`
	NonRenewableSources           counters.Value `json:"non_renewable_sources"`
	RenewableSources              counters.Value `json:"renewable_sources"`
	SolarEnergyStrikingEarthToday counters.Value `json:"solar_energy_striking_earth_today"`
	OilPumpedToday                counters.Value `json:"oil_pumped_today"`
	OilLeft                       counters.Value `json:"oil_left"`
	DaysToTheEndOfOil             counters.Value `json:"days_to_the_end_of_oil"`
	NaturalGasLeft                counters.Value `json:"natural_gas_left"`
	DaysToTheEndOfNaturalGas      counters.Value `json:"days_to_the_end_of_natural_gas"`
	CoalLeft                      counters.Value `json:"coal_left"`
	DaysToTheEndOfCoal            counters.Value `json:"days_to_the_end_of_coal"`
}

// Health holds the disease and mortality counters.
type Health struct {
	CommunicableDiseaseDeathsThisYear     counters.Value `json:"communicable_disease_deaths_this_year"`
	SeasonalFluDeathsThisYear             counters.Value `json:"seasonal_flu_deaths_this_year"`
	DeathsOfChildrenUnder5ThisYear        counters.Value `json:"deaths_of_children_under_5_this_year"`
	AbortionsThisYear                     counters.Value `json:"abortions_this_year"`
	DeathsOfMothersDuringBirthThisYear    counters.Value `json:"deaths_of_mothers_during_birth_this_year"`
	HIVAIDSInfectedPeople                 counters.Value `json:"hiv_aids_infected_people"`
	DeathsCausedByHIVAIDSThisYear         counters.Value `json:"deaths_caused_by_hiv_aids_this_year"`
	DeathsCausedByCancerThisYear          counters.Value `json:"deaths_caused_by_cancer_this_year"`
	DeathsCausedByMalariaThisYear         counters.Value `json:"deaths_caused_by_malaria_this_year"`
	CigarettesSmokedToday                 counters.Value `json:"cigarettes_smoked_today"`
	DeathsCausedBySmokingThisYear         counters.Value `json:"deaths_caused_by_smoking_this_year"`
	DeathsCausedByAlcoholThisYear         counters.Value `json:"deaths_caused_by_alcohol_this_year"`
	SuicidesThisYear                      counters.Value `json:"suicides_this_year"`
	MoneySpentOnIllegalDrugsThisYear      counters.Value `json:"money_spent_on_illegal_drugs_this_year"`
	RoadTrafficAccidentFatalitiesThisYear counters.Value `json:"road_traffic_accident_fatalities_this_year"`
}

// Counters is one reading of every home page counter, grouped by category.
type Counters struct {
	WorldPopulation        WorldPopulation        `json:"world_population"`
	GovernmentAndEconomics GovernmentAndEconomics `json:"government_and_economics"`
	SocietyAndMedia        SocietyAndMedia        `json:"society_and_media"`
	Environment            Environment            `json:"environment"`
	Food                   Food                   `json:"food"`
	Water                  Water                  `json:"water"`
	Energy                 Energy                 `json:"energy"`
	Health                 Health                 `json:"health"`
}

// counterDef binds a labelled counter to its key in the live counter object.
type counterDef struct {
	category string
	label    string
	key      string
	field    func(c *Counters) *counters.Value
}

var counterDefs = []counterDef{
	{CategoryWorldPopulation, "current_population", "current_population", func(c *Counters) *counters.Value { return &c.WorldPopulation.CurrentPopulation }},
	{CategoryWorldPopulation, "births_today", "births_today", func(c *Counters) *counters.Value { return &c.WorldPopulation.BirthsToday }},
	{CategoryWorldPopulation, "births_this_year", "births_this_year", func(c *Counters) *counters.Value { return &c.WorldPopulation.BirthsThisYear }},
	{CategoryWorldPopulation, "deaths_today", "dth1s_today", func(c *Counters) *counters.Value { return &c.WorldPopulation.DeathsToday }},
	{CategoryWorldPopulation, "deaths_this_year", "dth1s_this_year", func(c *Counters) *counters.Value { return &c.WorldPopulation.DeathsThisYear }},
	{CategoryWorldPopulation, "net_population_growth_today", "absolute_growth", func(c *Counters) *counters.Value { return &c.WorldPopulation.NetPopulationGrowthToday }},
	{CategoryWorldPopulation, "net_population_growth_this_year", "absolute_growth_year", func(c *Counters) *counters.Value { return &c.WorldPopulation.NetPopulationGrowthThisYear }},

	{CategoryGovernmentAndEconomics, "public_healthcare_expenditure_today", "gov_expenditures_health", func(c *Counters) *counters.Value { return &c.GovernmentAndEconomics.PublicHealthcareExpenditureToday }},
	{CategoryGovernmentAndEconomics, "public_education_expenditure_today", "gov_expenditures_education", func(c *Counters) *counters.Value { return &c.GovernmentAndEconomics.PublicEducationExpenditureToday }},
	{CategoryGovernmentAndEconomics, "public_military_expenditure_today", "gov_expenditures_military", func(c *Counters) *counters.Value { return &c.GovernmentAndEconomics.PublicMilitaryExpenditureToday }},
	{CategoryGovernmentAndEconomics, "cars_produced_this_year", "automobile_produced", func(c *Counters) *counters.Value { return &c.GovernmentAndEconomics.CarsProducedThisYear }},
	{CategoryGovernmentAndEconomics, "bicycles_produced_this_year", "bicycle_produced", func(c *Counters) *counters.Value { return &c.GovernmentAndEconomics.BicyclesProducedThisYear }},
	{CategoryGovernmentAndEconomics, "computers_produced_this_year", "computers_sold", func(c *Counters) *counters.Value { return &c.GovernmentAndEconomics.ComputersProducedThisYear }},

	{CategorySocietyAndMedia, "new_book_titles_published_this_year", "books_published", func(c *Counters) *counters.Value { return &c.SocietyAndMedia.NewBookTitlesPublishedThisYear }},
	{CategorySocietyAndMedia, "newspapers_circulated_today", "newspapers_circulated", func(c *Counters) *counters.Value { return &c.SocietyAndMedia.NewspapersCirculatedToday }},
	{CategorySocietyAndMedia, "tv_sets_sold_worldwide_today", "tv", func(c *Counters) *counters.Value { return &c.SocietyAndMedia.TVSetsSoldWorldwideToday }},
	{CategorySocietyAndMedia, "cellular_phones_sold_today", "cellular", func(c *Counters) *counters.Value { return &c.SocietyAndMedia.CellularPhonesSoldToday }},
	{CategorySocietyAndMedia, "money_spent_on_videogames_today", "videogames", func(c *Counters) *counters.Value { return &c.SocietyAndMedia.MoneySpentOnVideogamesToday }},
	{CategorySocietyAndMedia, "internet_users_in_the_world_today", "internet_users", func(c *Counters) *counters.Value { return &c.SocietyAndMedia.InternetUsersInTheWorldToday }},
	{CategorySocietyAndMedia, "emails_sent_today", "em", func(c *Counters) *counters.Value { return &c.SocietyAndMedia.EmailsSentToday }},
	{CategorySocietyAndMedia, "blog_posts_written_today", "blog_posts", func(c *Counters) *counters.Value { return &c.SocietyAndMedia.BlogPostsWrittenToday }},
	{CategorySocietyAndMedia, "tweets_sent_today", "tweets", func(c *Counters) *counters.Value { return &c.SocietyAndMedia.TweetsSentToday }},
	{CategorySocietyAndMedia, "google_searches_today", "google_searches", func(c *Counters) *counters.Value { return &c.SocietyAndMedia.GoogleSearchesToday }},

	{CategoryEnvironment, "forest_loss_this_year", "forest_loss", func(c *Counters) *counters.Value { return &c.Environment.ForestLossThisYear }},
	{CategoryEnvironment, "land_lost_to_soil_erosion_this_year", "soil_erosion", func(c *Counters) *counters.Value { return &c.Environment.LandLostToSoilErosionThisYear }},
	{CategoryEnvironment, "co2_emissions_this_year", "co2_emissions", func(c *Counters) *counters.Value { return &c.Environment.CO2EmissionsThisYear }},
	{CategoryEnvironment, "desertification_this_year", "desert_land_formed", func(c *Counters) *counters.Value { return &c.Environment.DesertificationThisYear }},
	{CategoryEnvironment, "toxic_chemicals_released_in_the_environment_this_year", "tox_chem", func(c *Counters) *counters.Value { return &c.Environment.ToxicChemicalsReleasedInTheEnvironmentThisYear }},

	{CategoryFood, "undernourished_people_in_the_world", "undernourished", func(c *Counters) *counters.Value { return &c.Food.UndernourishedPeopleInTheWorld }},
	{CategoryFood, "overweight_people_in_the_world", "overweight", func(c *Counters) *counters.Value { return &c.Food.OverweightPeopleInTheWorld }},
	{CategoryFood, "obese_people_in_the_world", "obese", func(c *Counters) *counters.Value { return &c.Food.ObesePeopleInTheWorld }},
	{CategoryFood, "people_who_died_of_hunger_today", "dth1_hunger", func(c *Counters) *counters.Value { return &c.Food.PeopleWhoDiedOfHungerToday }},
	{CategoryFood, "money_spent_for_obesity_related_diseases_in_the_usa_today", "obesity_spending", func(c *Counters) *counters.Value { return &c.Food.MoneySpentForObesityRelatedDiseasesInTheUSAToday }},
	{CategoryFood, "money_spent_on_weight_loss_programs_in_the_usa_today", "spending_on_weight_loss", func(c *Counters) *counters.Value { return &c.Food.MoneySpentOnWeightLossProgramsInTheUSAToday }},

	{CategoryWater, "water_used_this_year", "water_consumed", func(c *Counters) *counters.Value { return &c.Water.WaterUsedThisYear }},
	{CategoryWater, "deaths_caused_by_water_related_diseases_this_year", "water_disax", func(c *Counters) *counters.Value { return &c.Water.DeathsCausedByWaterRelatedDiseasesThisYear }},
	{CategoryWater, "people_with_no_access_to_a_safe_drinking_water_source", "nowater_population", func(c *Counters) *counters.Value { return &c.Water.PeopleWithNoAccessToASafeDrinkingWaterSource }},

	{CategoryEnergy, "energy_used_today", "energy_used", func(c *Counters) *counters.Value { return &c.Energy.EnergyUsedToday }},
	{CategoryEnergy, "non_renewable_sources", "energy_nonren", func(c *Counters) *counters.Value { return &c.Energy.NonRenewableSources }},
	{CategoryEnergy, "renewable_sources", "energy_ren", func(c *Counters) *counters.Value { return &c.Energy.RenewableSources }},
	{CategoryEnergy, "solar_energy_striking_earth_today", "solar_energy", func(c *Counters) *counters.Value { return &c.Energy.SolarEnergyStrikingEarthToday }},
	{CategoryEnergy, "oil_pumped_today", "oil_consumption", func(c *Counters) *counters.Value { return &c.Energy.OilPumpedToday }},
	{CategoryEnergy, "oil_left", "oil_reserves", func(c *Counters) *counters.Value { return &c.Energy.OilLeft }},
	{CategoryEnergy, "days_to_the_end_of_oil", "oil_days", func(c *Counters) *counters.Value { return &c.Energy.DaysToTheEndOfOil }},
	{CategoryEnergy, "natural_gas_left", "gas_reserves", func(c *Counters) *counters.Value { return &c.Energy.NaturalGasLeft }},
	{CategoryEnergy, "days_to_the_end_of_natural_gas", "gas_days", func(c *Counters) *counters.Value { return &c.Energy.DaysToTheEndOfNaturalGas }},
	{CategoryEnergy, "coal_left", "coal_reserves", func(c *Counters) *counters.Value { return &c.Energy.CoalLeft }},
	{CategoryEnergy, "days_to_the_end_of_coal", "coal_days", func(c *Counters) *counters.Value { return &c.Energy.DaysToTheEndOfCoal }},

	{CategoryHealth, "communicable_disease_deaths_this_year", "dth1s_communicable_disaxs", func(c *Counters) *counters.Value { return &c.Health.CommunicableDiseaseDeathsThisYear }},
	{CategoryHealth, "seasonal_flu_deaths_this_year", "dth1s_flu", func(c *Counters) *counters.Value { return &c.Health.SeasonalFluDeathsThisYear }},
	{CategoryHealth, "deaths_of_children_under_5_this_year", "dth1s_children", func(c *Counters) *counters.Value { return &c.Health.DeathsOfChildrenUnder5ThisYear }},
	{CategoryHealth, "abortions_this_year", "ab", func(c *Counters) *counters.Value { return &c.Health.AbortionsThisYear }},
	{CategoryHealth, "deaths_of_mothers_during_birth_this_year", "dth1s_maternal", func(c *Counters) *counters.Value { return &c.Health.DeathsOfMothersDuringBirthThisYear }},
	{CategoryHealth, "hiv_aids_infected_people", "infections_hiv", func(c *Counters) *counters.Value { return &c.Health.HIVAIDSInfectedPeople }},
	{CategoryHealth, "deaths_caused_by_hiv_aids_this_year", "dth1s_ads", func(c *Counters) *counters.Value { return &c.Health.DeathsCausedByHIVAIDSThisYear }},
	{CategoryHealth, "deaths_caused_by_cancer_this_year", "dth1s_cancer", func(c *Counters) *counters.Value { return &c.Health.DeathsCausedByCancerThisYear }},
	{CategoryHealth, "deaths_caused_by_malaria_this_year", "dth1s_malarial", func(c *Counters) *counters.Value { return &c.Health.DeathsCausedByMalariaThisYear }},
	{CategoryHealth, "cigarettes_smoked_today", "cigarettes_smoked", func(c *Counters) *counters.Value { return &c.Health.CigarettesSmokedToday }},
	{CategoryHealth, "deaths_caused_by_smoking_this_year", "dth1s_cigarettes", func(c *Counters) *counters.Value { return &c.Health.DeathsCausedBySmokingThisYear }},
	{CategoryHealth, "deaths_caused_by_alcohol_this_year", "dth1s_alchool", func(c *Counters) *counters.Value { return &c.Health.DeathsCausedByAlcoholThisYear }},
	{CategoryHealth, "suicides_this_year", "sui", func(c *Counters) *counters.Value { return &c.Health.SuicidesThisYear }},
	{CategoryHealth, "money_spent_on_illegal_drugs_this_year", "drug_spending", func(c *Counters) *counters.Value { return &c.Health.MoneySpentOnIllegalDrugsThisYear }},
	{CategoryHealth, "road_traffic_accident_fatalities_this_year", "dth1s_cars", func(c *Counters) *counters.Value { return &c.Health.RoadTrafficAccidentFatalitiesThisYear }},
}

// NewCounters maps a sanitized counter object onto the labelled counters.
// Keys the object does not publish read as absent.
func NewCounters(s counters.Sanitized) Counters {
	var c Counters
	for _, d := range counterDefs {
		*d.field(&c) = s.Get(d.key)
	}
	return c
}

// Metrics returns every counter keyed by label.
func (c Counters) Metrics() map[string]counters.Value {
	out := make(map[string]counters.Value, len(counterDefs))
	for _, d := range counterDefs {
		out[d.label] = *d.field(&c)
	}
	return out
}

// Metric returns the counter with the given label.
func (c Counters) Metric(label string) (counters.Value, bool) {
	for _, d := range counterDefs {
		if d.label == label {
			return *d.field(&c), true
		}
	}
	return counters.Absent(), false
}

// MetricsByCategory returns the counters grouped by category and label.
func (c Counters) MetricsByCategory() map[string]map[string]counters.Value {
	out := map[string]map[string]counters.Value{}
	for _, d := range counterDefs {
		if out[d.category] == nil {
			out[d.category] = map[string]counters.Value{}
		}
		out[d.category][d.label] = *d.field(&c)
	}
	return out
}

// Categories lists the counter categories in home page order.
func Categories() []string {
	var out []string
	for _, d := range counterDefs {
		if !slices.Contains(out, d.category) {
			out = append(out, d.category)
		}
	}
	return out
}

// Labels lists the counter labels of category, or of every category when
// category is empty, in home page order.
func Labels(category string) []string {
	var out []string
	for _, d := range counterDefs {
		if category == "" || d.category == category {
			out = append(out, d.label)
		}
	}
	return out
}

// Summary counts what the home page publishes.
type Summary struct {
	Categories int `json:"categories"`
	Labels     int `json:"labels"`
	Metrics    int `json:"metrics"`
}

// WorldCounters holds the latest reading of the home page counters.
type WorldCounters struct {
	loader *topic.Loader

	mu      sync.RWMutex
	raw     counters.Sanitized
	current Counters
	takenAt time.Time
}

// NewWorldCounters creates an empty WorldCounters. Call Reload to read the
// counters.
func NewWorldCounters(loader *topic.Loader) *WorldCounters {
	return &WorldCounters{loader: loader}
}

// Reload reads every counter again. On error the previous reading stays.
func (w *WorldCounters) Reload(ctx context.Context) error {
	raw, err := w.loader.Counters(ctx, CountersPath)
	if err != nil {
		return fmt.Errorf("world counters: %w", err)
	}
	current := NewCounters(raw)

	w.mu.Lock()
	w.raw = raw
	w.current = current
	w.takenAt = time.Now().UTC()
	w.mu.Unlock()
	return nil
}

// Counters returns the latest reading.
func (w *WorldCounters) Counters() Counters {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Raw returns a copy of the sanitized counter object behind the latest reading.
func (w *WorldCounters) Raw() counters.Sanitized {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.raw.Clone()
}

// TakenAt returns when the latest reading was made.
func (w *WorldCounters) TakenAt() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.takenAt
}

// WorldPopulation returns the world population category of the last reading.
func (w *WorldCounters) WorldPopulation() WorldPopulation {
	return w.Counters().WorldPopulation
}

// GovernmentAndEconomics returns the government and economics category of the last reading.
func (w *WorldCounters) GovernmentAndEconomics() GovernmentAndEconomics {
	return w.Counters().GovernmentAndEconomics
}

// SocietyAndMedia returns the society and media category of the last reading.
func (w *WorldCounters) SocietyAndMedia() SocietyAndMedia {
	return w.Counters().SocietyAndMedia
}

// Environment returns the environment category of the last reading.
func (w *WorldCounters) Environment() Environment {
	return w.Counters().Environment
}

// Food returns the food category of the last reading.
func (w *WorldCounters) Food() Food {
	return w.Counters().Food
}

// Water returns the water category of the last reading.
func (w *WorldCounters) Water() Water {
	return w.Counters().Water
}

// Energy returns the energy category of the last reading.
func (w *WorldCounters) Energy() Energy {
	return w.Counters().Energy
}

// Health returns the health category of the last reading.
func (w *WorldCounters) Health() Health {
	return w.Counters().Health
}

// Metrics returns the latest reading keyed by label.
func (w *WorldCounters) Metrics() map[string]counters.Value {
	return w.Counters().Metrics()
}

// Summary counts the categories, labels and metrics of the latest reading.
func (w *WorldCounters) Summary() Summary {
	return Summary{
		Categories: len(Categories()),
		Labels:     len(Labels("")),
		Metrics:    len(w.Metrics()),
	}
}
