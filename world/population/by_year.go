package population

import (
	"github.com/gaurav-prasanna/worldometer/core/extract"
	"github.com/gaurav-prasanna/worldometer/core/topic"
)

// YearPopulation is one year of the world population series.
// Early years print "N.A." for the change and density columns.
type YearPopulation struct {
	Year            int          `col:"year"`
	WorldPopulation int64        `col:"world_population"`
	YearlyChange    string       `col:"yearly_change"`
	NetChange       extract.Cell `col:"net_change"`
	Density         extract.Cell `col:"density"`
}

var yearSchema = extract.Schema{
	"year",
	"world_population",
	"yearly_change",
	"net_change",
	"density",
}

var WorldPopulationByYearSource = topic.Source{
	Name:   "population-by-year",
	Path:   "/world-population/world-population-by-year",
	Tables: []extract.Schema{yearSchema},
}

var WorldPopulationProjectionsSource = topic.Source{
	Name:   "population-projections",
	Path:   "/world-population/world-population-projections",
	Tables: []extract.Schema{yearSchema},
}

// WorldPopulationByYear is the world population from year 1 to today.
type WorldPopulationByYear struct {
	*topic.Holder[topic.Rows[YearPopulation]]
}

// NewWorldPopulationByYear creates an unloaded WorldPopulationByYear topic.
func NewWorldPopulationByYear(loader *topic.Loader) *WorldPopulationByYear {
	return &WorldPopulationByYear{topic.NewRowsHolder[YearPopulation](loader, WorldPopulationByYearSource)}
}

func (t *WorldPopulationByYear) Data() []YearPopulation {
	return t.Snapshot()
}

// WorldPopulationProjections is the projected world population up to 2100.
type WorldPopulationProjections struct {
	*topic.Holder[topic.Rows[YearPopulation]]
}

// NewWorldPopulationProjections creates an unloaded WorldPopulationProjections topic.
func NewWorldPopulationProjections(loader *topic.Loader) *WorldPopulationProjections {
	return &WorldPopulationProjections{topic.NewRowsHolder[YearPopulation](loader, WorldPopulationProjectionsSource)}
}

func (t *WorldPopulationProjections) Data() []YearPopulation {
	return t.Snapshot()
}
