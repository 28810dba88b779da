package model

import "github.com/limaJavier/seatplanning/pkg/mip"

// AllocationKey identifies one cell group of the weekly plan: the
// scenario's required days, the workday and the corridor.
type AllocationKey struct {
	Days     int
	Day      string
	Corridor int
}

// Allocation is the human-readable assignment grouped by scenario, day and
// corridor, then keyed by table. A team's name appears once per seat it
// occupies on that table, so the length of a name list is the table's
// occupied-seat count. Which specific seat of the table a name corresponds
// to is deliberately not preserved.
type Allocation map[AllocationKey]map[int][]string

// extractAllocation converts the solved occupancy family into the nested
// structure the reporting layer consumes. It walks the columns in creation
// order, so extracting the same solution twice yields a deeply equal
// result.
func extractAllocation(model *scenarioModel, solution *mip.Solution) Allocation {
	allocation := make(Allocation)
	if !solution.HasValues() {
		return allocation
	}
	for column := range model.indexer.footprintOffset {
		if solution.Values[column] < 0.5 {
			continue
		}
		attributes := model.indexer.Attributes(column)
		table := model.venue.TableOfPosition(attributes.Position)
		key := AllocationKey{
			Days:     model.requiredDays,
			Day:      model.config.Workdays[attributes.Day],
			Corridor: model.venue.CorridorOfTable(table),
		}
		if _, ok := allocation[key]; !ok {
			allocation[key] = make(map[int][]string)
		}
		allocation[key][table] = append(allocation[key][table], model.teams[attributes.Team].Name)
	}
	return allocation
}
