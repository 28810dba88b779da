package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/limaJavier/seatplanning/pkg/model"
	"github.com/samber/lo"
)

// AllocationRow is one line of a scenario's weekly detail: the teams seated
// on one table on one day, one name per occupied seat.
type AllocationRow struct {
	Day      string   `json:"day"`
	Corridor int      `json:"corridor"`
	Table    int      `json:"table"`
	Teams    []string `json:"teams"`
}

// ScenarioView is the renderable summary of one accepted scenario.
type ScenarioView struct {
	RequiredDays  int             `json:"requiredDays"`
	Status        string          `json:"status"`
	OccupiedSeats int             `json:"occupiedSeats"`
	OccupancyRate float64         `json:"occupancyRate"`
	SolveSeconds  float64         `json:"solveSeconds"`
	Allocation    []AllocationRow `json:"allocation"`
}

// RejectionView is the renderable record of one rejected scenario.
type RejectionView struct {
	RequiredDays int    `json:"requiredDays"`
	Verdict      string `json:"verdict"`
	Status       string `json:"status"`
	Reason       string `json:"reason,omitempty"`
}

// SweepView is the flat, marshal-friendly projection of a sweep result.
// Scenario outcomes key their allocation by a struct, which neither json
// nor a stable text table can consume directly, so the view re-groups
// everything into sorted rows.
type SweepView struct {
	Run      string          `json:"run"`
	Workdays []string        `json:"workdays"`
	Accepted []ScenarioView  `json:"accepted"`
	Rejected []RejectionView `json:"rejected,omitempty"`
}

// NewSweepView projects a sweep result into a view whose rows are ordered
// by scenario, day, corridor and table, so rendering the same result twice
// yields identical output.
func NewSweepView(result *model.SweepResult, workdays []string) SweepView {
	view := SweepView{Run: result.RunID.String(), Workdays: slices.Clone(workdays)}

	scenarios := lo.Keys(result.Accepted)
	slices.Sort(scenarios)
	for _, requiredDays := range scenarios {
		outcome := result.Accepted[requiredDays]
		view.Accepted = append(view.Accepted, ScenarioView{
			RequiredDays:  requiredDays,
			Status:        outcome.Status,
			OccupiedSeats: outcome.Metrics.OccupiedSeats,
			OccupancyRate: outcome.Metrics.OccupancyRate,
			SolveSeconds:  outcome.Metrics.Duration.Seconds(),
			Allocation:    allocationRows(outcome.Allocation, workdays),
		})
	}

	rejected := lo.Keys(result.Rejected)
	slices.Sort(rejected)
	for _, requiredDays := range rejected {
		rejection := result.Rejected[requiredDays]
		view.Rejected = append(view.Rejected, RejectionView{
			RequiredDays: requiredDays,
			Verdict:      rejection.Verdict.String(),
			Status:       rejection.Status,
			Reason:       rejection.Reason,
		})
	}
	return view
}

func allocationRows(allocation model.Allocation, workdays []string) []AllocationRow {
	rank := dayRank(workdays)
	rows := make([]AllocationRow, 0, len(allocation))
	for key, tables := range allocation {
		tableIds := lo.Keys(tables)
		slices.Sort(tableIds)
		for _, table := range tableIds {
			rows = append(rows, AllocationRow{
				Day:      key.Day,
				Corridor: key.Corridor,
				Table:    table,
				Teams:    slices.Clone(tables[table]),
			})
		}
	}
	slices.SortFunc(rows, func(a, b AllocationRow) int {
		if comparison := rank[a.Day] - rank[b.Day]; comparison != 0 {
			return comparison
		}
		if comparison := a.Corridor - b.Corridor; comparison != 0 {
			return comparison
		}
		return a.Table - b.Table
	})
	return rows
}

func dayRank(workdays []string) map[string]int {
	rank := make(map[string]int, len(workdays))
	for index, day := range workdays {
		rank[day] = index
	}
	return rank
}

// RenderSweep renders the sweep as text: one block per accepted scenario
// with its metrics line, the week's seat counts per table and the seated
// teams, then the rejected-scenario summary.
func RenderSweep(view SweepView) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "run %v\n", view.Run)

	for _, scenario := range view.Accepted {
		fmt.Fprintf(&builder, "\nscenario of %v required days: %v\n", scenario.RequiredDays, scenario.Status)
		fmt.Fprintf(&builder, "occupied seats %v, occupancy %.1f %%, free %.1f %%, solve time %.2fs\n",
			scenario.OccupiedSeats, scenario.OccupancyRate*100, (1-scenario.OccupancyRate)*100, scenario.SolveSeconds)
		renderWeek(&builder, scenario, view.Workdays)
	}

	if len(view.Rejected) > 0 {
		fmt.Fprintf(&builder, "\nrejected scenarios\n")
		for _, rejection := range view.Rejected {
			fmt.Fprintf(&builder, "%v required days: %v (%v)", rejection.RequiredDays, rejection.Status, rejection.Verdict)
			if rejection.Reason != "" {
				fmt.Fprintf(&builder, ", %v", rejection.Reason)
			}
			fmt.Fprintln(&builder)
		}
	}
	return builder.String()
}

func renderWeek(builder *strings.Builder, scenario ScenarioView, workdays []string) {
	type tableKey struct{ corridor, table int }
	rank := dayRank(workdays)
	counts := make(map[tableKey][]int)
	for _, row := range scenario.Allocation {
		key := tableKey{row.Corridor, row.Table}
		if _, ok := counts[key]; !ok {
			counts[key] = make([]int, len(workdays))
		}
		counts[key][rank[row.Day]] += len(row.Teams)
	}

	tables := lo.Keys(counts)
	slices.SortFunc(tables, func(a, b tableKey) int {
		if comparison := a.corridor - b.corridor; comparison != 0 {
			return comparison
		}
		return a.table - b.table
	})

	dayWidth := 0
	for _, day := range workdays {
		dayWidth = max(dayWidth, len(day))
	}
	fmt.Fprintf(builder, "%v", "corridor  table")
	for _, day := range workdays {
		fmt.Fprintf(builder, "  %*v", dayWidth, day)
	}
	fmt.Fprintln(builder)
	for _, key := range tables {
		fmt.Fprintf(builder, "%8v  %5v", key.corridor, key.table)
		for _, count := range counts[key] {
			fmt.Fprintf(builder, "  %*v", dayWidth, count)
		}
		fmt.Fprintln(builder)
	}

	day := ""
	for _, row := range scenario.Allocation {
		if row.Day != day {
			day = row.Day
			fmt.Fprintf(builder, "%v\n", day)
		}
		fmt.Fprintf(builder, "  corridor %v, table %v: %v\n", row.Corridor, row.Table, strings.Join(row.Teams, ", "))
	}
}

// RenderSensitivity renders the post-optimality tables: the objective
// value, the seat-occupancy variables ordered the way the week reads and
// the tagged constraints grouped by kind. Prices are rounded here and
// nowhere earlier.
func RenderSensitivity(report *model.SensitivityReport, workdays []string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "sensitivity of the %v required days scenario\n", report.RequiredDays)
	fmt.Fprintf(&builder, "objective value %.3f\n", report.Objective)
	if report.FromRelaxation {
		fmt.Fprintf(&builder, "prices come from the LP relaxation at its own optimum\n")
	}

	rank := dayRank(workdays)
	variables := slices.Clone(report.Variables)
	slices.SortFunc(variables, func(a, b model.VariableSensitivity) int {
		if comparison := rank[a.Day] - rank[b.Day]; comparison != 0 {
			return comparison
		}
		if comparison := a.Corridor - b.Corridor; comparison != 0 {
			return comparison
		}
		if comparison := a.Table - b.Table; comparison != 0 {
			return comparison
		}
		if comparison := a.Position - b.Position; comparison != 0 {
			return comparison
		}
		return strings.Compare(a.Team, b.Team)
	})

	fmt.Fprintf(&builder, "\n%-12v %8v %5v %8v %-10v %5v %12v\n",
		"team", "corridor", "table", "position", "day", "value", "reduced cost")
	for _, variable := range variables {
		fmt.Fprintf(&builder, "%-12v %8v %5v %8v %-10v %5.0f %12.3f\n",
			variable.Team, variable.Corridor, variable.Table, variable.Position, variable.Day,
			variable.Value, variable.ReducedCost)
	}

	constraints := slices.Clone(report.Constraints)
	slices.SortStableFunc(constraints, func(a, b model.ConstraintSensitivity) int {
		return strings.Compare(a.Kind, b.Kind)
	})
	fmt.Fprintf(&builder, "\n%-16v %-16v %12v %10v\n", "constraint", "kind", "shadow price", "slack")
	for _, constraint := range constraints {
		fmt.Fprintf(&builder, "%-16v %-16v %12.3f %10.3f\n",
			constraint.Name, constraint.Kind, constraint.ShadowPrice, constraint.Slack)
	}
	return builder.String()
}
