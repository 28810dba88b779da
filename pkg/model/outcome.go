package model

import (
	"time"

	"github.com/limaJavier/seatplanning/pkg/mip"
)

// Verdict is the three-way scenario outcome.
type Verdict uint8

const (
	Accepted      Verdict = iota // solved with a usable assignment
	Rejected                     // the solver proved infeasibility or ended empty-handed
	EarlyRejected                // failed the pre-check, the solver never ran
)

var verdictNames = map[Verdict]string{
	Accepted:      "Accepted",
	Rejected:      "Rejected",
	EarlyRejected: "EarlyRejected",
}

func (verdict Verdict) String() string {
	return verdictNames[verdict]
}

// Status labels recorded on outcomes. Accepted scenarios are either proven
// optimal or carry an unproven incumbent; rejected ones carry the solver
// status verbatim, except for pre-check rejections which reuse the label
// the original planner reported.
const (
	StatusOptimal         = "Optimal"
	StatusFeasible        = "Feasible"
	StatusEarlyInfeasible = "EarlyInfeasible"
)

// Metrics are the occupancy numbers of an accepted scenario.
type Metrics struct {
	OccupiedSeats int
	OccupancyRate float64
	Duration      time.Duration
}

// ScenarioOutcome is the result of evaluating one scenario. Exactly one
// verdict holds. Accepted outcomes retain the solved model so sensitivity
// queries can run later; the raw decision variables never leave the
// package.
type ScenarioOutcome struct {
	RequiredDays int
	Verdict      Verdict
	Status       string
	Reason       string
	Metrics      Metrics
	Allocation   Allocation

	model    *scenarioModel
	solution *mip.Solution
}

// interpretSolution maps the raw solver result onto the outcome taxonomy.
// Proven optimality is accepted as such, a halted search still counts when
// the solver hands back an incumbent, everything else is a rejection
// carrying the status verbatim.
func interpretSolution(model *scenarioModel, solution *mip.Solution, duration time.Duration) *ScenarioOutcome {
	outcome := &ScenarioOutcome{RequiredDays: model.requiredDays}

	switch solution.Status {
	case mip.Optimal:
		outcome.Verdict = Accepted
		outcome.Status = StatusOptimal
	case mip.NotSolved:
		if !solution.HasValues() {
			outcome.Verdict = Rejected
			outcome.Status = solution.Status.String()
			outcome.Reason = "search stopped before finding an incumbent"
			return outcome
		}
		outcome.Verdict = Accepted
		outcome.Status = StatusFeasible
	default:
		outcome.Verdict = Rejected
		outcome.Status = solution.Status.String()
		return outcome
	}

	outcome.model = model
	outcome.solution = solution
	outcome.Metrics = computeMetrics(model, solution, duration)
	outcome.Allocation = extractAllocation(model, solution)
	return outcome
}

// computeMetrics counts occupied seats over the x family only and relates
// them to the venue's weekly seat supply.
func computeMetrics(model *scenarioModel, solution *mip.Solution, duration time.Duration) Metrics {
	occupied := 0
	for column := range model.indexer.footprintOffset {
		if solution.Values[column] > 0.5 {
			occupied++
		}
	}
	week := len(model.config.Workdays) * model.venue.Capacity()
	return Metrics{
		OccupiedSeats: occupied,
		OccupancyRate: float64(occupied) / float64(week),
		Duration:      duration,
	}
}
