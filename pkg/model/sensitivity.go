package model

import (
	"fmt"
	"math"

	"github.com/limaJavier/seatplanning/pkg/mip"
	"go.uber.org/zap"
)

// VariableSensitivity is one row of the per-variable table, covering the
// seat-occupancy family. Value is the solved assignment, ReducedCost comes
// from the duals source described on SensitivityReport.
type VariableSensitivity struct {
	Name        string
	Team        string
	Corridor    int
	Table       int
	Position    int
	Day         string
	Value       float64
	ReducedCost float64
}

// ConstraintSensitivity is one row of the per-constraint table. Kind and
// the entity fields come from the tag attached when the row was created,
// entity fields that do not apply hold -1 or an empty string.
type ConstraintSensitivity struct {
	Name        string
	Kind        string
	Team        string
	Position    int
	Table       int
	TableB      int
	Day         string
	ShadowPrice float64
	Slack       float64
}

// SensitivityReport is the post-optimality view of one accepted scenario.
// Integer solves carry no dual values, so when the retained solution lacks
// them the planner re-solves the LP relaxation and FromRelaxation is set;
// prices then describe the relaxed problem at its own optimum, while the
// variable values and slacks still describe the integer solution.
type SensitivityReport struct {
	RequiredDays   int
	Objective      float64
	FromRelaxation bool
	Variables      []VariableSensitivity
	Constraints    []ConstraintSensitivity
}

// Sensitivity builds the post-optimality report of an accepted outcome.
// Outcomes that retained no solved model yield an empty report.
func (planner *sweepPlanner) Sensitivity(outcome *ScenarioOutcome) (*SensitivityReport, error) {
	if outcome == nil || outcome.model == nil || outcome.solution == nil {
		return &SensitivityReport{}, nil
	}

	report := &SensitivityReport{
		RequiredDays: outcome.RequiredDays,
		Objective:    outcome.solution.Objective,
	}

	duals := outcome.solution
	if !duals.HasDuals() {
		relaxed, err := planner.solver.Solve(outcome.model.problem.Relax())
		if err != nil {
			return nil, fmt.Errorf("cannot solve relaxation for sensitivity: %w", err)
		}
		if relaxed.Status == mip.Optimal && relaxed.HasDuals() {
			duals = relaxed
			report.FromRelaxation = true
		}
		planner.logger.Debug("relaxation solved for sensitivity",
			zap.Int("requiredDays", outcome.RequiredDays),
			zap.String("status", relaxed.Status.String()),
		)
	}

	model := outcome.model
	for column := range model.indexer.footprintOffset {
		attributes := model.indexer.Attributes(column)
		table := model.venue.TableOfPosition(attributes.Position)
		row := VariableSensitivity{
			Name:     model.problem.Variables[column].Name,
			Team:     model.teams[attributes.Team].Name,
			Corridor: model.venue.CorridorOfTable(table),
			Table:    table,
			Position: attributes.Position,
			Day:      model.config.Workdays[attributes.Day],
			Value:    outcome.solution.Values[column],
		}
		if column < len(duals.ReducedCosts) {
			row.ReducedCost = duals.ReducedCosts[column]
		}
		report.Variables = append(report.Variables, row)
	}

	activity := model.problem.Activity(outcome.solution.Values)
	for index, constraint := range model.problem.Constraints {
		tag := model.tags[index]
		row := ConstraintSensitivity{
			Name:     constraint.Name,
			Kind:     tag.Kind.String(),
			Position: tag.Position,
			Table:    tag.Table,
			TableB:   tag.TableB,
			Slack:    rowSlack(constraint, activity[index]),
		}
		if tag.Team >= 0 {
			row.Team = model.teams[tag.Team].Name
		}
		if tag.Day >= 0 {
			row.Day = model.config.Workdays[tag.Day]
		}
		if index < len(duals.ShadowPrices) {
			row.ShadowPrice = duals.ShadowPrices[index]
		}
		report.Constraints = append(report.Constraints, row)
	}

	return report, nil
}

// rowSlack is the distance from the row's activity to its nearest finite
// bound. Equality rows report zero at any feasible point, free rows report
// zero by convention.
func rowSlack(constraint mip.Constraint, activity float64) float64 {
	slack := math.Inf(1)
	if !math.IsInf(constraint.Upper, 1) {
		slack = constraint.Upper - activity
	}
	if !math.IsInf(constraint.Lower, -1) {
		if lower := activity - constraint.Lower; lower < slack {
			slack = lower
		}
	}
	if math.IsInf(slack, 1) {
		return 0
	}
	return slack
}
