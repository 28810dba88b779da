package model

import (
	"errors"
	"testing"

	"github.com/limaJavier/seatplanning/pkg/mip"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
)

func findConstraintRow(t *testing.T, report *SensitivityReport, name string) ConstraintSensitivity {
	t.Helper()
	for _, row := range report.Constraints {
		if row.Name == name {
			return row
		}
	}
	t.Fatalf("constraint %v not found in the report", name)
	return ConstraintSensitivity{}
}

func TestSensitivityFromRelaxation(t *testing.T) {
	//** Arrange
	g := NewWithT(t)
	input := planningInput(t, 2)
	relaxations := 0
	solver := &stubSolver{solve: func(problem *mip.Problem) (*mip.Solution, error) {
		if problem.Integral() {
			return teamsTogetherSolution(problem, mip.Optimal, 2), nil
		}
		relaxations++
		reduced := make([]float64, len(problem.Variables))
		shadows := make([]float64, len(problem.Constraints))
		for i := range reduced {
			reduced[i] = 0.25
		}
		for i := range shadows {
			shadows[i] = -0.5
		}
		return &mip.Solution{
			Status:       mip.Optimal,
			Objective:    12,
			Values:       make([]float64, len(problem.Variables)),
			ReducedCosts: reduced,
			ShadowPrices: shadows,
		}, nil
	}}
	planner := NewPlanner(solver, SequentialSweep, nil)
	result, err := planner.Plan(input)
	assert.Nil(t, err)

	//** Act
	report, err := planner.Sensitivity(result.Accepted[2])

	//** Assert
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(relaxations).To(Equal(1))
	g.Expect(report.RequiredDays).To(Equal(2))
	g.Expect(report.FromRelaxation).To(BeTrue())
	g.Expect(report.Objective).To(BeNumerically("~", 12, 1e-9))

	// One variable row per seat-occupancy column: 2 teams, 8 seats, 5 days.
	g.Expect(report.Variables).To(HaveLen(80))
	g.Expect(report.Variables[0]).To(Equal(VariableSensitivity{
		Name:        "x_0_0_0",
		Team:        "Alpha",
		Corridor:    0,
		Table:       0,
		Position:    0,
		Day:         "Monday",
		Value:       1,
		ReducedCost: 0.25,
	}))
	g.Expect(report.Variables[15]).To(Equal(VariableSensitivity{
		Name:        "x_0_3_0",
		Team:        "Alpha",
		Corridor:    0,
		Table:       0,
		Position:    3,
		Day:         "Monday",
		Value:       0,
		ReducedCost: 0.25,
	}))

	g.Expect(report.Constraints).To(HaveLen(len(result.Accepted[2].model.problem.Constraints)))
	g.Expect(report.Constraints[0]).To(Equal(ConstraintSensitivity{
		Name:        "seat_0_0",
		Kind:        "SeatExclusivity",
		Team:        "",
		Position:    0,
		Table:       0,
		TableB:      -1,
		Day:         "Monday",
		ShadowPrice: -0.5,
		Slack:       0,
	}))

	// Monday seats six of eight people, so two seats of slack remain.
	monday := findConstraintRow(t, report, "slack_0")
	g.Expect(monday.Kind).To(Equal("DailySlack"))
	g.Expect(monday.Day).To(Equal("Monday"))
	g.Expect(monday.Slack).To(BeNumerically("~", 2, 1e-9))
	g.Expect(monday.ShadowPrice).To(Equal(-0.5))

	// Equality rows sit on their bound at any feasible point.
	requiredDays := findConstraintRow(t, report, "days_0")
	g.Expect(requiredDays.Kind).To(Equal("RequiredDays"))
	g.Expect(requiredDays.Team).To(Equal("Alpha"))
	g.Expect(requiredDays.Day).To(Equal(""))
	g.Expect(requiredDays.Slack).To(BeNumerically("~", 0, 1e-9))
}

func TestSensitivityReusesSolverDuals(t *testing.T) {
	//** Arrange
	input := planningInput(t, 2)
	solver := &stubSolver{solve: func(problem *mip.Problem) (*mip.Solution, error) {
		solution := teamsTogetherSolution(problem, mip.Optimal, 2)
		solution.ReducedCosts = make([]float64, len(problem.Variables))
		solution.ShadowPrices = make([]float64, len(problem.Constraints))
		for i := range solution.ReducedCosts {
			solution.ReducedCosts[i] = 0.125
		}
		for i := range solution.ShadowPrices {
			solution.ShadowPrices[i] = 0.75
		}
		return solution, nil
	}}
	planner := NewPlanner(solver, SequentialSweep, nil)
	result, err := planner.Plan(input)
	assert.Nil(t, err)

	//** Act
	report, err := planner.Sensitivity(result.Accepted[2])

	//** Assert
	assert.Nil(t, err)
	assert.False(t, report.FromRelaxation)
	assert.Equal(t, 1, solver.callCount())
	assert.Equal(t, 0.125, report.Variables[0].ReducedCost)
	assert.Equal(t, 0.75, report.Constraints[0].ShadowPrice)
}

func TestSensitivityWithoutRetainedModel(t *testing.T) {
	planner := NewPlanner(&stubSolver{}, SequentialSweep, nil)

	for name, outcome := range map[string]*ScenarioOutcome{
		"nil outcome": nil,
		"early rejection": {
			RequiredDays: 1,
			Verdict:      EarlyRejected,
			Status:       StatusEarlyInfeasible,
		},
	} {
		t.Run(name, func(t *testing.T) {
			report, err := planner.Sensitivity(outcome)

			assert.Nil(t, err)
			assert.Equal(t, &SensitivityReport{}, report)
		})
	}
}

func TestSensitivityRelaxationDegenerateCases(t *testing.T) {
	t.Run("relaxation solve failure surfaces", func(t *testing.T) {
		input := planningInput(t, 2)
		solver := &stubSolver{solve: func(problem *mip.Problem) (*mip.Solution, error) {
			if problem.Integral() {
				return teamsTogetherSolution(problem, mip.Optimal, 2), nil
			}
			return nil, errors.New("backend crashed")
		}}
		planner := NewPlanner(solver, SequentialSweep, nil)
		result, err := planner.Plan(input)
		assert.Nil(t, err)

		report, err := planner.Sensitivity(result.Accepted[2])

		assert.Nil(t, report)
		assert.ErrorContains(t, err, "cannot solve relaxation for sensitivity")
		assert.ErrorContains(t, err, "backend crashed")
	})

	t.Run("relaxation without duals leaves prices zero", func(t *testing.T) {
		input := planningInput(t, 2)
		solver := &stubSolver{solve: func(problem *mip.Problem) (*mip.Solution, error) {
			if problem.Integral() {
				return teamsTogetherSolution(problem, mip.Optimal, 2), nil
			}
			return &mip.Solution{Status: mip.Infeasible}, nil
		}}
		planner := NewPlanner(solver, SequentialSweep, nil)
		result, err := planner.Plan(input)
		assert.Nil(t, err)

		report, err := planner.Sensitivity(result.Accepted[2])

		assert.Nil(t, err)
		assert.False(t, report.FromRelaxation)
		assert.Zero(t, report.Variables[0].ReducedCost)
		assert.Zero(t, report.Constraints[0].ShadowPrice)
		// Values and slacks still describe the integer solution.
		assert.Equal(t, 1.0, report.Variables[0].Value)
	})
}
