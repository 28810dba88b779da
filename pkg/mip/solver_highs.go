package mip

import (
	"fmt"

	"github.com/lanl/highs"
)

type highsSolver struct{}

// NewHighsSolver returns the in-process HiGHS backend, the default.
func NewHighsSolver() Solver {
	return &highsSolver{}
}

func (solver *highsSolver) Solve(problem *Problem) (*Solution, error) {
	numCols := len(problem.Variables)
	numRows := len(problem.Constraints)

	lp := new(highs.Model)
	lp.Maximize = problem.Maximize
	lp.VarTypes = make([]highs.VariableType, numCols)
	lp.ColLower = make([]float64, numCols)
	lp.ColUpper = make([]float64, numCols)
	lp.ColCosts = make([]float64, numCols)

	for j, variable := range problem.Variables {
		if variable.Type != Continuous {
			lp.VarTypes[j] = highs.IntegerType
		}
		lp.ColLower[j] = variable.Lower
		lp.ColUpper[j] = variable.Upper
		lp.ColCosts[j] = variable.Cost
	}

	lp.RowLower = make([]float64, 0, numRows)
	lp.RowUpper = make([]float64, 0, numRows)
	for i, constraint := range problem.Constraints {
		for _, nz := range constraint.Row {
			lp.ConstMatrix = append(lp.ConstMatrix, highs.Nonzero{Row: i, Col: nz.Col, Val: nz.Val})
		}
		lp.RowLower = append(lp.RowLower, constraint.Lower)
		lp.RowUpper = append(lp.RowUpper, constraint.Upper)
	}

	raw, err := lp.Solve()
	if err != nil {
		return nil, fmt.Errorf("an error occurred during highs execution: %w", err)
	}

	var status Status
	switch raw.Status {
	case highs.Optimal:
		status = Optimal
	case highs.Infeasible:
		status = Infeasible
	case highs.Unbounded, highs.UnboundedOrInfeasible:
		status = Unbounded
	case highs.TimeLimit, highs.IterationLimit:
		status = NotSolved
	default:
		status = Undefined
	}

	solution := &Solution{
		Status:    status,
		Objective: raw.Objective,
	}
	solution.Values = append(solution.Values, raw.ColumnPrimal...)
	solution.RowActivity = append(solution.RowActivity, raw.RowPrimal...)

	// Dual values only exist for pure linear programs.
	if !problem.Integral() && len(raw.ColumnDual) == numCols {
		solution.ReducedCosts = append(solution.ReducedCosts, raw.ColumnDual...)
		solution.ShadowPrices = append(solution.ShadowPrices, raw.RowDual...)
	}

	return solution, nil
}
