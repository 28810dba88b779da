package mip

import (
	"math"

	"github.com/samber/lo"
)

// Status is the closed set of outcomes a solve can report. Backend
// vocabularies are mapped into it at the solver boundary and never leak past
// it.
type Status uint8

const (
	Optimal Status = iota
	Infeasible
	Unbounded
	Undefined
	NotSolved
)

var statusNames = map[Status]string{
	Optimal:    "Optimal",
	Infeasible: "Infeasible",
	Unbounded:  "Unbounded",
	Undefined:  "Undefined",
	NotSolved:  "NotSolved",
}

func (status Status) String() string {
	name, ok := statusNames[status]
	if !ok {
		return "Undefined"
	}
	return name
}

type VarType uint8

const (
	Continuous VarType = iota
	Binary
)

// Variable is one column of the problem. Cost is its objective coefficient.
type Variable struct {
	Name  string
	Type  VarType
	Lower float64
	Upper float64
	Cost  float64
}

// Nonzero is one coefficient of a constraint row.
type Nonzero struct {
	Col int
	Val float64
}

// Constraint is one row with two-sided bounds: Lower <= row <= Upper. An
// equality row has Lower == Upper; a one-sided row carries an infinite bound
// on the open side.
type Constraint struct {
	Name  string
	Row   []Nonzero
	Lower float64
	Upper float64
}

// Problem is an in-memory mixed-integer linear program. Variables and
// constraints keep their creation order, which callers rely on for
// deterministic extraction and encoding.
type Problem struct {
	Name        string
	Maximize    bool
	Variables   []Variable
	Constraints []Constraint
}

// AddBinary appends a binary column and returns its index.
func (problem *Problem) AddBinary(name string, cost float64) int {
	problem.Variables = append(problem.Variables, Variable{
		Name:  name,
		Type:  Binary,
		Lower: 0,
		Upper: 1,
		Cost:  cost,
	})
	return len(problem.Variables) - 1
}

// AddRow appends a constraint row and returns its index.
func (problem *Problem) AddRow(name string, row []Nonzero, lower, upper float64) int {
	problem.Constraints = append(problem.Constraints, Constraint{
		Name:  name,
		Row:   row,
		Lower: lower,
		Upper: upper,
	})
	return len(problem.Constraints) - 1
}

// Integral reports whether any column requires integrality.
func (problem *Problem) Integral() bool {
	return lo.SomeBy(problem.Variables, func(v Variable) bool { return v.Type != Continuous })
}

// Relax returns a copy of the problem with every integrality requirement
// dropped while bounds are kept. Solvers only produce dual values for linear
// programs, so sensitivity queries run on the relaxation. Constraint rows
// are shared with the receiver and must not be mutated.
func (problem *Problem) Relax() *Problem {
	relaxed := &Problem{
		Name:        problem.Name + "_relaxed",
		Maximize:    problem.Maximize,
		Constraints: problem.Constraints,
	}
	relaxed.Variables = make([]Variable, len(problem.Variables))
	copy(relaxed.Variables, problem.Variables)
	for i := range relaxed.Variables {
		relaxed.Variables[i].Type = Continuous
	}
	return relaxed
}

// Activity evaluates every row against the given column values.
func (problem *Problem) Activity(values []float64) []float64 {
	activity := make([]float64, len(problem.Constraints))
	for i, constraint := range problem.Constraints {
		for _, nz := range constraint.Row {
			activity[i] += nz.Val * values[nz.Col]
		}
	}
	return activity
}

// Solution carries the outcome of one solve. Values is indexed like
// Problem.Variables; ReducedCosts and ShadowPrices are populated only when
// the backend produced dual values (linear programs), RowActivity only when
// it reported row primals.
type Solution struct {
	Status       Status
	Objective    float64
	Values       []float64
	RowActivity  []float64
	ReducedCosts []float64
	ShadowPrices []float64
}

// HasValues reports whether the solve produced concrete column values, which
// is what distinguishes a usable incumbent from an empty NotSolved result.
func (solution *Solution) HasValues() bool {
	return len(solution.Values) > 0
}

// HasDuals reports whether dual values are available for sensitivity
// queries.
func (solution *Solution) HasDuals() bool {
	return len(solution.ReducedCosts) > 0 || len(solution.ShadowPrices) > 0
}

// Infinity bounds for one-sided rows.
var (
	Inf    = math.Inf(1)
	NegInf = math.Inf(-1)
)
