package mip

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const defaultCbcPath = "cbc"

type cbcSolver struct {
	path string
}

// NewCbcSolver returns a backend that drives the COIN-OR cbc binary through
// an LP file handoff. An empty path resolves cbc from $PATH.
func NewCbcSolver(path string) Solver {
	if path == "" {
		path = defaultCbcPath
	}
	return &cbcSolver{path: path}
}

func (solver *cbcSolver) Solve(problem *Problem) (*Solution, error) {
	lpText := problem.ToLP() // Transform the problem into CPLEX-LP string format

	// Create a temporary file to hold the LP content
	tmpFile, err := os.CreateTemp("", "seatplan-*.lp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name()) // Ensure the file is removed after execution

	if _, err := tmpFile.WriteString(lpText); err != nil {
		return nil, fmt.Errorf("failed to write LP to temporary file: %v", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %v", err)
	}

	solutionPath := tmpFile.Name() + ".sol"
	defer os.Remove(solutionPath)

	// branch runs the full MIP search; a pure linear program only needs the
	// initial simplex solve, which is also what yields dual values.
	searchCommand := "branch"
	if !problem.Integral() {
		searchCommand = "initialSolve"
	}

	cmd := exec.Command(solver.path, tmpFile.Name(), "printingOptions", "all", searchCommand, "solution", solutionPath)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	// cbc exits zero even for infeasible models; a non-zero exit is an
	// invocation failure, not an outcome.
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("an error occurred during cbc execution: %v : %v", err.Error(), stderr.String())
	}

	content, err := os.ReadFile(solutionPath)
	if err != nil {
		return nil, fmt.Errorf("cbc produced no solution file: %v", err)
	}

	return parseCbcSolution(string(content), problem)
}

// parseCbcSolution reads cbc's solution file: a status line followed by
// name-keyed row lines (activity, dual) and column lines (value, reduced
// cost). Lines are matched against the problem by name, so their order does
// not matter.
func parseCbcSolution(content string, problem *Problem) (*Solution, error) {
	lines := lo.Filter(strings.Split(content, "\n"), func(line string, _ int) bool {
		return strings.TrimSpace(line) != ""
	})
	if len(lines) == 0 {
		return nil, fmt.Errorf("cbc wrote an empty solution file")
	}

	solution := &Solution{Status: parseCbcStatus(lines[0])}
	if objective, ok := parseCbcObjective(lines[0]); ok {
		solution.Objective = objective
	}

	// Rejected statuses carry no usable assignment.
	if solution.Status == Infeasible || solution.Status == Unbounded || solution.Status == Undefined {
		return solution, nil
	}

	columns := make(map[string]int, len(problem.Variables))
	for j, variable := range problem.Variables {
		columns[variable.Name] = j
	}
	rows := make(map[string]int, len(problem.Constraints))
	for i, constraint := range problem.Constraints {
		rows[constraint.Name] = i
	}

	values := make([]float64, len(problem.Variables))
	reduced := make([]float64, len(problem.Variables))
	activity := make([]float64, len(problem.Constraints))
	duals := make([]float64, len(problem.Constraints))
	seenColumn := false

	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == "**" { // cbc flags out-of-bound values with a ** prefix
			fields = fields[1:]
		}
		if len(fields) < 3 {
			continue
		}
		name := fields[1]
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value in cbc solution line %q: %v", line, err)
		}
		dual := 0.0
		if len(fields) > 3 {
			if dual, err = strconv.ParseFloat(fields[3], 64); err != nil {
				return nil, fmt.Errorf("invalid dual in cbc solution line %q: %v", line, err)
			}
		}

		if j, ok := columns[name]; ok {
			values[j] = value
			reduced[j] = dual
			seenColumn = true
		} else if i, ok := rows[name]; ok {
			activity[i] = value
			duals[i] = dual
		}
	}

	if !seenColumn {
		// A stopped search may report a status line without any incumbent.
		return solution, nil
	}

	solution.Values = values
	solution.RowActivity = activity
	if !problem.Integral() {
		solution.ReducedCosts = reduced
		solution.ShadowPrices = duals
	}
	return solution, nil
}

func parseCbcStatus(line string) Status {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Undefined
	}
	switch fields[0] {
	case "Optimal":
		return Optimal
	case "Infeasible":
		return Infeasible
	case "Integer": // "Integer infeasible"
		return Infeasible
	case "Unbounded":
		return Unbounded
	case "Stopped": // time or iteration limit, possibly with an incumbent
		return NotSolved
	default:
		return Undefined
	}
}

func parseCbcObjective(line string) (float64, bool) {
	fields := strings.Fields(line)
	for i, field := range fields {
		if field == "value" && i+1 < len(fields) {
			if objective, err := strconv.ParseFloat(fields[i+1], 64); err == nil {
				return objective, true
			}
		}
	}
	return 0, false
}
