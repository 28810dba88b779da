package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/limaJavier/seatplanning/pkg/mip"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// SweepStrategy selects how the scenario sweep executes. Scenarios share
// only read-only inputs, so both strategies produce identical outcomes.
type SweepStrategy uint8

const (
	SequentialSweep SweepStrategy = iota
	ParallelSweep
)

var sweepStrategyNames = map[SweepStrategy]string{
	SequentialSweep: "sequential",
	ParallelSweep:   "parallel",
}

func (strategy SweepStrategy) String() string {
	return sweepStrategyNames[strategy]
}

// Rejection records why one scenario was not accepted.
type Rejection struct {
	Verdict Verdict
	Status  string
	Reason  string
}

// SweepResult aggregates a full scenario sweep, keyed by required days.
type SweepResult struct {
	RunID    uuid.UUID
	Accepted map[int]*ScenarioOutcome
	Rejected map[int]Rejection
}

type Planner interface {
	Plan(input Input) (*SweepResult, error)

	Sensitivity(outcome *ScenarioOutcome) (*SensitivityReport, error)

	Verify(outcome *ScenarioOutcome) bool
}

type sweepPlanner struct {
	solver   mip.Solver
	strategy SweepStrategy
	logger   *zap.Logger
}

// NewPlanner wires a planner over the given solver backend. A nil logger
// keeps the planner silent.
func NewPlanner(solver mip.Solver, strategy SweepStrategy, logger *zap.Logger) Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sweepPlanner{solver: solver, strategy: strategy, logger: logger}
}

type scenarioEvaluation struct {
	position int
	outcome  *ScenarioOutcome
	err      error
}

// Plan evaluates every configured scenario and aggregates the outcomes.
// Solver invocation failures abort the sweep, an all-rejected sweep fails
// with NoViableScenarioError.
func (planner *sweepPlanner) Plan(input Input) (*SweepResult, error) {
	scenarios := input.Config.Scenarios()
	result := &SweepResult{
		RunID:    uuid.New(),
		Accepted: make(map[int]*ScenarioOutcome, len(scenarios)),
		Rejected: make(map[int]Rejection),
	}

	planner.flagUnusedConfiguration(input)
	planner.logger.Info("starting scenario sweep",
		zap.String("run", result.RunID.String()),
		zap.String("strategy", planner.strategy.String()),
		zap.Ints("scenarios", scenarios),
		zap.Int("teams", len(input.Teams)),
		zap.Int("capacity", input.Venue.Capacity()),
	)

	outcomes := make([]*ScenarioOutcome, len(scenarios))
	if planner.strategy == ParallelSweep {
		evaluations := make(chan scenarioEvaluation)
		for position, requiredDays := range scenarios {
			go func(position, requiredDays int) {
				outcome, err := planner.evaluateScenario(input, requiredDays)
				evaluations <- scenarioEvaluation{position: position, outcome: outcome, err: err}
			}(position, requiredDays)
		}

		errs := make([]error, len(scenarios))
		collected := 0
		for evaluation := range evaluations {
			outcomes[evaluation.position] = evaluation.outcome
			errs[evaluation.position] = evaluation.err
			collected++
			if collected == len(scenarios) {
				close(evaluations)
			}
		}
		// Every goroutine has finished, report the smallest failing
		// scenario so repeated runs fail the same way.
		for position, err := range errs {
			if err != nil {
				return nil, fmt.Errorf("scenario of %v required days: %w", scenarios[position], err)
			}
		}
	} else {
		for position, requiredDays := range scenarios {
			outcome, err := planner.evaluateScenario(input, requiredDays)
			if err != nil {
				return nil, fmt.Errorf("scenario of %v required days: %w", requiredDays, err)
			}
			outcomes[position] = outcome
		}
	}

	for _, outcome := range outcomes {
		if outcome.Verdict == Accepted {
			result.Accepted[outcome.RequiredDays] = outcome
			planner.logger.Info("scenario accepted",
				zap.Int("requiredDays", outcome.RequiredDays),
				zap.String("status", outcome.Status),
				zap.Int("occupiedSeats", outcome.Metrics.OccupiedSeats),
				zap.Float64("occupancyRate", outcome.Metrics.OccupancyRate),
				zap.Duration("solveTime", outcome.Metrics.Duration),
			)
			continue
		}
		result.Rejected[outcome.RequiredDays] = Rejection{
			Verdict: outcome.Verdict,
			Status:  outcome.Status,
			Reason:  outcome.Reason,
		}
		planner.logger.Warn("scenario rejected",
			zap.Int("requiredDays", outcome.RequiredDays),
			zap.String("verdict", outcome.Verdict.String()),
			zap.String("status", outcome.Status),
		)
	}

	if len(result.Accepted) == 0 {
		return nil, &NoViableScenarioError{Rejected: result.Rejected}
	}
	return result, nil
}

func (planner *sweepPlanner) evaluateScenario(input Input, requiredDays int) (*ScenarioOutcome, error) {
	check := precheck(input.Teams, input.Venue, input.Config, requiredDays)
	if !check.feasible() {
		return &ScenarioOutcome{
			RequiredDays: requiredDays,
			Verdict:      EarlyRejected,
			Status:       StatusEarlyInfeasible,
			Reason: fmt.Sprintf("average daily demand %.2f exceeds effective capacity %.2f",
				check.requiredAverage, check.effectiveCapacity),
		}, nil
	}

	model := formulate(input.Teams, input.Venue, input.Config, requiredDays)
	planner.logger.Debug("scenario formulated",
		zap.Int("requiredDays", requiredDays),
		zap.Int("variables", len(model.problem.Variables)),
		zap.Int("constraints", len(model.problem.Constraints)),
	)

	start := time.Now()
	solution, err := planner.solver.Solve(model.problem)
	if err != nil {
		// Solves are not safe to retry blindly, the failure surfaces as is.
		return nil, err
	}
	return interpretSolution(model, solution, time.Since(start)), nil
}

// The registries and configuration carry synergy, preference and
// over-allocation knobs the formulation does not reference. They are
// surfaced loudly here so nobody mistakes them for active constraints.
func (planner *sweepPlanner) flagUnusedConfiguration(input Input) {
	if input.Config.Objective != MaxAverageOccupancy {
		planner.logger.Warn("objective choice is recorded only, the formulation always maximizes occupancy",
			zap.String("objective", input.Config.Objective.String()))
	}
	if links := lo.SumBy(input.Teams, func(team Team) int { return len(team.Synergies) }); links > 0 {
		planner.logger.Warn("synergy links are carried but not wired into the objective",
			zap.Int("links", links),
			zap.Float64("synergyWeight", input.Config.SynergyWeight))
	}
	if len(input.Preferences) > 0 {
		planner.logger.Warn("day preferences are carried but not wired into the formulation",
			zap.Int("records", len(input.Preferences)),
			zap.Float64("preferenceWeight", input.Config.PreferenceWeight))
	}
	if input.Config.OverAllocationLimit > 0 {
		planner.logger.Warn("over-allocation limit is carried but no constraint references it",
			zap.Float64("limit", input.Config.OverAllocationLimit))
	}
}
