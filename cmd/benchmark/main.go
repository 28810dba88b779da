package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/limaJavier/seatplanning/pkg/mip"
	"github.com/limaJavier/seatplanning/pkg/model"
	"github.com/samber/lo"
)

type SolverType int

const (
	highs SolverType = iota
	cbc
)

type StrategyType int

const (
	sequential StrategyType = iota
	parallel
)

type ResultType int

const (
	completed ResultType = iota
	noViable
	failed
)

var (
	solverTypes = map[SolverType]string{
		highs: "highs",
		cbc:   "cbc",
	}
	strategyTypes = map[StrategyType]string{
		sequential: "sequential",
		parallel:   "parallel",
	}
	resultTypes = map[ResultType]string{
		completed: "completed",
		noViable:  "no-viable-scenario",
		failed:    "failed",
	}
	solvers = map[SolverType]func() mip.Solver{
		highs: mip.NewHighsSolver,
		cbc:   func() mip.Solver { return mip.NewCbcSolver("") },
	}
	strategies = map[StrategyType]model.SweepStrategy{
		sequential: model.SequentialSweep,
		parallel:   model.ParallelSweep,
	}
)

type Instance struct {
	Name  string
	Input model.RawInput
}

type InstanceMetadata struct {
	Name      string
	Corridors int
	Tables    int
	Seats     int
	Teams     int
	People    int
	Scenarios int
}

type BenchmarkResult struct {
	Instance InstanceMetadata
	Solver   SolverType
	Strategy StrategyType
	Accepted int
	Rejected int
	Duration int64
	Result   ResultType
}

func main() {
	instances := getInstances()
	results := make([]BenchmarkResult, 0, len(instances)*len(solverTypes)*len(strategyTypes))

	for _, instance := range instances {
		input, err := model.ProcessRawInput(instance.Input)
		if err != nil {
			log.Fatalf("cannot build instance %q: %v", instance.Name, err)
		}
		metadata := metadataOf(instance.Name, input)

		for _, solver := range []SolverType{highs, cbc} {
			for _, strategy := range []StrategyType{sequential, parallel} {
				fmt.Printf("Benchmarking instance \"%v\" with solver \"%v\" and strategy \"%v\"\n",
					instance.Name, solverTypes[solver], strategyTypes[strategy])

				duration, accepted, rejected, result := measure(input, solver, strategy)

				results = append(results, BenchmarkResult{
					Instance: metadata,
					Solver:   solver,
					Strategy: strategy,
					Accepted: accepted,
					Rejected: rejected,
					Duration: duration,
					Result:   result,
				})
			}
		}
	}

	toCsv(results)
}

func getInstances() []Instance {
	return []Instance{
		{Name: "corridor-pair", Input: generateInstance(2, 2, 4, 4)},
		{Name: "small-floor", Input: generateInstance(3, 4, 4, 8)},
		{Name: "full-floor", Input: generateInstance(4, 5, 6, 14)},
	}
}

// generateInstance builds a deterministic raw input: identical corridors and
// team sizes cycling through 2..5, so runs are comparable across machines.
func generateInstance(corridors, tablesPerCorridor, positionsPerTable, teams int) model.RawInput {
	rawTeams := make([]model.RawTeam, 0, teams)
	for i := range teams {
		rawTeams = append(rawTeams, model.RawTeam{
			Name: fmt.Sprintf("team_%v", i),
			Size: 2 + i%4,
		})
	}
	return model.RawInput{
		Venue: model.RawVenue{
			Corridors:         corridors,
			TablesPerCorridor: lo.Repeat(corridors, tablesPerCorridor),
			PositionsPerTable: positionsPerTable,
		},
		Teams: rawTeams,
		Config: model.RawConfig{
			DistanceWeight:  10,
			MinDailySlack:   1,
			RequiredDaysSet: []int{1, 2, 3},
		},
	}
}

func metadataOf(name string, input model.Input) InstanceMetadata {
	return InstanceMetadata{
		Name:      name,
		Corridors: input.Venue.Corridors(),
		Tables:    input.Venue.Tables(),
		Seats:     input.Venue.Capacity(),
		Teams:     len(input.Teams),
		People:    lo.SumBy(input.Teams, func(team model.Team) int { return team.Size }),
		Scenarios: len(input.Config.Scenarios()),
	}
}

func measure(input model.Input, solver SolverType, strategy StrategyType) (duration int64, accepted int, rejected int, result ResultType) {
	planner := model.NewPlanner(solvers[solver](), strategies[strategy], nil)

	start := time.Now()
	sweep, err := planner.Plan(input)
	duration = time.Since(start).Milliseconds()

	var noViableErr *model.NoViableScenarioError
	if errors.As(err, &noViableErr) {
		return duration, 0, len(noViableErr.Rejected), noViable
	} else if err != nil {
		// Usually a missing cbc binary, the run is recorded rather than aborted.
		return duration, 0, 0, failed
	}
	return duration, len(sweep.Accepted), len(sweep.Rejected), completed
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Instance", "Corridors", "Tables", "Seats", "Teams", "People", "Scenarios", "Solver", "Strategy", "Accepted", "Rejected", "Duration(ms)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Instance.Name,
			fmt.Sprintf("%d", result.Instance.Corridors),
			fmt.Sprintf("%d", result.Instance.Tables),
			fmt.Sprintf("%d", result.Instance.Seats),
			fmt.Sprintf("%d", result.Instance.Teams),
			fmt.Sprintf("%d", result.Instance.People),
			fmt.Sprintf("%d", result.Instance.Scenarios),
			solverTypes[result.Solver],
			strategyTypes[result.Strategy],
			fmt.Sprintf("%d", result.Accepted),
			fmt.Sprintf("%d", result.Rejected),
			fmt.Sprintf("%d", result.Duration),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
