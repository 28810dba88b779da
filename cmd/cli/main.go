package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/limaJavier/seatplanning/internal/report"
	"github.com/limaJavier/seatplanning/pkg/mip"
	"github.com/limaJavier/seatplanning/pkg/model"
	"go.uber.org/zap"
)

var (
	cbcPath         string
	validStrategies = []string{"sequential", "parallel"}
	validSolvers    = []string{"highs", "cbc"}
	strategies      = map[string]model.SweepStrategy{
		"sequential": model.SequentialSweep,
		"parallel":   model.ParallelSweep,
	}
	solvers = map[string]func() mip.Solver{
		"highs": mip.NewHighsSolver,
		"cbc":   func() mip.Solver { return mip.NewCbcSolver(cbcPath) },
	}
)

// Exit codes: 20 when every scenario was rejected, 15 when an accepted
// allocation fails verification.
func main() {
	// Define arguments
	strategyPtr := flag.String("strategy", "sequential", "Strategy to run the scenario sweep. Allowed values are: \"sequential\" and \"parallel\", where \"sequential\" is the default")
	solverPtr := flag.String("solver", "highs", "MILP solver to use. Allowed values are: \"highs\" (in-process) and \"cbc\" (external binary), where \"highs\" is the default")
	cbcPathPtr := flag.String("cbc", "", "Path to the cbc binary used by the cbc solver; if empty, cbc is resolved from $PATH")
	filePathPtr := flag.String("file", "", "Path to the input file (json or yaml)")
	sensitivityPtr := flag.Bool("sensitivity", false, "Include the post-optimality sensitivity report of every accepted scenario")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	verbosePtr := flag.Bool("verbose", false, "Log sweep progress to stderr")
	flag.Parse()
	strategy := strings.ToLower(*strategyPtr)
	solverName := strings.ToLower(*solverPtr)
	cbcPath = *cbcPathPtr
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	if !slices.Contains(validStrategies, strategy) {
		log.Fatalf("%v is not a valid strategy", strategy)
	} else if !slices.Contains(validSolvers, solverName) {
		log.Fatalf("%v is not a valid solver", solverName)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	var logger *zap.Logger
	if *verbosePtr {
		development, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("cannot initialize logger: %v", err)
		}
		defer development.Sync()
		logger = development
	}

	// Extract input
	input, err := model.LoadInput(filePath)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}

	// Initialize engines
	solver := solvers[solverName]()
	planner := model.NewPlanner(solver, strategies[strategy], logger)

	// Run the sweep
	result, err := planner.Plan(input)
	var noViable *model.NoViableScenarioError
	if errors.As(err, &noViable) {
		fmt.Println(err)
		os.Exit(20)
	} else if err != nil {
		log.Fatalf("an error occurred during the scenario sweep: %v", err)
	}

	// Verify every accepted allocation before reporting it
	for _, outcome := range result.Accepted {
		if !planner.Verify(outcome) {
			fmt.Printf("Verification failed for the %v required days scenario\n", outcome.RequiredDays)
			os.Exit(15)
		}
	}

	// Build output
	output := struct {
		Sweep       report.SweepView           `json:"sweep"`
		Sensitivity []*model.SensitivityReport `json:"sensitivity,omitempty"`
	}{
		Sweep: report.NewSweepView(result, input.Config.Workdays),
	}
	if *sensitivityPtr {
		for _, requiredDays := range input.Config.Scenarios() {
			outcome, ok := result.Accepted[requiredDays]
			if !ok {
				continue
			}
			sensitivity, err := planner.Sensitivity(outcome)
			if err != nil {
				log.Fatalf("an error occurred while building the sensitivity report: %v", err)
			}
			output.Sensitivity = append(output.Sensitivity, sensitivity)
		}
	}

	// Marshal output into json
	outputJson, err := json.Marshal(output)
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(outputJson))
	} else {
		if err := os.WriteFile(outFile, outputJson, 0666); err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}
}
