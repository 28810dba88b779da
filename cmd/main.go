package main

import (
	"fmt"
	"log"

	"github.com/limaJavier/seatplanning/internal/report"
	"github.com/limaJavier/seatplanning/pkg/mip"
	"github.com/limaJavier/seatplanning/pkg/model"
)

func main() {
	input, err := model.ProcessRawInput(officeInput())
	if err != nil {
		log.Fatalf("cannot build input: %v", err)
	}

	solver := mip.NewHighsSolver()
	// solver := mip.NewCbcSolver("")
	planner := model.NewPlanner(solver, model.SequentialSweep, nil)
	// planner := model.NewPlanner(solver, model.ParallelSweep, nil)

	result, err := planner.Plan(input)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(report.RenderSweep(report.NewSweepView(result, input.Config.Workdays)))

	for _, requiredDays := range input.Config.Scenarios() {
		outcome, ok := result.Accepted[requiredDays]
		if !ok {
			continue
		}
		if !planner.Verify(outcome) {
			log.Fatal("Verification failed")
		}

		sensitivity, err := planner.Sensitivity(outcome)
		if err != nil {
			log.Fatalf("cannot build sensitivity report: %v", err)
		}
		fmt.Print(report.RenderSensitivity(sensitivity, input.Config.Workdays))
	}

	fmt.Println("Well done!")
}

// officeInput is the two-corridor office the planner was first run against:
// four tables of four seats, three teams, one day preference on record.
func officeInput() model.RawInput {
	return model.RawInput{
		Venue: model.RawVenue{
			Corridors:         2,
			TablesPerCorridor: []int{2, 2},
			PositionsPerTable: 4,
		},
		Teams: []model.RawTeam{
			{Name: "Platform", Size: 4, Synergies: []string{"Data"}},
			{Name: "Data", Size: 3},
			{Name: "Support", Size: 2},
		},
		Preferences: []model.RawPreference{
			{Team: "Platform", PreferredDays: []string{"Monday", "Wednesday"}, RequiredDays: 2, Weight: 0.8},
		},
		Config: model.RawConfig{
			Objective:       "max_average_occupancy",
			SynergyWeight:   1.0,
			DistanceWeight:  10.0,
			MinDailySlack:   2,
			RequiredDaysSet: []int{2, 3},
		},
	}
}
