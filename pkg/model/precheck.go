package model

import "github.com/samber/lo"

// precheckResult keeps both sides of the average-demand bound so early
// rejections can report the arithmetic that failed them.
type precheckResult struct {
	requiredAverage   float64
	effectiveCapacity float64
}

func (result precheckResult) feasible() bool {
	return result.requiredAverage <= result.effectiveCapacity
}

// precheck is the necessary condition evaluated before any model is built:
// the average daily demand of a scenario must not exceed the daily capacity
// left over after the configured slack. Failing proves the MILP infeasible,
// passing proves nothing.
func precheck(teams []Team, venue *Venue, config Config, requiredDays int) precheckResult {
	people := lo.SumBy(teams, func(team Team) int { return team.Size })
	return precheckResult{
		requiredAverage:   float64(people*requiredDays) / float64(len(config.Workdays)),
		effectiveCapacity: float64(venue.Capacity() - config.MinDailySlack),
	}
}
