package model

// Verify re-checks an accepted outcome straight from the raw occupancy
// values, independently of the extraction path: no seat is shared, teams
// attend at full size or not at all, every team attends exactly the
// required number of days and the daily slack bound holds. Anything else
// returns false.
func (planner *sweepPlanner) Verify(outcome *ScenarioOutcome) bool {
	if outcome == nil || outcome.Verdict != Accepted || outcome.solution == nil {
		return false
	}
	model := outcome.model
	days := len(model.config.Workdays)
	occupied := func(team, position, day int) bool {
		return outcome.solution.Values[model.indexer.X(team, position, day)] > 0.5
	}

	//** Seat exclusivity
	for position := range model.venue.Capacity() {
		for day := range days {
			claims := 0
			for team := range model.teams {
				if occupied(team, position, day) {
					claims++
				}
			}
			if claims > 1 {
				return false
			}
		}
	}

	//** Full presence and exact required days
	for team, record := range model.teams {
		presentDays := 0
		for day := range days {
			seats := 0
			for position := range model.venue.Capacity() {
				if occupied(team, position, day) {
					seats++
				}
			}
			if seats != 0 && seats != record.Size {
				return false
			}
			if seats == record.Size {
				presentDays++
			}
		}
		if presentDays != model.requiredDays {
			return false
		}
	}

	//** Daily slack
	limit := model.venue.Capacity() - model.config.MinDailySlack
	for day := range days {
		seats := 0
		for team := range model.teams {
			for position := range model.venue.Capacity() {
				if occupied(team, position, day) {
					seats++
				}
			}
		}
		if seats > limit {
			return false
		}
	}

	return true
}
