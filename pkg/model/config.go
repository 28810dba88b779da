package model

import (
	"slices"

	"github.com/samber/lo"
)

// Objective selects the configured optimization goal. The formulation
// currently realizes MaxAverageOccupancy only, the remaining choices are
// validated, carried and flagged by the planner.
type Objective uint8

const (
	MaxAverageOccupancy Objective = iota
	MaxSatisfaction
	MinRelocation
)

var objectiveNames = map[Objective]string{
	MaxAverageOccupancy: "max_average_occupancy",
	MaxSatisfaction:     "max_satisfaction",
	MinRelocation:       "min_relocation",
}

func (objective Objective) String() string {
	return objectiveNames[objective]
}

// ObjectiveFromName parses the wire name of an objective.
func ObjectiveFromName(name string) (Objective, error) {
	for objective, objectiveName := range objectiveNames {
		if objectiveName == name {
			return objective, nil
		}
	}
	options := lo.Values(objectiveNames)
	slices.Sort(options)
	return 0, configurationError("objective", "unknown objective %q, options are %v", name, options)
}

// DefaultWorkdays is the Monday-to-Friday week the planner was designed
// around. Any non-empty list of unique day names works.
var DefaultWorkdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

var defaultRequiredDays = []int{2, 3}

// Config is the model configuration shared by every scenario of a sweep.
// SynergyWeight, PreferenceWeight and OverAllocationLimit are validated and
// carried but the formulation does not reference them.
type Config struct {
	Objective           Objective
	SynergyWeight       float64
	PreferenceWeight    float64
	DistanceWeight      float64
	OverAllocationLimit float64
	MinDailySlack       int
	RequiredDaysSet     []int
	Workdays            []string
}

// DefaultConfig mirrors the defaults of the interactive planning tool this
// engine was extracted from.
func DefaultConfig() Config {
	return Config{
		Objective:        MaxAverageOccupancy,
		SynergyWeight:    1.0,
		PreferenceWeight: 0.8,
		DistanceWeight:   10.0,
		MinDailySlack:    2,
		RequiredDaysSet:  slices.Clone(defaultRequiredDays),
		Workdays:         slices.Clone(DefaultWorkdays),
	}
}

func (config *Config) validate() error {
	if config.SynergyWeight < 0 {
		return configurationError("synergyWeight", "must not be negative, got %v", config.SynergyWeight)
	}
	if config.PreferenceWeight < 0 {
		return configurationError("preferenceWeight", "must not be negative, got %v", config.PreferenceWeight)
	}
	if config.DistanceWeight < 0 {
		return configurationError("distanceWeight", "must not be negative, got %v", config.DistanceWeight)
	}
	if config.OverAllocationLimit < 0 {
		return configurationError("overAllocationLimit", "must not be negative, got %v", config.OverAllocationLimit)
	}
	if config.MinDailySlack < 0 {
		return configurationError("minDailySlack", "must not be negative, got %v", config.MinDailySlack)
	}
	if len(config.Workdays) == 0 {
		return configurationError("workdays", "at least one workday is required")
	}
	if len(lo.Uniq(config.Workdays)) != len(config.Workdays) {
		return configurationError("workdays", "day names must be unique, got %v", config.Workdays)
	}
	if len(config.RequiredDaysSet) == 0 {
		return configurationError("requiredDaysSet", "at least one scenario value is required")
	}
	for _, requiredDays := range config.RequiredDaysSet {
		if requiredDays < 1 || requiredDays > len(config.Workdays) {
			return configurationError("requiredDaysSet", "scenario value %v must lie within 1..%v", requiredDays, len(config.Workdays))
		}
	}
	return nil
}

// Scenarios returns the deduplicated, ascending required-days values the
// sweep evaluates.
func (config *Config) Scenarios() []int {
	scenarios := lo.Uniq(config.RequiredDaysSet)
	slices.Sort(scenarios)
	return scenarios
}
