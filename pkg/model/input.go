package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type RawVenue struct {
	Corridors         int
	TablesPerCorridor []int
	PositionsPerTable int
}

type RawTeam struct {
	Name      string
	Size      int
	Synergies []string
}

type RawPreference struct {
	Team          string
	PreferredDays []string
	RequiredDays  int
	Weight        float64
}

type RawConfig struct {
	Objective           string
	SynergyWeight       float64
	PreferenceWeight    float64
	DistanceWeight      float64
	OverAllocationLimit float64
	MinDailySlack       int
	RequiredDaysSet     []int
	Workdays            []string
}

type RawInput struct {
	Venue       RawVenue
	Teams       []RawTeam
	Preferences []RawPreference
	Config      RawConfig
}

// Team is one group of people seated together. Synergies list the names of
// teams it prefers to sit near, carried for reporting but not referenced by
// the formulation.
type Team struct {
	Name      string
	Size      int
	Synergies []string
}

// Preference is one team's day-preference record, carried for reporting but
// not referenced by the formulation.
type Preference struct {
	Team          string
	PreferredDays []string
	RequiredDays  int
	Weight        float64
}

// Input is the validated, engine-ready bundle: the derived venue plus the
// read-only registries every scenario of a sweep shares.
type Input struct {
	Venue       *Venue
	Teams       []Team
	Preferences []Preference
	Config      Config
}

// SynergyMatrix expands the per-team synergy lists into the symmetric
// binary adjacency the reporting layer displays. Absent pairs read as zero.
func (input *Input) SynergyMatrix() map[string]map[string]int {
	matrix := make(map[string]map[string]int, len(input.Teams))
	for _, team := range input.Teams {
		matrix[team.Name] = make(map[string]int)
	}
	for _, team := range input.Teams {
		for _, other := range team.Synergies {
			matrix[team.Name][other] = 1
			matrix[other][team.Name] = 1
		}
	}
	return matrix
}

// InputFromJson reads a raw input from a json file.
func InputFromJson(file string) (Input, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Input{}, err
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Input{}, err
	}

	var rawInput RawInput
	mapstructure.Decode(inputJson, &rawInput)
	return ProcessRawInput(rawInput)
}

// LoadInput reads a raw input file through viper, so json, yaml and toml
// all work, and fills the planning defaults for configuration keys the
// file omits.
func LoadInput(file string) (Input, error) {
	loader := viper.New()
	loader.SetConfigFile(file)
	loader.SetDefault("config.objective", MaxAverageOccupancy.String())
	loader.SetDefault("config.synergyweight", 1.0)
	loader.SetDefault("config.preferenceweight", 0.8)
	loader.SetDefault("config.distanceweight", 10.0)
	loader.SetDefault("config.overallocationlimit", 0.0)
	loader.SetDefault("config.mindailyslack", 2)
	loader.SetDefault("config.requireddaysset", defaultRequiredDays)
	loader.SetDefault("config.workdays", DefaultWorkdays)
	if err := loader.ReadInConfig(); err != nil {
		return Input{}, fmt.Errorf("cannot read input file: %w", err)
	}

	var rawInput RawInput
	if err := loader.Unmarshal(&rawInput); err != nil {
		return Input{}, fmt.Errorf("cannot decode input file: %w", err)
	}
	return ProcessRawInput(rawInput)
}

// ProcessRawInput validates the raw records and derives the engine input.
// Every failure surfaces as a ConfigurationError naming the offending
// field; nothing is rejected later than here except by the solver.
func ProcessRawInput(rawInput RawInput) (Input, error) {
	config, err := processRawConfig(rawInput.Config)
	if err != nil {
		return Input{}, err
	}

	venue, err := NewVenue(rawInput.Venue.Corridors, rawInput.Venue.TablesPerCorridor, rawInput.Venue.PositionsPerTable)
	if err != nil {
		return Input{}, err
	}

	if len(rawInput.Teams) == 0 {
		return Input{}, configurationError("teams", "at least one team must be registered")
	}
	teams := make([]Team, 0, len(rawInput.Teams))
	registered := make(map[string]bool, len(rawInput.Teams))
	for _, rawTeam := range rawInput.Teams {
		if rawTeam.Name == "" {
			return Input{}, configurationError("teams", "team names must not be empty")
		}
		if registered[rawTeam.Name] {
			return Input{}, configurationError("teams", "team %q is registered more than once", rawTeam.Name)
		}
		if rawTeam.Size <= 0 {
			return Input{}, configurationError("teams", "team %q must have a strictly positive size, got %v", rawTeam.Name, rawTeam.Size)
		}
		registered[rawTeam.Name] = true
		teams = append(teams, Team{Name: rawTeam.Name, Size: rawTeam.Size, Synergies: slices.Clone(rawTeam.Synergies)})
	}

	//** Validate synergy adjacency
	for _, team := range teams {
		for _, other := range team.Synergies {
			if other == team.Name {
				return Input{}, configurationError("synergies", "team %q declares synergy with itself", team.Name)
			}
			if !registered[other] {
				return Input{}, configurationError("synergies", "team %q declares synergy with unregistered team %q", team.Name, other)
			}
		}
	}

	//** Validate preferences
	preferences := make([]Preference, 0, len(rawInput.Preferences))
	declared := make(map[string]bool, len(rawInput.Preferences))
	for _, rawPreference := range rawInput.Preferences {
		if !registered[rawPreference.Team] {
			return Input{}, configurationError("preferences", "preference declared for unregistered team %q", rawPreference.Team)
		}
		if declared[rawPreference.Team] {
			return Input{}, configurationError("preferences", "preference for team %q is declared more than once", rawPreference.Team)
		}
		if rawPreference.RequiredDays < 0 || rawPreference.RequiredDays > len(config.Workdays) {
			return Input{}, configurationError("preferences", "required days of team %q must lie within 0..%v, got %v", rawPreference.Team, len(config.Workdays), rawPreference.RequiredDays)
		}
		if rawPreference.Weight < 0 {
			return Input{}, configurationError("preferences", "weight of team %q must not be negative, got %v", rawPreference.Team, rawPreference.Weight)
		}
		for _, day := range rawPreference.PreferredDays {
			if !slices.Contains(config.Workdays, day) {
				return Input{}, configurationError("preferences", "preferred day %q of team %q is not a workday", day, rawPreference.Team)
			}
		}
		declared[rawPreference.Team] = true
		preferences = append(preferences, Preference{
			Team:          rawPreference.Team,
			PreferredDays: slices.Clone(rawPreference.PreferredDays),
			RequiredDays:  rawPreference.RequiredDays,
			Weight:        rawPreference.Weight,
		})
	}

	return Input{Venue: venue, Teams: teams, Preferences: preferences, Config: config}, nil
}

func processRawConfig(rawConfig RawConfig) (Config, error) {
	objective := MaxAverageOccupancy
	if rawConfig.Objective != "" {
		var err error
		if objective, err = ObjectiveFromName(rawConfig.Objective); err != nil {
			return Config{}, err
		}
	}

	config := Config{
		Objective:           objective,
		SynergyWeight:       rawConfig.SynergyWeight,
		PreferenceWeight:    rawConfig.PreferenceWeight,
		DistanceWeight:      rawConfig.DistanceWeight,
		OverAllocationLimit: rawConfig.OverAllocationLimit,
		MinDailySlack:       rawConfig.MinDailySlack,
		RequiredDaysSet:     slices.Clone(rawConfig.RequiredDaysSet),
		Workdays:            slices.Clone(rawConfig.Workdays),
	}
	if len(config.RequiredDaysSet) == 0 {
		config.RequiredDaysSet = slices.Clone(defaultRequiredDays)
	}
	if len(config.Workdays) == 0 {
		config.Workdays = slices.Clone(DefaultWorkdays)
	}
	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}
