package model

import (
	"fmt"

	"github.com/limaJavier/seatplanning/pkg/mip"
)

// rowKind classifies every constraint at creation time, so downstream
// reporting never has to guess a row's meaning from its position in the
// model.
type rowKind uint8

const (
	rowSeatExclusivity rowKind = iota
	rowTableCapacity
	rowSeatTableLink
	rowSplitDetection
	rowFullPresence
	rowRequiredDays
	rowDailySlack
)

var rowKindNames = map[rowKind]string{
	rowSeatExclusivity: "SeatExclusivity",
	rowTableCapacity:   "TableCapacity",
	rowSeatTableLink:   "SeatTableLink",
	rowSplitDetection:  "SplitDetection",
	rowFullPresence:    "FullPresence",
	rowRequiredDays:    "RequiredDays",
	rowDailySlack:      "DailySlack",
}

func (kind rowKind) String() string {
	return rowKindNames[kind]
}

// rowTag is the structured label of one constraint: its kind plus the
// entities that own it. Fields that do not apply hold -1.
type rowTag struct {
	Kind     rowKind
	Team     int
	Position int
	Table    int
	TableB   int
	Day      int
}

func newRowTag(kind rowKind) rowTag {
	return rowTag{Kind: kind, Team: -1, Position: -1, Table: -1, TableB: -1, Day: -1}
}

// scenarioModel bundles one scenario's formulation with everything needed
// to interpret its columns and rows afterwards. It is built once per
// scenario and never mutated after the solve.
type scenarioModel struct {
	requiredDays int
	teams        []Team
	venue        *Venue
	config       Config
	problem      *mip.Problem
	indexer      varIndexer
	tags         []rowTag
}

func (model *scenarioModel) addRow(tag rowTag, name string, row []mip.Nonzero, lower, upper float64) {
	model.problem.AddRow(name, row, lower, upper)
	model.tags = append(model.tags, tag)
}

// formulate builds the MILP of one required-days scenario. Variables come
// first in indexer order, then the constraint families in a fixed order;
// both orders are part of the model's contract with the indexer and the
// row tags.
func formulate(teams []Team, venue *Venue, config Config, requiredDays int) *scenarioModel {
	model := &scenarioModel{
		requiredDays: requiredDays,
		teams:        teams,
		venue:        venue,
		config:       config,
		problem:      &mip.Problem{Name: fmt.Sprintf("seatplan_k%v", requiredDays), Maximize: true},
		indexer:      newVarIndexer(len(teams), venue.Capacity(), venue.Tables(), len(config.Workdays)),
	}

	model.addVariables()
	model.addSeatExclusivity()
	model.addFootprintLinkage()
	model.addSplitDetection()
	model.addFullPresence()
	model.addRequiredDays()
	model.addDailySlack()

	return model
}

// Every occupied seat earns one objective unit and every split pays its
// distance-weighted penalty. y and pres are pure bookkeeping with zero
// cost.
func (model *scenarioModel) addVariables() {
	days := len(model.config.Workdays)
	for team := range model.teams {
		for position := range model.venue.Capacity() {
			for day := range days {
				model.problem.AddBinary(fmt.Sprintf("x_%v_%v_%v", team, position, day), 1)
			}
		}
	}
	for team := range model.teams {
		for table := range model.venue.Tables() {
			for day := range days {
				model.problem.AddBinary(fmt.Sprintf("y_%v_%v_%v", team, table, day), 0)
			}
		}
	}
	for team := range model.teams {
		for _, pair := range model.indexer.TablePairs() {
			for day := range days {
				penalty := -model.config.DistanceWeight * model.venue.Distance(pair[0], pair[1])
				model.problem.AddBinary(fmt.Sprintf("z_%v_%v_%v_%v", team, pair[0], pair[1], day), penalty)
			}
		}
	}
	for team := range model.teams {
		for day := range days {
			model.problem.AddBinary(fmt.Sprintf("pres_%v_%v", team, day), 0)
		}
	}
}

// Seat exclusivity: a position seats at most one team per day.
func (model *scenarioModel) addSeatExclusivity() {
	for position := range model.venue.Capacity() {
		for day := range len(model.config.Workdays) {
			row := make([]mip.Nonzero, 0, len(model.teams))
			for team := range model.teams {
				row = append(row, mip.Nonzero{Col: model.indexer.X(team, position, day), Val: 1})
			}
			tag := newRowTag(rowSeatExclusivity)
			tag.Position = position
			tag.Table = model.venue.TableOfPosition(position)
			tag.Day = day
			model.addRow(tag, fmt.Sprintf("seat_%v_%v", position, day), row, mip.NegInf, 1)
		}
	}
}

// Footprint linkage ties x to y in both directions: a table's occupied
// seats force its footprint on, and no seat can be taken without the
// footprint.
func (model *scenarioModel) addFootprintLinkage() {
	capacity := float64(model.venue.TableCapacity())
	for team := range model.teams {
		for table := range model.venue.Tables() {
			positions := model.venue.PositionsOfTable(table)
			for day := range len(model.config.Workdays) {
				row := make([]mip.Nonzero, 0, len(positions)+1)
				for _, position := range positions {
					row = append(row, mip.Nonzero{Col: model.indexer.X(team, position, day), Val: 1})
				}
				row = append(row, mip.Nonzero{Col: model.indexer.Y(team, table, day), Val: -capacity})
				tag := newRowTag(rowTableCapacity)
				tag.Team = team
				tag.Table = table
				tag.Day = day
				model.addRow(tag, fmt.Sprintf("cap_%v_%v_%v", team, table, day), row, mip.NegInf, 0)

				for _, position := range positions {
					link := []mip.Nonzero{
						{Col: model.indexer.X(team, position, day), Val: 1},
						{Col: model.indexer.Y(team, table, day), Val: -1},
					}
					linkTag := newRowTag(rowSeatTableLink)
					linkTag.Team = team
					linkTag.Position = position
					linkTag.Table = table
					linkTag.Day = day
					model.addRow(linkTag, fmt.Sprintf("link_%v_%v_%v", team, position, day), link, mip.NegInf, 0)
				}
			}
		}
	}
}

// Split detection: touching both tables of a pair on the same day forces
// the pair's indicator on, the objective then prices its distance. No
// upper link is needed, maximization drives z to its lower bound.
func (model *scenarioModel) addSplitDetection() {
	for team := range model.teams {
		for pair, tables := range model.indexer.TablePairs() {
			for day := range len(model.config.Workdays) {
				row := []mip.Nonzero{
					{Col: model.indexer.Z(team, pair, day), Val: 1},
					{Col: model.indexer.Y(team, tables[0], day), Val: -1},
					{Col: model.indexer.Y(team, tables[1], day), Val: -1},
				}
				tag := newRowTag(rowSplitDetection)
				tag.Team = team
				tag.Table = tables[0]
				tag.TableB = tables[1]
				tag.Day = day
				model.addRow(tag, fmt.Sprintf("split_%v_%v_%v_%v", team, tables[0], tables[1], day), row, -1, mip.Inf)
			}
		}
	}
}

// Full presence: a team's occupied seats on a day equal either zero or its
// full size, with pres recording which of the two holds.
func (model *scenarioModel) addFullPresence() {
	for team, record := range model.teams {
		for day := range len(model.config.Workdays) {
			row := make([]mip.Nonzero, 0, model.venue.Capacity()+1)
			for position := range model.venue.Capacity() {
				row = append(row, mip.Nonzero{Col: model.indexer.X(team, position, day), Val: 1})
			}
			row = append(row, mip.Nonzero{Col: model.indexer.Pres(team, day), Val: -float64(record.Size)})
			tag := newRowTag(rowFullPresence)
			tag.Team = team
			tag.Day = day
			model.addRow(tag, fmt.Sprintf("att_%v_%v", team, day), row, 0, 0)
		}
	}
}

// Required days: every team attends exactly the scenario's number of days.
func (model *scenarioModel) addRequiredDays() {
	days := len(model.config.Workdays)
	target := float64(model.requiredDays)
	for team := range model.teams {
		row := make([]mip.Nonzero, 0, days)
		for day := range days {
			row = append(row, mip.Nonzero{Col: model.indexer.Pres(team, day), Val: 1})
		}
		tag := newRowTag(rowRequiredDays)
		tag.Team = team
		model.addRow(tag, fmt.Sprintf("days_%v", team), row, target, target)
	}
}

// Daily slack: every day keeps at least the configured number of seats
// free across the whole venue.
func (model *scenarioModel) addDailySlack() {
	limit := float64(model.venue.Capacity() - model.config.MinDailySlack)
	for day := range len(model.config.Workdays) {
		row := make([]mip.Nonzero, 0, len(model.teams)*model.venue.Capacity())
		for team := range model.teams {
			for position := range model.venue.Capacity() {
				row = append(row, mip.Nonzero{Col: model.indexer.X(team, position, day), Val: 1})
			}
		}
		tag := newRowTag(rowDailySlack)
		tag.Day = day
		model.addRow(tag, fmt.Sprintf("slack_%v", day), row, mip.NegInf, limit)
	}
}
