package model

import (
	"math"
	"testing"

	"github.com/limaJavier/seatplanning/pkg/mip"
	"github.com/stretchr/testify/assert"
)

// Two teams, one corridor with two tables of four seats, a two-day week.
func tinyScenarioModel(t *testing.T) *scenarioModel {
	venue, err := NewVenue(1, []int{2}, 4)
	assert.Nil(t, err)

	teams := []Team{{Name: "Alpha", Size: 3}, {Name: "Beta", Size: 2}}
	config := Config{
		Objective:       MaxAverageOccupancy,
		DistanceWeight:  10,
		MinDailySlack:   1,
		RequiredDaysSet: []int{1},
		Workdays:        []string{"Monday", "Tuesday"},
	}
	return formulate(teams, venue, config, 1)
}

func TestFormulateDimensions(t *testing.T) {
	//** Arrange
	model := tinyScenarioModel(t)

	//** Assert
	assert.Equal(t, "seatplan_k1", model.problem.Name)
	assert.True(t, model.problem.Maximize)
	assert.True(t, model.problem.Integral())

	// x: 2*8*2, y: 2*2*2, z: 2*1*2, pres: 2*2
	assert.Equal(t, 32+8+4+4, len(model.problem.Variables))
	assert.Equal(t, model.indexer.Total(), len(model.problem.Variables))

	// seat: 8*2, capacity+link: 2*2*2*(1+4), split: 2*1*2, attendance: 2*2,
	// required days: 2, daily slack: 2
	assert.Equal(t, 16+40+4+4+2+2, len(model.problem.Constraints))
	assert.Equal(t, len(model.problem.Constraints), len(model.tags))
}

func TestFormulateVariables(t *testing.T) {
	model := tinyScenarioModel(t)
	indexer := model.indexer

	// Variable creation follows the indexer's column layout.
	assert.Equal(t, "x_0_0_0", model.problem.Variables[indexer.X(0, 0, 0)].Name)
	assert.Equal(t, "x_1_7_1", model.problem.Variables[indexer.X(1, 7, 1)].Name)
	assert.Equal(t, "y_0_1_0", model.problem.Variables[indexer.Y(0, 1, 0)].Name)
	assert.Equal(t, "z_1_0_1_0", model.problem.Variables[indexer.Z(1, 0, 0)].Name)
	assert.Equal(t, "pres_1_1", model.problem.Variables[indexer.Pres(1, 1)].Name)

	// Occupied seats earn one unit, splits pay the weighted table distance.
	assert.Equal(t, 1.0, model.problem.Variables[indexer.X(0, 5, 1)].Cost)
	assert.Equal(t, 0.0, model.problem.Variables[indexer.Y(0, 0, 0)].Cost)
	assert.Equal(t, -10.0, model.problem.Variables[indexer.Z(0, 0, 0)].Cost)
	assert.Equal(t, 0.0, model.problem.Variables[indexer.Pres(0, 0)].Cost)

	for _, variable := range model.problem.Variables {
		assert.Equal(t, mip.Binary, variable.Type)
	}
}

func TestFormulateConstraintFamilies(t *testing.T) {
	model := tinyScenarioModel(t)
	indexer := model.indexer
	constraints := model.problem.Constraints

	t.Run("seat exclusivity", func(t *testing.T) {
		assert.Equal(t, "seat_0_0", constraints[0].Name)
		assert.Equal(t, []mip.Nonzero{
			{Col: indexer.X(0, 0, 0), Val: 1},
			{Col: indexer.X(1, 0, 0), Val: 1},
		}, constraints[0].Row)
		assert.True(t, math.IsInf(constraints[0].Lower, -1))
		assert.Equal(t, 1.0, constraints[0].Upper)

		tag := newRowTag(rowSeatExclusivity)
		tag.Position = 0
		tag.Table = 0
		tag.Day = 0
		assert.Equal(t, tag, model.tags[0])
	})

	t.Run("table capacity and seat links interleave", func(t *testing.T) {
		// After 16 seat rows the first table block starts with its
		// capacity row followed by one link row per seat.
		capacityRow := constraints[16]
		assert.Equal(t, "cap_0_0_0", capacityRow.Name)
		assert.Equal(t, []mip.Nonzero{
			{Col: indexer.X(0, 0, 0), Val: 1},
			{Col: indexer.X(0, 1, 0), Val: 1},
			{Col: indexer.X(0, 2, 0), Val: 1},
			{Col: indexer.X(0, 3, 0), Val: 1},
			{Col: indexer.Y(0, 0, 0), Val: -4},
		}, capacityRow.Row)
		assert.Equal(t, 0.0, capacityRow.Upper)
		assert.Equal(t, rowTableCapacity, model.tags[16].Kind)

		linkRow := constraints[17]
		assert.Equal(t, "link_0_0_0", linkRow.Name)
		assert.Equal(t, []mip.Nonzero{
			{Col: indexer.X(0, 0, 0), Val: 1},
			{Col: indexer.Y(0, 0, 0), Val: -1},
		}, linkRow.Row)
		assert.Equal(t, rowSeatTableLink, model.tags[17].Kind)
		assert.Equal(t, rowSeatTableLink, model.tags[20].Kind)
		assert.Equal(t, rowTableCapacity, model.tags[21].Kind)
	})

	t.Run("split detection", func(t *testing.T) {
		splitRow := constraints[56]
		assert.Equal(t, "split_0_0_1_0", splitRow.Name)
		assert.Equal(t, []mip.Nonzero{
			{Col: indexer.Z(0, 0, 0), Val: 1},
			{Col: indexer.Y(0, 0, 0), Val: -1},
			{Col: indexer.Y(0, 1, 0), Val: -1},
		}, splitRow.Row)
		assert.Equal(t, -1.0, splitRow.Lower)
		assert.True(t, math.IsInf(splitRow.Upper, 1))

		tag := model.tags[56]
		assert.Equal(t, rowSplitDetection, tag.Kind)
		assert.Equal(t, 0, tag.Table)
		assert.Equal(t, 1, tag.TableB)
	})

	t.Run("full presence", func(t *testing.T) {
		attendanceRow := constraints[60]
		assert.Equal(t, "att_0_0", attendanceRow.Name)
		assert.Equal(t, 0.0, attendanceRow.Lower)
		assert.Equal(t, 0.0, attendanceRow.Upper)
		assert.Len(t, attendanceRow.Row, 9)
		assert.Equal(t, mip.Nonzero{Col: indexer.Pres(0, 0), Val: -3}, attendanceRow.Row[8])

		// Beta's presence column carries its own size.
		betaRow := constraints[62]
		assert.Equal(t, "att_1_0", betaRow.Name)
		assert.Equal(t, mip.Nonzero{Col: indexer.Pres(1, 0), Val: -2}, betaRow.Row[8])
		assert.Equal(t, rowFullPresence, model.tags[60].Kind)
	})

	t.Run("required days is an equality", func(t *testing.T) {
		daysRow := constraints[64]
		assert.Equal(t, "days_0", daysRow.Name)
		assert.Equal(t, 1.0, daysRow.Lower)
		assert.Equal(t, 1.0, daysRow.Upper)
		assert.Equal(t, []mip.Nonzero{
			{Col: indexer.Pres(0, 0), Val: 1},
			{Col: indexer.Pres(0, 1), Val: 1},
		}, daysRow.Row)
		assert.Equal(t, rowRequiredDays, model.tags[64].Kind)
		assert.Equal(t, 0, model.tags[64].Team)
	})

	t.Run("daily slack", func(t *testing.T) {
		slackRow := constraints[66]
		assert.Equal(t, "slack_0", slackRow.Name)
		assert.Len(t, slackRow.Row, 16)
		assert.True(t, math.IsInf(slackRow.Lower, -1))
		assert.Equal(t, 7.0, slackRow.Upper)
		assert.Equal(t, rowDailySlack, model.tags[66].Kind)
		assert.Equal(t, 0, model.tags[66].Day)
		assert.Equal(t, rowDailySlack, model.tags[67].Kind)
		assert.Equal(t, 1, model.tags[67].Day)
	})
}

func TestFormulateZeroDistanceWeight(t *testing.T) {
	venue, err := NewVenue(1, []int{2}, 4)
	assert.Nil(t, err)
	config := Config{RequiredDaysSet: []int{1}, Workdays: []string{"Monday"}}

	model := formulate([]Team{{Name: "Solo", Size: 2}}, venue, config, 1)

	assert.Equal(t, 0.0, model.problem.Variables[model.indexer.Z(0, 0, 0)].Cost)
}
