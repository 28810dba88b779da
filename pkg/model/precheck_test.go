package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrecheckBound(t *testing.T) {
	venue, err := NewVenue(1, []int{2}, 4)
	assert.Nil(t, err)
	teams := []Team{{Name: "Alpha", Size: 3}, {Name: "Beta", Size: 3}}
	config := DefaultConfig()
	config.MinDailySlack = 2

	t.Run("passes under the bound", func(t *testing.T) {
		// 6 people * 2 days / 5 workdays = 2.4 against 8 - 2 = 6
		result := precheck(teams, venue, config, 2)

		assert.True(t, result.feasible())
		assert.InDelta(t, 2.4, result.requiredAverage, 1e-9)
		assert.InDelta(t, 6.0, result.effectiveCapacity, 1e-9)
	})

	t.Run("passes exactly at the bound", func(t *testing.T) {
		// 6 * 5 / 5 = 6 against 8 - 2 = 6, the bound itself is feasible
		result := precheck(teams, venue, config, 5)

		assert.True(t, result.feasible())
	})

	t.Run("fails above the bound", func(t *testing.T) {
		tight := config
		tight.MinDailySlack = 3

		result := precheck(teams, venue, tight, 5)

		assert.False(t, result.feasible())
		assert.InDelta(t, 6.0, result.requiredAverage, 1e-9)
		assert.InDelta(t, 5.0, result.effectiveCapacity, 1e-9)
	})

	t.Run("oversized team fails once demand concentrates", func(t *testing.T) {
		// 9 people on every workday can never leave 7 of 8 seats free.
		result := precheck([]Team{{Name: "Gamma", Size: 9}}, venue, Config{MinDailySlack: 7, Workdays: DefaultWorkdays}, 5)

		assert.False(t, result.feasible())
	})
}
