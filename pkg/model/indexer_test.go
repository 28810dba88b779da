package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVarIndexerRoundTrip(t *testing.T) {
	//** Arrange
	teams, positions, tables, days := 3, 8, 2, 5
	indexer := newVarIndexer(teams, positions, tables, days)

	assert.Equal(t, [][2]int{{0, 1}}, indexer.TablePairs())
	assert.Equal(t, teams*positions*days+teams*tables*days+teams*1*days+teams*days, indexer.Total())

	seen := make(map[int]bool)
	record := func(column int) {
		assert.False(t, seen[column], "column %v assigned twice", column)
		seen[column] = true
	}

	//** Act and assert per family
	for team := range teams {
		for position := range positions {
			for day := range days {
				column := indexer.X(team, position, day)
				record(column)
				assert.Equal(t, varAttributes{
					Kind: kindOccupancy, Team: team, Position: position, Table: -1, TableB: -1, Day: day,
				}, indexer.Attributes(column))
			}
		}
	}
	for team := range teams {
		for table := range tables {
			for day := range days {
				column := indexer.Y(team, table, day)
				record(column)
				assert.Equal(t, varAttributes{
					Kind: kindFootprint, Team: team, Position: -1, Table: table, TableB: -1, Day: day,
				}, indexer.Attributes(column))
			}
		}
	}
	for team := range teams {
		for pair, pairTables := range indexer.TablePairs() {
			for day := range days {
				column := indexer.Z(team, pair, day)
				record(column)
				assert.Equal(t, varAttributes{
					Kind: kindSplit, Team: team, Position: -1, Table: pairTables[0], TableB: pairTables[1], Day: day,
				}, indexer.Attributes(column))
			}
		}
	}
	for team := range teams {
		for day := range days {
			column := indexer.Pres(team, day)
			record(column)
			assert.Equal(t, varAttributes{
				Kind: kindPresence, Team: team, Position: -1, Table: -1, TableB: -1, Day: day,
			}, indexer.Attributes(column))
		}
	}

	// The four families cover the column space exactly.
	assert.Equal(t, indexer.Total(), len(seen))
}

func TestVarIndexerPairEnumeration(t *testing.T) {
	indexer := newVarIndexer(1, 12, 4, 1)

	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, indexer.TablePairs())
}

func TestVarIndexerRejectsForeignColumns(t *testing.T) {
	indexer := newVarIndexer(2, 4, 1, 2)

	assert.Panics(t, func() { indexer.Attributes(indexer.Total()) })
	assert.Panics(t, func() { indexer.Attributes(-1) })
}

func TestVarKindNames(t *testing.T) {
	assert.Equal(t, "x", kindOccupancy.String())
	assert.Equal(t, "y", kindFootprint.String())
	assert.Equal(t, "z", kindSplit.String())
	assert.Equal(t, "pres", kindPresence.String())
}
