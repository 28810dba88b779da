package model

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Tables in different corridors are at least this far apart, the index gap
// inside each corridor is added on top.
const crossCorridorPenalty = 5

// Venue is the physical seating layout: corridors holding ordered tables,
// each table holding a fixed number of positions. The lookup structures and
// the pairwise table distance matrix are derived once at construction and
// are read-only afterwards, so every scenario of a sweep can share one
// instance.
type Venue struct {
	corridors         int
	tablesPerCorridor []int
	positionsPerTable int

	tableCorridor []int // table -> corridor
	tableIndex    []int // table -> ordinal inside its corridor
	positionTable []int // position -> table
	distances     *mat.SymDense
}

// NewVenue validates the layout description and derives the venue model.
// All counts must be strictly positive and tablesPerCorridor must carry one
// entry per corridor.
func NewVenue(corridors int, tablesPerCorridor []int, positionsPerTable int) (*Venue, error) {
	if corridors <= 0 {
		return nil, configurationError("corridors", "must be strictly positive, got %v", corridors)
	}
	if len(tablesPerCorridor) != corridors {
		return nil, configurationError("tablesPerCorridor", "must list one table count per corridor: got %v counts for %v corridors", len(tablesPerCorridor), corridors)
	}
	for corridor, count := range tablesPerCorridor {
		if count <= 0 {
			return nil, configurationError("tablesPerCorridor", "corridor %v must hold at least one table, got %v", corridor, count)
		}
	}
	if positionsPerTable <= 0 {
		return nil, configurationError("positionsPerTable", "must be strictly positive, got %v", positionsPerTable)
	}

	venue := &Venue{
		corridors:         corridors,
		tablesPerCorridor: slices.Clone(tablesPerCorridor),
		positionsPerTable: positionsPerTable,
	}
	for corridor, count := range tablesPerCorridor {
		for index := range count {
			venue.tableCorridor = append(venue.tableCorridor, corridor)
			venue.tableIndex = append(venue.tableIndex, index)
		}
	}
	for table := range venue.tableCorridor {
		for range positionsPerTable {
			venue.positionTable = append(venue.positionTable, table)
		}
	}

	tables := len(venue.tableCorridor)
	venue.distances = mat.NewSymDense(tables, nil)
	for first := range tables {
		for second := first + 1; second < tables; second++ {
			distance := math.Abs(float64(venue.tableIndex[first] - venue.tableIndex[second]))
			if venue.tableCorridor[first] != venue.tableCorridor[second] {
				distance += crossCorridorPenalty
			}
			venue.distances.SetSym(first, second, distance)
		}
	}
	return venue, nil
}

// Corridors is the number of corridors.
func (venue *Venue) Corridors() int {
	return venue.corridors
}

// Tables is the total number of tables across all corridors.
func (venue *Venue) Tables() int {
	return len(venue.tableCorridor)
}

// TableCapacity is the number of positions every table holds.
func (venue *Venue) TableCapacity() int {
	return venue.positionsPerTable
}

// Capacity is the total number of seating positions in the venue.
func (venue *Venue) Capacity() int {
	return len(venue.positionTable)
}

// TableOfPosition resolves the table a position belongs to.
func (venue *Venue) TableOfPosition(position int) int {
	return venue.positionTable[position]
}

// CorridorOfTable resolves the corridor a table belongs to.
func (venue *Venue) CorridorOfTable(table int) int {
	return venue.tableCorridor[table]
}

// IndexOfTable is the table's ordinal inside its corridor, the quantity the
// distance metric is built from.
func (venue *Venue) IndexOfTable(table int) int {
	return venue.tableIndex[table]
}

// PositionsOfTable lists the positions of one table. Positions are laid out
// contiguously table by table.
func (venue *Venue) PositionsOfTable(table int) []int {
	positions := make([]int, venue.positionsPerTable)
	for index := range positions {
		positions[index] = table*venue.positionsPerTable + index
	}
	return positions
}

// Distance is the symmetric inter-table distance: the ordinal gap when the
// tables share a corridor, the cross-corridor penalty plus the gap when
// they do not, zero on self.
func (venue *Venue) Distance(first, second int) float64 {
	return venue.distances.At(first, second)
}
