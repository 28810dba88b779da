package model

import "log"

// varKind discriminates the four decision-variable families of a scenario.
type varKind uint8

const (
	kindOccupancy varKind = iota // x: team occupies a position on a day
	kindFootprint                // y: team touches a table on a day
	kindSplit                    // z: team occupies both tables of a pair on a day
	kindPresence                 // pres: team attends at full size on a day
)

var varKindNames = map[varKind]string{
	kindOccupancy: "x",
	kindFootprint: "y",
	kindSplit:     "z",
	kindPresence:  "pres",
}

func (kind varKind) String() string {
	return varKindNames[kind]
}

// varIndexer lays the four variable families out on one contiguous column
// space, in the order x, y, z, pres. Inside a family the attributes follow
// row-major order with the day varying fastest.
type varIndexer struct {
	teams     int
	positions int
	tables    int
	days      int

	tablePairs [][2]int

	footprintOffset int
	splitOffset     int
	presenceOffset  int
	total           int
}

func newVarIndexer(teams, positions, tables, days int) varIndexer {
	tablePairs := make([][2]int, 0, tables*(tables-1)/2)
	for first := range tables {
		for second := first + 1; second < tables; second++ {
			tablePairs = append(tablePairs, [2]int{first, second})
		}
	}

	indexer := varIndexer{
		teams:      teams,
		positions:  positions,
		tables:     tables,
		days:       days,
		tablePairs: tablePairs,
	}
	indexer.footprintOffset = teams * positions * days
	indexer.splitOffset = indexer.footprintOffset + teams*tables*days
	indexer.presenceOffset = indexer.splitOffset + teams*len(tablePairs)*days
	indexer.total = indexer.presenceOffset + teams*days
	return indexer
}

// X is the column of x[team, position, day].
func (indexer varIndexer) X(team, position, day int) int {
	return (team*indexer.positions+position)*indexer.days + day
}

// Y is the column of y[team, table, day].
func (indexer varIndexer) Y(team, table, day int) int {
	return indexer.footprintOffset + (team*indexer.tables+table)*indexer.days + day
}

// Z is the column of z[team, TablePairs()[pair], day].
func (indexer varIndexer) Z(team, pair, day int) int {
	return indexer.splitOffset + (team*len(indexer.tablePairs)+pair)*indexer.days + day
}

// Pres is the column of pres[team, day].
func (indexer varIndexer) Pres(team, day int) int {
	return indexer.presenceOffset + team*indexer.days + day
}

// Total is the number of columns across all four families.
func (indexer varIndexer) Total() int {
	return indexer.total
}

// TablePairs lists every unordered table pair, first < second, in the order
// the z family enumerates them.
func (indexer varIndexer) TablePairs() [][2]int {
	return indexer.tablePairs
}

// varAttributes are the decoded attributes of one column. Fields that do
// not apply to the column's family hold -1.
type varAttributes struct {
	Kind     varKind
	Team     int
	Position int
	Table    int
	TableB   int
	Day      int
}

// Attributes decodes a column back into its family and attributes.
func (indexer varIndexer) Attributes(column int) varAttributes {
	if column < 0 || column >= indexer.total {
		log.Panicf("column %v is outside the variable space [0, %v)", column, indexer.total)
	}
	attributes := varAttributes{Position: -1, Table: -1, TableB: -1}
	switch {
	case column < indexer.footprintOffset:
		attributes.Kind = kindOccupancy
		attributes.Day = column % indexer.days
		rest := column / indexer.days
		attributes.Position = rest % indexer.positions
		attributes.Team = rest / indexer.positions
	case column < indexer.splitOffset:
		offset := column - indexer.footprintOffset
		attributes.Kind = kindFootprint
		attributes.Day = offset % indexer.days
		rest := offset / indexer.days
		attributes.Table = rest % indexer.tables
		attributes.Team = rest / indexer.tables
	case column < indexer.presenceOffset:
		offset := column - indexer.splitOffset
		attributes.Kind = kindSplit
		attributes.Day = offset % indexer.days
		rest := offset / indexer.days
		pair := indexer.tablePairs[rest%len(indexer.tablePairs)]
		attributes.Table = pair[0]
		attributes.TableB = pair[1]
		attributes.Team = rest / len(indexer.tablePairs)
	default:
		offset := column - indexer.presenceOffset
		attributes.Kind = kindPresence
		attributes.Day = offset % indexer.days
		attributes.Team = offset / indexer.days
	}
	return attributes
}
