package grid

import (
	"strings"

	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
)

// Kind distinguishes the storage surface a grid describes.
type Kind string

const (
	KindShelf Kind = "shelf"
	KindWall  Kind = "wall"
)

// Grid is the fixed geometry of a storage surface: a set of named positions,
// each holding the same number of 1-based slots.
type Grid struct {
	Kind             Kind
	Positions        []string
	SlotsPerPosition int
}

const (
	ShelfUpper = "upper"
	ShelfLower = "lower"

	Wall1 = "wall_1"
	Wall2 = "wall_2"
	Wall3 = "wall_3"
	Wall4 = "wall_4"
)

// Nursery holds trays on two shelves of 8 slots.
var Nursery = Grid{
	Kind:             KindShelf,
	Positions:        []string{ShelfUpper, ShelfLower},
	SlotsPerPosition: 8,
}

// Cultivation holds panels on four walls of 22 slots.
var Cultivation = Grid{
	Kind:             KindWall,
	Positions:        []string{Wall1, Wall2, Wall3, Wall4},
	SlotsPerPosition: 22,
}

// Capacity is the total number of slots across all positions.
func (g Grid) Capacity() int {
	return len(g.Positions) * g.SlotsPerPosition
}

// Coordinate maps a 0-based cell index, in position order, to its 1-based slot.
func (g Grid) Coordinate(index int) (string, int) {
	return g.Positions[index/g.SlotsPerPosition], index%g.SlotsPerPosition + 1
}

// HasPosition reports whether label names one of the grid positions.
func (g Grid) HasPosition(label string) bool {
	for _, p := range g.Positions {
		if p == label {
			return true
		}
	}
	return false
}

// Validate checks a placement coordinate. It has no side effects.
func (g Grid) Validate(position string, slotNumber int) error {
	if !g.HasPosition(position) {
		return errs.Invalid("%s", g.positionMessage())
	}
	if slotNumber < 1 || slotNumber > g.SlotsPerPosition {
		return errs.Invalid("Slot number must be between 1 and %d", g.SlotsPerPosition)
	}
	return nil
}

func (g Grid) positionMessage() string {
	switch g.Kind {
	case KindShelf:
		quoted := make([]string, len(g.Positions))
		for i, p := range g.Positions {
			quoted[i] = "'" + p + "'"
		}
		return "Shelf must be " + strings.Join(quoted, " or ")
	default:
		return "Wall must be one of: " + strings.Join(g.Positions, ", ")
	}
}

// AverageUtilization is the integer mean of per-unit utilization values.
// Every unit weighs the same regardless of its own capacity. An empty set yields 0.
func AverageUtilization(values []int) int {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, v := range values {
		total += v
	}
	return total / len(values)
}
