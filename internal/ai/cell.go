package ai

import (
	"fmt"
	"sort"
)

// Cell is a board coordinate. Row and Col are 0-based.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// CellSet is a set of cells. A map with bool values (rather than empty
// structs) so that gob can round-trip it as part of a stored session.
type CellSet map[Cell]bool

func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = true
	}
	return s
}

func (s CellSet) Has(c Cell) bool { return s[c] }

func (s CellSet) Add(c Cell) { s[c] = true }

func (s CellSet) Del(c Cell) { delete(s, c) }

func (s CellSet) Clone() CellSet {
	clone := make(CellSet, len(s))
	for c := range s {
		clone[c] = true
	}
	return clone
}

func (s CellSet) Equal(other CellSet) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if !other[c] {
			return false
		}
	}
	return true
}

// Subset reports whether every cell of s is also in other.
func (s CellSet) Subset(other CellSet) bool {
	if len(s) > len(other) {
		return false
	}
	for c := range s {
		if !other[c] {
			return false
		}
	}
	return true
}

// Cells returns the members in row-major order. Iteration order of the
// underlying map is not stable, so anything user-facing sorts first.
func (s CellSet) Cells() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}
