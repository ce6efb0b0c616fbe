package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownMines(t *testing.T) {
	a, b := Cell{0, 0}, Cell{0, 1}

	s := NewSentence(NewCellSet(a, b), 2)
	assert.ElementsMatch(t, []Cell{a, b}, s.KnownMines())

	s = NewSentence(NewCellSet(a, b), 1)
	assert.Nil(t, s.KnownMines())

	// a zero-count sentence must never report its cells as mines
	s = NewSentence(NewCellSet(a, b), 0)
	assert.Nil(t, s.KnownMines())

	s = NewSentence(NewCellSet(), 0)
	assert.Nil(t, s.KnownMines())
}

func TestKnownSafes(t *testing.T) {
	a, b := Cell{0, 0}, Cell{0, 1}

	s := NewSentence(NewCellSet(a, b), 0)
	assert.ElementsMatch(t, []Cell{a, b}, s.KnownSafes())

	s = NewSentence(NewCellSet(a, b), 1)
	assert.Nil(t, s.KnownSafes())

	s = NewSentence(NewCellSet(a, b), 2)
	assert.Nil(t, s.KnownSafes())
}

func TestMarkMine(t *testing.T) {
	a, b, c := Cell{0, 0}, Cell{0, 1}, Cell{1, 1}

	s := NewSentence(NewCellSet(a, b), 2)
	s.MarkMine(a)
	assert.Equal(t, 1, s.Count)
	assert.False(t, s.Cells.Has(a))

	// absent cell is a no-op, marking is safe to apply speculatively
	s.MarkMine(c)
	assert.Equal(t, 1, s.Count)
	s.MarkMine(a)
	assert.Equal(t, 1, s.Count)

	s.MarkMine(b)
	assert.Equal(t, 0, s.Count)
	assert.Empty(t, s.Cells)
}

func TestMarkSafe(t *testing.T) {
	a, b := Cell{0, 0}, Cell{0, 1}

	s := NewSentence(NewCellSet(a, b), 1)
	s.MarkSafe(a)
	assert.Equal(t, 1, s.Count)
	assert.False(t, s.Cells.Has(a))

	s.MarkSafe(a)
	s.MarkSafe(Cell{5, 5})
	assert.Equal(t, 1, s.Count)
	assert.True(t, s.Cells.Has(b))
}

func TestMarkInvariant(t *testing.T) {
	cells := NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{1, 0}, Cell{1, 1})
	s := NewSentence(cells, 2)

	s.MarkMine(Cell{0, 0})
	s.MarkSafe(Cell{0, 1})
	s.MarkMine(Cell{1, 0})
	assert.GreaterOrEqual(t, s.Count, 0)
	assert.LessOrEqual(t, s.Count, len(s.Cells))

	s.MarkSafe(Cell{1, 1})
	assert.GreaterOrEqual(t, s.Count, 0)
	assert.LessOrEqual(t, s.Count, len(s.Cells))
}

func TestSentenceEqual(t *testing.T) {
	a, b := Cell{0, 0}, Cell{0, 1}

	assert.True(t, NewSentence(NewCellSet(a, b), 1).
		Equal(NewSentence(NewCellSet(b, a), 1)))
	assert.False(t, NewSentence(NewCellSet(a, b), 1).
		Equal(NewSentence(NewCellSet(a, b), 2)))
	assert.False(t, NewSentence(NewCellSet(a), 1).
		Equal(NewSentence(NewCellSet(a, b), 1)))
}

func TestCellSet(t *testing.T) {
	s := NewCellSet(Cell{1, 0}, Cell{0, 1}, Cell{0, 0})

	assert.True(t, s.Subset(s))
	assert.True(t, NewCellSet(Cell{0, 0}).Subset(s))
	assert.False(t, s.Subset(NewCellSet(Cell{0, 0})))
	assert.False(t, NewCellSet(Cell{2, 2}).Subset(s))

	// Cells is sorted row-major for deterministic iteration
	assert.Equal(t,
		[]Cell{{0, 0}, {0, 1}, {1, 0}},
		s.Cells())

	clone := s.Clone()
	clone.Del(Cell{0, 0})
	assert.True(t, s.Has(Cell{0, 0}))
	assert.False(t, clone.Equal(s))
}
