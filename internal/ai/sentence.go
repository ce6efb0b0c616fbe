package ai

import "fmt"

// Sentence is a logical statement about the board: exactly Count of the
// cells in Cells are mines. Fields are exported for gob; mutate only
// through MarkMine and MarkSafe so the 0 <= Count <= len(Cells) invariant
// holds.
type Sentence struct {
	Cells CellSet
	Count int
}

func NewSentence(cells CellSet, count int) *Sentence {
	return &Sentence{Cells: cells.Clone(), Count: count}
}

func (s *Sentence) String() string {
	return fmt.Sprintf("%v = %d", s.Cells.Cells(), s.Count)
}

// Equal compares cell sets and counts; cell order is irrelevant.
func (s *Sentence) Equal(other *Sentence) bool {
	return s.Count == other.Count && s.Cells.Equal(other.Cells)
}

// KnownMines returns every cell of the sentence if all of them must be
// mines, nil otherwise. Nil means "no information", not "no mines": a
// sentence with Count strictly between 0 and len(Cells) classifies
// nothing on its own.
func (s *Sentence) KnownMines() []Cell {
	if len(s.Cells) > 0 && s.Count == len(s.Cells) {
		return s.Cells.Cells()
	}
	return nil
}

// KnownSafes returns every cell of the sentence if none of them can be a
// mine, nil otherwise.
func (s *Sentence) KnownSafes() []Cell {
	if s.Count == 0 && len(s.Cells) > 0 {
		return s.Cells.Cells()
	}
	return nil
}

// MarkMine records that cell is a mine. Removing it from the set must
// also remove its contribution to the count. No-op if the cell is not a
// member, so callers may apply it speculatively.
func (s *Sentence) MarkMine(cell Cell) {
	if s.Cells.Has(cell) {
		s.Cells.Del(cell)
		s.Count--
	}
}

// MarkSafe records that cell is not a mine. The count is unaffected.
func (s *Sentence) MarkSafe(cell Cell) {
	s.Cells.Del(cell)
}

// resolved reports whether the sentence carries no information anymore:
// empty, all-safe or all-mine. Such sentences are purged once their
// cells have been folded into the agent's confirmed sets.
func (s *Sentence) resolved() bool {
	return len(s.Cells) == 0 || s.Count == 0 || s.Count == len(s.Cells)
}
