package ai

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Agent is the knowledge base of the player. It accumulates sentences
// about the board, derives certain facts from them and picks moves.
// Fields are exported for gob; the random source is not encoded and must
// be re-injected with SetRand after decoding.
type Agent struct {
	Width, Height int

	Moves CellSet // cells already played
	Safes CellSet // cells known to be mine-free
	Mines CellSet // cells known to be mines

	Knowledge []*Sentence

	rnd *rand.Rand
}

func NewAgent(width, height int, r *rand.Rand) *Agent {
	return &Agent{
		Width:  width,
		Height: height,
		Moves:  make(CellSet),
		Safes:  make(CellSet),
		Mines:  make(CellSet),
		rnd:    r,
	}
}

// SetRand replaces the random source used by RandomMove.
func (a *Agent) SetRand(r *rand.Rand) {
	a.rnd = r
}

// InitSets allocates any confirmed set a gob decode left nil (empty
// maps are not transmitted).
func (a *Agent) InitSets() {
	if a.Moves == nil {
		a.Moves = make(CellSet)
	}
	if a.Safes == nil {
		a.Safes = make(CellSet)
	}
	if a.Mines == nil {
		a.Mines = make(CellSet)
	}
}

func (a *Agent) inBounds(c Cell) bool {
	return 0 <= c.Row && c.Row < a.Height && 0 <= c.Col && c.Col < a.Width
}

// neighborhood returns the in-bounds cells adjacent to c, the cell
// itself excluded.
func (a *Agent) neighborhood(c Cell) []Cell {
	cells := make([]Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Cell{Row: c.Row + dr, Col: c.Col + dc}
			if a.inBounds(n) {
				cells = append(cells, n)
			}
		}
	}
	return cells
}

// markSafe records cell as mine-free in the confirmed set and in every
// live sentence.
func (a *Agent) markSafe(cell Cell) {
	a.Safes.Add(cell)
	for _, s := range a.Knowledge {
		s.MarkSafe(cell)
	}
}

// markMine records cell as a mine in the confirmed set and in every live
// sentence.
func (a *Agent) markMine(cell Cell) {
	a.Mines.Add(cell)
	for _, s := range a.Knowledge {
		s.MarkMine(cell)
	}
}

// Observe folds one revealed cell and its neighbor mine count into the
// knowledge base and runs inference to a fixpoint. The update is atomic:
// a rejected observation leaves the agent untouched, and re-observing an
// already observed cell is a no-op.
func (a *Agent) Observe(cell Cell, count int) error {
	if !a.inBounds(cell) {
		return &InvalidObservationError{cell, count, "cell out of bounds"}
	}
	neighborhood := a.neighborhood(cell)
	if count < 0 || count > len(neighborhood) {
		return &InvalidObservationError{
			cell, count,
			fmt.Sprintf("count outside [0, %d]", len(neighborhood)),
		}
	}
	if a.Moves.Has(cell) {
		return nil
	}

	a.Moves.Add(cell)
	a.markSafe(cell)

	// Build a sentence over the unknown part of the neighborhood. Known
	// mines lower the effective count, known safes just drop out.
	cells := make(CellSet)
	effective := count
	for _, n := range neighborhood {
		switch {
		case a.Mines.Has(n):
			effective--
		case a.Safes.Has(n):
		default:
			cells.Add(n)
		}
	}
	if len(cells) > 0 {
		a.Knowledge = append(a.Knowledge, &Sentence{Cells: cells, Count: effective})
		Log.WithFields(logrus.Fields{
			"cell": cell, "count": count,
		}).Debugf("new sentence %v = %d", cells.Cells(), effective)
	}

	a.propagate()
	a.purge()
	a.resolveSubsets()
	a.propagate()
	a.purge()

	return nil
}

// propagate sweeps the knowledge base until a pass yields no new
// classification. Facts found during a sweep are collected first and
// applied after it, so no sentence is mutated while its conclusions are
// being read.
func (a *Agent) propagate() {
	for {
		var mines, safes []Cell
		for _, s := range a.Knowledge {
			for m := range a.Mines {
				s.MarkMine(m)
			}
			for f := range a.Safes {
				s.MarkSafe(f)
			}
			if s.Count < 0 || s.Count > len(s.Cells) {
				Log.Panicf("inconsistent sentence %s", s)
			}
			mines = append(mines, s.KnownMines()...)
			safes = append(safes, s.KnownSafes()...)
		}
		changed := false
		for _, m := range mines {
			if !a.Mines.Has(m) {
				Log.Debug("confirmed mine ", m)
				a.markMine(m)
				changed = true
			}
		}
		for _, f := range safes {
			if !a.Safes.Has(f) {
				Log.Debug("confirmed safe ", f)
				a.markSafe(f)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// purge drops every resolved sentence. By the time it runs propagate has
// folded their cells into Safes/Mines, so they carry no information.
func (a *Agent) purge() {
	live := make([]*Sentence, 0, len(a.Knowledge))
	for _, s := range a.Knowledge {
		if s.resolved() {
			continue
		}
		live = append(live, s)
	}
	a.Knowledge = live
}

func (a *Agent) hasSentence(other *Sentence) bool {
	for _, s := range a.Knowledge {
		if s.Equal(other) {
			return true
		}
	}
	return false
}

// resolveSubsets derives new sentences from strict subset pairs: if A's
// cells are contained in B's, the mines B counts beyond A's lie in B−A.
// Pairs are taken from a snapshot; sentences derived here are only
// compared against others on the next observation.
func (a *Agent) resolveSubsets() {
	snapshot := make([]*Sentence, len(a.Knowledge))
	copy(snapshot, a.Knowledge)
	for _, sub := range snapshot {
		for _, super := range snapshot {
			if sub == super ||
				len(sub.Cells) >= len(super.Cells) ||
				!sub.Cells.Subset(super.Cells) {
				continue
			}
			diff := make(CellSet)
			for c := range super.Cells {
				if !sub.Cells.Has(c) {
					diff.Add(c)
				}
			}
			if len(diff) == 0 {
				continue
			}
			derived := &Sentence{Cells: diff, Count: super.Count - sub.Count}
			if !a.hasSentence(derived) {
				Log.Debug("derived sentence ", derived)
				a.Knowledge = append(a.Knowledge, derived)
			}
		}
	}
}

// SafeMove returns a cell that is certain to be mine-free and has not
// been played yet, preferring the lowest row, then column, so repeated
// calls return the same cell. It never mutates the knowledge base;
// ErrNoMoveAvailable means knowledge is exhausted, not that something
// went wrong.
func (a *Agent) SafeMove() (Cell, error) {
	for _, c := range a.Safes.Cells() {
		if !a.Moves.Has(c) {
			return c, nil
		}
	}
	// Zero-count sentences are normally purged, but a caller may query
	// between observations of a freshly decoded agent.
	for _, s := range a.Knowledge {
		if s.Count != 0 {
			continue
		}
		for _, c := range s.Cells.Cells() {
			if !a.Moves.Has(c) {
				return c, nil
			}
		}
	}
	return Cell{}, ErrNoMoveAvailable
}

// RandomMove picks uniformly among the cells that have not been played
// and are not known mines. The candidate set is materialized up front so
// selection is bounded even on a nearly finished board.
func (a *Agent) RandomMove() (Cell, error) {
	candidates := make([]Cell, 0, a.Width*a.Height-len(a.Moves))
	for row := range a.Height {
		for col := range a.Width {
			c := Cell{Row: row, Col: col}
			if !a.Moves.Has(c) && !a.Mines.Has(c) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return Cell{}, ErrNoMoveAvailable
	}
	return candidates[a.rnd.IntN(len(candidates))], nil
}
