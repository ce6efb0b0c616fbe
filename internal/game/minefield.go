package game

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/akarpov/minesweeper-ai/internal/ai"
)

// Minefield owns the ground truth of one game: mine placement, adjacency
// counts and win detection. It knows nothing about inference; the agent
// only ever sees neighbor counts for cells it opened.
type Minefield struct {
	Width, Height int
	MineCount     int
	Grid          []bool // row-major, true = mine
	Flags         ai.CellSet
}

func NewMinefield(width, height, mineCount int, r *rand.Rand) (*Minefield, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid field size %dx%d", width, height)
	}
	if mineCount < 0 || mineCount > width*height {
		return nil, fmt.Errorf(
			"mine count %d outside [0, %d]", mineCount, width*height,
		)
	}
	f := &Minefield{
		Width:     width,
		Height:    height,
		MineCount: mineCount,
		Grid:      make([]bool, width*height),
		Flags:     make(ai.CellSet),
	}
	// Draw from a shuffled index list instead of retrying random points,
	// so placement takes bounded time even on a dense field.
	for _, i := range r.Perm(width * height)[:mineCount] {
		f.Grid[i] = true
	}
	return f, nil
}

func (f *Minefield) index(c ai.Cell) int {
	return c.Row*f.Width + c.Col
}

func (f *Minefield) InBounds(c ai.Cell) bool {
	return 0 <= c.Row && c.Row < f.Height && 0 <= c.Col && c.Col < f.Width
}

func (f *Minefield) IsMine(c ai.Cell) bool {
	return f.Grid[f.index(c)]
}

// NeighborMineCount returns the number of mines within one row and
// column of c, the cell itself excluded.
func (f *Minefield) NeighborMineCount(c ai.Cell) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := ai.Cell{Row: c.Row + dr, Col: c.Col + dc}
			if f.InBounds(n) && f.IsMine(n) {
				count++
			}
		}
	}
	return count
}

// Flag marks c as a found mine. Flagging is how the driver declares
// mines it is certain about; the game is won once every mine and nothing
// else is flagged.
func (f *Minefield) Flag(c ai.Cell) {
	f.Flags.Add(c)
}

func (f *Minefield) Won() bool {
	if len(f.Flags) != f.MineCount {
		return false
	}
	for c := range f.Flags {
		if !f.IsMine(c) {
			return false
		}
	}
	return true
}

// String renders the true mine layout, for logs and debugging only.
func (f *Minefield) String() string {
	var b strings.Builder
	for row := range f.Height {
		for col := range f.Width {
			if f.Grid[row*f.Width+col] {
				b.WriteString("* ")
			} else {
				b.WriteString("- ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
