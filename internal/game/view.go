package game

import (
	"strconv"
	"strings"

	"github.com/akarpov/minesweeper-ai/internal/ai"
)

// CellView is what the player is allowed to see of one cell.
type CellView int8

const (
	Unknown  CellView = -2
	Flagged  CellView = -1
	Exploded CellView = 9
	// 0-8 for opened cells with that many mined neighbors
)

func (v CellView) String() string {
	switch v {
	case Unknown:
		return " "
	case Flagged:
		return "*"
	case Exploded:
		return "!"
	case 0, 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(v))
	default:
		return "?"
	}
}

// GridView is a row-major rendering of the player's knowledge.
type GridView []CellView

func (g GridView) ToString(width int) string {
	var b strings.Builder
	for i, v := range g {
		b.WriteString(v.String() + " ")
		if (i+1)%width == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// View renders the board as the player sees it: opened counts, flags on
// confirmed mines, the exploded cell on a lost game, everything else
// hidden.
func (s *Session) View() GridView {
	g := make(GridView, s.Field.Width*s.Field.Height)
	for row := range s.Field.Height {
		for col := range s.Field.Width {
			c := ai.Cell{Row: row, Col: col}
			i := row*s.Field.Width + col
			switch {
			case s.Status == Lost && c == s.LastMove:
				g[i] = Exploded
			case s.Agent.Moves.Has(c):
				g[i] = CellView(s.Field.NeighborMineCount(c))
			case s.Field.Flags.Has(c):
				g[i] = Flagged
			default:
				g[i] = Unknown
			}
		}
	}
	return g
}
