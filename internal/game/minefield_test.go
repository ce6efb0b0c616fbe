package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/minesweeper-ai/internal/ai"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// fieldWithMines builds a field with an exact hand-picked layout.
func fieldWithMines(width, height int, mines ...ai.Cell) *Minefield {
	f := &Minefield{
		Width:     width,
		Height:    height,
		MineCount: len(mines),
		Grid:      make([]bool, width*height),
		Flags:     make(ai.CellSet),
	}
	for _, c := range mines {
		f.Grid[c.Row*width+c.Col] = true
	}
	return f
}

func TestNewMinefield(t *testing.T) {
	f, err := NewMinefield(4, 4, 5, testRand())
	require.NoError(t, err)

	placed := 0
	for _, mine := range f.Grid {
		if mine {
			placed++
		}
	}
	assert.Equal(t, 5, placed)
}

func TestNewMinefieldInvalid(t *testing.T) {
	tests := []struct {
		name                     string
		width, height, mineCount int
	}{
		{"zero width", 0, 4, 1},
		{"zero height", 4, 0, 1},
		{"negative mines", 4, 4, -1},
		{"too many mines", 4, 4, 17},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewMinefield(
				test.width, test.height, test.mineCount, testRand(),
			)
			assert.Error(t, err)
		})
	}
}

func TestNeighborMineCount(t *testing.T) {
	f := fieldWithMines(3, 3, ai.Cell{Row: 0, Col: 0}, ai.Cell{Row: 2, Col: 2})

	tests := []struct {
		cell ai.Cell
		want int
	}{
		{ai.Cell{Row: 0, Col: 0}, 0}, // the cell itself does not count
		{ai.Cell{Row: 1, Col: 1}, 2},
		{ai.Cell{Row: 0, Col: 1}, 1},
		{ai.Cell{Row: 2, Col: 0}, 0},
		{ai.Cell{Row: 1, Col: 2}, 1},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, f.NeighborMineCount(test.cell),
			"count at %s", test.cell)
	}
}

func TestWon(t *testing.T) {
	mine := ai.Cell{Row: 1, Col: 1}
	f := fieldWithMines(2, 2, mine)

	assert.False(t, f.Won())

	f.Flag(ai.Cell{Row: 0, Col: 0}) // wrong flag blocks the win
	assert.False(t, f.Won())

	f = fieldWithMines(2, 2, mine)
	f.Flag(mine)
	assert.True(t, f.Won())
}
