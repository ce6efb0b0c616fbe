package ai

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func snapshot(a *Agent) (moves, safes, mines CellSet, knowledge []*Sentence) {
	knowledge = make([]*Sentence, 0, len(a.Knowledge))
	for _, s := range a.Knowledge {
		knowledge = append(knowledge, NewSentence(s.Cells, s.Count))
	}
	return a.Moves.Clone(), a.Safes.Clone(), a.Mines.Clone(), knowledge
}

func assertUnchanged(
	t *testing.T, a *Agent,
	moves, safes, mines CellSet, knowledge []*Sentence,
) {
	t.Helper()
	assert.True(t, a.Moves.Equal(moves))
	assert.True(t, a.Safes.Equal(safes))
	assert.True(t, a.Mines.Equal(mines))
	require.Len(t, a.Knowledge, len(knowledge))
	for i, s := range knowledge {
		assert.True(t, a.Knowledge[i].Equal(s), "sentence %d differs", i)
	}
}

func TestObserveZeroCount(t *testing.T) {
	// 1x2 board: opening (0,0) with count 0 proves (0,1) safe and
	// leaves no live sentence behind
	a := NewAgent(2, 1, testRand())

	require.NoError(t, a.Observe(Cell{0, 0}, 0))

	assert.True(t, a.Safes.Has(Cell{0, 1}))
	assert.Empty(t, a.Knowledge)
}

func TestObserveBuildsSentence(t *testing.T) {
	a := NewAgent(3, 3, testRand())

	require.NoError(t, a.Observe(Cell{0, 0}, 0))
	// corner neighborhood all safe now
	for _, c := range []Cell{{0, 1}, {1, 0}, {1, 1}} {
		assert.True(t, a.Safes.Has(c))
	}

	require.NoError(t, a.Observe(Cell{1, 1}, 1))
	// the new sentence covers only the still-unknown neighbors
	require.Len(t, a.Knowledge, 1)
	want := NewSentence(
		NewCellSet(Cell{0, 2}, Cell{1, 2}, Cell{2, 0}, Cell{2, 1}, Cell{2, 2}),
		1,
	)
	assert.True(t, a.Knowledge[0].Equal(want))
	// one strict-between sentence classifies nothing on its own
	assert.Empty(t, a.Mines)
}

func TestObserveAllNeighborsMined(t *testing.T) {
	// 2x2 board, count equals neighborhood size: every neighbor is a
	// mine within the same call
	a := NewAgent(2, 2, testRand())

	require.NoError(t, a.Observe(Cell{0, 0}, 3))

	assert.True(t, a.Mines.Equal(NewCellSet(
		Cell{0, 1}, Cell{1, 0}, Cell{1, 1},
	)))
	assert.Empty(t, a.Knowledge)
}

func TestObserveKnownMineAdjustsCount(t *testing.T) {
	// 3x3 board with mines at (0,1), (1,0), (1,1)
	a := NewAgent(3, 3, testRand())
	require.NoError(t, a.Observe(Cell{0, 0}, 3))
	require.True(t, a.Mines.Equal(NewCellSet(
		Cell{0, 1}, Cell{1, 0}, Cell{1, 1},
	)))

	// (0,2) sees two of the known mines; they must lower the effective
	// count instead of entering the new sentence, which leaves
	// {(1,2)} = 0 and proves (1,2) safe immediately
	require.NoError(t, a.Observe(Cell{0, 2}, 2))
	assert.True(t, a.Safes.Has(Cell{1, 2}))
	assert.Empty(t, a.Knowledge)
}

func TestObserveIdempotent(t *testing.T) {
	a := NewAgent(3, 3, testRand())

	require.NoError(t, a.Observe(Cell{1, 1}, 2))
	moves, safes, mines, knowledge := snapshot(a)

	require.NoError(t, a.Observe(Cell{1, 1}, 2))
	assertUnchanged(t, a, moves, safes, mines, knowledge)
}

func TestObserveInvalid(t *testing.T) {
	tests := []struct {
		name  string
		cell  Cell
		count int
	}{
		{"negative count", Cell{0, 0}, -1},
		{"count above neighborhood", Cell{0, 0}, 2},
		{"cell out of bounds", Cell{5, 0}, 0},
		{"negative coordinates", Cell{-1, 0}, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := NewAgent(2, 1, testRand())
			require.NoError(t, a.Observe(Cell{0, 1}, 0))
			moves, safes, mines, knowledge := snapshot(a)

			err := a.Observe(test.cell, test.count)

			var invalid *InvalidObservationError
			require.ErrorAs(t, err, &invalid)
			assertUnchanged(t, a, moves, safes, mines, knowledge)
		})
	}
}

func TestSubsetResolution(t *testing.T) {
	x, y, z := Cell{0, 0}, Cell{0, 1}, Cell{0, 2}

	a := NewAgent(3, 3, testRand())
	a.Knowledge = []*Sentence{
		NewSentence(NewCellSet(x, y), 1),
		NewSentence(NewCellSet(x, y, z), 2),
	}

	a.resolveSubsets()

	// subset law: (B − A, B.count − A.count) is derived
	assert.True(t, a.hasSentence(NewSentence(NewCellSet(z), 1)))

	a.propagate()
	a.purge()
	assert.True(t, a.Mines.Has(z))
}

func TestSubsetResolutionDedup(t *testing.T) {
	x, y, z := Cell{0, 0}, Cell{0, 1}, Cell{0, 2}

	a := NewAgent(3, 3, testRand())
	a.Knowledge = []*Sentence{
		NewSentence(NewCellSet(x, y), 1),
		NewSentence(NewCellSet(x, y, z), 1),
		NewSentence(NewCellSet(z), 0),
	}

	a.resolveSubsets()

	// {z} = 0 already exists and must not be appended again
	count := 0
	for _, s := range a.Knowledge {
		if s.Equal(NewSentence(NewCellSet(z), 0)) {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestPropagateChains(t *testing.T) {
	x, y := Cell{0, 0}, Cell{0, 1}

	// resolving the first sentence is what makes the second conclusive,
	// so a single sweep is not enough
	a := NewAgent(3, 3, testRand())
	a.Knowledge = []*Sentence{
		NewSentence(NewCellSet(x), 1),
		NewSentence(NewCellSet(x, y), 1),
	}

	a.propagate()

	assert.True(t, a.Mines.Has(x))
	assert.True(t, a.Safes.Has(y))
}

func TestConfirmedSetsDisjoint(t *testing.T) {
	// 3x3 board with a single mine at (2,2), observed cell by cell
	observations := []struct {
		cell  Cell
		count int
	}{
		{Cell{0, 0}, 0},
		{Cell{0, 1}, 0},
		{Cell{0, 2}, 0},
		{Cell{1, 0}, 0},
		{Cell{1, 1}, 1},
		{Cell{1, 2}, 1},
		{Cell{2, 0}, 0},
		{Cell{2, 1}, 1},
	}
	a := NewAgent(3, 3, testRand())
	for _, obs := range observations {
		require.NoError(t, a.Observe(obs.cell, obs.count))
		for c := range a.Safes {
			assert.False(t, a.Mines.Has(c), "cell %s both safe and mine", c)
		}
	}
	assert.True(t, a.Mines.Has(Cell{2, 2}))
}

func TestSafeMoveDeterministic(t *testing.T) {
	a := NewAgent(3, 3, testRand())
	require.NoError(t, a.Observe(Cell{0, 0}, 0))

	first, err := a.SafeMove()
	require.NoError(t, err)
	second, err := a.SafeMove()
	require.NoError(t, err)

	// no hidden mutation: repeated calls return the same cell, the
	// lowest by row then column
	assert.Equal(t, first, second)
	assert.Equal(t, Cell{0, 1}, first)
}

func TestSafeMoveExhausted(t *testing.T) {
	a := NewAgent(2, 1, testRand())

	_, err := a.SafeMove()
	assert.ErrorIs(t, err, ErrNoMoveAvailable)

	require.NoError(t, a.Observe(Cell{0, 0}, 0))
	cell, err := a.SafeMove()
	require.NoError(t, err)
	assert.Equal(t, Cell{0, 1}, cell)

	require.NoError(t, a.Observe(Cell{0, 1}, 0))
	_, err = a.SafeMove()
	assert.ErrorIs(t, err, ErrNoMoveAvailable)
}

func TestRandomMove(t *testing.T) {
	a := NewAgent(2, 2, testRand())

	cell, err := a.RandomMove()
	require.NoError(t, err)
	assert.True(t, a.inBounds(cell))

	// exclude played cells and known mines
	a.Moves.Add(Cell{0, 0})
	a.Moves.Add(Cell{0, 1})
	a.Mines.Add(Cell{1, 0})
	cell, err = a.RandomMove()
	require.NoError(t, err)
	assert.Equal(t, Cell{1, 1}, cell)

	a.Moves.Add(Cell{1, 1})
	_, err = a.RandomMove()
	assert.ErrorIs(t, err, ErrNoMoveAvailable)
}
