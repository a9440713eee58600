package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allPointsExcept(g *Grid, except ...Point) []Point {
	skip := make(map[Point]bool, len(except))
	for _, p := range except {
		skip[p] = true
	}
	var ps []Point
	for i := range g.cells {
		if p := g.pointAt(i); !skip[p] {
			ps = append(ps, p)
		}
	}
	return ps
}

func TestRevealCascade(t *testing.T) {
	// 3x3, single mine at (2,2): (0,0) is empty, the mine's neighbors carry
	// a 1, one click clears the whole board.
	g := mustGrid(t, 3, 3, Point{2, 2})
	game := NewGame(g)

	c, ok := g.CellAt(Point{0, 0})
	require.True(t, ok)
	require.Equal(t, Empty, c.Kind)
	for _, p := range []Point{{1, 1}, {1, 2}, {2, 1}} {
		c, ok := g.CellAt(p)
		require.True(t, ok)
		require.Equal(t, Numbered, c.Kind)
		require.Equal(t, 1, c.Count)
	}

	res := game.Reveal(Point{0, 0})
	require.Equal(t, RevealOpened, res.Outcome)
	assert.ElementsMatch(t, allPointsExcept(g, Point{2, 2}), res.Revealed)
	assert.Nil(t, res.Mine)

	assert.True(t, g.AllCleared())
	assert.True(t, game.CheckWin())
	assert.Equal(t, Won, game.Status())
}

func TestRevealStopsAtNumberedBorder(t *testing.T) {
	// 5x1 row with a mine at the far end: the cascade opens the empty run
	// and the bordering 1, and nothing past it.
	g := mustGrid(t, 5, 1, Point{4, 0})
	game := NewGame(g)

	res := game.Reveal(Point{0, 0})
	require.Equal(t, RevealOpened, res.Outcome)
	assert.ElementsMatch(t,
		[]Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		res.Revealed,
	)
	c, _ := g.CellAt(Point{4, 0})
	assert.True(t, c.Covered)
}

func TestRevealMine(t *testing.T) {
	g := mustGrid(t, 3, 3, Point{2, 2})
	game := NewGame(g)

	res := game.Reveal(Point{2, 2})
	require.Equal(t, RevealExploded, res.Outcome)
	require.NotNil(t, res.Mine)
	assert.Equal(t, Point{2, 2}, *res.Mine)
	assert.Equal(t, []Point{{2, 2}}, res.Revealed)
	assert.Equal(t, Lost, game.Status())

	// losing does not turn into a win even with everything else open
	for i := range g.cells {
		g.cells[i].Covered = false
	}
	assert.False(t, game.CheckWin())
	assert.Equal(t, Lost, game.Status())
}

func TestRevealOutOfBounds(t *testing.T) {
	g := mustGrid(t, 3, 3, Point{2, 2})
	game := NewGame(g)

	for _, p := range []Point{{3, 0}, {0, 3}, {-1, 1}, {7, 7}} {
		res := game.Reveal(p)
		assert.Equal(t, RevealUnchanged, res.Outcome)
		assert.Empty(t, res.Revealed)
	}
	for _, c := range g.cells {
		assert.True(t, c.Covered)
	}
	assert.Equal(t, Playing, game.Status())
}

func TestRevealFlagBlocks(t *testing.T) {
	g := mustGrid(t, 3, 3, Point{2, 2})
	game := NewGame(g)

	require.Equal(t, FlagPlaced, game.ToggleFlag(Point{0, 0}).Outcome)
	res := game.Reveal(Point{0, 0})
	assert.Equal(t, RevealUnchanged, res.Outcome)

	c, _ := g.CellAt(Point{0, 0})
	assert.True(t, c.Covered)
	assert.True(t, c.Flagged)
}

func TestRevealUncoveredEmptyIsNoop(t *testing.T) {
	g := mustGrid(t, 3, 3, Point{2, 2})
	game := NewGame(g)
	g.at(Point{0, 0}).Covered = false

	res := game.Reveal(Point{0, 0})
	assert.Equal(t, RevealUnchanged, res.Outcome)
}

func TestChord(t *testing.T) {
	// mine at (0,0); (1,1) reads 1
	g := mustGrid(t, 3, 3, Point{0, 0})
	game := NewGame(g)

	res := game.Reveal(Point{1, 1})
	require.Equal(t, RevealOpened, res.Outcome)
	require.Equal(t, []Point{{1, 1}}, res.Revealed)

	// no flags yet: chord is a no-op
	res = game.Reveal(Point{1, 1})
	assert.Equal(t, RevealUnchanged, res.Outcome)

	require.Equal(t, FlagPlaced, game.ToggleFlag(Point{0, 0}).Outcome)
	res = game.Reveal(Point{1, 1})
	require.Equal(t, RevealOpened, res.Outcome)
	assert.ElementsMatch(t,
		allPointsExcept(g, Point{0, 0}, Point{1, 1}),
		res.Revealed,
	)
	assert.True(t, game.CheckWin())
}

func TestChordWrongFlagHitsMine(t *testing.T) {
	// flag count matches the number but sits on a safe cell, so the chord
	// cascades into the mine like any direct reveal would
	g := mustGrid(t, 3, 3, Point{0, 0})
	game := NewGame(g)

	require.Equal(t, RevealOpened, game.Reveal(Point{1, 1}).Outcome)
	require.Equal(t, FlagPlaced, game.ToggleFlag(Point{1, 0}).Outcome)

	res := game.Reveal(Point{1, 1})
	require.Equal(t, RevealExploded, res.Outcome)
	require.NotNil(t, res.Mine)
	assert.Equal(t, Point{0, 0}, *res.Mine)
	assert.Equal(t, Lost, game.Status())

	// the flagged safe cell stays covered
	c, _ := g.CellAt(Point{1, 0})
	assert.True(t, c.Covered)
	assert.True(t, c.Flagged)
}

func TestToggleFlag(t *testing.T) {
	g := mustGrid(t, 3, 3, Point{2, 2})
	game := NewGame(g)

	res := game.ToggleFlag(Point{1, 1})
	assert.Equal(t, FlagPlaced, res.Outcome)
	assert.Equal(t, Point{1, 1}, res.Pos)

	res = game.ToggleFlag(Point{1, 1})
	assert.Equal(t, FlagRemoved, res.Outcome)
	c, _ := g.CellAt(Point{1, 1})
	assert.False(t, c.Flagged)
	assert.True(t, c.Covered)

	// uncovered cells cannot be flagged
	game.Reveal(Point{0, 0})
	assert.Equal(t, FlagUnchanged, game.ToggleFlag(Point{0, 0}).Outcome)

	assert.Equal(t, FlagUnchanged, game.ToggleFlag(Point{-2, 5}).Outcome)
}

func TestApplySafeStart(t *testing.T) {
	g := mustGrid(t, 4, 4, Point{0, 0})
	game := NewGame(g)

	p, ok := game.ApplySafeStart(testRand())
	require.True(t, ok)

	c, found := g.CellAt(p)
	require.True(t, found)
	assert.Equal(t, Empty, c.Kind)
	assert.False(t, c.Covered)

	// pre-uncovering must not cascade
	opened := 0
	for _, c := range g.cells {
		if !c.Covered {
			opened++
		}
	}
	assert.Equal(t, 1, opened)
}

func TestApplySafeStartNoEmptyCells(t *testing.T) {
	g := mustGrid(t, 2, 2, Point{0, 0})
	game := NewGame(g)

	// every safe cell borders the mine, nothing qualifies
	_, ok := game.ApplySafeStart(testRand())
	assert.False(t, ok)
}

func TestCheckWinIsSeparateFromReveal(t *testing.T) {
	g := mustGrid(t, 2, 1, Point{1, 0})
	game := NewGame(g)

	res := game.Reveal(Point{0, 0})
	require.Equal(t, RevealOpened, res.Outcome)
	assert.Equal(t, Playing, game.Status(), "reveal alone must not transition")
	assert.True(t, game.CheckWin())
	assert.Equal(t, Won, game.Status())
}
