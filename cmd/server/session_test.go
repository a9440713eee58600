package main

import (
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/minefield/internal/mines"
)

func testRegistry() *sessionRegistry {
	return newSessionRegistry(rand.New(rand.NewPCG(1, 2)))
}

func TestSessionRegistry(t *testing.T) {
	sr := testRegistry()

	s, err := sr.create(GameParams{Width: 4, Height: 4, MineCount: 2})
	require.NoError(t, err)

	got, ok := sr.get(s.SessionId)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = sr.get(999)
	assert.False(t, ok)
}

func TestSessionRegistryRejectsBadParams(t *testing.T) {
	sr := testRegistry()

	_, err := sr.create(GameParams{Width: 0, Height: 4, MineCount: 1})
	var dims mines.InvalidDimensionsError
	assert.ErrorAs(t, err, &dims)

	_, err = sr.create(GameParams{Width: 2, Height: 2, MineCount: 5})
	var many mines.TooManyMinesError
	assert.ErrorAs(t, err, &many)
}

func TestSafeStartPreOpensOneCell(t *testing.T) {
	sr := testRegistry()

	s, err := sr.create(GameParams{Width: 9, Height: 9, MineCount: 10, SafeStart: true})
	require.NoError(t, err)

	visible := 0
	for _, row := range s.Game.Grid.Render(false) {
		visible += len(row) - strings.Count(row, "#")
	}
	assert.Equal(t, 1, visible)
	assert.Equal(t, mines.Playing, s.Game.Status())
}

func TestRestartReplacesBoard(t *testing.T) {
	sr := testRegistry()

	s, err := sr.create(GameParams{Width: 2, Height: 2, MineCount: 0})
	require.NoError(t, err)
	require.NoError(t, executeCommand(s, "o 0 0"))
	require.True(t, s.finishIfOver())

	require.NoError(t, sr.restart(s))
	assert.Equal(t, mines.Playing, s.Game.Status())
	assert.True(t, s.EndedAt.IsZero())
	assert.Equal(t, []string{"##", "##"}, s.Game.Grid.Render(false))
}

func TestSessionMarshalJSON(t *testing.T) {
	s := testSession(t, GameParams{Width: 2, Height: 1, MineCount: 0})

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var dto GameSessionJSON
	require.NoError(t, json.Unmarshal(b, &dto))
	assert.Equal(t, "1", dto.SessionId)
	assert.Equal(t, 2, dto.Width)
	assert.Equal(t, 1, dto.Height)
	assert.Equal(t, "playing", dto.Status)
	assert.Equal(t, []string{"##"}, dto.Grid)
	assert.Nil(t, dto.EndedAt)
}

func TestSessionMarshalExposesMinesAfterLoss(t *testing.T) {
	// saturated board: the first reveal has to hit a mine
	s := testSession(t, GameParams{Width: 2, Height: 1, MineCount: 2})

	res := s.Game.Reveal(mines.Point{X: 0, Y: 0})
	require.Equal(t, mines.RevealExploded, res.Outcome)
	require.True(t, s.finishIfOver())

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var dto GameSessionJSON
	require.NoError(t, json.Unmarshal(b, &dto))
	assert.Equal(t, "lost", dto.Status)
	assert.Equal(t, []string{"!!"}, dto.Grid)
	require.NotNil(t, dto.EndedAt)
}
