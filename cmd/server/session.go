package main

import (
	"encoding/json"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/akarpov/minefield/internal/mines"
)

type GameParams struct {
	Width     int  `schema:"width,required" json:"width"`
	Height    int  `schema:"height,required" json:"height"`
	MineCount int  `schema:"mine_count,required" json:"mine_count"`
	SafeStart bool `schema:"safe_start" json:"safe_start"`
}

// GameSession pairs one engine game with its parameters and timing. mu
// serializes every engine call: the engine itself is single-writer and the
// session is the unit of ownership.
type GameSession struct {
	SessionId int
	Params    GameParams
	Game      *mines.Game
	StartedAt time.Time
	EndedAt   time.Time

	mu sync.Mutex
}

// startGame runs the construction sequence: create, seed, optional safe
// start. This is the only place the grid is built.
func startGame(params GameParams, r *rand.Rand) (*mines.Game, error) {
	grid, err := mines.NewGrid(params.Width, params.Height)
	if err != nil {
		return nil, err
	}
	if err := grid.SeedMines(params.MineCount, r); err != nil {
		return nil, err
	}
	game := mines.NewGame(grid)
	if params.SafeStart {
		game.ApplySafeStart(r)
	}
	return game, nil
}

// finishIfOver runs the win check and stamps EndedAt once the game reaches a
// terminal status. Caller must hold the session lock.
func (s *GameSession) finishIfOver() bool {
	s.Game.CheckWin()
	if s.Game.Over() && s.EndedAt.IsZero() {
		s.EndedAt = time.Now().UTC()
	}
	return s.Game.Over()
}

func (s *GameSession) over() bool {
	return s.Game.Over()
}

type GameSessionJSON struct {
	SessionId string   `json:"session_id"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	MineCount int      `json:"mine_count"`
	SafeStart bool     `json:"safe_start"`
	Status    string   `json:"status"`
	Grid      []string `json:"grid"`
	StartedAt int64    `json:"started_at"`
	EndedAt   *int64   `json:"ended_at,omitempty"`
}

// MarshalJSON renders the player view of the session. Mine positions are
// only exposed once the game is over. Caller must hold the session lock.
func (s *GameSession) MarshalJSON() ([]byte, error) {
	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return json.Marshal(GameSessionJSON{
		SessionId: strconv.Itoa(s.SessionId),
		Width:     s.Params.Width,
		Height:    s.Params.Height,
		MineCount: s.Params.MineCount,
		SafeStart: s.Params.SafeStart,
		Status:    s.Game.Status().String(),
		Grid:      s.Game.Grid.Render(s.Game.Over()),
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	})
}

// sessionRegistry keeps live sessions in memory. Games are not persisted:
// a restart of the server forgets them.
type sessionRegistry struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	nextId   int
	sessions map[int]*GameSession
}

func newSessionRegistry(rnd *rand.Rand) *sessionRegistry {
	return &sessionRegistry{
		rnd:      rnd,
		nextId:   1,
		sessions: make(map[int]*GameSession),
	}
}

func (sr *sessionRegistry) create(params GameParams) (*GameSession, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	game, err := startGame(params, sr.rnd)
	if err != nil {
		return nil, err
	}
	session := &GameSession{
		SessionId: sr.nextId,
		Params:    params,
		Game:      game,
		StartedAt: time.Now().UTC(),
	}
	sr.nextId++
	sr.sessions[session.SessionId] = session
	return session, nil
}

func (sr *sessionRegistry) get(id int) (*GameSession, bool) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	session, ok := sr.sessions[id]
	return session, ok
}

// restart replaces the session's grid wholesale from its stored parameters.
// Caller must hold the session lock.
func (sr *sessionRegistry) restart(s *GameSession) error {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	game, err := startGame(s.Params, sr.rnd)
	if err != nil {
		return err
	}
	s.Game = game
	s.StartedAt = time.Now().UTC()
	s.EndedAt = time.Time{}
	return nil
}
