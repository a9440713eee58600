package main

import (
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/akarpov/minefield/internal/mines"
)

var (
	dec = schema.NewDecoder()
	rnd = rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(),
		new(maphash.Hash).Sum64(),
	))
	sessions = newSessionRegistry(rnd)
)

func init() {
	dec.IgnoreUnknownKeys(true)
}

type PosParams struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

// MoveResponse carries the updated session plus the outcome of the move
// that produced it, so a client can animate just the changed cells.
type MoveResponse struct {
	Session *GameSession        `json:"session"`
	Reveal  *mines.RevealResult `json:"reveal,omitempty"`
	Flag    *mines.FlagResult   `json:"flag,omitempty"`
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func handleNewGame(w http.ResponseWriter, r *http.Request) {
	var params GameParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session, err := sessions.create(params)
	if err != nil {
		var (
			dims mines.InvalidDimensionsError
			many mines.TooManyMinesError
		)
		if errors.As(err, &dims) || errors.As(err, &many) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(err.Error()))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	log.WithFields(logrus.Fields{
		"session": session.SessionId,
		"params":  params,
	}).Info("new game")

	session.mu.Lock()
	defer session.mu.Unlock()
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

// fetchSession resolves the {id} path value, writing the error status itself
// when the session cannot be served.
func fetchSession(w http.ResponseWriter, r *http.Request) (*GameSession, bool) {
	sessionId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}
	session, ok := sessions.get(sessionId)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	return session, true
}

func handleGetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := fetchSession(w, r)
	if !ok {
		return
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleOpen(w http.ResponseWriter, r *http.Request) {
	var pos PosParams
	if err := dec.Decode(&pos, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session, ok := fetchSession(w, r)
	if !ok {
		return
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.over() {
		w.WriteHeader(http.StatusConflict)
		return
	}
	result := session.Game.Reveal(mines.Point{X: pos.X, Y: pos.Y})
	session.finishIfOver()
	payload := MoveResponse{Session: session, Reveal: &result}
	if _, err := sendJSON(w, payload); err != nil {
		log.Error(err)
	}
}

func handleFlag(w http.ResponseWriter, r *http.Request) {
	var pos PosParams
	if err := dec.Decode(&pos, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session, ok := fetchSession(w, r)
	if !ok {
		return
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.over() {
		w.WriteHeader(http.StatusConflict)
		return
	}
	result := session.Game.ToggleFlag(mines.Point{X: pos.X, Y: pos.Y})
	payload := MoveResponse{Session: session, Flag: &result}
	if _, err := sendJSON(w, payload); err != nil {
		log.Error(err)
	}
}

func handleRestart(w http.ResponseWriter, r *http.Request) {
	session, ok := fetchSession(w, r)
	if !ok {
		return
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := sessions.restart(session); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	log.WithFields(logrus.Fields{"session": session.SessionId}).Info("restarted game")
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}
