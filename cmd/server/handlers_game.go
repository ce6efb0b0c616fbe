package main

import (
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5"

	"github.com/akarpov/minesweeper-ai/internal/ai"
	"github.com/akarpov/minesweeper-ai/internal/game"
	"github.com/akarpov/minesweeper-ai/internal/repository"
)

var (
	dec = schema.NewDecoder()
	rnd = rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(),
		new(maphash.Hash).Sum64(),
	))
)

func init() {
	dec.IgnoreUnknownKeys(true)
}

type NewGameParams struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

type PosParams struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func handleNewGame(w http.ResponseWriter, r *http.Request) {
	var params NewGameParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	sess, err := game.NewSession(
		params.Width, params.Height, params.MineCount, rnd,
	)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}
	var playerId *int
	if claims, ok := playerClaims(r); ok {
		log.Debug("creating session for player ", claims.Username)
		playerId = &claims.PlayerId
		if err := jwt.RefreshCookies(w, *claims); err != nil {
			log.Error(err)
		}
	} else {
		log.Debug("creating anonymous session")
	}
	session, err := pg.CreateGameSession(r.Context(), playerId, sess)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

// fetchSession loads the session named by the {id} path value, replying
// with an appropriate status code when it cannot.
func fetchSession(w http.ResponseWriter, r *http.Request) *repository.GameSession {
	sessionId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil
	}
	session, err := pg.GetGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return nil
	}
	session.Session.SetRand(rnd)
	return session
}

func finishIfOver(session *repository.GameSession) {
	if session.Session.Status != game.Playing && session.EndedAt.IsZero() {
		session.EndedAt = time.Now().UTC()
	}
}

func saveAndSend(w http.ResponseWriter, r *http.Request, session *repository.GameSession) {
	finishIfOver(session)
	if err := pg.UpdateGameSession(r.Context(), session); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleGetGame(w http.ResponseWriter, r *http.Request) {
	session := fetchSession(w, r)
	if session == nil {
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleOpen(w http.ResponseWriter, r *http.Request) {
	var posParams PosParams
	if err := dec.Decode(&posParams, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session := fetchSession(w, r)
	if session == nil {
		return
	}
	cell := ai.Cell{Row: posParams.Row, Col: posParams.Col}
	if !session.Session.Field.InBounds(cell) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := session.Session.Open(cell); err != nil &&
		!errors.Is(err, game.ErrGameOver) {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	saveAndSend(w, r, session)
}

func handleFlag(w http.ResponseWriter, r *http.Request) {
	var posParams PosParams
	if err := dec.Decode(&posParams, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session := fetchSession(w, r)
	if session == nil {
		return
	}
	cell := ai.Cell{Row: posParams.Row, Col: posParams.Col}
	if !session.Session.Field.InBounds(cell) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session.Session.Field.Flag(cell)
	saveAndSend(w, r, session)
}

// handleHint reports a cell the AI can prove safe. A 204 means knowledge
// is exhausted, not that the request failed.
func handleHint(w http.ResponseWriter, r *http.Request) {
	session := fetchSession(w, r)
	if session == nil {
		return
	}
	cell, err := session.Session.Agent.SafeMove()
	if errors.Is(err, ai.ErrNoMoveAvailable) {
		w.WriteHeader(http.StatusNoContent)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, cell); err != nil {
		log.Error(err)
	}
}

func handleStep(w http.ResponseWriter, r *http.Request) {
	session := fetchSession(w, r)
	if session == nil {
		return
	}
	if _, err := session.Session.Step(); err != nil &&
		!errors.Is(err, ai.ErrNoMoveAvailable) &&
		!errors.Is(err, game.ErrGameOver) {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	saveAndSend(w, r, session)
}

func handleSolve(w http.ResponseWriter, r *http.Request) {
	session := fetchSession(w, r)
	if session == nil {
		return
	}
	field := session.Session.Field
	maxSteps := field.Width * field.Height * 2
	if _, err := session.Session.Play(maxSteps); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	saveAndSend(w, r, session)
}

func handleGetRecords(w http.ResponseWriter, r *http.Request) {
	records, err := pg.GetGameRecords(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, records); err != nil {
		log.Error(err)
	}
}

func handleGetOwnRecords(w http.ResponseWriter, r *http.Request) {
	claims, ok := playerClaims(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	records, err := pg.GetGameRecords(
		r.Context(), repository.GameRecordsForPlayer(claims.Username),
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, records); err != nil {
		log.Error(err)
	}
}
