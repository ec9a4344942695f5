package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/04pril/minefield/internal/logger"
	"github.com/04pril/minefield/internal/minefield"
)

type GameHandler struct {
	store   *Store
	maxRows int
	maxCols int
}

func NewGameHandler(store *Store, maxRows, maxCols int) *GameHandler {
	return &GameHandler{store: store, maxRows: maxRows, maxCols: maxCols}
}

func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Post("/games", h.createGame)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", h.getGame)
		r.Delete("/", h.deleteGame)
		r.Post("/uncover", h.uncover)
		r.Post("/guess", h.guess)
		r.Post("/chord", h.chord)
		r.Post("/reset", h.reset)
	})
	r.Get("/healthz", h.health)
}

type createRequest struct {
	Rows  int     `json:"rows"`
	Cols  int     `json:"cols"`
	Mines int     `json:"mines"`
	Seed  *uint64 `json:"seed,omitempty"`
}

type moveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (h *GameHandler) createGame(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Rows > h.maxRows || req.Cols > h.maxCols {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("board larger than %dx%d", h.maxRows, h.maxCols))
		return
	}

	sess, err := h.store.Create(req.Rows, req.Cols, req.Mines, req.Seed)
	switch {
	case errors.Is(err, ErrStoreFull):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case errors.Is(err, minefield.ErrDimensions), errors.Is(err, minefield.ErrTooManyMines):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logger.With(logrus.Fields{"err": err}).Error("create game")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	logger.With(logrus.Fields{
		"game":  sess.ID,
		"rows":  req.Rows,
		"cols":  req.Cols,
		"mines": req.Mines,
	}).Info("game created")
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (h *GameHandler) getGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *GameHandler) deleteGame(w http.ResponseWriter, r *http.Request) {
	if !h.store.Delete(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) uncover(w http.ResponseWriter, r *http.Request) {
	h.applyMove(w, r, (*Session).Uncover)
}

func (h *GameHandler) guess(w http.ResponseWriter, r *http.Request) {
	h.applyMove(w, r, (*Session).CycleGuess)
}

func (h *GameHandler) chord(w http.ResponseWriter, r *http.Request) {
	h.applyMove(w, r, (*Session).Chord)
}

func (h *GameHandler) reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Reset())
}

func (h *GameHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "games": h.store.Len()})
}

func (h *GameHandler) applyMove(w http.ResponseWriter, r *http.Request, fn func(*Session, int, int) Snapshot) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	snap := fn(sess, req.Row, req.Col)
	if snap.GameOver {
		logger.With(logrus.Fields{"game": sess.ID, "outcome": snap.Outcome}).Debug("game over")
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *GameHandler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
	}
	return sess, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.With(logrus.Fields{"err": err}).Warn("write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
