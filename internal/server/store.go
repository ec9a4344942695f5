package server

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/04pril/minefield/internal/game"
)

var ErrStoreFull = errors.New("too many games in progress")

// Session is one player's game. Its mutex guards the game, which is not
// safe for concurrent use on its own.
type Session struct {
	ID      string
	Created time.Time

	mu   sync.Mutex
	game *game.Game
}

// Store keeps sessions in memory.
type Store struct {
	mu    sync.RWMutex
	games map[string]*Session
	max   int
}

func NewStore(max int) *Store {
	return &Store{games: make(map[string]*Session), max: max}
}

// Create starts a game. Mines are placed on the first uncover, so the
// first square opened is never a mine. A nil seed uses the clock.
func (s *Store) Create(rows, cols, mines int, seed *uint64) (*Session, error) {
	g, err := game.New(game.Difficulty{Name: "api", Rows: rows, Cols: cols, Mines: mines}, nil)
	if err != nil {
		return nil, err
	}
	if seed != nil {
		g.Seed(*seed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.games) >= s.max {
		return nil, fmt.Errorf("%d games: %w", len(s.games), ErrStoreFull)
	}
	sess := &Session{
		ID:      uuid.New().String()[:8],
		Created: time.Now().UTC(),
		game:    g,
	}
	for s.games[sess.ID] != nil {
		sess.ID = uuid.New().String()[:8]
	}
	s.games[sess.ID] = sess
	gamesStarted.Inc()
	return sess, nil
}

func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.games[id]
	return sess, ok
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return false
	}
	delete(s.games, id)
	return true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Snapshot is the JSON form of a session.
type Snapshot struct {
	ID        string   `json:"id"`
	Rows      int      `json:"rows"`
	Cols      int      `json:"cols"`
	Mines     int      `json:"mines"`
	MinesLeft int      `json:"minesLeft"`
	GameOver  bool     `json:"gameOver"`
	Outcome   string   `json:"outcome"`
	Board     []string `json:"board"`
	Safe      *bool    `json:"safe,omitempty"`
}

func (sess *Session) Snapshot() Snapshot {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshotLocked()
}

func (sess *Session) snapshotLocked() Snapshot {
	field, view := sess.game.Field(), sess.game.View()
	return Snapshot{
		ID:        sess.ID,
		Rows:      field.Rows(),
		Cols:      field.Cols(),
		Mines:     field.Mines(),
		MinesLeft: view.MinesLeft(),
		GameOver:  view.IsGameOver(),
		Outcome:   view.Outcome().String(),
		Board:     view.Lines(),
	}
}

// Uncover opens a square; the first one opened places the mines.
func (sess *Session) Uncover(row, col int) Snapshot {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.move("uncover", func() bool { return sess.game.Uncover(row, col) })
}

func (sess *Session) Chord(row, col int) Snapshot {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.move("chord", func() bool { return sess.game.Chord(row, col) })
}

func (sess *Session) CycleGuess(row, col int) Snapshot {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.game.CycleGuess(row, col, true)
	moves.WithLabelValues("guess").Inc()
	return sess.snapshotLocked()
}

// Reset clears the view and the mines; the next uncover places new ones.
func (sess *Session) Reset() Snapshot {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.game.Restart()
	return sess.snapshotLocked()
}

func (sess *Session) move(action string, fn func() bool) Snapshot {
	view := sess.game.View()
	wasOver := view.IsGameOver()
	safe := fn()
	moves.WithLabelValues(action).Inc()
	if !wasOver && view.IsGameOver() {
		gamesFinished.WithLabelValues(view.Outcome().String()).Inc()
	}
	snap := sess.snapshotLocked()
	snap.Safe = &safe
	return snap
}
