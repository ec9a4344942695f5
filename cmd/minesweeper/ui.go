package main

import (
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/04pril/minefield/internal/game"
	"github.com/04pril/minefield/internal/logger"
	"github.com/04pril/minefield/internal/visible"
)

const (
	cellSize          = 24
	outerPadding      = 12
	topPanelHeight    = 68
	touchMoveSlopPx   = 10
	touchLongPressDur = 360 * time.Millisecond
	maxTimer          = 999
)

type point struct{ Row, Col int }

type touchStart struct {
	X, Y         int
	LastX, LastY int
	At           time.Time
}

type customConfig struct {
	Rows, Cols, Mines int
	field             int
}

// ui is the ebiten.Game: it turns input into moves on a game.Game and
// draws the visible field.
type ui struct {
	round         *game.Game
	rng           *rand.Rand
	themeIdx      int
	allowQuestion bool
	showHelp      bool
	showCustom    bool
	custom        customConfig
	hint          *point
	timerStart    time.Time
	pauseStarted  time.Time
	paused        bool
	elapsed       int
	faceRect      image.Rectangle
	fontMain      font.Face
	touchStarts   map[ebiten.TouchID]touchStart
}

func newUI(d game.Difficulty, rng *rand.Rand, themeIdx int, allowQuestion bool) (*ui, error) {
	u := &ui{
		rng:           rng,
		themeIdx:      themeIdx,
		allowQuestion: allowQuestion,
		fontMain:      basicfont.Face7x13,
		custom:        customConfig{Rows: 20, Cols: 24, Mines: 99},
		touchStarts:   map[ebiten.TouchID]touchStart{},
	}
	if err := u.setDifficulty(d); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *ui) setDifficulty(d game.Difficulty) error {
	round, err := game.New(d, u.rng)
	if err != nil {
		return fmt.Errorf("new %s game: %w", d.Name, err)
	}
	u.round = round
	u.restart()
	u.resizeWindow()
	logger.With(logrus.Fields{"difficulty": d.Name, "rows": d.Rows, "cols": d.Cols, "mines": d.Mines}).Info("new board")
	return nil
}

func (u *ui) restart() {
	u.round.Restart()
	u.timerStart = time.Time{}
	u.pauseStarted = time.Time{}
	u.paused = false
	u.elapsed = 0
	u.hint = nil
}

func (u *ui) view() *visible.VisibleField { return u.round.View() }

func (u *ui) resizeWindow() {
	w, h := u.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(fmt.Sprintf("Go Minesweeper - %s", u.round.Difficulty.Name))
}

func (u *ui) Layout(_, _ int) (int, int) {
	d := u.round.Difficulty
	return d.Cols*cellSize + outerPadding*2, topPanelHeight + d.Rows*cellSize + outerPadding*2
}

func (u *ui) cellAt(mx, my int) (point, bool) {
	bx0, by0 := outerPadding, topPanelHeight
	if mx < bx0 || my < by0 {
		return point{}, false
	}
	p := point{Row: (my - by0) / cellSize, Col: (mx - bx0) / cellSize}
	if !u.round.Field().InRange(p.Row, p.Col) {
		return point{}, false
	}
	return p, true
}

func (u *ui) playing() bool {
	return !u.paused && !u.view().IsGameOver()
}

func (u *ui) handleRevealAt(mx, my int) {
	if pointInRect(mx, my, u.faceRect) {
		u.restart()
		return
	}
	if u.showHelp {
		u.showHelp = false
		return
	}
	if !u.playing() {
		return
	}
	p, ok := u.cellAt(mx, my)
	if !ok {
		return
	}

	if u.view().IsUncovered(p.Row, p.Col) {
		u.round.Chord(p.Row, p.Col)
	} else if u.view().Status(p.Row, p.Col) != visible.Flagged {
		u.round.Uncover(p.Row, p.Col)
	}
	if u.timerStart.IsZero() && u.round.Placed() {
		u.timerStart = time.Now()
	}
	u.hint = nil
	if u.view().IsGameOver() {
		u.logOutcome()
	}
}

func (u *ui) handleMarkAt(mx, my int) {
	if !u.playing() || u.showHelp {
		return
	}
	p, ok := u.cellAt(mx, my)
	if !ok {
		return
	}
	u.round.CycleGuess(p.Row, p.Col, u.allowQuestion)
	u.hint = nil
}

func (u *ui) logOutcome() {
	d := u.round.Difficulty
	logger.With(logrus.Fields{
		"difficulty": d.Name,
		"outcome":    u.view().Outcome().String(),
		"seconds":    u.elapsed,
	}).Info("game over")
}

func (u *ui) handleTouchInput() {
	for _, id := range ebiten.TouchIDs() {
		x, y := ebiten.TouchPosition(id)
		st, ok := u.touchStarts[id]
		if !ok {
			u.touchStarts[id] = touchStart{X: x, Y: y, LastX: x, LastY: y, At: time.Now()}
			continue
		}
		st.LastX, st.LastY = x, y
		u.touchStarts[id] = st
	}

	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		st, ok := u.touchStarts[id]
		if !ok {
			continue
		}
		delete(u.touchStarts, id)

		if absInt(st.LastX-st.X) > touchMoveSlopPx || absInt(st.LastY-st.Y) > touchMoveSlopPx {
			continue
		}
		if time.Since(st.At) >= touchLongPressDur {
			u.handleMarkAt(st.LastX, st.LastY)
			continue
		}
		u.handleRevealAt(st.LastX, st.LastY)
	}
}

func (u *ui) handleGlobalKeys() {
	pressed := inpututil.IsKeyJustPressed
	if pressed(ebiten.KeyN) {
		u.restart()
	}
	for i, keys := range [][2]ebiten.Key{{ebiten.Key1, ebiten.KeyB}, {ebiten.Key2, ebiten.KeyI}, {ebiten.Key3, ebiten.KeyE}} {
		if pressed(keys[0]) || pressed(keys[1]) {
			u.changeDifficulty(game.Presets[i])
		}
	}
	if pressed(ebiten.KeyT) {
		u.themeIdx = (u.themeIdx + 1) % len(themes)
	}
	if pressed(ebiten.KeyQ) {
		u.allowQuestion = !u.allowQuestion
	}
	if pressed(ebiten.KeyF1) {
		u.showHelp = !u.showHelp
		u.showCustom = false
	}
	if pressed(ebiten.KeyC) {
		u.showCustom = !u.showCustom
		u.showHelp = false
	}
	if pressed(ebiten.KeyP) && !u.view().IsGameOver() {
		u.togglePause()
	}
	if pressed(ebiten.KeyH) && u.playing() {
		if r, c, ok := u.round.Hint(u.rng); ok {
			u.hint = &point{Row: r, Col: c}
		}
	}
}

func (u *ui) changeDifficulty(d game.Difficulty) {
	if err := u.setDifficulty(d); err != nil {
		logger.With(logrus.Fields{"err": err}).Warn("change difficulty")
	}
}

func (u *ui) togglePause() {
	u.paused = !u.paused
	if u.paused {
		u.pauseStarted = time.Now()
		return
	}
	if !u.pauseStarted.IsZero() && !u.timerStart.IsZero() {
		u.timerStart = u.timerStart.Add(time.Since(u.pauseStarted))
	}
	u.pauseStarted = time.Time{}
}

func (u *ui) handleCustomDialog() {
	pressed := inpututil.IsKeyJustPressed
	if pressed(ebiten.KeyEscape) {
		u.showCustom = false
		return
	}
	if pressed(ebiten.KeyLeft) {
		u.custom.field = (u.custom.field + 2) % 3
	}
	if pressed(ebiten.KeyRight) {
		u.custom.field = (u.custom.field + 1) % 3
	}

	delta := 0
	if pressed(ebiten.KeyUp) {
		delta = 1
	}
	if pressed(ebiten.KeyDown) {
		delta = -1
	}
	if delta != 0 {
		u.custom = u.custom.adjust(delta)
	}

	if pressed(ebiten.KeyEnter) {
		u.changeDifficulty(game.Difficulty{
			Name:  "Custom",
			Rows:  u.custom.Rows,
			Cols:  u.custom.Cols,
			Mines: u.custom.Mines,
		})
		u.showCustom = false
	}
}

// adjust moves the selected field by delta and keeps the mine count
// below a third of the board.
func (c customConfig) adjust(delta int) customConfig {
	switch c.field {
	case 0:
		c.Cols = clamp(c.Cols+delta, 9, 60)
	case 1:
		c.Rows = clamp(c.Rows+delta, 9, 32)
	case 2:
		c.Mines = c.Mines + delta
	}
	c.Mines = clamp(c.Mines, 10, game.MaxMines(c.Rows, c.Cols))
	return c
}

func (u *ui) Update() error {
	u.handleGlobalKeys()

	if u.showCustom {
		u.handleCustomDialog()
		return nil
	}

	if u.playing() && !u.timerStart.IsZero() {
		u.elapsed = min(int(time.Since(u.timerStart).Seconds()), maxTimer)
	}

	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		u.handleRevealAt(mx, my)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		u.handleMarkAt(mx, my)
	}

	u.handleTouchInput()
	return nil
}

func pointInRect(x, y int, r image.Rectangle) bool {
	return x >= r.Min.X && x <= r.Max.X && y >= r.Min.Y && y <= r.Max.Y
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
