// Package visible tracks what the player can see of a minefield and
// applies the player's moves to it.
package visible

import (
	"strings"

	"github.com/04pril/minefield/internal/minefield"
)

// VisibleField is the player's view over a MineField. It reads the
// field but never changes it.
type VisibleField struct {
	field      *minefield.MineField
	rows, cols int
	state      [][]Status
	guesses    int
	gameOver   bool
	lost       bool
}

// New returns a view with every square covered, no guesses, game running.
func New(field *minefield.MineField) *VisibleField {
	v := &VisibleField{
		field: field,
		rows:  field.Rows(),
		cols:  field.Cols(),
	}
	v.state = make([][]Status, v.rows)
	for r := range v.state {
		v.state[r] = make([]Status, v.cols)
	}
	v.Reset()
	return v
}

// Reset puts the view back to its initial state. The field is untouched.
func (v *VisibleField) Reset() {
	for r := range v.state {
		for c := range v.state[r] {
			v.state[r][c] = Covered
		}
	}
	v.guesses = 0
	v.gameOver = false
	v.lost = false
}

func (v *VisibleField) Field() *minefield.MineField { return v.field }

// Status returns the status of (row, col), or OutOfRange.
func (v *VisibleField) Status(row, col int) Status {
	if !v.field.InRange(row, col) {
		return OutOfRange
	}
	return v.state[row][col]
}

// MinesLeft is the mine count minus the flags placed. It goes negative
// when the player flags more squares than there are mines.
func (v *VisibleField) MinesLeft() int {
	return v.field.Mines() - v.guesses
}

func (v *VisibleField) IsGameOver() bool { return v.gameOver }

func (v *VisibleField) Outcome() Outcome {
	switch {
	case !v.gameOver:
		return Playing
	case v.lost:
		return Lost
	}
	return Won
}

// IsUncovered reports whether (row, col) shows an adjacent mine count.
func (v *VisibleField) IsUncovered(row, col int) bool {
	return v.Status(row, col).IsRevealed()
}

// CycleGuess moves a covered square through flagged and questioned and
// back to covered. Uncovered squares and finished games are left alone.
func (v *VisibleField) CycleGuess(row, col int) {
	if v.gameOver || !v.field.InRange(row, col) {
		return
	}
	switch v.state[row][col] {
	case Covered:
		v.state[row][col] = Flagged
		v.guesses++
	case Flagged:
		v.state[row][col] = Questioned
		v.guesses--
	case Questioned:
		v.state[row][col] = Covered
	}
}

// Uncover opens (row, col) and returns false iff it held a mine, which
// ends the game. A square with no adjacent mines opens its neighbours
// too, stopping at flagged squares. Uncovering the last safe square
// wins the game and flags the remaining mines.
//
// Off-field coordinates and finished games are ignored and return true.
func (v *VisibleField) Uncover(row, col int) bool {
	if v.gameOver || !v.field.InRange(row, col) {
		return true
	}
	if v.field.HasMine(row, col) {
		v.lose(row, col)
		return false
	}
	v.fill(row, col)
	if v.allDone() {
		v.win()
	}
	return true
}

// Chord uncovers the covered neighbours of a revealed square once the
// player has flagged as many neighbours as the square's count. It
// returns false if one of them held a mine.
func (v *VisibleField) Chord(row, col int) bool {
	if v.gameOver {
		return true
	}
	n := v.Status(row, col).Count()
	if n <= 0 {
		return true
	}
	flags := 0
	v.around(row, col, func(r, c int) {
		if v.state[r][c] == Flagged {
			flags++
		}
	})
	if flags != n {
		return true
	}

	safe := true
	v.around(row, col, func(r, c int) {
		if !safe || v.gameOver {
			return
		}
		if s := v.state[r][c]; s == Covered || s == Questioned {
			safe = v.Uncover(r, c)
		}
	})
	return safe
}

func (v *VisibleField) around(row, col int, fn func(r, c int)) {
	for r := max(row-1, 0); r <= min(row+1, v.rows-1); r++ {
		for c := max(col-1, 0); c <= min(col+1, v.cols-1); c++ {
			if r != row || c != col {
				fn(r, c)
			}
		}
	}
}

type point struct{ r, c int }

// fill opens the region around (row, col). Only covered and questioned
// squares are opened, so each square is visited once and flags block.
func (v *VisibleField) fill(row, col int) {
	stack := []point{{row, col}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s := v.state[p.r][p.c]; s != Covered && s != Questioned {
			continue
		}
		n := v.field.AdjacentMines(p.r, p.c)
		v.state[p.r][p.c] = Revealed(n)
		if n != 0 {
			continue
		}
		v.around(p.r, p.c, func(r, c int) {
			if s := v.state[r][c]; s == Covered || s == Questioned {
				stack = append(stack, point{r, c})
			}
		})
	}
}

// allDone reports whether every safe square is open. A flag or question
// mark left on a safe square blocks the win.
func (v *VisibleField) allDone() bool {
	for r := range v.state {
		for c, s := range v.state[r] {
			if s.IsRevealed() {
				continue
			}
			if !v.field.HasMine(r, c) {
				return false
			}
		}
	}
	return true
}

func (v *VisibleField) win() {
	for r := range v.state {
		for c, s := range v.state[r] {
			if v.field.HasMine(r, c) && s != Flagged {
				v.state[r][c] = Flagged
				v.guesses++
			}
		}
	}
	v.gameOver = true
}

// lose shows the board as it ends: the detonated mine, mines that were
// never flagged, and flags placed on safe squares.
func (v *VisibleField) lose(row, col int) {
	for r := range v.state {
		for c, s := range v.state[r] {
			mine := v.field.HasMine(r, c)
			switch {
			case r == row && c == col:
				if s == Flagged {
					v.guesses--
				}
				v.state[r][c] = DetonatedMine
			case s == Flagged && !mine:
				v.state[r][c] = WrongFlag
				v.guesses--
			case (s == Covered || s == Questioned) && mine:
				v.state[r][c] = UnflaggedMine
			}
		}
	}
	v.gameOver = true
	v.lost = true
}

// Lines draws the view one row per line using Status.Rune.
func (v *VisibleField) Lines() []string {
	out := make([]string, v.rows)
	var sb strings.Builder
	for r := range v.state {
		sb.Reset()
		for _, s := range v.state[r] {
			sb.WriteRune(s.Rune())
		}
		out[r] = sb.String()
	}
	return out
}
