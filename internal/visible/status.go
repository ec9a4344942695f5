package visible

import "strconv"

// Status is what the player sees on one square. Values 0 through 8 are
// uncovered squares carrying their adjacent mine count.
type Status int

const (
	Covered    Status = -1
	Flagged    Status = -2
	Questioned Status = -3

	// end of a lost game
	UnflaggedMine Status = 9
	WrongFlag     Status = 10
	DetonatedMine Status = 11

	OutOfRange Status = -100
)

// Revealed is the status of an uncovered square with n adjacent mines.
func Revealed(n int) Status { return Status(n) }

func (s Status) IsRevealed() bool { return s >= 0 && s <= 8 }

// Count returns the adjacent mine count of a revealed square, or -1.
func (s Status) Count() int {
	if s.IsRevealed() {
		return int(s)
	}
	return -1
}

func (s Status) String() string {
	switch s {
	case Covered:
		return "covered"
	case Flagged:
		return "flagged"
	case Questioned:
		return "questioned"
	case UnflaggedMine:
		return "mine"
	case WrongFlag:
		return "wrong-flag"
	case DetonatedMine:
		return "detonated"
	case OutOfRange:
		return "out-of-range"
	}
	if s.IsRevealed() {
		return strconv.Itoa(int(s))
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Rune is a one-character drawing of the status for text boards.
func (s Status) Rune() rune {
	switch {
	case s == Covered:
		return '#'
	case s == Flagged:
		return 'F'
	case s == Questioned:
		return '?'
	case s == UnflaggedMine:
		return '*'
	case s == WrongFlag:
		return 'X'
	case s == DetonatedMine:
		return '@'
	case s == 0:
		return '.'
	case s.IsRevealed():
		return rune('0' + s)
	}
	return ' '
}

// Outcome is the state of a whole game.
type Outcome int

const (
	Playing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "playing"
}
