// Package game runs one round of minesweeper on top of a minefield and
// its visible view: mines are placed on the first uncover so the first
// square opened is always safe.
package game

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/04pril/minefield/internal/minefield"
	"github.com/04pril/minefield/internal/visible"
)

type Difficulty struct {
	Name  string
	Rows  int
	Cols  int
	Mines int
}

var Presets = []Difficulty{
	{Name: "Beginner", Rows: 9, Cols: 9, Mines: 10},
	{Name: "Intermediate", Rows: 16, Cols: 16, Mines: 40},
	{Name: "Expert", Rows: 16, Cols: 30, Mines: 99},
}

// Preset looks a preset up by name, ignoring case.
func Preset(name string) (Difficulty, error) {
	for _, d := range Presets {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("unknown difficulty %q", name)
}

// MaxMines is the largest mine count a rows x cols field accepts.
func MaxMines(rows, cols int) int {
	return (rows*cols - 1) / 3
}

type Game struct {
	Difficulty Difficulty

	field  *minefield.MineField
	view   *visible.VisibleField
	placed bool
}

// New starts a round. A nil rng gets a clock-seeded one.
func New(d Difficulty, rng *rand.Rand) (*Game, error) {
	field, err := minefield.New(d.Rows, d.Cols, d.Mines, rng)
	if err != nil {
		return nil, err
	}
	return &Game{Difficulty: d, field: field, view: visible.New(field)}, nil
}

func (g *Game) Field() *minefield.MineField { return g.field }
func (g *Game) View() *visible.VisibleField  { return g.view }

// Placed reports whether the mines are down, i.e. the round has started.
func (g *Game) Placed() bool { return g.placed }

func (g *Game) Seed(seed uint64) { g.field.Seed(seed) }

// Uncover opens (row, col) and returns false if it was a mine. Mines
// are placed on the first uncover that reaches an unflagged square.
func (g *Game) Uncover(row, col int) bool {
	if !g.placed && g.field.InRange(row, col) && !g.view.IsGameOver() && g.view.Status(row, col) != visible.Flagged {
		g.field.Populate(row, col)
		g.placed = true
	}
	return g.view.Uncover(row, col)
}

func (g *Game) Chord(row, col int) bool {
	return g.view.Chord(row, col)
}

// CycleGuess advances the mark on (row, col). Without question marks a
// flag goes straight back to covered.
func (g *Game) CycleGuess(row, col int, allowQuestion bool) {
	g.view.CycleGuess(row, col)
	if !allowQuestion && g.view.Status(row, col) == visible.Questioned {
		g.view.CycleGuess(row, col)
	}
}

// Restart covers the board again and lifts the mines; the next uncover
// places a fresh layout.
func (g *Game) Restart() {
	g.view.Reset()
	g.field.ResetEmpty()
	g.placed = false
}

// Hint picks a random covered square without a mine or a flag. Before
// the mines are placed every square is safe, so it suggests the centre.
func (g *Game) Hint(rng *rand.Rand) (row, col int, ok bool) {
	if g.view.IsGameOver() {
		return 0, 0, false
	}
	if !g.placed {
		return g.field.Rows() / 2, g.field.Cols() / 2, true
	}
	var options [][2]int
	for r := 0; r < g.field.Rows(); r++ {
		for c := 0; c < g.field.Cols(); c++ {
			s := g.view.Status(r, c)
			if (s == visible.Covered || s == visible.Questioned) && !g.field.HasMine(r, c) {
				options = append(options, [2]int{r, c})
			}
		}
	}
	if len(options) == 0 {
		return 0, 0, false
	}
	p := options[rng.IntN(len(options))]
	return p[0], p[1], true
}
