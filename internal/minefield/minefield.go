// Package minefield holds the ground truth of a game: where the mines are.
package minefield

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

var (
	ErrEmptyGrid    = errors.New("minefield: grid has no cells")
	ErrRaggedGrid   = errors.New("minefield: rows differ in length")
	ErrDimensions   = errors.New("minefield: rows and cols must be positive")
	ErrTooManyMines = errors.New("minefield: mines must cover less than a third of the field")
)

// MineField is a rows x cols grid of mine locations.
//
// A field built with New starts empty and gets its mines from Populate,
// so until then Mines() does not match the mines on the grid.
type MineField struct {
	rows, cols int
	mines      int
	cells      [][]bool
	rng        *rand.Rand
}

// FromGrid builds a field that mirrors data exactly. Mines() is the
// number of true entries.
func FromGrid(data [][]bool) (*MineField, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	f := &MineField{rows: len(data), cols: len(data[0])}
	f.cells = make([][]bool, f.rows)
	for r, row := range data {
		if len(row) != f.cols {
			return nil, fmt.Errorf("row %d has %d cols, want %d: %w", r, len(row), f.cols, ErrRaggedGrid)
		}
		f.cells[r] = make([]bool, f.cols)
		for c, mine := range row {
			f.cells[r][c] = mine
			if mine {
				f.mines++
			}
		}
	}
	return f, nil
}

// New builds an empty field that will hold mines mines once populated.
// A nil rng gets a time-seeded generator.
func New(rows, cols, mines int, rng *rand.Rand) (*MineField, error) {
	if rows <= 0 || cols <= 0 || cols > math.MaxInt/rows {
		return nil, fmt.Errorf("%dx%d: %w", rows, cols, ErrDimensions)
	}
	if mines < 0 || mines > (rows*cols-1)/3 {
		return nil, fmt.Errorf("%d mines on %dx%d: %w", mines, rows, cols, ErrTooManyMines)
	}
	f := &MineField{rows: rows, cols: cols, mines: mines, rng: rng}
	f.cells = make([][]bool, rows)
	for r := range f.cells {
		f.cells[r] = make([]bool, cols)
	}
	return f, nil
}

// Seed replaces the generator used by Populate with one seeded by seed.
func (f *MineField) Seed(seed uint64) {
	f.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (f *MineField) random() *rand.Rand {
	if f.rng == nil {
		f.Seed(uint64(time.Now().UnixNano()))
	}
	return f.rng
}

// Populate clears the field and places Mines() mines on distinct random
// cells, never on (row, col). It does nothing if (row, col) is off the field.
func (f *MineField) Populate(row, col int) {
	if !f.InRange(row, col) {
		return
	}
	f.ResetEmpty()

	rng := f.random()
	left := f.mines
	// 3*mines < rows*cols keeps at least one free cell other than the avoided one
	for left > 0 {
		r, c := rng.IntN(f.rows), rng.IntN(f.cols)
		if (r == row && c == col) || f.cells[r][c] {
			continue
		}
		f.cells[r][c] = true
		left--
	}
}

// ResetEmpty removes every mine. Rows, Cols and Mines are unchanged, so
// the field is out of step with Mines() until the next Populate.
func (f *MineField) ResetEmpty() {
	for r := range f.cells {
		clear(f.cells[r])
	}
}

// AdjacentMines counts the mines among the up to eight neighbours of
// (row, col), not counting (row, col) itself. Off-field cells count 0.
func (f *MineField) AdjacentMines(row, col int) int {
	if !f.InRange(row, col) {
		return 0
	}
	n := 0
	for r := max(row-1, 0); r <= min(row+1, f.rows-1); r++ {
		for c := max(col-1, 0); c <= min(col+1, f.cols-1); c++ {
			if (r != row || c != col) && f.cells[r][c] {
				n++
			}
		}
	}
	return n
}

func (f *MineField) InRange(row, col int) bool {
	return row >= 0 && col >= 0 && row < f.rows && col < f.cols
}

// HasMine reports whether (row, col) holds a mine; false when off the field.
func (f *MineField) HasMine(row, col int) bool {
	return f.InRange(row, col) && f.cells[row][col]
}

func (f *MineField) Rows() int  { return f.rows }
func (f *MineField) Cols() int  { return f.cols }
func (f *MineField) Mines() int { return f.mines }

// String draws the field one row per line, '*' for a mine and '.' otherwise.
func (f *MineField) String() string {
	var sb strings.Builder
	for r, row := range f.cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, mine := range row {
			if mine {
				sb.WriteByte('*')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
