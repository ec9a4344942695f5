package visible

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/04pril/minefield/internal/minefield"
)

func newView(t *testing.T, rows ...string) *VisibleField {
	t.Helper()
	data := make([][]bool, len(rows))
	for r, line := range rows {
		data[r] = make([]bool, len(line))
		for c, ch := range line {
			data[r][c] = ch == '*'
		}
	}
	f, err := minefield.FromGrid(data)
	if err != nil {
		t.Fatalf("FromGrid: %v", err)
	}
	return New(f)
}

func flagged(v *VisibleField) int {
	n := 0
	for r := 0; r < v.rows; r++ {
		for c := 0; c < v.cols; c++ {
			if v.Status(r, c) == Flagged {
				n++
			}
		}
	}
	return n
}

func assertLines(t *testing.T, v *VisibleField, want ...string) {
	t.Helper()
	if got := v.Lines(); !slices.Equal(got, want) {
		t.Errorf("board\n%v\nwant\n%v", got, want)
	}
}

func TestNew(t *testing.T) {
	v := newView(t, "*..", "...")
	assertLines(t, v, "###", "###")
	if v.MinesLeft() != 1 {
		t.Errorf("MinesLeft %d, want 1", v.MinesLeft())
	}
	if v.IsGameOver() || v.Outcome() != Playing {
		t.Errorf("new view should be playing, got %v", v.Outcome())
	}
}

func TestStatus_OutOfRange(t *testing.T) {
	v := newView(t, "..", "..")
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if got := v.Status(p[0], p[1]); got != OutOfRange {
			t.Errorf("Status(%d,%d) %v, want out-of-range", p[0], p[1], got)
		}
		if v.IsUncovered(p[0], p[1]) {
			t.Errorf("IsUncovered(%d,%d) true off the field", p[0], p[1])
		}
	}
}

func TestCycleGuess(t *testing.T) {
	v := newView(t, "*.", "..")
	steps := []struct {
		want      Status
		minesLeft int
	}{
		{Flagged, 0},
		{Questioned, 1},
		{Covered, 1},
		{Flagged, 0},
	}
	for i, step := range steps {
		v.CycleGuess(1, 1)
		if got := v.Status(1, 1); got != step.want {
			t.Errorf("step %d: status %v, want %v", i, got, step.want)
		}
		if got := v.MinesLeft(); got != step.minesLeft {
			t.Errorf("step %d: MinesLeft %d, want %d", i, got, step.minesLeft)
		}
	}
}

func TestCycleGuess_NoEffect(t *testing.T) {
	v := newView(t, "*.*", "...", "...")
	v.Uncover(2, 2)
	before := v.Lines()

	v.CycleGuess(2, 2)
	v.CycleGuess(-1, 0)
	v.CycleGuess(0, 3)
	if got := v.Lines(); !slices.Equal(got, before) {
		t.Errorf("cycle on revealed or off-field square changed board\n%v\nwant\n%v", got, before)
	}
	if v.MinesLeft() != 2 {
		t.Errorf("MinesLeft %d, want 2", v.MinesLeft())
	}
}

func TestCycleGuess_CountMatchesFlags(t *testing.T) {
	v := newView(t, "*...", "..*.", "....", "*..*")
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		v.CycleGuess(rng.IntN(6)-1, rng.IntN(6)-1)
		if got, want := v.guesses, flagged(v); got != want {
			t.Fatalf("move %d: guesses %d, flagged squares %d", i, got, want)
		}
	}
}

func TestCycleGuess_AfterGameOver(t *testing.T) {
	v := newView(t, "*.", "..")
	v.Uncover(0, 0)
	v.CycleGuess(1, 1)
	if got := v.Status(1, 1); got != Covered {
		t.Errorf("status %v after game over, want covered", got)
	}
}

func TestUncover_Win(t *testing.T) {
	v := newView(t, "*.", "..")
	if !v.Uncover(1, 1) {
		t.Fatal("Uncover(1,1) hit a mine")
	}
	// every safe square touches the mine, so nothing floods
	assertLines(t, v, "##", "#1")
	if v.IsGameOver() {
		t.Fatal("game over after one of three safe squares")
	}
	v.Uncover(0, 1)
	v.Uncover(1, 0)
	for _, p := range [][2]int{{0, 1}, {1, 0}, {1, 1}} {
		if got := v.Status(p[0], p[1]); got != Revealed(1) {
			t.Errorf("Status(%d,%d) %v, want 1", p[0], p[1], got)
		}
	}
	if got := v.Status(0, 0); got != Flagged {
		t.Errorf("mine status %v, want flagged", got)
	}
	if !v.IsGameOver() || v.Outcome() != Won {
		t.Errorf("outcome %v, want won", v.Outcome())
	}
	if v.MinesLeft() != 0 {
		t.Errorf("MinesLeft %d, want 0", v.MinesLeft())
	}
}

func TestUncover_Loss(t *testing.T) {
	v := newView(t, "*.", "..")
	if v.Uncover(0, 0) {
		t.Fatal("Uncover on a mine returned true")
	}
	if got := v.Status(0, 0); got != DetonatedMine {
		t.Errorf("status %v, want detonated", got)
	}
	if !v.IsGameOver() || v.Outcome() != Lost {
		t.Errorf("outcome %v, want lost", v.Outcome())
	}
	assertLines(t, v, "@#", "##")
}

func TestUncover_LossRewrite(t *testing.T) {
	v := newView(t,
		"**..",
		"*.*.",
		"....",
	)
	v.CycleGuess(0, 0) // flag on mine
	v.CycleGuess(0, 3) // flag on safe square
	v.CycleGuess(1, 0) // question on mine
	v.CycleGuess(1, 0)
	v.CycleGuess(2, 3) // question on safe square
	v.CycleGuess(2, 3)
	v.Uncover(2, 0)
	if v.Uncover(1, 2) {
		t.Fatal("Uncover on a mine returned true")
	}
	assertLines(t, v,
		"F*#X",
		"*#@#",
		"1##?",
	)
	if got, want := v.guesses, flagged(v); got != want {
		t.Errorf("guesses %d, flagged squares %d", got, want)
	}
}

func TestUncover_FloodFill(t *testing.T) {
	v := newView(t,
		".....",
		".....",
		"...**",
		".....",
	)
	if !v.Uncover(0, 0) {
		t.Fatal("Uncover hit a mine")
	}
	assertLines(t, v,
		".....",
		"..122",
		"..1##",
		"..1##",
	)
	if v.IsGameOver() {
		t.Error("game should still be running")
	}
}

func TestUncover_FloodFillOpensQuestioned(t *testing.T) {
	v := newView(t, "...", "...", "..*")
	v.CycleGuess(0, 2)
	v.CycleGuess(0, 2)
	v.Uncover(0, 0)
	if got := v.Status(0, 2); got != Revealed(0) {
		t.Errorf("questioned square %v, want 0", got)
	}
}

func TestUncover_FlagBarrier(t *testing.T) {
	v := newView(t,
		"..*.....",
		"..*.....",
		"..*.....",
	)
	v.CycleGuess(0, 4)
	v.CycleGuess(1, 4)
	v.CycleGuess(2, 4)
	v.Uncover(1, 7)
	assertLines(t, v,
		"####F...",
		"####F...",
		"####F...",
	)
	if v.IsGameOver() {
		t.Error("flags on safe squares must block the win")
	}
}

func TestUncover_Idempotent(t *testing.T) {
	v := newView(t,
		"......",
		"......",
		"....*.",
		"......",
	)
	v.Uncover(0, 0)
	before := v.Lines()
	left := v.MinesLeft()
	for r := 0; r < 4; r++ {
		for c := 0; c < 6; c++ {
			if !v.IsUncovered(r, c) {
				continue
			}
			if !v.Uncover(r, c) {
				t.Fatalf("Uncover(%d,%d) on revealed square returned false", r, c)
			}
			if got := v.Lines(); !slices.Equal(got, before) {
				t.Fatalf("Uncover(%d,%d) changed board\n%v\nwant\n%v", r, c, got, before)
			}
		}
	}
	if v.MinesLeft() != left {
		t.Errorf("MinesLeft changed: %d, want %d", v.MinesLeft(), left)
	}
}

func TestUncover_OutOfRange(t *testing.T) {
	v := newView(t, "*.", "..")
	if !v.Uncover(5, 5) {
		t.Error("off-field Uncover should return true")
	}
	assertLines(t, v, "##", "##")
}

func TestUncover_AfterGameOver(t *testing.T) {
	v := newView(t, "*..", "...")
	v.Uncover(0, 0)
	before := v.Lines()
	if !v.Uncover(1, 2) {
		t.Error("Uncover after game over should return true")
	}
	if got := v.Lines(); !slices.Equal(got, before) {
		t.Errorf("board changed after game over\n%v\nwant\n%v", got, before)
	}
}

func TestUncover_WinBlockedByQuestionedSafeSquare(t *testing.T) {
	v := newView(t, "*.", "..")
	v.CycleGuess(0, 1)
	v.CycleGuess(0, 1)
	v.Uncover(1, 0)
	v.Uncover(1, 1)
	if v.IsGameOver() {
		t.Fatal("questioned safe square should block the win")
	}
	v.Uncover(0, 1)
	if v.Outcome() != Won {
		t.Errorf("outcome %v, want won", v.Outcome())
	}
}

func TestUncover_WinBlockedByFlaggedSafeSquare(t *testing.T) {
	v := newView(t, "*.", "..")
	v.CycleGuess(0, 1)
	v.Uncover(1, 0)
	v.Uncover(1, 1)
	if v.IsGameOver() {
		t.Fatal("flagged safe square should block the win")
	}
	if got := v.Status(0, 1); got != Flagged {
		t.Fatalf("status %v, want flagged", got)
	}
	v.CycleGuess(0, 1)
	v.CycleGuess(0, 1)
	if got := v.Status(0, 1); got != Covered {
		t.Fatalf("status %v, want covered", got)
	}
	v.Uncover(0, 1)
	if v.Outcome() != Won {
		t.Errorf("outcome %v, want won", v.Outcome())
	}
	if got := v.Status(0, 1); got != Revealed(1) {
		t.Errorf("status %v, want 1", got)
	}
}

func TestUncover_WinKeepsQuestionedMineFlagged(t *testing.T) {
	v := newView(t, "*.", "..")
	v.CycleGuess(0, 0)
	v.CycleGuess(0, 0)
	v.Uncover(1, 1)
	v.Uncover(0, 1)
	v.Uncover(1, 0)
	if v.Outcome() != Won {
		t.Fatalf("outcome %v, want won", v.Outcome())
	}
	if got := v.Status(0, 0); got != Flagged {
		t.Errorf("mine status %v, want flagged", got)
	}
	if got, want := v.guesses, flagged(v); got != want {
		t.Errorf("guesses %d, flagged squares %d", got, want)
	}
}

func TestUncover_RandomWinLeavesEverySafeSquareRevealed(t *testing.T) {
	f, err := minefield.New(12, 15, 30, rand.New(rand.NewPCG(9, 9)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.Populate(6, 7)
	v := New(f)
	for r := 0; r < f.Rows(); r++ {
		for c := 0; c < f.Cols(); c++ {
			if !f.HasMine(r, c) && !v.Uncover(r, c) {
				t.Fatalf("Uncover(%d,%d) lost on a safe square", r, c)
			}
		}
	}
	if v.Outcome() != Won {
		t.Fatalf("outcome %v, want won", v.Outcome())
	}
	for r := 0; r < f.Rows(); r++ {
		for c := 0; c < f.Cols(); c++ {
			s := v.Status(r, c)
			if f.HasMine(r, c) && s != Flagged {
				t.Errorf("mine (%d,%d) status %v, want flagged", r, c, s)
			}
			if !f.HasMine(r, c) && s != Revealed(f.AdjacentMines(r, c)) {
				t.Errorf("safe (%d,%d) status %v, want %d", r, c, s, f.AdjacentMines(r, c))
			}
		}
	}
}

func TestChord(t *testing.T) {
	v := newView(t,
		"*..",
		"...",
		"...",
		"..*",
	)
	v.Uncover(0, 1)
	v.CycleGuess(0, 0)
	if !v.Chord(0, 1) {
		t.Fatal("Chord hit a mine")
	}
	assertLines(t, v,
		"F1.",
		"11.",
		"#11",
		"###",
	)
}

func TestChord_WrongFlagLoses(t *testing.T) {
	v := newView(t,
		"*..",
		"...",
	)
	v.Uncover(0, 1)
	v.CycleGuess(1, 0)
	if v.Chord(0, 1) {
		t.Fatal("Chord next to an unflagged mine should lose")
	}
	if v.Outcome() != Lost {
		t.Errorf("outcome %v, want lost", v.Outcome())
	}
	if got := v.Status(1, 0); got != WrongFlag {
		t.Errorf("status %v, want wrong flag", got)
	}
}

func TestChord_FlagCountMismatch(t *testing.T) {
	v := newView(t, "*..", "...")
	v.Uncover(0, 1)
	before := v.Lines()
	if !v.Chord(0, 1) {
		t.Error("Chord without flags should be a no-op")
	}
	if got := v.Lines(); !slices.Equal(got, before) {
		t.Errorf("board changed\n%v\nwant\n%v", got, before)
	}
}

func TestReset(t *testing.T) {
	v := newView(t, "*..", "...", "...")
	v.CycleGuess(0, 0)
	v.CycleGuess(2, 2)
	v.Uncover(1, 1)
	v.Uncover(0, 0)
	if !v.IsGameOver() {
		t.Fatal("expected game over")
	}
	v.Reset()
	assertLines(t, v, "###", "###", "###")
	if v.guesses != 0 || v.MinesLeft() != 1 {
		t.Errorf("guesses %d MinesLeft %d, want 0 and 1", v.guesses, v.MinesLeft())
	}
	if v.IsGameOver() || v.Outcome() != Playing {
		t.Errorf("outcome %v after reset, want playing", v.Outcome())
	}
	if !v.Field().HasMine(0, 0) {
		t.Error("Reset must not touch the field")
	}
}

func TestStatus_Rune(t *testing.T) {
	tests := []struct {
		s    Status
		want rune
	}{
		{Covered, '#'},
		{Flagged, 'F'},
		{Questioned, '?'},
		{Revealed(0), '.'},
		{Revealed(3), '3'},
		{Revealed(8), '8'},
		{UnflaggedMine, '*'},
		{WrongFlag, 'X'},
		{DetonatedMine, '@'},
	}
	for _, tt := range tests {
		if got := tt.s.Rune(); got != tt.want {
			t.Errorf("%v.Rune() %q, want %q", tt.s, got, tt.want)
		}
	}
}
