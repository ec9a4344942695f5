package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/04pril/minefield/internal/minefield"
)

var layoutOpts struct {
	rows, cols, mines int
	row, col          int
	seed              uint64
}

func init() {
	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Print a random mine layout with its adjacency counts",
		Long: `Populate a minefield the way a game does on its first click and print it.

Examples:
  minesweeper layout --rows 9 --cols 9 --mines 10
  minesweeper layout --rows 16 --cols 30 --mines 99 --seed 7 --row 8 --col 15`,
		Args: cobra.NoArgs,
		RunE: runLayout,
	}
	f := layoutCmd.Flags()
	f.IntVar(&layoutOpts.rows, "rows", 9, "Number of rows")
	f.IntVar(&layoutOpts.cols, "cols", 9, "Number of columns")
	f.IntVar(&layoutOpts.mines, "mines", 10, "Number of mines")
	f.IntVar(&layoutOpts.row, "row", 0, "Row of the first click, kept free of mines")
	f.IntVar(&layoutOpts.col, "col", 0, "Column of the first click, kept free of mines")
	f.Uint64Var(&layoutOpts.seed, "seed", 0, "Seed for mine placement (0 uses the clock)")

	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, args []string) error {
	field, err := minefield.New(layoutOpts.rows, layoutOpts.cols, layoutOpts.mines, newRand(layoutOpts.seed))
	if err != nil {
		return err
	}
	if !field.InRange(layoutOpts.row, layoutOpts.col) {
		return fmt.Errorf("first click (%d,%d) is off a %dx%d field", layoutOpts.row, layoutOpts.col, layoutOpts.rows, layoutOpts.cols)
	}
	field.Populate(layoutOpts.row, layoutOpts.col)
	out := cmd.OutOrStdout()
	return printLayout(out, termenv.NewOutput(out), field)
}

var countColors = [9]string{"", "12", "10", "9", "4", "1", "6", "15", "8"}

// printLayout writes one line per row: '*' for mines, '.' for squares
// with no adjacent mine and the count otherwise.
func printLayout(w io.Writer, out *termenv.Output, field *minefield.MineField) error {
	var sb strings.Builder
	for r := 0; r < field.Rows(); r++ {
		for c := 0; c < field.Cols(); c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			switch n := field.AdjacentMines(r, c); {
			case field.HasMine(r, c):
				sb.WriteString(out.String("*").Bold().Foreground(out.Color("9")).String())
			case n == 0:
				sb.WriteString(out.String(".").Faint().String())
			default:
				sb.WriteString(out.String(strconv.Itoa(n)).Foreground(out.Color(countColors[n])).String())
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "%dx%d, %d mines\n", field.Rows(), field.Cols(), field.Mines())
	_, err := io.WriteString(w, sb.String())
	return err
}
