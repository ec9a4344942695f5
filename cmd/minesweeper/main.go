package main

import (
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/04pril/minefield/internal/config"
	"github.com/04pril/minefield/internal/game"
	"github.com/04pril/minefield/internal/logger"
)

var (
	difficultyName string
	seed           uint64
	themeName      string
	noQuestion     bool
)

var rootCmd = &cobra.Command{
	Use:          "minesweeper",
	Short:        "Play minesweeper in a desktop window",
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.Flags().StringVarP(&difficultyName, "difficulty", "d", "beginner", "beginner, intermediate or expert")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for mine placement (0 uses the clock)")
	rootCmd.Flags().StringVar(&themeName, "theme", "classic", "classic or dark")
	rootCmd.Flags().BoolVar(&noQuestion, "no-question", false, "Skip ? marks when cycling guesses")
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1))
}

func runGame(cmd *cobra.Command, args []string) error {
	d, err := game.Preset(difficultyName)
	if err != nil {
		return err
	}
	u, err := newUI(d, newRand(seed), themeIndex(themeName), !noQuestion)
	if err != nil {
		return err
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	return ebiten.RunGame(u)
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}
