package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	gamesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "minefield_games_started_total",
			Help: "Games created through the API",
		},
	)
	gamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minefield_games_finished_total",
			Help: "Games that ended, by outcome",
		},
		[]string{"outcome"},
	)
	moves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minefield_moves_total",
			Help: "Moves applied to games, by action",
		},
		[]string{"action"},
	)
)

func init() {
	prometheus.MustRegister(gamesStarted)
	prometheus.MustRegister(gamesFinished)
	prometheus.MustRegister(moves)
}
