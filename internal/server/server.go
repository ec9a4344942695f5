package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/04pril/minefield/internal/config"
	"github.com/04pril/minefield/internal/logger"
)

// NewRouter wires the game API, health check and metrics.
func NewRouter(cfg *config.Config, store *Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	NewGameHandler(store, cfg.MaxRows, cfg.MaxCols).RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func NewServer(cfg *config.Config, store *Store) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           NewRouter(cfg, store),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.With(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start),
			"req_id":   middleware.GetReqID(r.Context()),
		}).Info("request")
	})
}
