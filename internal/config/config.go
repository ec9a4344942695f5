package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/04pril/minefield/internal/logger"
)

type Config struct {
	AppPort  string
	LogLevel string
	LogJSON  bool

	// Session limits for the HTTP front end
	MaxGames int
	MaxRows  int
	MaxCols  int
}

// Load reads .env if present, then the environment.
func Load() *Config {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("APP_PORT"))
	if port == "" {
		port = "8080"
	}

	level := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if level == "" {
		level = "info"
	}

	return &Config{
		AppPort:  port,
		LogLevel: level,
		LogJSON:  os.Getenv("LOG_JSON") == "true",
		MaxGames: positiveInt("MAX_GAMES", 1000),
		MaxRows:  positiveInt("MAX_ROWS", 64),
		MaxCols:  positiveInt("MAX_COLS", 64),
	}
}

func positiveInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logger.Warn("ignoring ", key, "=", v, ", using ", def)
		return def
	}
	return n
}
