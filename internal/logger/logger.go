package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var defaultLogger *logrus.Logger

// Init sets up the package logger. Unknown levels fall back to info.
func Init(level string, json bool) {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(parseLevel(level))
	if json {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	defaultLogger = l
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Get returns the package logger, initialising it with defaults if needed.
func Get() *logrus.Logger {
	if defaultLogger == nil {
		Init("info", false)
	}
	return defaultLogger
}

// With returns an entry carrying the given fields.
func With(fields logrus.Fields) *logrus.Entry {
	return Get().WithFields(fields)
}

func Info(args ...any)  { Get().Info(args...) }
func Debug(args ...any) { Get().Debug(args...) }
func Warn(args ...any)  { Get().Warn(args...) }
func Error(args ...any) { Get().Error(args...) }

// Fatal logs at error level and exits.
func Fatal(args ...any) {
	Get().Error(args...)
	os.Exit(1)
}
