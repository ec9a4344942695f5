package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"bogus": logrus.InfoLevel,
		"":      logrus.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) %v, want %v", in, got, want)
		}
	}
}

func TestInit_JSON(t *testing.T) {
	Init("debug", true)
	var buf bytes.Buffer
	Get().SetOutput(&buf)

	With(logrus.Fields{"game": "abc"}).Debug("uncover")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["game"] != "abc" || line["msg"] != "uncover" {
		t.Errorf("unexpected log line %v", line)
	}
}
