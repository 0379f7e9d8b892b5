package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"xwinpong/internal/config"
)

func TestCoreLevel(t *testing.T) {
	tests := []struct {
		level     string
		debugLogs bool
	}{
		{"debug", true},
		{"info", false},
		{"bogus", false},
		{"", false},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		log := zap.New(Core(config.LoggingConfig{Level: tt.level}, zapcore.AddSync(&buf), false))
		log.Debug("tick")
		log.Info("ready")

		if got := strings.Contains(buf.String(), "tick"); got != tt.debugLogs {
			t.Errorf("level %q: debug logged = %v", tt.level, got)
		}
		if !strings.Contains(buf.String(), "ready") {
			t.Errorf("level %q: info not logged", tt.level)
		}
	}
}

func TestCoreJSON(t *testing.T) {
	var buf bytes.Buffer
	log := zap.New(Core(config.LoggingConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf), false))
	log.Warn("keyboard grab failed", zap.String("session", "abc"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not json: %q", buf.String())
	}
	if entry["msg"] != "keyboard grab failed" || entry["session"] != "abc" || entry["level"] != "warn" {
		t.Fatalf("entry %v", entry)
	}
}

func TestCoreConsoleColor(t *testing.T) {
	var plain, colored bytes.Buffer
	zap.New(Core(config.LoggingConfig{}, zapcore.AddSync(&plain), false)).Warn("x")
	zap.New(Core(config.LoggingConfig{}, zapcore.AddSync(&colored), true)).Warn("x")

	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escapes: %q", colored.String())
	}
}
