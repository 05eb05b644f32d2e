package internal

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.raw); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestLoggerOr(t *testing.T) {
	custom := slog.New(slog.DiscardHandler)
	if LoggerOr(custom) != custom {
		t.Error("LoggerOr should return the injected logger")
	}
	if LoggerOr(nil) != GetInternalLogger() {
		t.Error("LoggerOr(nil) should return the internal logger")
	}
}
