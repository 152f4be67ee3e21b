package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerMethods(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewLogger(WithWriter(buf), WithText(), WithLevel(levelTrace))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		method func(string, ...any)
		prefix string
	}{
		{logger.Trace, "TRACE"},
		{logger.Debug, "DEBUG"},
		{logger.Info, "INFO"},
		{logger.Warn, "WARN"},
		{logger.Error, "ERROR"},
		{logger.Critical, "CRITICAL"},
	}

	for _, tt := range tests {
		buf.Reset()
		t.Run(tt.prefix, func(t *testing.T) {
			tt.method("test", "key", "val")
			output := buf.String()
			if !strings.HasPrefix(output, tt.prefix+" test") || !strings.Contains(output, "key=\"val\"") {
				t.Errorf("Expected %q in output, got: %q", tt.prefix, output)
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, _ := NewLogger(WithWriter(buf), WithText())

	logger.With("module", "*db.Module").Info("initialized", "order", 2)

	output := buf.String()
	if !strings.Contains(output, "module=\"*db.Module\"") || !strings.Contains(output, "order=\"2\"") {
		t.Errorf("With: expected attrs not found in %q", output)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, _ := NewLogger(WithWriter(buf), WithLevel(slog.LevelWarn))

	logger.Debug("debug msg")
	logger.Info("info msg")
	if buf.Len() != 0 {
		t.Errorf("Debug/Info should be filtered with Warn level, got %q", buf.String())
	}

	logger.Warn("warn msg")
	logger.Error("error msg")
	output := buf.String()
	if !strings.Contains(output, "warn msg") || !strings.Contains(output, "error msg") {
		t.Error("Warn/Error should pass with Warn level")
	}
}

func TestNewLogger_JSONMode(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewLogger(WithJSON(), WithWriter(buf), WithSource())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Critical("test", "key", "value")
	output := buf.String()
	if !strings.Contains(output, `"level":"CRITICAL"`) {
		t.Errorf("Expected CRITICAL level name in JSON output, got %q", output)
	}
	if !strings.Contains(output, `"source"`) {
		t.Error("Expected source info in output")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Critical("dropped", "k", "v")
	l.With("a", 1).Error("dropped too")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"trace", levelTrace, true},
		{"DEBUG", slog.LevelDebug, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"critical", levelCritical, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestGetLevelName(t *testing.T) {
	tests := []struct {
		level    slog.Leveler
		expected string
	}{
		{levelTrace, "TRACE"},
		{levelCritical, "CRITICAL"},
		{slog.LevelInfo, "INFO"},
	}

	for _, tt := range tests {
		if name := getLevelName(tt.level); name != tt.expected {
			t.Errorf("getLevelName(%v) = %q, want %q", tt.level, name, tt.expected)
		}
	}
}

func TestAttrsOf(t *testing.T) {
	attrs := attrsOf([]any{"key1", "val1", 42, "value", "dangling"})

	if len(attrs) != 3 {
		t.Fatalf("Expected 3 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != "key1" {
		t.Errorf("unexpected first key %q", attrs[0].Key)
	}
	if !strings.HasPrefix(attrs[1].Key, "NON_STRING_KEY_int") {
		t.Errorf("Expected NON_STRING_KEY_, got %q", attrs[1].Key)
	}
	if attrs[2].Key != "MISSING_KEY" {
		t.Errorf("Expected MISSING_KEY, got %q", attrs[2].Key)
	}
}
