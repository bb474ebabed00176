package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{TraceLevel, "TRACE"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if result := test.level.String(); result != test.expected {
			t.Errorf("Level.String() = %v, expected %v", result, test.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"trace":   TraceLevel,
		"DEBUG":   DebugLevel,
		"info":    InfoLevel,
		"warn":    WarnLevel,
		"warning": WarnLevel,
		" error ": ErrorLevel,
		"bogus":   InfoLevel,
		"":        InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerPrettyFormatting(t *testing.T) {
	l := New(Config{Level: InfoLevel, Component: "test"}, &bytes.Buffer{})

	entry := LogEntry{
		Time:      time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Level:     "INFO",
		Message:   "test message",
		Component: "test",
		Fields:    map[string]interface{}{"zeta": 1, "alpha": "value"},
	}

	result := l.formatPretty(entry)

	expectedParts := []string{
		"2025-01-01 12:00:00",
		"[INFO]",
		"test:",
		"test message",
		"{alpha=value, zeta=1}",
	}
	for _, part := range expectedParts {
		if !strings.Contains(result, part) {
			t.Errorf("formatPretty() result missing expected part: %s\nResult: %s", part, result)
		}
	}
}

func TestLoggerPrettyColor(t *testing.T) {
	l := New(Config{Level: InfoLevel, UseColor: true}, &bytes.Buffer{})
	out := l.formatPretty(LogEntry{Time: time.Now(), Level: "ERROR", Message: "boom"})
	if !strings.Contains(out, "\033[31mERROR\033[0m") {
		t.Errorf("expected colored level, got %q", out)
	}
}

func TestLoggerJSONFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: InfoLevel, JSON: true, Component: "test"}, &buf)

	l.Info("test message", String("key", "value"), Strings("keys", []string{"a", "b"}))

	output := strings.TrimSpace(buf.String())
	var parsed LogEntry
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("Log() produced invalid JSON: %v\nOutput: %s", err, output)
	}
	if parsed.Message != "test message" {
		t.Errorf("Parsed JSON message = %v, expected 'test message'", parsed.Message)
	}
	if parsed.Level != "INFO" {
		t.Errorf("Parsed JSON level = %v, expected 'INFO'", parsed.Level)
	}
	if parsed.Fields["key"] != "value" {
		t.Errorf("Parsed JSON fields = %v", parsed.Fields)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: WarnLevel, Component: "test"}, &buf)

	l.Info("info message")
	l.Debug("debug message")
	l.Warn("warn message")
	l.Error("error message")

	output := buf.String()
	if strings.Contains(output, "info message") {
		t.Error("INFO level message should be filtered out")
	}
	if strings.Contains(output, "debug message") {
		t.Error("DEBUG level message should be filtered out")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("WARN level message should appear")
	}
	if !strings.Contains(output, "error message") {
		t.Error("ERROR level message should appear")
	}
}

func TestDebugIncludesCaller(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: TraceLevel}, &buf)
	l.Debug("where")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Errorf("expected caller location, got %q", buf.String())
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	l.Error("nothing happens")
}

func TestFieldConstructors(t *testing.T) {
	if f := String("key", "value"); f.Key != "key" || f.Value != "value" {
		t.Errorf("String() = %+v", f)
	}
	if f := Int("count", 42); f.Key != "count" || f.Value != 42 {
		t.Errorf("Int() = %+v", f)
	}
	if f := Bool("enabled", true); f.Key != "enabled" || f.Value != true {
		t.Errorf("Bool() = %+v", f)
	}
	if f := Err(errors.New("test error")); f.Key != "error" || f.Value != "test error" {
		t.Errorf("Err() = %+v", f)
	}
}

func TestDefaultLoggerOutput(t *testing.T) {
	if err := Initialize(Config{Level: InfoLevel, Component: "test"}); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("output test message")
	Debug("hidden debug message")

	output := buf.String()
	if !strings.Contains(output, "output test message") {
		t.Errorf("SetOutput() did not redirect output correctly: %s", output)
	}
	if strings.Contains(output, "hidden debug message") {
		t.Errorf("debug message should be filtered: %s", output)
	}
}

func TestDefaultCreatesLogger(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	defaultLogger = nil
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}
}
