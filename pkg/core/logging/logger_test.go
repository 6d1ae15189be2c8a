package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func newTestLogger(buf *bytes.Buffer, level Level, format Format) *Logger {
	l := NewWithConfig(Config{Name: "test", Level: level, Format: format, Output: buf})
	l.now = func() time.Time { return time.Date(2025, 12, 14, 10, 0, 0, 0, time.UTC) }
	return l
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LevelFatal, "fatal"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"invalid", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(text) = %v, %v", f, err)
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelInfo, FormatJSON)

	logger.Info("batch done", "batch", 3, "size", int64(100))

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if got["message"] != "batch done" {
		t.Errorf("message = %v, want batch done", got["message"])
	}
	if got["level"] != "info" {
		t.Errorf("level = %v, want info", got["level"])
	}
	if got["logger"] != "test" {
		t.Errorf("logger = %v, want test", got["logger"])
	}
	if got["batch"] != float64(3) {
		t.Errorf("batch = %v, want 3", got["batch"])
	}
}

func TestLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelInfo, FormatText)

	logger.Warn("slow batch", "b", 2, "a", 1)

	want := "10:00:00.000 [WRN] {test} slow batch a=1 b=2\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelWarn, FormatText)

	logger.Debug("hidden")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}

	logger.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("error entry missing: %q", buf.String())
	}
}

func TestLogger_WithLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelInfo, FormatText)

	logger.Trace("hidden")
	if buf.Len() != 0 {
		t.Errorf("trace written at info level: %q", buf.String())
	}

	verbose := logger.WithLevel(LevelTrace)
	if verbose.Level() != LevelTrace || logger.Level() != LevelInfo {
		t.Fatalf("WithLevel changed the parent: child=%v parent=%v", verbose.Level(), logger.Level())
	}
	verbose.Trace("shown", "step", 1)
	if !strings.Contains(buf.String(), "[TRC]") || !strings.Contains(buf.String(), "step=1") {
		t.Errorf("trace entry missing: %q", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelInfo, FormatText).With("run", "abc")

	logger.Info("start", "kernel", "integral")

	if !strings.Contains(buf.String(), "run=abc") || !strings.Contains(buf.String(), "kernel=integral") {
		t.Errorf("context fields missing: %q", buf.String())
	}
}

func TestLogger_OddKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelInfo, FormatText)

	logger.Info("message", "key1", "value1", "orphan", 123, "skipped")

	if !strings.Contains(buf.String(), "orphan=123") {
		t.Errorf("pair before orphan should be kept: %q", buf.String())
	}
	if strings.Contains(buf.String(), "skipped") {
		t.Errorf("dangling key should be dropped: %q", buf.String())
	}
}

func TestToFields(t *testing.T) {
	if fields := toFields(); fields != nil {
		t.Error("toFields() with no args should return nil")
	}

	fields := toFields("key1", "value1", "key2", 42)
	if fields["key1"] != "value1" {
		t.Errorf("fields[key1] = %v, want value1", fields["key1"])
	}
	if fields["key2"] != 42 {
		t.Errorf("fields[key2] = %v, want 42", fields["key2"])
	}

	fields = toFields(123, "value")
	if len(fields) != 0 {
		t.Errorf("Non-string key should be skipped, got %v fields", len(fields))
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("engine")

	if cfg.Name != "engine" {
		t.Errorf("Name = %v, want engine", cfg.Name)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %v, want text", cfg.Format)
	}
}

func TestNewLogger_InvalidSettingsFallBack(t *testing.T) {
	logger := NewLogger(LoggerConfig{Name: "x", Level: "loud", Format: "xml"})
	if logger.Level() != LevelInfo {
		t.Errorf("Level() = %v, want info", logger.Level())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.IsLevelEnabled(LevelFatal) {
		t.Error("Discard logger should not enable any level")
	}
}

func TestTimer_Stop(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelDebug, FormatText)

	timer := logger.StartTimer("batch", "index", 1)
	timer.Stop("size", 10)
	if !strings.Contains(buf.String(), "batch completed") {
		t.Errorf("timer entry missing: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "index=1") || !strings.Contains(buf.String(), "size=10") {
		t.Errorf("timer fields missing: %q", buf.String())
	}

	buf.Reset()
	if d := timer.Stop(); d != 0 || buf.Len() != 0 {
		t.Errorf("second Stop() = %v, output %q; want 0 and nothing", d, buf.String())
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Name: "bench", Output: &buf})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		logger.Info("benchmark message", "iteration", i)
	}
}
