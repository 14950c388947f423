package logger

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/maegy2011/nota/internal/aggregator"
)

func TestNewConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "info")

	// None of these should panic with a nil writer
	cl.LogInfo("message")
	cl.LogStart("/tmp/root", "combined_text.txt")
	cl.LogFileAdded("a.txt")
	cl.LogFileSkipped("b.txt", errors.New("permission denied"))
	cl.LogSummary(aggregator.Result{})
}

func TestNormalizeLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"info", "info"},
		{"DEBUG", "debug"},
		{"  Warn  ", "warn"},
		{"trace", "trace"},
		{"error", "error"},
		{"", "info"},
		{"bogus", "info"},
	}

	for _, tt := range tests {
		if got := normalizeLogLevel(tt.input); got != tt.want {
			t.Errorf("normalizeLogLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "warn")

	cl.LogTrace("trace message")
	cl.LogDebug("debug message")
	cl.LogInfo("info message")
	if buf.Len() != 0 {
		t.Errorf("messages below warn should be suppressed, got %q", buf.String())
	}

	cl.LogWarn("warn message")
	cl.LogError("error message")

	output := buf.String()
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should be logged at warn level")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error message should be logged at warn level")
	}
}

func TestLogMessageFormat(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogInfo("hello")

	pattern := regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \[INFO\] hello\n$`)
	if !pattern.MatchString(buf.String()) {
		t.Errorf("unexpected log format: %q", buf.String())
	}
}

func TestLogStart(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogStart("/project/root", "combined_text.txt")

	output := buf.String()
	if !strings.Contains(output, "Aggregating files in /project/root") {
		t.Errorf("missing start message: %q", output)
	}
	if !strings.Contains(output, "Writing to combined_text.txt") {
		t.Errorf("missing output notice: %q", output)
	}
}

func TestLogFileAdded(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogFileAdded("sub/b.txt")

	if !strings.Contains(buf.String(), "Added: sub/b.txt") {
		t.Errorf("missing added line: %q", buf.String())
	}
}

func TestLogFileSkipped(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogFileSkipped("locked.txt", errors.New("permission denied"))

	output := buf.String()
	if !strings.Contains(output, "Skipped locked.txt: permission denied") {
		t.Errorf("missing skip notice: %q", output)
	}
}

func TestLogFileSkippedSuppressedAboveWarn(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "error")

	cl.LogFileSkipped("locked.txt", errors.New("permission denied"))

	if buf.Len() != 0 {
		t.Errorf("skip notices are warn level and should be suppressed, got %q", buf.String())
	}
}

func TestLogSummary(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogSummary(aggregator.Result{
		Root:       "/project/root",
		OutputPath: "/project/root/combined_text.txt",
		Added:      []string{"a.txt", "sub/b.txt"},
		Skipped: []aggregator.SkippedFile{
			{Path: "locked.txt", Err: errors.New("permission denied")},
		},
		Duration: 90 * time.Second,
	})

	output := buf.String()
	for _, want := range []string{
		"=== Aggregation Summary ===",
		"Files added: 2",
		"Skipped: 1",
		"locked.txt: permission denied",
		"Duration: 1m30s",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("summary missing %q in %q", want, output)
		}
	}
}

func TestLogSummaryNoSkips(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogSummary(aggregator.Result{
		Added:    []string{"a.txt"},
		Duration: 2 * time.Second,
	})

	output := buf.String()
	if !strings.Contains(output, "Skipped: 0") {
		t.Errorf("summary should report zero skips: %q", output)
	}
}

func TestColorOutput(t *testing.T) {
	// Force colors on regardless of TTY detection
	prevNoColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prevNoColor }()

	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")
	cl.SetColorOutput(true)

	cl.LogFileAdded("a.txt")

	output := buf.String()
	if !strings.Contains(output, "\x1b[") {
		t.Errorf("expected ANSI escape codes in colored output: %q", output)
	}
	if !strings.Contains(output, "a.txt") {
		t.Errorf("colored output lost the message: %q", output)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{time.Minute, "1m"},
		{90 * time.Second, "1m30s"},
		{time.Hour, "1h"},
		{time.Hour + 15*time.Minute, "1h15m"},
		{time.Hour + 15*time.Minute + 20*time.Second, "1h15m20s"},
		{500 * time.Millisecond, "0s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
