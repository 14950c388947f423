// Package logger provides console reporting for aggregation runs.
//
// The logger reports run progress at the start, per-file, and summary
// levels. Output is prefixed with [HH:MM:SS] timestamps, filtered by log
// level, and colorized when writing to a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/maegy2011/nota/internal/aggregator"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs aggregation progress to a writer with timestamps and
// thread safety. It supports log level filtering to control verbosity.
// Color output is automatically enabled for terminal output.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

var _ aggregator.Logger = (*ConsoleLogger)(nil)

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// logLevel determines the minimum log level for messages to be output.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		mutex:       sync.Mutex{},
		colorOutput: isTerminal(writer),
	}
}

// SetColorOutput overrides automatic terminal detection.
func (cl *ConsoleLogger) SetColorOutput(enabled bool) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.colorOutput = enabled
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns true for os.Stdout and os.Stderr when they are TTYs.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}

	if w == os.Stdout || w == os.Stderr {
		// The color library's TTY detection also honors NO_COLOR
		return !color.NoColor
	}

	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
		return normalized
	}

	return "info" // Default level
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo // Default to info if unknown
	}
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel logs a message at the specified level if filtering allows it.
// Format: "[HH:MM:SS] [LEVEL] <message>"
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string

	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorizeLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// colorizeLevel returns the level tag wrapped in its ANSI color.
func colorizeLevel(level string) string {
	switch strings.ToUpper(level) {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogStart logs the beginning of an aggregation run at INFO level.
// Format: "[HH:MM:SS] Aggregating files in <root>" followed by
// "[HH:MM:SS] Writing to <outputName>"
func (cl *ConsoleLogger) LogStart(root, outputName string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()

	var output string
	if cl.colorOutput {
		rootText := color.New(color.Bold).Sprint(root)
		output = fmt.Sprintf("[%s] Aggregating files in %s\n", ts, rootText)
	} else {
		output = fmt.Sprintf("[%s] Aggregating files in %s\n", ts, root)
	}
	output += fmt.Sprintf("[%s] Writing to %s\n", ts, outputName)

	cl.writer.Write([]byte(output))
}

// LogFileAdded logs a per-file confirmation at INFO level.
// Format: "[HH:MM:SS] Added: <relative/path>"
func (cl *ConsoleLogger) LogFileAdded(relPath string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()

	var message string
	if cl.colorOutput {
		addedText := color.New(color.FgGreen).Sprint("Added")
		message = fmt.Sprintf("[%s] %s: %s\n", ts, addedText, relPath)
	} else {
		message = fmt.Sprintf("[%s] Added: %s\n", ts, relPath)
	}

	cl.writer.Write([]byte(message))
}

// LogFileSkipped logs a skip notice at WARN level.
// Format: "[HH:MM:SS] Skipped <relative/path>: <error>"
func (cl *ConsoleLogger) LogFileSkipped(relPath string, err error) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog("warn") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()

	var message string
	if cl.colorOutput {
		skippedText := color.New(color.FgYellow).Sprint("Skipped")
		message = fmt.Sprintf("[%s] %s %s: %v\n", ts, skippedText, relPath, err)
	} else {
		message = fmt.Sprintf("[%s] Skipped %s: %v\n", ts, relPath, err)
	}

	cl.writer.Write([]byte(message))
}

// LogSummary logs the run summary with file counts at INFO level.
func (cl *ConsoleLogger) LogSummary(result aggregator.Result) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	durationStr := formatDuration(result.Duration)

	var output string

	if cl.colorOutput {
		header := color.New(color.Bold).Sprint("=== Aggregation Summary ===")
		output = fmt.Sprintf("[%s] %s\n", ts, header)

		addedText := color.New(color.FgGreen).Sprintf("Files added: %d", len(result.Added))
		output += fmt.Sprintf("[%s] %s\n", ts, addedText)

		if len(result.Skipped) > 0 {
			skippedText := color.New(color.FgYellow).Sprintf("Skipped: %d", len(result.Skipped))
			output += fmt.Sprintf("[%s] %s\n", ts, skippedText)
			for _, skipped := range result.Skipped {
				name := color.New(color.FgYellow).Sprint(skipped.Path)
				output += fmt.Sprintf("[%s]   - %s: %v\n", ts, name, skipped.Err)
			}
		} else {
			output += fmt.Sprintf("[%s] Skipped: 0\n", ts)
		}

		output += fmt.Sprintf("[%s] Duration: %s\n", ts, durationStr)
	} else {
		output = fmt.Sprintf("[%s] === Aggregation Summary ===\n", ts)
		output += fmt.Sprintf("[%s] Files added: %d\n", ts, len(result.Added))
		output += fmt.Sprintf("[%s] Skipped: %d\n", ts, len(result.Skipped))
		for _, skipped := range result.Skipped {
			output += fmt.Sprintf("[%s]   - %s: %v\n", ts, skipped.Path, skipped.Err)
		}
		output += fmt.Sprintf("[%s] Duration: %s\n", ts, durationStr)
	}

	cl.writer.Write([]byte(output))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	}
}
