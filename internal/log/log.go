// Package log provides a unified logging abstraction for wslpath.
//
// All wslpath messages MUST go through this package. Everything is written
// to stderr because stdout carries converted path bytes. Uses lipgloss for
// terminal styling.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// LogLevel controls the verbosity of log output.
type LogLevel int

const (
	// LevelDebug is the most verbose level.
	LevelDebug LogLevel = iota
	// LevelInfo is the default level.
	LevelInfo
	// LevelWarn shows only warnings and errors.
	LevelWarn
	// LevelError shows only errors.
	LevelError
	// LevelSilent suppresses all output.
	LevelSilent
)

// config holds the global logger configuration.
type config struct {
	mu     sync.RWMutex
	level  LogLevel
	prefix bool
	quiet  bool
	out    io.Writer
}

var cfg = &config{
	level: LevelInfo,
	out:   os.Stderr,
}

// --- Lipgloss styles (package-level, initialized once) ---

var (
	dimStyle    = lipgloss.NewStyle().Faint(true)
	boldStyle   = lipgloss.NewStyle().Bold(true)
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cyanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// --- Configuration functions ---

// SetLevel sets the minimum log level. Messages below this level are suppressed.
func SetLevel(level LogLevel) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.level = level
}

// GetLevel returns the current log level.
func GetLevel() LogLevel {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.level
}

// SetPrefix enables or disables the [wslpath] prefix on all messages.
func SetPrefix(enabled bool) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.prefix = enabled
}

// SetOutput redirects all messages to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	prev := cfg.out
	cfg.out = w
	return prev
}

// EnableQuietMode suppresses ALL output including errors.
// Only exit codes communicate success/failure.
func EnableQuietMode() {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.quiet = true
	cfg.level = LevelSilent
}

// DisableQuietMode restores normal output.
func DisableQuietMode() {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.quiet = false
	cfg.level = LevelInfo
}

// IsQuiet returns whether quiet mode is enabled.
func IsQuiet() bool {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.quiet
}

// --- Internal helpers ---

// canOutput checks if output is allowed at the given level.
func canOutput(level LogLevel) bool {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return !cfg.quiet && cfg.level <= level
}

// formatMessage applies the optional [wslpath] prefix.
func formatMessage(message string) string {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	if cfg.prefix {
		return "[wslpath] " + message
	}
	return message
}

func writer() io.Writer {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.out
}

// --- Log output functions ---

// Debug outputs a debug-level message (dim styling).
// Only shown when level <= LevelDebug.
func Debug(message string) {
	if canOutput(LevelDebug) {
		fmt.Fprintln(writer(), dimStyle.Render(formatMessage(message)))
	}
}

// Debugf outputs a formatted debug-level message.
func Debugf(format string, args ...any) {
	if canOutput(LevelDebug) {
		Debug(fmt.Sprintf(format, args...))
	}
}

// Info outputs an info-level message (no styling).
func Info(message string) {
	if canOutput(LevelInfo) {
		fmt.Fprintln(writer(), formatMessage(message))
	}
}

// Infof outputs a formatted info-level message.
func Infof(format string, args ...any) {
	if canOutput(LevelInfo) {
		Info(fmt.Sprintf(format, args...))
	}
}

// Warn outputs a warning message (yellow).
func Warn(message string) {
	if canOutput(LevelWarn) {
		fmt.Fprintln(writer(), yellowStyle.Render(formatMessage(message)))
	}
}

// Warnf outputs a formatted warning message.
func Warnf(format string, args ...any) {
	if canOutput(LevelWarn) {
		Warn(fmt.Sprintf(format, args...))
	}
}

// Error outputs an error message (red).
func Error(message string) {
	if canOutput(LevelError) {
		fmt.Fprintln(writer(), redStyle.Render(formatMessage(message)))
	}
}

// Errorf outputs a formatted error message.
func Errorf(format string, args ...any) {
	if canOutput(LevelError) {
		Error(fmt.Sprintf(format, args...))
	}
}

// Success outputs a success message (green, info level).
func Success(message string) {
	if canOutput(LevelInfo) {
		fmt.Fprintln(writer(), greenStyle.Render(formatMessage(message)))
	}
}

// Successf outputs a formatted success message.
func Successf(format string, args ...any) {
	Success(fmt.Sprintf(format, args...))
}

// Dim outputs a subtle/dim message (info level).
func Dim(message string) {
	if canOutput(LevelInfo) {
		fmt.Fprintln(writer(), dimStyle.Render(formatMessage(message)))
	}
}

// Diagnostic reports the failures of one input source at error level: a
// bold "source:" header followed by one tab-indented line per failure.
func Diagnostic(source string, lines []string) {
	if len(lines) == 0 || !canOutput(LevelError) {
		return
	}
	w := writer()
	fmt.Fprintln(w, boldStyle.Render(formatMessage(source+":")))
	for _, line := range lines {
		fmt.Fprintln(w, "\t"+line)
	}
}

// --- Style builders (return styled strings without printing) ---

// Style provides string styling functions that return styled strings
// without printing them.
var Style = struct {
	Dim    func(...string) string
	Bold   func(...string) string
	Red    func(...string) string
	Yellow func(...string) string
	Cyan   func(...string) string
}{
	Dim:    dimStyle.Render,
	Bold:   boldStyle.Render,
	Red:    redStyle.Render,
	Yellow: yellowStyle.Render,
	Cyan:   cyanStyle.Render,
}
