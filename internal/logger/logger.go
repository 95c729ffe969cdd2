// Package logger provides structured logging for tagfiler built on log/slog.
//
// Output is either human-readable colored text (for terminals) or JSON (for
// log aggregation). File output goes through lumberjack for rotation.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents log levels
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config holds logger configuration.
type Config struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // text, json
	Output string // stdout, stderr, or a file path

	// Rotation settings, used only when Output is a file path.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	currentLevel atomic.Int32

	mu       sync.RWMutex
	slogger  *slog.Logger
	output   io.Writer = os.Stdout
	format             = "text"
	useColor           = isatty.IsTerminal(os.Stdout.Fd())
)

func init() {
	currentLevel.Store(int32(LevelInfo))
	reconfigure()
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// reconfigure rebuilds the slog handler from the current settings.
// Callers must hold mu or be single-threaded (init).
func reconfigure() {
	levelVar := new(slog.LevelVar)
	levelVar.Set(Level(currentLevel.Load()).slogLevel())

	opts := &slog.HandlerOptions{Level: levelVar}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = NewTextHandler(output, opts, useColor)
	}
	slogger = slog.New(handler)
}

// Init initializes the package logger from configuration.
// Output may be "stdout", "stderr", or a file path; file paths are
// rotated according to the Config rotation settings.
func Init(cfg Config) error {
	mu.Lock()
	switch strings.ToLower(cfg.Output) {
	case "", "stdout":
		output = os.Stdout
		useColor = isatty.IsTerminal(os.Stdout.Fd())
	case "stderr":
		output = os.Stderr
		useColor = isatty.IsTerminal(os.Stderr.Fd())
	default:
		output = &lumberjack.Logger{
			Filename:   cfg.Output,
			MaxSize:    orDefault(cfg.MaxSizeMB, 100),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
			Compress:   true,
		}
		useColor = false
	}

	if f := strings.ToLower(cfg.Format); f == "text" || f == "json" {
		format = f
	}
	mu.Unlock()

	if cfg.Level != "" {
		SetLevel(cfg.Level)
	} else {
		reconfigureLocked()
	}
	return nil
}

// InitWithWriter points the logger at an arbitrary writer. Used by tests.
func InitWithWriter(w io.Writer, level, logFormat string) {
	mu.Lock()
	output = w
	useColor = false
	if f := strings.ToLower(logFormat); f == "text" || f == "json" {
		format = f
	}
	mu.Unlock()

	if level != "" {
		SetLevel(level)
	} else {
		reconfigureLocked()
	}
}

// SetLevel sets the minimum log level. Invalid levels are ignored.
func SetLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		currentLevel.Store(int32(LevelDebug))
	case "INFO":
		currentLevel.Store(int32(LevelInfo))
	case "WARN":
		currentLevel.Store(int32(LevelWarn))
	case "ERROR":
		currentLevel.Store(int32(LevelError))
	default:
		return
	}
	reconfigureLocked()
}

func reconfigureLocked() {
	mu.Lock()
	reconfigure()
	mu.Unlock()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func getLogger() *slog.Logger {
	mu.RLock()
	l := slogger
	mu.RUnlock()
	return l
}

// Debug logs at debug level with structured fields.
// Usage: Debug("message", "key1", value1, "key2", value2)
func Debug(msg string, args ...any) {
	if LevelDebug < Level(currentLevel.Load()) {
		return
	}
	getLogger().Debug(msg, args...)
}

// Info logs at info level with structured fields.
func Info(msg string, args ...any) {
	if LevelInfo < Level(currentLevel.Load()) {
		return
	}
	getLogger().Info(msg, args...)
}

// Warn logs at warn level with structured fields.
func Warn(msg string, args ...any) {
	if LevelWarn < Level(currentLevel.Load()) {
		return
	}
	getLogger().Warn(msg, args...)
}

// Error logs at error level with structured fields.
func Error(msg string, args ...any) {
	getLogger().Error(msg, args...)
}

// With returns a slog.Logger with pre-bound attributes.
func With(args ...any) *slog.Logger {
	return getLogger().With(args...)
}

// Duration returns the time elapsed since start in milliseconds.
func Duration(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
