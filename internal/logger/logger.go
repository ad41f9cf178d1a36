// Package logger provides the global structured logger. The TUI owns the
// terminal, so logs go to a rotating file; recent WARN/ERROR entries are
// kept in memory for the status bar indicator.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is a captured WARN/ERROR log entry.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// Format renders an entry for display.
func (e Entry) Format() string {
	level := "WARN"
	if e.Level >= slog.LevelError {
		level = "ERROR"
	}
	return fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), level, e.Message)
}

// ringBuffer is a fixed-size circular buffer of captured entries.
type ringBuffer struct {
	mu      sync.RWMutex
	entries []Entry
	size    int
	head    int
	count   int

	warnCount  int
	errorCount int
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{entries: make([]Entry, size), size: size}
}

func (rb *ringBuffer) add(entry Entry) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.entries[rb.head] = entry
	rb.head = (rb.head + 1) % rb.size
	if rb.count < rb.size {
		rb.count++
	}

	if entry.Level >= slog.LevelError {
		rb.errorCount++
	} else if entry.Level == slog.LevelWarn {
		rb.warnCount++
	}
}

func (rb *ringBuffer) getAll() []Entry {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	result := make([]Entry, rb.count)
	for i := 0; i < rb.count; i++ {
		idx := (rb.head - rb.count + i + rb.size) % rb.size
		result[i] = rb.entries[idx]
	}
	return result
}

func (rb *ringBuffer) getCounts() (warn, err int) {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.warnCount, rb.errorCount
}

// captureHandler wraps another handler to mirror WARN/ERROR entries into the
// ring buffer.
type captureHandler struct {
	inner  slog.Handler
	buffer *ringBuffer
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.buffer.add(Entry{Time: r.Time, Level: r.Level, Message: r.Message})
	}
	return h.inner.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{inner: h.inner.WithAttrs(attrs), buffer: h.buffer}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{inner: h.inner.WithGroup(name), buffer: h.buffer}
}

var (
	// Log is the global structured logger.
	Log *slog.Logger
	// LogPath is the path to the current log file.
	LogPath string

	logWriter     *lumberjack.Logger
	captureBuffer *ringBuffer
)

// Init initializes the global logger. If logPath is empty it defaults to
// ~/.config/svitlo-stats/svitlo-stats.log.
func Init(debug bool, logPath string) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	if logPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.TempDir()
		}
		logDir := filepath.Join(homeDir, ".config", "svitlo-stats")
		_ = os.MkdirAll(logDir, 0755)
		logPath = filepath.Join(logDir, "svitlo-stats.log")
	}
	LogPath = logPath

	logWriter = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}

	captureBuffer = newRingBuffer(100)

	jsonHandler := slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: level})
	Log = slog.New(&captureHandler{inner: jsonHandler, buffer: captureBuffer})
	slog.SetDefault(Log)
}

// Close closes the log file.
func Close() {
	if logWriter != nil {
		logWriter.Close()
	}
}

func getLogger() *slog.Logger {
	if Log != nil {
		return Log
	}
	return slog.Default()
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { getLogger().Debug(msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { getLogger().Info(msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { getLogger().Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { getLogger().Error(msg, args...) }

// Counts returns how many warnings and errors have been captured.
func Counts() (warn, err int) {
	if captureBuffer == nil {
		return 0, 0
	}
	return captureBuffer.getCounts()
}

// Entries returns the captured WARN/ERROR entries, oldest first.
func Entries() []Entry {
	if captureBuffer == nil {
		return nil
	}
	return captureBuffer.getAll()
}
