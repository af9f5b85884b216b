package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Level is the minimum severity written to the log.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

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

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

var (
	logger  *log.Logger
	logFile *os.File
	logPath string
	enabled bool
	level   = LevelDebug
)

// Init initializes the logger with the default log path for the OS
func Init() error {
	return InitDir(getLogDir())
}

// InitDir initializes the logger writing feedback.log inside dir.
func InitDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath = filepath.Join(dir, "feedback.log")

	// Open log file in append mode
	var err error
	logFile, err = os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logger = log.New(logFile, "", 0)
	enabled = true

	return nil
}

// getLogDir returns the appropriate log directory for the OS
func getLogDir() string {
	if dir := os.Getenv("FEEDBACK_LOG_DIR"); dir != "" {
		return dir
	}
	switch runtime.GOOS {
	case "darwin":
		// macOS: ~/Library/Logs/feedback/
		home, err := os.UserHomeDir()
		if err != nil {
			return "/tmp/feedback/logs"
		}
		return filepath.Join(home, "Library", "Logs", "feedback")
	case "linux":
		// Linux: ~/.local/state/feedback/logs/
		home, err := os.UserHomeDir()
		if err != nil {
			return "/tmp/feedback/logs"
		}
		return filepath.Join(home, ".local", "state", "feedback", "logs")
	default:
		return "/tmp/feedback/logs"
	}
}

// SetLevel drops messages below l.
func SetLevel(l Level) {
	level = l
}

// Close closes the log file
func Close() {
	if logFile != nil {
		Info("feedback shutting down")
		logFile.Close()
		logFile = nil
		logger = nil
		enabled = false
	}
}

// GetLogPath returns the path to the log file
func GetLogPath() string {
	return logPath
}

// formatMessage formats a log message with timestamp and level
func formatMessage(lvl Level, format string, args ...interface{}) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, args...)
	return fmt.Sprintf("[%s] [%s] %s", timestamp, lvl, message)
}

func write(lvl Level, format string, args ...interface{}) {
	if !enabled || logger == nil || lvl < level {
		return
	}
	logger.Println(formatMessage(lvl, format, args...))
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	write(LevelDebug, format, args...)
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	write(LevelInfo, format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	write(LevelWarn, format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	write(LevelError, format, args...)
}

// SetOutput adds w as a second destination, e.g. stderr for the serve command.
func SetOutput(w io.Writer) {
	if logger != nil {
		logger.SetOutput(io.MultiWriter(logFile, w))
	}
}
