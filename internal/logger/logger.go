package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

var (
	log     = logrus.New()
	logFile *os.File
	logPath string
)

// Init configures the package logger. level is a logrus level name, format is
// "text" or "json", and a non-empty file also receives every entry.
func Init(level, format, file string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(lvl)

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if file == "" {
		log.SetOutput(os.Stderr)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	Close()
	logFile, logPath = f, file
	log.SetOutput(io.MultiWriter(os.Stderr, f))

	LogInfo("Logger initialized, log file: %s", logPath)
	return nil
}

// InitFileOnly sends every entry to file and nothing to the terminal. The
// terminal client uses it so log lines do not corrupt the UI.
func InitFileOnly(level, file string) error {
	if err := Init(level, "text", file); err != nil {
		return err
	}
	if logFile != nil {
		log.SetOutput(logFile)
	}
	return nil
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Close closes the log file
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Logger exposes the underlying logrus logger.
func Logger() *logrus.Logger {
	return log
}

// WithFields returns an entry carrying fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}

// WithConn returns an entry tagged with a connection id and remote address.
func WithConn(id, remote string) *logrus.Entry {
	return log.WithFields(logrus.Fields{"conn": id, "remote": remote})
}

// LogDebug logs a debug message
func LogDebug(format string, args ...any) {
	log.Debugf(format, args...)
}

// LogInfo logs an info message
func LogInfo(format string, args ...any) {
	log.Infof(format, args...)
}

// LogWarn logs a warning
func LogWarn(format string, args ...any) {
	log.Warnf(format, args...)
}

// LogError logs an error message
func LogError(format string, args ...any) {
	log.Errorf(format, args...)
}

// LogPanic logs a panic with stack trace
func LogPanic(r any) {
	log.WithField("stack", string(debug.Stack())).Errorf("panic: %v", r)
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	return logPath
}
