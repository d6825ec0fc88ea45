package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logFile *os.File
	mu      sync.Mutex
	enabled = true
	log     = newLogger()
)

const (
	maxLogSize = 5 * 1024 * 1024 // 5MB
	appName    = "rangefe"
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Dir returns ~/.config/rangefe, shared with the config file.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

// Init opens the log file, rotating it first when it grew past 5MB.
func Init() error {
	logDir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, appName+".log")

	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		oldPath := logPath + ".old"
		os.Remove(oldPath)
		os.Rename(logPath, oldPath)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	logFile = file
	log.SetOutput(file)
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	log.SetOutput(io.Discard)
}

// SetLevel sets the minimum level; unknown names leave the level unchanged.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	return nil
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(w)
}

// Disable disables logging (useful for tests)
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// Enable enables logging
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

func Error(format string, args ...any) {
	write(logrus.ErrorLevel, format, args...)
}

func Warn(format string, args ...any) {
	write(logrus.WarnLevel, format, args...)
}

func Info(format string, args ...any) {
	write(logrus.InfoLevel, format, args...)
}

func Debug(format string, args ...any) {
	write(logrus.DebugLevel, format, args...)
}

func write(level logrus.Level, format string, args ...any) {
	mu.Lock()
	on := enabled
	mu.Unlock()

	if !on {
		return
	}
	log.Logf(level, format, args...)
}
