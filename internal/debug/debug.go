// Package debug provides opt-in diagnostic logging for arbor.
// Nothing is written unless Init(true) or InitWriter was called; the CLI
// enables it with --debug and logs to ~/.arbor/debug.log, truncated per run.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	// LogFileName is the name of the debug log file.
	LogFileName = "debug.log"
	// LogDirName is the directory under the user's home holding the log file.
	LogDirName = ".arbor"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  *log.Logger
	logFile *os.File

	// getLogPath is swapped by tests.
	getLogPath = defaultGetLogPath
)

// Init turns logging on or off. When enabled the log file is created or
// truncated and a start banner is written.
func Init(enable bool) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	enabled = enable
	if !enable {
		logger = log.New(io.Discard, "", 0)
		return nil
	}

	logPath, err := getLogPath()
	if err != nil {
		return fmt.Errorf("determine log path: %w", err)
	}

	//nolint:gosec // G301: log directory lives under the user's home
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	//nolint:gosec // G304: path is derived from the home directory
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f

	logger = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	logger.Printf("=== arbor debug log started at %s ===", time.Now().Format(time.RFC3339))
	return nil
}

// InitWriter enables logging to w instead of the log file. Tests in other
// packages use it to assert on diagnostics.
func InitWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	enabled = w != nil
	if w == nil {
		logger = log.New(io.Discard, "", 0)
		return
	}
	logger = log.New(w, "", 0)
}

// Close releases the log file. Safe to call when logging is disabled.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Log writes a message in the manner of fmt.Print when logging is enabled.
func Log(v ...any) {
	mu.RLock()
	defer mu.RUnlock()

	if !enabled || logger == nil {
		return
	}
	logger.Print(v...)
}

// Logf writes a message in the manner of fmt.Printf when logging is enabled.
func Logf(format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()

	if !enabled || logger == nil {
		return
	}
	logger.Printf(format, v...)
}

// Enabled reports whether logging is on.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func defaultGetLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}

// GetLogPath returns where Init(true) writes.
func GetLogPath() (string, error) {
	return getLogPath()
}
