package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Debug logging - enabled by setting GROUPLOG_DEBUG=1
var (
	debugEnabled bool
	debugFile    *os.File
	debugMu      sync.Mutex
	logger       = slog.New(slog.NewTextHandler(io.Discard, nil))
	level        = new(slog.LevelVar)
)

func init() {
	if os.Getenv("GROUPLOG_DEBUG") == "1" {
		debugEnabled = true
		initDebugLog()
	}
}

func initDebugLog() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	logDir := filepath.Join(home, ".config", "grouplog")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return
	}

	logPath := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}

	debugFile = f
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	logger.Info("grouplog started")
}

// SetLevel sets the minimum level written to the debug log.
// level: "debug", "info", "warn", "error" (defaults to "info")
func SetLevel(name string) {
	switch name {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

// Enabled reports whether the debug log is active.
func Enabled() bool {
	debugMu.Lock()
	defer debugMu.Unlock()
	return debugEnabled && debugFile != nil
}

// Logger returns the structured debug logger. It discards everything unless
// debugging is enabled.
func Logger() *slog.Logger {
	debugMu.Lock()
	defer debugMu.Unlock()
	return logger
}

// Log writes a message to the debug log if debugging is enabled.
func Log(format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	Logger().Info(fmt.Sprintf(format, args...))
}

// Close flushes and closes the debug log file.
func Close() error {
	debugMu.Lock()
	defer debugMu.Unlock()
	if debugFile == nil {
		return nil
	}
	err := debugFile.Close()
	debugFile = nil
	debugEnabled = false
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return err
}
