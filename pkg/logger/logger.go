package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Package-level leveled logger shared by the client, the CLI and padserver.
// Init(level) picks the threshold; the printf-style helpers format the message
// and hand it to hclog.

var (
	mu     sync.RWMutex
	output io.Writer = os.Stderr
	base   hclog.Logger = newLogger(os.Stderr, hclog.Info)
)

func newLogger(w io.Writer, lvl hclog.Level) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "helipad",
		Level:  lvl,
		Output: w,
	})
}

// parseLevel maps debug|info|warn|error (any case) to an hclog level. Anything
// else, including "fatal", falls back to the nearest supported level or info.
func parseLevel(l string) hclog.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug", "trace":
		return hclog.Debug
	case "warn", "warning":
		return hclog.Warn
	case "error", "fatal":
		return hclog.Error
	default:
		return hclog.Info
	}
}

// Init sets the global log level. Call early during startup.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	base = newLogger(output, parseLevel(l))
}

// SetOutput redirects log output, keeping the current level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = newLogger(w, base.GetLevel())
}

func current() hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func Debugf(format string, v ...interface{}) {
	if l := current(); l.IsDebug() {
		l.Debug(fmt.Sprintf(format, v...))
	}
}

func Infof(format string, v ...interface{}) {
	if l := current(); l.IsInfo() {
		l.Info(fmt.Sprintf(format, v...))
	}
}

func Warnf(format string, v ...interface{}) {
	if l := current(); l.IsWarn() {
		l.Warn(fmt.Sprintf(format, v...))
	}
}

func Errorf(format string, v ...interface{}) {
	if l := current(); l.IsError() {
		l.Error(fmt.Sprintf(format, v...))
	}
}

// Fatalf logs at error level regardless of the threshold and exits.
func Fatalf(format string, v ...interface{}) {
	current().Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}

func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// Named returns an hclog sub-logger for callers that want key/value pairs.
func Named(name string) hclog.Logger {
	return current().Named(name)
}

// LevelString returns the current level as text.
func LevelString() string {
	switch current().GetLevel() {
	case hclog.Trace, hclog.Debug:
		return "debug"
	case hclog.Warn:
		return "warn"
	case hclog.Error:
		return "error"
	}
	return "info"
}
