// Package rlog wraps goutils' logger the way graft's own log package wraps
// it: a package-level *log.Logger plus DEBUG/TRACE/WARN convenience
// functions gated on the logger's configured level.
package rlog

import (
	"fmt"
	"os"

	golog "github.com/starkandwayne/goutils/log"
)

// SetLevel reconfigures the verbosity of the package-level logger.
// Accepts the same level names goutils/log recognizes: "error", "warning",
// "info", "debug", "trace", "off"/"none".
func SetLevel(level string) {
	if err := golog.SetupLogging(golog.LogConfig{Type: "console", Level: level}); err != nil {
		fmt.Fprintf(os.Stderr, "rlog: invalid log level %q: %s\n", level, err)
	}
}

// DEBUG logs a debug-level message.
func DEBUG(format string, args ...interface{}) {
	golog.Debug(format, args...)
}

// TRACE logs the finest-grained evaluation detail: operator dispatch,
// cache hits, resolved reference paths. goutils/log has no trace level of
// its own, so this rides on Debug.
func TRACE(format string, args ...interface{}) {
	golog.Debug(format, args...)
}

// WARN logs a recoverable problem (unresolved reference, malformed
// operation) that the engine tolerates per its lenient-evaluator design.
func WARN(format string, args ...interface{}) {
	golog.Warn(format, args...)
}

// ERROR logs an infrastructure-level failure.
func ERROR(format string, args ...interface{}) {
	golog.Error(format, args...)
}
