// Package logger provides a small leveled logging facade over the standard
// log package with centralized verbosity control.
//
// Levels in increasing verbosity: Error < Info < Debug < Trace. Typical
// usage:
//
//	logger.SetVerbosity(2) // Debug
//	logger.Infof("server listening on %s", addr)
//	logger.Debugf("spot=%f vol=%f", spot, vol)
package logger

import (
	"log"
	"os"
)

// Level is a logging verbosity level. Higher means more verbose.
type Level int

const (
	Error Level = iota
	Info
	Debug
	Trace
)

// current is the active verbosity. Messages with level <= current are logged.
var current Level = Info

func init() {
	// Logs go to stderr so they stay separate from program output when the
	// CLI is used in a pipeline.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// SetVerbosity sets the global verbosity, typically once at startup after
// flags and config are parsed.
func SetVerbosity(v int) {
	current = Level(v)
}

func logf(l Level, prefix, format string, args ...any) {
	if current >= l {
		log.Printf(prefix+format, args...)
	}
}

// Errorf logs a failure that needs attention.
func Errorf(format string, args ...any) {
	logf(Error, "[ERROR] ", format, args...)
}

// Infof logs a major lifecycle event.
func Infof(format string, args ...any) {
	logf(Info, "[INFO]  ", format, args...)
}

// Debugf logs diagnostic detail.
func Debugf(format string, args ...any) {
	logf(Debug, "[DEBUG] ", format, args...)
}

// Tracef logs fine-grained execution detail. High volume; use sparingly.
func Tracef(format string, args ...any) {
	logf(Trace, "[TRACE] ", format, args...)
}
