// Package monitoring holds the diagnostic logger shared by leveldump packages.
package monitoring

import (
	"log"
	"sync/atomic"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf and
// may be replaced by SetLogger so tests can capture or mute output.
var Logf func(format string, v ...interface{}) = log.Printf

var verbose atomic.Bool

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetVerbose turns Debugf output on or off.
func SetVerbose(on bool) {
	verbose.Store(on)
}

// Verbose reports whether Debugf output is enabled.
func Verbose() bool {
	return verbose.Load()
}

// Debugf logs through Logf only when verbose output is enabled.
func Debugf(format string, v ...interface{}) {
	if !verbose.Load() {
		return
	}
	Logf("[debug] "+format, v...)
}
