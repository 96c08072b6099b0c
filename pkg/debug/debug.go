// Package debug provides global debug logging flags
package debug

import (
	"fmt"

	"github.com/teslashibe/go-focusplane/internal/log"
)

// Enabled controls whether debug logging is active
var Enabled bool

// Plane controls whether per-frame plane traces are shown.
// Use --debug-plane to enable these very verbose logs.
var Plane bool

// Log emits a formatted debug message only if debug mode is enabled
func Log(format string, args ...any) {
	if Enabled {
		log.Debug(fmt.Sprintf(format, args...))
	}
}

// PlaneLog emits a per-frame trace only if plane debug mode is enabled.
// Attributes are passed straight to the structured logger.
func PlaneLog(msg string, args ...any) {
	if Plane {
		log.Info(msg, args...)
	}
}
