// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// L is the process-wide structured logger. Init replaces it once the
// configuration is known; until then it logs at info level to stderr.
var L = pterm.DefaultLogger.WithLevel(pterm.LogLevelInfo).WithWriter(os.Stderr)

// Init configures L with the given level name and writer.
// A nil writer keeps stderr.
func Init(level string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	L = pterm.DefaultLogger.WithLevel(ParseLevel(level)).WithWriter(w)
}

// ParseLevel maps a config level name to a pterm log level.
// Unknown names fall back to info.
func ParseLevel(level string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	case "off", "disabled", "none":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelInfo
	}
}
