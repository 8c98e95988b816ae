package logging

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]pterm.LogLevel{
		"debug":   pterm.LogLevelDebug,
		"DEBUG ":  pterm.LogLevelDebug,
		"warn":    pterm.LogLevelWarn,
		"warning": pterm.LogLevelWarn,
		"error":   pterm.LogLevelError,
		"trace":   pterm.LogLevelTrace,
		"off":     pterm.LogLevelDisabled,
		"info":    pterm.LogLevelInfo,
		"bogus":   pterm.LogLevelInfo,
		"":        pterm.LogLevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestInitWritesToWriter(t *testing.T) {
	saved := L
	defer func() { L = saved }()

	var buf bytes.Buffer
	Init("debug", &buf)
	L.Debug("login attempt", L.Args("user", "admin"))

	assert.Contains(t, buf.String(), "login attempt")
	assert.Contains(t, buf.String(), "admin")
}
