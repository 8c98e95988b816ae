// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides the process logger and helpers that keep secrets
// out of log lines and user-facing error text.
//
// Bearer tokens and passwords pass through the login form, the session and
// every authenticated request, so anything that may be logged goes through
// Mask first.
package logging

import (
	"regexp"
	"strings"
)

var (
	rePassword  = regexp.MustCompile(`(?i)(password=)([^\s;&]+)`)
	reToken     = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._~+/=-]+)`)
	reJSONField = regexp.MustCompile(`(?i)("(?:password|token|access_token)"\s*:\s*")([^"]*)(")`)
	reAPIKey    = regexp.MustCompile(`(?i)(apikey=|api_key=)([^\s;&]+)`)
)

// Mask replaces sensitive values in the input string with "***".
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reJSONField.ReplaceAllString(out, "$1***$3")
	out = reAPIKey.ReplaceAllString(out, "$1***")
	for _, k := range []string{"NLQUERY_PASSWORD", "NLQUERY_TOKEN"} {
		out = strings.ReplaceAll(out, k+"=", k+"=***")
	}
	return out
}
