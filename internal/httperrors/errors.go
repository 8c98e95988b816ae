// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns transport failures into user-friendly text.
package httperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Kind classifies a transport failure.
type Kind int

const (
	KindGeneric Kind = iota
	KindTimeout
	KindDNS
	KindRefused
	KindTLS
	KindCanceled
)

// Classify detects common error types (timeout, DNS, connection refused, TLS).
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindGeneric
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case isTimeoutError(err):
		return KindTimeout
	case isDNSError(err):
		return KindDNS
	case isConnectionRefusedError(err):
		return KindRefused
	case isSSLError(err):
		return KindTLS
	default:
		return KindGeneric
	}
}

// Describe returns a one-line description of err suitable for an inline
// error block. Errors that are not transport failures are returned as is.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	host := hostOf(err)
	switch Classify(err) {
	case KindTimeout:
		return fmt.Sprintf("request to %s timed out", host)
	case KindDNS:
		return fmt.Sprintf("cannot resolve %s", host)
	case KindRefused:
		return fmt.Sprintf("connection to %s refused", host)
	case KindTLS:
		return fmt.Sprintf("secure connection to %s failed", host)
	case KindCanceled:
		return "request canceled"
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Sprintf("cannot reach %s: %v", host, uerr.Err)
	}
	return err.Error()
}

// Present writes a multi-line explanation of err to w.
// context describes what was being done, e.g. "checking backend health".
func Present(w io.Writer, err error, context string) {
	if err == nil {
		return
	}
	host := hostOf(err)
	var b strings.Builder
	switch Classify(err) {
	case KindTimeout:
		b.WriteString(pterm.Error.Sprintfln("Connection timeout while %s", context))
		b.WriteString("The backend took too long to respond. This could mean:\n")
		b.WriteString("  • Slow network connection\n")
		b.WriteString("  • The backend is under heavy load\n")
		b.WriteString("  • The request timeout is too low (see --timeout)\n")
	case KindDNS:
		b.WriteString(pterm.Error.Sprintfln("Cannot resolve %s while %s", host, context))
		b.WriteString("Please check:\n")
		b.WriteString("  • The base URL is spelled correctly (see --base-url)\n")
		b.WriteString("  • DNS settings are correct\n")
	case KindRefused:
		b.WriteString(pterm.Error.Sprintfln("Connection refused by %s while %s", host, context))
		b.WriteString("The backend is not accepting connections. This could mean:\n")
		b.WriteString("  • The backend is not running\n")
		b.WriteString("  • Wrong host or port in the base URL\n")
		b.WriteString("  • A firewall is blocking the connection\n")
	case KindTLS:
		b.WriteString(pterm.Error.Sprintfln("Secure connection to %s failed while %s", host, context))
		b.WriteString("Try:\n")
		b.WriteString("  • Check your system date and time\n")
		b.WriteString("  • Verify network proxy settings\n")
	default:
		b.WriteString(pterm.Error.Sprintfln("Cannot reach the backend while %s", context))
		details := err.Error()
		if len(details) > 100 {
			details = details[:100] + "..."
		}
		b.WriteString(pterm.Debug.Sprintfln("Technical details: %s", details))
	}
	fmt.Fprintln(w, b.String())
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate")
}

// hostOf extracts the host from a *url.Error for error messages.
func hostOf(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return ExtractHostFromURL(uerr.URL)
	}
	return "the backend"
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
