// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors for failures detected locally, before any
// request leaves the process: missing input, no session, a submission that is
// already running. Each carries a machine-readable Kind and the message that
// was shown to the user.
//
// Remote failures (HTTP status, transport, decoding) are reported by the
// backend package and are not represented here.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// MissingCredentials indicates an empty username or password.
	MissingCredentials Kind = "missing_credentials"
	// MissingQuery indicates an empty query text.
	MissingQuery Kind = "missing_query"
	// NotLoggedIn indicates that no session token is stored yet.
	NotLoggedIn Kind = "not_logged_in"
	// Busy indicates that a previous submission is still running.
	Busy Kind = "busy"
	// UnknownTab indicates a tab name that the controller does not manage.
	UnknownTab Kind = "unknown_tab"
	// UnknownExample indicates an example index outside the preset list.
	UnknownExample Kind = "unknown_example"
	// UnknownEvent indicates an event without a registered handler.
	UnknownEvent Kind = "unknown_event"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf reports the Kind of the first *E in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
