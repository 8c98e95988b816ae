package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// StatusError is returned when the backend answers with a non-2xx status.
// Message is the body's "error" field when present, so it can be shown as is.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed: %d %s", e.Endpoint, e.StatusCode, e.Message)
}

// newStatusError builds a StatusError from a failed response body.
// The body shape is not trusted: anything but a JSON object with an error
// (or msg, as sent by the token middleware) field falls back to the status text.
func newStatusError(endpoint string, status int, body []byte) *StatusError {
	msg := ""
	var payload struct {
		Error string `json:"error"`
		Msg   string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = strings.TrimSpace(payload.Error)
		if msg == "" {
			msg = strings.TrimSpace(payload.Msg)
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &StatusError{Endpoint: endpoint, StatusCode: status, Message: msg}
}

// DecodeError is returned when a 2xx body does not match the endpoint's schema.
type DecodeError struct {
	Endpoint string
	Reason   string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s response: %s: %v", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed %s response: %s", e.Endpoint, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }
