// Package session holds the state of one UI session: the bearer token issued
// at login and the last submitted query. A State is created when a view is
// opened and discarded with it; nothing is persisted.
package session

import "sync"

// Phase is the coarse login state of a session.
type Phase int

const (
	LoggedOut Phase = iota
	LoggedIn
)

func (p Phase) String() string {
	if p == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// State is safe for concurrent use.
type State struct {
	mu    sync.Mutex
	token string
	query string
}

// New returns a logged-out session.
func New() *State { return &State{} }

// SetToken stores the bearer token. There is no way back to LoggedOut other
// than discarding the State.
func (s *State) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the stored bearer token, or "" before login.
func (s *State) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether a token is stored.
func (s *State) Authenticated() bool {
	return s.Token() != ""
}

// Phase returns LoggedIn once a token is stored.
func (s *State) Phase() Phase {
	if s.Authenticated() {
		return LoggedIn
	}
	return LoggedOut
}

// SetQuery records the last submitted query.
func (s *State) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// Query returns the last submitted query.
func (s *State) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}
