// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth performs login against the backend and keeps the resulting
// bearer token in the session state. Credentials are checked locally first so
// that an incomplete form never reaches the network.
package auth

import (
	"context"
	"fmt"

	"nlquery/cli/internal/backend"
	apperr "nlquery/cli/internal/errors"
	"nlquery/cli/internal/i18n"
	"nlquery/cli/internal/logging"
	"nlquery/cli/internal/session"
)

// Service centralizes authentication-related operations against the backend
// and the session state.
type Service struct {
	be backend.API
	st *session.State
}

// NewService constructs an auth Service for one session.
func NewService(be backend.API, st *session.State) *Service {
	return &Service{be: be, st: st}
}

// Login validates the credentials locally, then exchanges them for a token.
// On success the token is stored in the session.
func (s *Service) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return apperr.New(apperr.MissingCredentials, i18n.T("auth.missing_credentials"))
	}

	token, err := s.be.Login(ctx, username, password)
	if err != nil {
		logging.L.Info("login failed", logging.L.Args("user", username, "error", logging.Mask(err.Error())))
		return fmt.Errorf("login: %w", err)
	}

	s.st.SetToken(token)
	logging.L.Info("login succeeded", logging.L.Args("user", username))
	return nil
}

// LoggedIn reports whether the session holds a token.
func (s *Service) LoggedIn() bool {
	return s.st.Authenticated()
}

// Token returns the session's bearer token.
func (s *Service) Token() string {
	return s.st.Token()
}

// WhoAmI validates the current token with the backend and returns the user
// it was issued to.
func (s *Service) WhoAmI(ctx context.Context) (string, error) {
	token := s.st.Token()
	if token == "" {
		return "", apperr.New(apperr.NotLoggedIn, i18n.T("query.login_first"))
	}
	who, err := s.be.Verify(ctx, token)
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}
	return who.User, nil
}
