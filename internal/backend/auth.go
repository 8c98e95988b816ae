package backend

import (
	"context"
	"net/http"
)

// Login posts {username, password} to the login endpoint and returns the
// issued bearer token. A 2xx answer without a token is a *DecodeError.
func (h *HTTP) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	var raw map[string]any
	if err := h.do(ctx, http.MethodPost, h.endpoints.Login, "", body, &raw); err != nil {
		return "", err
	}
	token := extractAccessToken(raw)
	if token == "" {
		return "", &DecodeError{Endpoint: h.endpoints.Login, Reason: "no token in response"}
	}
	return token, nil
}

// Verify calls GET /auth/verify with Authorization: Bearer <token>.
func (h *HTTP) Verify(ctx context.Context, token string) (*VerifyResponse, error) {
	var out VerifyResponse
	if err := h.do(ctx, http.MethodGet, h.endpoints.Verify, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
