// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend is the client for the natural-language query service.
// It defines the API contract the UI controller depends on, the typed
// response schema of each endpoint and an HTTP implementation.
package backend

import (
	"context"

	"nlquery/cli/internal/manifest"
)

// API defines backend operations the UI depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, username, password string) (token string, err error)
	// Verify reports which user the token belongs to.
	Verify(ctx context.Context, token string) (*VerifyResponse, error)
	// Query turns the question into SQL and executes it.
	Query(ctx context.Context, token, query string) (*QueryResponse, error)
	// Explain describes what the generated SQL does.
	Explain(ctx context.Context, token, query string) (*Explanation, error)
	// Validate checks whether the generated SQL can run against the schema.
	Validate(ctx context.Context, token, query string) (*Validation, error)
	// Health returns the backend's health status string.
	Health(ctx context.Context) (string, error)
	// Manifest returns the backend's endpoint listing.
	Manifest(ctx context.Context) (*manifest.Manifest, error)
	// GetVersion returns the version published by the backend's API listing.
	GetVersion(ctx context.Context) (string, error)
}
