// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"time"

	"nlquery/cli/internal/manifest"
)

// New creates a backend API implementation for baseURL.
// A non-positive timeout selects the 10 second default.
func New(baseURL string, endpoints manifest.Endpoints, timeout time.Duration) API {
	return newHTTP(baseURL, endpoints, timeout)
}
