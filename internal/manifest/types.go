// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package manifest describes where the backend serves each endpoint.
//
// The paths are fixed by the backend; Default returns them. The backend also
// publishes a self-description at GET /api listing the endpoints it serves and
// its version. Discover fetches that listing so commands can report the
// backend version and check that the endpoints the UI needs are present.
package manifest

import "sort"

// Endpoints contains the REST endpoint paths used by the UI.
type Endpoints struct {
	Login    string `json:"login"`    // POST {username, password}
	Verify   string `json:"verify"`   // GET, bearer auth
	Query    string `json:"query"`    // POST {query}, bearer auth
	Explain  string `json:"explain"`  // POST {query}, bearer auth
	Validate string `json:"validate"` // POST {query}, bearer auth
	Health   string `json:"health"`   // GET
	API      string `json:"api"`      // GET self-description
}

// Default returns the endpoint paths served by the backend.
func Default() Endpoints {
	return Endpoints{
		Login:    "/auth/login",
		Verify:   "/auth/verify",
		Query:    "/query",
		Explain:  "/explain",
		Validate: "/validate",
		Health:   "/health",
		API:      "/api",
	}
}

// Required lists the paths the query UI cannot work without.
func (e Endpoints) Required() []string {
	return []string{e.Login, e.Query, e.Explain, e.Validate}
}

// Manifest is the backend's self-description from GET /api.
type Manifest struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"` // path -> description
}

// Supports reports whether the listing contains path.
func (m *Manifest) Supports(path string) bool {
	if m == nil {
		return false
	}
	_, ok := m.Endpoints[path]
	return ok
}

// Missing returns the required paths of e that the listing does not contain.
func (m *Manifest) Missing(e Endpoints) []string {
	var out []string
	for _, p := range e.Required() {
		if !m.Supports(p) {
			out = append(out, p)
		}
	}
	return out
}

// Paths returns the listed paths in sorted order.
func (m *Manifest) Paths() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.Endpoints))
	for p := range m.Endpoints {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
