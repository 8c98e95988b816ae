package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nlquery/cli/internal/logging"
	"nlquery/cli/internal/manifest"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 8 << 20

// HTTP implements API over the backend's JSON endpoints.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://localhost:5000")
	baseURL string
	// endpoints contains the URL paths for the API endpoints
	endpoints manifest.Endpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
}

// newHTTP creates a new HTTP client with the given base URL and endpoints.
func newHTTP(baseURL string, endpoints manifest.Endpoints, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the backend base URL without a trailing slash.
func (h *HTTP) BaseURL() string { return h.baseURL }

// do sends a JSON request and decodes a 2xx body into out (when non-nil).
// Non-2xx answers become *StatusError regardless of the body shape.
func (h *HTTP) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		logging.L.Debug("backend request failed",
			logging.L.Args("method", method, "path", path, "error", logging.Mask(err.Error())))
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	logging.L.Debug("backend request",
		logging.L.Args("method", method, "path", path, "status", resp.StatusCode, "took", time.Since(start).String()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(path, resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Endpoint: path, Reason: "invalid JSON", Err: err}
	}
	return nil
}

// Health calls GET /health and returns the reported status.
// No authentication required.
func (h *HTTP) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := h.do(ctx, http.MethodGet, h.endpoints.Health, "", nil, &out); err != nil {
		return "", err
	}
	if out.Status == "" {
		return "unknown", nil
	}
	return out.Status, nil
}

// Manifest calls the configured API listing endpoint and returns the
// endpoints the backend advertises. No authentication required.
func (h *HTTP) Manifest(ctx context.Context) (*manifest.Manifest, error) {
	return manifest.Discover(ctx, h.client, h.baseURL, h.endpoints.API)
}

// GetVersion returns the version string of the API listing when available.
// No authentication required. This can be used to check connectivity to the backend service.
func (h *HTTP) GetVersion(ctx context.Context) (string, error) {
	m, err := h.Manifest(ctx)
	if err != nil {
		return "", err
	}
	if m.Version == "" {
		return "unknown", nil
	}
	return m.Version, nil
}
