package manifest

import (
	"context"
	"net/http"
)

// Discover returns the backend's endpoint listing served at path, using the
// RAM cache if available. client may be nil; an empty path means Default().API.
func Discover(ctx context.Context, client *http.Client, baseURL, path string) (*Manifest, error) {
	if path == "" {
		path = Default().API
	}
	key := baseURL + path
	if cached := GetCached(key); cached != nil {
		return cached, nil
	}

	m, err := fetchFromServer(ctx, client, baseURL, path)
	if err != nil {
		return nil, err
	}

	SetCached(key, m)
	return m, nil
}
