// Copyright (c) 2025 nlquery
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import "sync"

var (
	// Process-wide cache of discovered manifests keyed by listing URL.
	// Lives only in process memory and is cleared when the CLI exits.
	globalCache     = map[string]*Manifest{}
	globalCacheLock sync.RWMutex
)

// GetCached returns the cached manifest for key, or nil if not cached.
func GetCached(key string) *Manifest {
	globalCacheLock.RLock()
	defer globalCacheLock.RUnlock()
	return globalCache[key]
}

// SetCached stores the manifest for key in RAM.
func SetCached(key string, m *Manifest) {
	globalCacheLock.Lock()
	defer globalCacheLock.Unlock()
	globalCache[key] = m
}

// ClearCache removes all cached manifests (primarily for testing).
func ClearCache() {
	globalCacheLock.Lock()
	defer globalCacheLock.Unlock()
	globalCache = map[string]*Manifest{}
}
