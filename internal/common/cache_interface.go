package common

import "time"

// CacheInterface is the contract shared by the in-memory and Redis
// caches. Values are strings so both backends round-trip them exactly.
type CacheInterface interface {
	// Set stores value under key for duration
	Set(key string, value string, duration time.Duration)

	// Get returns the value and true if found
	Get(key string) (string, bool)

	Delete(key string)

	// GetOrSet returns the cached value, or stores the loader's result
	GetOrSet(key string, duration time.Duration, loader func() (string, error)) (string, error)

	// Close releases any underlying connections
	Close() error
}
