package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-memory cache used when Redis is not configured
type CacheService struct {
	cache *cache.Cache
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

func NewCacheService(defaultExpiration, cleanUpInterval time.Duration) *CacheService {
	return &CacheService{cache: cache.New(defaultExpiration, cleanUpInterval)}
}

func (cs *CacheService) Set(key string, value string, duration time.Duration) {
	cs.cache.Set(key, value, duration)
}

func (cs *CacheService) Get(key string) (string, bool) {
	v, found := cs.cache.Get(key)
	if !found {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (cs *CacheService) Delete(key string) {
	cs.cache.Delete(key)
}

func (cs *CacheService) GetOrSet(key string, duration time.Duration, loader func() (string, error)) (string, error) {
	if val, found := cs.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return "", err
	}

	cs.Set(key, val, duration)
	return val, nil
}

// Close is a no-op for the in-memory cache
func (cs *CacheService) Close() error {
	return nil
}
