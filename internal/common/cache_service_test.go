package common

import (
	"errors"
	"testing"
	"time"
)

func TestCacheService_GetOrSet(t *testing.T) {
	cs := NewCacheService(time.Minute, time.Minute)

	calls := 0
	loader := func() (string, error) {
		calls++
		return "12345", nil
	}

	for i := 0; i < 3; i++ {
		got, err := cs.GetOrSet("twitch:racer", time.Minute, loader)
		if err != nil {
			t.Fatalf("GetOrSet failed: %v", err)
		}
		if got != "12345" {
			t.Errorf("Expected 12345, got %s", got)
		}
	}
	if calls != 1 {
		t.Errorf("Expected loader to run once, ran %d times", calls)
	}
}

func TestCacheService_LoaderErrorNotCached(t *testing.T) {
	cs := NewCacheService(time.Minute, time.Minute)

	_, err := cs.GetOrSet("k", time.Minute, func() (string, error) { return "", errors.New("boom") })
	if err == nil {
		t.Fatal("Expected loader error")
	}
	if _, found := cs.Get("k"); found {
		t.Error("Failed loads must not be cached")
	}
}

func TestCacheService_Expiry(t *testing.T) {
	cs := NewCacheService(time.Minute, time.Minute)
	cs.Set("k", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	if _, found := cs.Get("k"); found {
		t.Error("Expected entry to expire")
	}

	cs.Set("k", "v", time.Minute)
	cs.Delete("k")
	if _, found := cs.Get("k"); found {
		t.Error("Expected entry deleted")
	}
}
