package repository

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMockCache_SetGetDelete(t *testing.T) {

	cache := NewMockCache()

	if err := cache.Set("k", "v", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, ok := cache.Get("k")
	if !ok || val != "v" {
		t.Errorf("expected v, got %q (ok=%v)", val, ok)
	}

	if err := cache.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := cache.Get("k"); ok {
		t.Error("key should be gone after delete")
	}
}

func TestMockCache_ConcurrentAccess(t *testing.T) {

	cache := NewMockCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("credit_score:%d", n%2)
			for j := 0; j < 200; j++ {
				cache.Set(key, "650", time.Minute)
				cache.Get(key)
				cache.Delete(key)
			}
		}(i)
	}
	wg.Wait()
}
