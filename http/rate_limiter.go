package http

import (
	"sync"
	"time"
)

// staleBucketAge is how long an idle caller's bucket survives before
// a sweep reclaims it.
const staleBucketAge = time.Hour

// farmBucket tracks one caller's remaining request allowance.
type farmBucket struct {
	allowance float64
	last      time.Time
}

// RateLimiter throttles requests per farm. Allowance refills
// continuously over the window rather than resetting at a hard edge,
// so a GUI polling a finance slider degrades smoothly instead of
// going dark until the next window.
type RateLimiter struct {
	mu        sync.Mutex
	capacity  float64
	window    time.Duration
	buckets   map[string]*farmBucket
	lastSweep time.Time
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		capacity:  float64(capacity),
		window:    window,
		buckets:   make(map[string]*farmBucket),
		lastSweep: time.Now(),
	}
}

// Allow spends one request from the caller's bucket.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if now.Sub(r.lastSweep) > staleBucketAge {
		r.sweep(now)
	}

	bucket, ok := r.buckets[key]
	if !ok {
		bucket = &farmBucket{allowance: r.capacity, last: now}
		r.buckets[key] = bucket
	}

	elapsed := now.Sub(bucket.last)
	bucket.allowance += elapsed.Seconds() / r.window.Seconds() * r.capacity
	if bucket.allowance > r.capacity {
		bucket.allowance = r.capacity
	}
	bucket.last = now

	if bucket.allowance < 1 {
		return false
	}
	bucket.allowance--
	return true
}

// sweep drops buckets of farms that stopped calling. Runs inline on
// the next Allow after the threshold, so no background goroutine.
func (r *RateLimiter) sweep(now time.Time) {
	for key, bucket := range r.buckets {
		if now.Sub(bucket.last) > staleBucketAge {
			delete(r.buckets, key)
		}
	}
	r.lastSweep = now
}
