package repository

import "time"

// CacheRepository caches computed credit scores so dialogs polling the
// credit report don't recompute on every slider movement.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration) error
	Delete(key string) error
}
