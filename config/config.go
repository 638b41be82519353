package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything main needs to wire the engine.
type Config struct {
	Port              int
	RedisAddr         string // empty = in-memory cache
	HostEventURL      string // empty = host notifications disabled
	ClockSchedule     string // cron spec for standalone mode, empty = host-driven ticks only
	RandomSeed        int64  // 0 = time-seeded
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load reads configuration from the environment, with .env support for
// local runs. Every value has a working default.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	return Config{
		Port:              envInt("PORT", 8080),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		HostEventURL:      os.Getenv("HOST_EVENT_URL"),
		ClockSchedule:     os.Getenv("CLOCK_SCHEDULE"),
		RandomSeed:        int64(envInt("RANDOM_SEED", 0)),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return value
}
