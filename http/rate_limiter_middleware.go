package http

import (
	"net"
	"net/http"
)

// requestKey buckets callers by farm so one player's macroed GUI
// cannot starve another farm on the same host connection. Requests
// that carry no farm_id share their caller's address bucket.
func requestKey(r *http.Request) string {
	if farmID := r.URL.Query().Get("farm_id"); farmID != "" {
		return "farm:" + farmID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}

func RateLimitMiddleware(limiter *RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(requestKey(r)) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
