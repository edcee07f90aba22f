package ratelimit

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Middleware rejects requests over the limit with 429. Limiter errors are
// logged and the request is let through.
func Middleware(l Limiter, name string, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			ok, err := l.Allow(r.Context(), name+":"+ip)
			if err != nil {
				log.Warn("rate limiter unavailable; allowing request",
					zap.String("limiter", name), zap.String("ip", ip), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				log.Info("rate limit exceeded",
					zap.String("limiter", name), zap.String("ip", ip), zap.String("path", r.URL.Path))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
