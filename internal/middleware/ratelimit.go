package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	"gqlblog/internal/cache"
)

type IPRateLimiter interface {
	CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*cache.RateLimitResult, error)
}

type RateLimitConfig struct {
	Logger  *slog.Logger
	Limiter IPRateLimiter
	RPS     int
	Burst   int
}

// RateLimitIP throttles each client address with a token bucket. Without a
// limiter it is a no-op, and a limiter error never blocks the request.
func RateLimitIP(cfg RateLimitConfig) Middleware {
	if cfg.Limiter == nil || cfg.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			result, err := cfg.Limiter.CheckIPRateLimit(r.Context(), ip, cfg.RPS, cfg.Burst)
			if err != nil {
				cfg.Logger.Error("rate limiter unavailable, letting request through",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

			if result.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			wait := int(math.Ceil(result.RetryAfter.Seconds()))
			if wait < 1 {
				wait = 1
			}

			cfg.Logger.Warn("request throttled",
				slog.String("request_id", GetRequestID(r.Context())),
				slog.String("path", r.URL.Path),
				slog.Int("retry_after_seconds", wait),
			)

			w.Header().Set("Retry-After", strconv.Itoa(wait))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "too many requests, slow down"})
		})
	}
}

// clientIP reads RemoteAddr, which chi's RealIP has already rewritten from
// the forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
