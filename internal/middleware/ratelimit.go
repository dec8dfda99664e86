package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gridplace-dev/gridplace/internal/middleware/ratelimiter"
	"github.com/gridplace-dev/gridplace/internal/utils"
)

func RateLimit(rl *ratelimiter.KeyedRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if actor := GetActorFromContext(r); actor != nil && actor.Admin { // disable for admin
				next.ServeHTTP(w, r)
				return
			}

			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GlobalRateLimit(rl *ratelimiter.KeyedRateLimiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}

// Possible if actor was authorized with previous middleware
func GetActorIDFromContext(r *http.Request) (string, error) {
	actor := GetActorFromContext(r)
	if actor == nil {
		return "", errors.New("Can't get actor id")
	}
	return fmt.Sprintf("actor_%d", actor.Id), nil
}

// GetIP extracts the real client IP from RemoteAddr
// Does NOT trust X-Real-IP or X-Forwarded-For headers (no reverse proxy)
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// Fallback: if RemoteAddr doesn't have port, use it directly
		if net.ParseIP(r.RemoteAddr) != nil {
			return r.RemoteAddr, nil
		}
		return "", errors.New("No valid ip found")
	}
	return ip, nil
}
