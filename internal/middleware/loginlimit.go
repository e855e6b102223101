package middleware

import (
	"context"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/enbat/horizon-server-go/internal/config"
	"github.com/enbat/horizon-server-go/internal/redis"
)

// LoginRateLimiter throttles credential attempts per client IP with a fixed
// window in redis, so the limit holds across server instances. Redis being
// unreachable fails open: blocking every login is worse than briefly not
// throttling them.
type LoginRateLimiter struct {
	client *goredis.Client
}

func NewLoginRateLimiter(client *goredis.Client) *LoginRateLimiter {
	return &LoginRateLimiter{client: client}
}

func (l *LoginRateLimiter) isAllowed(ctx context.Context, ip string) bool {
	key := redis.LoginRateKey(ip)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		log.Warn().Err(err).Msg("login rate limit check failed, allowing request")
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, config.LoginWindowSeconds*time.Second).Err(); err != nil {
			// Without a TTL the counter never resets and the IP would be
			// locked out for good. Drop the key and allow the attempt.
			log.Warn().Err(err).Msg("login rate limit window not set, allowing request")
			l.client.Del(ctx, key)
			return true
		}
	}

	return count <= config.LoginMaxAttempts
}

func (l *LoginRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// RemoteAddr is resolved by the router's RealIP middleware; reading
		// forwarded headers here would let clients mint fresh identities.
		ip := r.RemoteAddr

		if !l.isAllowed(r.Context(), ip) {
			log.Warn().Str("ip", ip).Msg("login rate limit exceeded")
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "Too many login attempts. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
