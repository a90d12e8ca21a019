package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklists/internal/auth"
	"github.com/BuzzLyutic/tasklists/internal/metrics"
)

// RateLimiter is a fixed-window limiter backed by Redis INCR/EXPIRE.
// With no client it lets every request through, and Redis errors fail open.
type RateLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	logger *zap.Logger
	// Reject writes the response for a limited request.
	Reject func(w http.ResponseWriter, r *http.Request)
}

// NewRedisClient connects to addr; an empty addr or failed ping yields nil.
func NewRedisClient(addr, password string, db int, logger *zap.Logger) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", zap.String("addr", addr), zap.Error(err))
		client.Close()
		return nil
	}
	return client
}

func NewRateLimiter(client *redis.Client, max int, window time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		max:    max,
		window: window,
		logger: logger,
		Reject: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		},
	}
}

// Limit applies only to mutating methods; reads pass untouched.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.client == nil || r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		key := "rl:" + strconv.FormatInt(int64(l.window.Seconds()), 10) + ":" + identity(r)
		ctx := r.Context()

		n, err := l.hit(ctx, key)
		if err != nil {
			l.logger.Warn("rate limiter redis error", zap.Error(err))
			w.Header().Set("X-RateLimit-Error", "redis-error")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.max))
		if n > int64(l.max) {
			metrics.RateLimited.WithLabelValues(metrics.Route(r)).Inc()
			l.Reject(w, r)
			return
		}
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(l.max)-n, 10))
		next.ServeHTTP(w, r)
	})
}

// hit counts one request in the current window. INCR and EXPIRE NX run in
// one MULTI so a counter can never be left without a TTL.
func (l *RateLimiter) hit(ctx context.Context, key string) (int64, error) {
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func identity(r *http.Request) string {
	if id, ok := auth.UserID(r.Context()); ok {
		return "user:" + strconv.FormatInt(id, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
