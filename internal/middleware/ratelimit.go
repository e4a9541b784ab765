package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/mentorlink/api/internal/config"
)

// clientIdleTTL bounds how long a per-client limiter is kept after its last request.
const clientIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore keeps one limiter per client and evicts idle ones at most once per clientIdleTTL.
type limiterStore struct {
	mu        sync.Mutex
	every     time.Duration
	burst     int
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

func newLimiterStore(every time.Duration, burst int, now time.Time) *limiterStore {
	return &limiterStore{
		every:     every,
		burst:     burst,
		clients:   make(map[string]*clientLimiter),
		lastSweep: now,
	}
}

func (s *limiterStore) allow(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= clientIdleTTL {
		for k, cl := range s.clients {
			if now.Sub(cl.lastSeen) > clientIdleTTL {
				delete(s.clients, k)
			}
		}
		s.lastSweep = now
	}

	cl, ok := s.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Every(s.every), s.burst)}
		s.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// RateLimiter applies a token bucket per client IP to the routes it wraps.
func RateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return next(c)
			}
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}
	store := newLimiterStore(perRequest, cfg.Requests, time.Now())

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !store.allow(c.RealIP(), time.Now()) {
				return reject(c, http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
