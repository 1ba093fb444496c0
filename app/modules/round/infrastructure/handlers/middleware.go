package roundhandlers

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/golfcard/pkg/observability/attr"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// CorrelationIDHeader carries the request correlation id in both directions.
const CorrelationIDHeader = "X-Correlation-ID"

// Client buckets are pruned once more than DefaultMaxClients are tracked,
// dropping those idle for DefaultClientIdle.
const (
	DefaultMaxClients = 500
	DefaultClientIdle = 10 * time.Minute
)

type clientBucket struct {
	tokens   *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter keeps a token bucket per client address.
type ClientLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*clientBucket
	limit      rate.Limit
	burst      int
	idle       time.Duration
	maxClients int
	now        func() time.Time
}

// NewClientLimiter builds the limiter described by cfg. A non-positive rate
// disables limiting.
func NewClientLimiter(cfg RouteConfig) *ClientLimiter {
	l := &ClientLimiter{
		buckets:    make(map[string]*clientBucket),
		limit:      rate.Limit(cfg.RateLimit),
		burst:      cfg.RateBurst,
		idle:       cfg.ClientIdle,
		maxClients: cfg.MaxClients,
		now:        time.Now,
	}
	if cfg.RateLimit <= 0 {
		l.limit = rate.Inf
	}
	if l.burst <= 0 {
		l.burst = 1
	}
	if l.idle <= 0 {
		l.idle = DefaultClientIdle
	}
	if l.maxClients <= 0 {
		l.maxClients = DefaultMaxClients
	}
	return l
}

// Allow spends a token from client's bucket.
func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.buckets) >= l.maxClients {
		l.prune(now)
	}

	b, ok := l.buckets[client]
	if !ok {
		b = &clientBucket{tokens: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[client] = b
	}
	b.lastSeen = now
	return b.tokens.AllowN(now, 1)
}

// Tracked reports how many client buckets are held.
func (l *ClientLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *ClientLimiter) prune(now time.Time) {
	cutoff := now.Add(-l.idle)
	for client, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, client)
		}
	}
}

// RateLimitMiddleware answers 429 once the caller's bucket is empty.
func RateLimitMiddleware(limiter *ClientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientAddr(r)) {
				writeError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// CORSMiddleware sets CORS headers for the configured origins. With no
// origins configured it adds nothing.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				if _, ok := origins[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+CorrelationIDHeader)
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CorrelationMiddleware propagates the caller's correlation id, minting one
// when the header is absent.
func CorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(CorrelationIDHeader, id)
		next.ServeHTTP(w, r.WithContext(attr.WithCorrelationID(r.Context(), id)))
	})
}
