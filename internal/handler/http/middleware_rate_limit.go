package http

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"golang.org/x/time/rate"
)

// staleBucketAge is how long an idle client bucket is kept.
const staleBucketAge = 10 * time.Minute

// rateLimiter is a token bucket per client key.
type rateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*clientBucket
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newRateLimiter allows requests tokens per window with the given burst.
func newRateLimiter(requests int, window time.Duration, burst int) *rateLimiter {
	return &rateLimiter{
		buckets: make(map[string]*clientBucket),
		limit:   rate.Limit(float64(requests) / window.Seconds()),
		burst:   burst,
		now:     time.Now,
	}
}

// allow reports whether key may proceed and, if not, how long it should wait.
func (l *rateLimiter) allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > staleBucketAge {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > staleBucketAge {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// withAuthRateLimit rejects register and login attempts from a client
// address that exceeded its budget with 429 and a Retry-After header.
func (h *Handler) withAuthRateLimit(next http.Handler) http.Handler {
	if h.authLimiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientAddress(r)
		ok, retryAfter := h.authLimiter.allow(key)
		if !ok {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			logger.FromRequest(r).Warn().
				Str("client", key).
				Int("retry_after", seconds).
				Msg("too many authentication attempts")
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
