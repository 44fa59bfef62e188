package httpapi

import (
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// corsMiddleware lets the capture page POST from any origin. The phone loads
// the page at whatever LAN address it finds the machine on, so the allowance
// is unconditional.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Limiter hands out one token bucket per client IP.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewLimiter creates a limiter allowing perMin uploads per minute per client,
// with the given burst.
func NewLimiter(perMin, burst int) *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(float64(perMin) / 60.0),
		burst:    burst,
	}
}

// Allow reports whether the client may upload now.
func (l *Limiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[clientIP]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[clientIP] = lim
	}
	return lim.Allow()
}

// RateLimitMiddleware applies the per-IP limit to mutating requests. Reads
// (history, stats, the capture page itself) stay unthrottled.
func RateLimitMiddleware(limiter *Limiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			if !limiter.Allow(ip) {
				log.Printf("Rate limit exceeded for %s", ip)
				writeError(w, http.StatusTooManyRequests, "too many uploads, slow down")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
