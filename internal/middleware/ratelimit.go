package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter caps requests per client IP over a fixed window. It backs
// the auth endpoints, where credential stuffing is the concern; state is
// in-process only and resets on restart.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
}

type clientWindow struct {
	count   int
	started time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
	}
	go rl.evictLoop()
	return rl
}

// evictLoop drops windows that have fully elapsed so idle IPs don't
// accumulate.
func (rl *RateLimiter) evictLoop() {
	for range time.Tick(rl.window) {
		now := time.Now()
		rl.mu.Lock()
		for ip, cw := range rl.clients {
			if now.Sub(cw.started) > rl.window {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// allow counts one request from ip and reports whether it is still
// within the limit for the current window.
func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[ip]
	if !ok || now.Sub(cw.started) > rl.window {
		rl.clients[ip] = &clientWindow{count: 1, started: now}
		return true
	}
	cw.count++
	return cw.count <= rl.limit
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.RemoteAddr, time.Now()) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
