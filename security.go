package main

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/olgasafonova/reddit-content-mcp-server/metrics"
)

const (
	// DefaultHTTPRateLimit is the per-IP request budget per minute in HTTP mode.
	DefaultHTTPRateLimit = 120

	// DefaultMaxBodySize caps JSON-RPC request bodies.
	DefaultMaxBodySize = 1 << 20
)

// RateLimiter hands out one token bucket per client IP.
// Each bucket holds rate tokens and refills rate tokens per interval.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     int
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter and starts its idle-bucket cleanup.
func NewRateLimiter(n int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     n,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether ip may make a request now, consuming a token if so.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	b, ok := rl.buckets[ip]
	if !ok {
		every := rl.interval / time.Duration(max(rl.rate, 1))
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), rl.rate)}
		rl.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	rl.mu.Unlock()

	return b.limiter.Allow()
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(max(rl.interval, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				if now.Sub(b.lastSeen) > 2*rl.interval {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// SecurityConfig configures the HTTP middleware.
type SecurityConfig struct {
	// RateLimit is requests per minute per client IP. Zero disables limiting.
	RateLimit int

	// MaxBodySize caps request bodies in bytes. Zero means no cap.
	MaxBodySize int64
}

// SecurityMiddleware wraps the HTTP transport with per-IP rate limiting,
// a body size cap and request counting.
type SecurityMiddleware struct {
	next    http.Handler
	logger  *slog.Logger
	config  SecurityConfig
	limiter *RateLimiter
}

// NewSecurityMiddleware wraps next.
func NewSecurityMiddleware(next http.Handler, logger *slog.Logger, config SecurityConfig) *SecurityMiddleware {
	sm := &SecurityMiddleware{
		next:   next,
		logger: logger,
		config: config,
	}
	if config.RateLimit > 0 {
		sm.limiter = NewRateLimiter(config.RateLimit, time.Minute)
	}
	return sm
}

// Close releases the rate limiter.
func (sm *SecurityMiddleware) Close() {
	if sm.limiter != nil {
		sm.limiter.Close()
	}
}

func (sm *SecurityMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	defer func() {
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
	}()

	ip := clientIP(r)
	if sm.limiter != nil && !sm.limiter.Allow(ip) {
		metrics.RateLimitRejections.Inc()
		sm.logger.Warn("Rate limit exceeded", "ip", ip, "path", r.URL.Path)
		http.Error(rec, "Too many requests", http.StatusTooManyRequests)
		return
	}

	if sm.config.MaxBodySize > 0 && r.Body != nil {
		r.Body = http.MaxBytesReader(rec, r.Body, sm.config.MaxBodySize)
	}

	sm.next.ServeHTTP(rec, r)
}

// clientIP returns the host part of RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working through the wrapper.
func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
