package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"ssbg/internal/cache"
	"ssbg/internal/core"
	appweb "ssbg/web"
)

// Options tunes the server's view caches.
type Options struct {
	CacheTTL     time.Duration
	CacheEntries int
}

type Server struct {
	http.Server
	templates   *template.Template
	table       *core.Table
	rateLimiter *rateLimiter

	// Per-view LRU caches keyed by the canonical filter key.
	cacheManager *cache.Manager
	totalsCache  *cache.LRUCache[core.Totals]
	seriesCache  *cache.LRUCache[[]core.SeriesPoint]
	mapCache     *cache.LRUCache[[]core.StateAggregate]
	topCache     *cache.LRUCache[[]core.CategoryAggregate]

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
// The table is the immutable dataset snapshot loaded at startup.
func NewServer(addr string, table *core.Table, opts Options) *Server {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	if opts.CacheEntries <= 0 {
		opts.CacheEntries = 500
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		table:        table,
		rateLimiter:  newRateLimiter(),
		cacheManager: cache.NewManager(),
		totalsCache:  cache.NewLRUCache[core.Totals](opts.CacheEntries, opts.CacheTTL),
		seriesCache:  cache.NewLRUCache[[]core.SeriesPoint](opts.CacheEntries, opts.CacheTTL),
		mapCache:     cache.NewLRUCache[[]core.StateAggregate](opts.CacheEntries, opts.CacheTTL),
		topCache:     cache.NewLRUCache[[]core.CategoryAggregate](opts.CacheEntries, opts.CacheTTL),
	}

	s.cacheManager.Register(s.totalsCache)
	s.cacheManager.Register(s.seriesCache)
	s.cacheManager.Register(s.mapCache)
	s.cacheManager.Register(s.topCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleNational))
	mux.HandleFunc("/state/", s.withSecurityHeaders(s.handleState))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	// UI partials
	mux.HandleFunc("/ui/summary-cards", s.withSecurityHeaders(s.handleSummaryCards))
	mux.HandleFunc("/ui/top-categories", s.withSecurityHeaders(s.handleTopCategories))
	mux.HandleFunc("/ui/data-table", s.withSecurityHeaders(s.handleDataTable))
	// JSON views for the charts
	mux.HandleFunc("/api/timeseries", s.withSecurityHeaders(s.handleTimeSeries))
	mux.HandleFunc("/api/map", s.withSecurityHeaders(s.handleMap))
	mux.HandleFunc("/api/meta", s.withSecurityHeaders(s.handleMeta))
	// CSV download of the filtered rows
	mux.HandleFunc("/export/csv", s.withSecurityHeaders(s.handleExportCSV))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Exports walk every filtered row, so they are rate limited.
		if strings.HasPrefix(r.URL.Path, "/export/") && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.table == nil || s.table.Len() == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("dataset not loaded"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// totals returns the aggregate for a filter, cached by its canonical key.
func (s *Server) totals(ctx context.Context, f core.Filter) core.Totals {
	key := f.Key()
	if data, found := s.totalsCache.Get(key); found {
		slog.DebugContext(ctx, "Totals cache hit", "filter", key)
		return data
	}
	data := s.table.Totals(f)
	s.totalsCache.Set(key, data)
	return data
}
