// Package http serves the JSON API over a session.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"condo/internal/log"
	"condo/internal/metrics"
	"condo/internal/middleware/ratelimit"
	"condo/internal/middleware/security"
	"condo/internal/middleware/trace"
	"condo/internal/session"
)

// Options configures NewServer. Only Session is required.
type Options struct {
	Addr               string
	Session            *session.Session
	Logger             *log.Logger
	Metrics            *metrics.Metrics
	RateLimitPerMinute int
	// Ready reports whether the backing store answers; nil is always ready.
	Ready func(ctx context.Context) error
}

type Server struct {
	http.Server
	session  *session.Session
	logger   *log.Logger
	limiter  *ratelimit.Limiter
	detector *security.Detector
	ready    func(ctx context.Context) error

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	limitCfg := ratelimit.DefaultConfig()
	limitCfg.RequestsPerMinute = opts.RateLimitPerMinute

	s := &Server{
		session:  opts.Session,
		logger:   logger,
		limiter:  ratelimit.NewLimiter(limitCfg),
		detector: security.NewDetector(),
		ready:    opts.Ready,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", opts.Metrics.Handler())

	mux.HandleFunc("GET /api/property", s.handleProperty)

	mux.HandleFunc("GET /api/units", s.handleListUnits)
	mux.HandleFunc("POST /api/units", s.handleCreateUnit)
	mux.HandleFunc("PUT /api/units/{id}", s.handleUpdateUnit)
	mux.HandleFunc("DELETE /api/units/{id}", s.handleDeleteUnit)
	mux.HandleFunc("POST /api/units/{id}/paid", s.handleSetPaid)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)

	mux.HandleFunc("GET /api/period", s.handleGetPeriod)
	mux.HandleFunc("PUT /api/period", s.handleSetPeriod)
	mux.HandleFunc("POST /api/period/next", s.handleNextMonth)
	mux.HandleFunc("POST /api/period/previous", s.handlePreviousMonth)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("POST /api/export", s.handleExport)

	var h http.Handler = mux
	h = s.limiter.Middleware(s.detector.ExtractClientIP, s.handleRateLimited)(h)
	h = s.detector.Middleware(h)
	h = security.Headers(security.DefaultHeadersConfig())(h)
	h = trace.NewMiddleware(logger, s.detector.ExtractClientIP, opts.Metrics.ObserveHTTP).Middleware(h)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Shutdown stops the rate limiter and gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContextOr(r.Context(), s.logger).WithComponent(log.ComponentRateLimit).WarnContext(r.Context(),
		"Rate limit exceeded",
		log.NewFields().WithClientIP(s.detector.ExtractClientIP(r)).
			WithHTTPRequest(r.Method, r.URL.Path, "", "").ToSlice()...)
	w.Header().Set("Retry-After", "60")
	writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded, try again later"})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			log.FromContextOr(r.Context(), s.logger).WarnContext(r.Context(), "Readiness check failed",
				log.FieldError, err.Error())
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ready"))
}
