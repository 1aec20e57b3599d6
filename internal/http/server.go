// Package http exposes the JSON API. Every business route lives under /api
// and requires a session token; /healthz and /readyz are open for probes.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"budgetbuddy/internal/alerts"
	"budgetbuddy/internal/cache"
	"budgetbuddy/internal/insight"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/middleware/ratelimit"
	"budgetbuddy/internal/middleware/security"
	"budgetbuddy/internal/middleware/trace"
	"budgetbuddy/internal/session"
	"budgetbuddy/internal/store"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second

	dashboardCacheTTL  = 30 * time.Second
	dashboardCacheSize = 256
)

// Options carries the server's dependencies. Insights may be nil when no
// Gemini API key is configured; Notifier may be nil when AMQP is disabled.
type Options struct {
	Addr           string
	Store          store.Store
	Sessions       *session.Manager
	Insights       *insight.Service
	InsightTimeout time.Duration
	Notifier       *alerts.Notifier
	Logger         *log.Logger
	RateLimit      int // requests per minute per client IP
}

type Server struct {
	httpServer *http.Server
	store      store.Store
	sessions   *session.Manager
	insights   *insight.Service
	insightTTL time.Duration
	notifier   *alerts.Notifier
	logger     *log.Logger
	limiter    *ratelimit.Limiter
	detector   *security.Detector
	tracer     *trace.Middleware
	structured *log.StructuredLogger

	dashCache *cache.LRUCache[dashboardResponse]

	shutdownOnce sync.Once
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	}

	s := &Server{
		store:      opts.Store,
		sessions:   opts.Sessions,
		insights:   opts.Insights,
		insightTTL: opts.InsightTimeout,
		notifier:   opts.Notifier,
		logger:     logger,
		limiter:    ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimit}),
		detector:   security.NewDetector(),
		dashCache:  cache.NewLRUCache[dashboardResponse](dashboardCacheSize, dashboardCacheTTL),
	}
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP)
	s.structured = log.NewStructuredLogger(logger)
	if s.insightTTL <= 0 {
		s.insightTTL = 30 * time.Second
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.middleware(mux),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/logout", s.withSession(s.handleLogout))

	mux.HandleFunc("/api/transactions", s.withSession(s.handleTransactions))
	mux.HandleFunc("/api/transactions/", s.withSession(s.handleTransactionByID))

	mux.HandleFunc("/api/budgets", s.withSession(s.handleBudgets))
	mux.HandleFunc("/api/budgets/", s.withSession(s.handleBudgetByID))

	mux.HandleFunc("/api/dashboard", s.withSession(s.handleDashboard))
	mux.HandleFunc("/api/reports/monthly", s.withSession(s.handleMonthlyReport))

	mux.HandleFunc("/api/export/csv", s.withSession(s.handleExportCSV))
	mux.HandleFunc("/api/export/pdf", s.withSession(s.handleExportPDF))

	mux.HandleFunc("/api/insights", s.withSession(s.handleInsights))

	mux.HandleFunc("/api/settings/theme", s.withSession(s.handleTheme))
	mux.HandleFunc("/api/settings/clear", s.withSession(s.handleClearData))
}

// middleware wraps the mux with, outermost first: security headers, request
// tracing, suspicious request screening and per-IP rate limiting.
func (s *Server) middleware(next http.Handler) http.Handler {
	headersCfg := security.DefaultHeadersConfig()
	// API responses are never rendered; lock the CSP down entirely.
	headersCfg.CSP = "default-src 'none'; frame-ancestors 'none'"
	headers := security.NewHeadersMiddleware(headersCfg)

	// Reads are cheap and cacheable; only writes count against the limit.
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if !s.limiter.Allow(s.detector.ExtractClientIP(r)) {
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
				return
			}
		}

		// Detection is observability, not enforcement: flagged requests
		// are logged and counted but still served.
		if s.detector.DetectSuspiciousRequest(r) {
			s.logger.WarnContext(r.Context(), "Suspicious request detected",
				log.FieldPath, r.URL.Path,
				log.FieldClientIP, s.detector.ExtractClientIP(r))
		}
		next.ServeHTTP(w, r)
	})

	// Request-scoped loggers carry the trace request ID into every handler
	// log line via log.FromContext.
	withLogger := log.Middleware(s.logger)
	withRequestID := log.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})

	return headers.Middleware(s.tracer.Middleware(withLogger(withRequestID(limited))))
}

func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", log.FieldPath, s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.logger.Info("Shutting down HTTP server")
		s.limiter.Stop()
		err = s.httpServer.Shutdown(ctx)
	})
	return err
}

// Handler returns the fully wrapped handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

// handleMetrics exposes plain-text operational counters.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	traceMetrics := s.tracer.GetMetrics()
	limitMetrics := s.limiter.GetMetrics()
	secMetrics := s.detector.GetMetrics()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "requests_total %d\n", traceMetrics.TotalRequests)
	fmt.Fprintf(w, "response_time_avg_us %d\n", traceMetrics.AverageResponseTime)
	fmt.Fprintf(w, "ratelimit_clients %d\n", limitMetrics.ClientCount)
	fmt.Fprintf(w, "suspicious_requests_total %d\n", secMetrics.SuspiciousRequests)
	fmt.Fprintf(w, "dashboard_cache_entries %d\n", s.dashCache.Size())
}
