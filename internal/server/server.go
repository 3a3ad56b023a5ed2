// Package server provides the HTTP REST API for PathFinder.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/pathfinder/internal/roadmap"
	"github.com/jonathan/pathfinder/internal/server/ratelimit"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// Resolver produces roadmap and comparison records.
// *roadmap.Resolver satisfies it.
type Resolver interface {
	// Cached reports whether role is answered without a model call
	Cached(role string) bool
	Resolve(ctx context.Context, role string) roadmap.Record
	Compare(ctx context.Context, roleA, roleB string) roadmap.Record
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	resolver    Resolver
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port     int
	Resolver Resolver
	Logger   *zap.Logger
	// RateLimit configures the limiter; nil loads it from the environment
	RateLimit *ratelimit.Config
	// Timeout is the model call bound the resolver applies: zero means
	// roadmap.DefaultTimeout and negative means unbounded.
	Timeout time.Duration
}

// writeMargin is the time allowed beyond the model call to encode and send a response
const writeMargin = 30 * time.Second

// writeTimeout derives the response write deadline from the model call bound.
// An unbounded model call gets no write deadline.
func writeTimeout(modelTimeout time.Duration) time.Duration {
	switch {
	case modelTimeout < 0:
		return 0
	case modelTimeout == 0:
		modelTimeout = roadmap.DefaultTimeout
	}
	return modelTimeout + writeMargin
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Resolver == nil {
		return nil, errors.New("server requires a resolver")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rateCfg := cfg.RateLimit
	if rateCfg == nil {
		rateCfg = ratelimit.LoadConfig()
	}

	s := &Server{
		resolver:    cfg.Resolver,
		logger:      logger,
		rateLimiter: ratelimit.NewLimiter(rateCfg),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/compare", s.handleCompare)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withCORS(s.withRateLimit(s.withLogging(s.withRecover(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout(cfg.Timeout),
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until ctx is cancelled or
// the process receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS allows every origin, method and header
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware. Deferred endpoints are left
// to their handlers, which call allowRequest once they know the request
// needs the model.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.rateLimiter.Deferred(r.URL.Path, r.Method) || s.allowRequest(w, r) {
			next.ServeHTTP(w, r)
		}
	})
}

// allowRequest charges r against its client's bucket. When the limit is
// exceeded it writes the 429 response and returns false.
func (s *Server) allowRequest(w http.ResponseWriter, r *http.Request) bool {
	clientID := s.extractClientID(r)

	allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
	s.setRateLimitHeaders(w, info)

	if !allowed {
		s.rateLimitResponse(w, clientID, info)
	}
	return allowed
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging tags each request with an id and logs its outcome
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("request completed",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// withRecover turns a handler panic into a 500 carrying the panic value
func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				err := &ErrPanic{Value: v}
				s.logger.Error("handler panic",
					zap.String("path", r.URL.Path),
					zap.String("request_id", w.Header().Get(RequestIDHeader)),
					zap.Error(err),
					zap.ByteString("stack", debug.Stack()))
				s.writeError(w, err)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	const message = "Rate limit exceeded. Please try again later."
	response := map[string]any{
		"error":     message,
		"detail":    message,
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		retryAfter := int(info.RetryAfter.Seconds())
		response["retry_after"] = retryAfter
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID),
		zap.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
