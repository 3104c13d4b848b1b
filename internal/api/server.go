// Package api exposes the projection engine over HTTP with JSON bodies.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rgehrsitz/nestegg/internal/breakeven"
	"github.com/rgehrsitz/nestegg/internal/calculation"
)

// maxBodyBytes bounds request bodies; inputs are a handful of numbers.
const maxBodyBytes = 64 << 10

// Server holds the engine shared by all handlers. Handlers keep no per-request state on
// the Server, so one instance serves concurrent requests.
type Server struct {
	engine *calculation.CalculationEngine
	solver *breakeven.Solver
	logger calculation.Logger
}

// NewServer creates a server around engine; nil uses a default engine.
func NewServer(engine *calculation.CalculationEngine) *Server {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return &Server{
		engine: engine,
		solver: breakeven.NewDefaultSolver(engine),
		logger: engine.Logger,
	}
}

// Handler returns the routed handler with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /calculate", s.handleCalculate)
	mux.HandleFunc("POST /projection", s.handleProjection)
	mux.HandleFunc("POST /solve", s.handleSolve)
	mux.HandleFunc("GET /variables", s.handleVariables)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.logRequests(withCORS(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Infof("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// withCORS allows any origin, matching a browser front end served from elsewhere.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debugf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
