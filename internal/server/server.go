// Package server exposes the claims assistant over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/claimsight/internal/assistant"
	"github.com/ppiankov/claimsight/internal/model"
	"github.com/ppiankov/claimsight/internal/worker"
)

// Server serves the /query and /health endpoints.
type Server struct {
	assistant      *assistant.Assistant
	addr           string
	allowedOrigins []string
	limiter        *worker.Limiter
	logger         *zap.Logger
}

// New creates a server around an assistant.
func New(a *assistant.Assistant, cfg model.ServerConfig, rl model.RateLimitConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		assistant:      a,
		addr:           cfg.Addr,
		allowedOrigins: cfg.AllowedOrigins,
		limiter:        worker.NewLimiter(rl.RequestsPerSecond, rl.BurstSize),
		logger:         logger,
	}
}

// Handler builds the full middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/query", s.handleQuery)
	mux.HandleFunc("/health", s.handleHealth)

	return s.corsMiddleware(s.loggingMiddleware(s.rateLimitMiddleware(mux)))
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	s.logger.Info("server starting", zap.String("addr", s.addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Answer  string      `json:"answer"`
	Context interface{} `json:"context"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	if s.assistant == nil || !s.assistant.Ready() {
		writeError(w, http.StatusServiceUnavailable, "Claims assistant not initialized. Please try again later.")
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Query cannot be empty.")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "Query cannot be empty.")
		return
	}

	resp, err := s.assistant.Query(r.Context(), req.Query)
	if err != nil {
		s.logger.Error("query processing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An error occurred while processing your query.")
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Answer:  resp.Answer,
		Context: resp.Context,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"index_ready": s.assistant != nil && s.assistant.Ready(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
