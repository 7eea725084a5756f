package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/assetboard/internal/domain/board"
)

// StatusProvider reports the board status for the status endpoint.
type StatusProvider interface {
	Status() board.Status
}

// Server wires HTTP handlers.
type Server struct {
	status StatusProvider
}

// NewServer creates an HTTP router serving the MCP endpoint, health and board status.
func NewServer(mcpHandler http.Handler, status StatusProvider, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(mcpSession)
	if logger != nil {
		r.Use(requestLogger(logger))
	}

	srv := &Server{status: status}

	if mcpHandler != nil {
		r.Handle("/mcp", mcpHandler)
		r.Handle("/mcp/*", mcpHandler)
	}
	r.Get("/health", srv.handleHealth)
	r.Get("/status", srv.handleStatus)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	if s.status == nil {
		http.Error(w, "status unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.status.Status())
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			sessionID, _ := MCPSessionID(r.Context())
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"request_id", middleware.GetReqID(r.Context()),
				"mcp_session", sessionID,
				"elapsed", time.Since(start),
			)
		})
	}
}

type mcpSessionKey struct{}

// MCPSessionID returns the Mcp-Session-Id header captured for the request.
func MCPSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(mcpSessionKey{}).(string)
	return id, ok && id != ""
}

func mcpSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("Mcp-Session-Id"); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), mcpSessionKey{}, id))
		}
		next.ServeHTTP(w, r)
	})
}
