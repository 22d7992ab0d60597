// Package api implements the REST handlers for user preference management
// and notification dispatch.
package api

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/notifyd/notifyd/internal/service"
)

const errInvalidJSONBody = "invalid JSON body"

// Server holds all dependencies for the REST API handlers.
type Server struct {
	userSvc     service.UserService
	dispatchSvc service.DispatchService
	authToken   string
	logger      *slog.Logger
}

// New creates a new API Server backed by the provided services. authToken is
// the static bearer token required on every route mounted by Mount.
func New(userSvc service.UserService, dispatchSvc service.DispatchService, authToken string, logger *slog.Logger) *Server {
	return &Server{
		userSvc:     userSvc,
		dispatchSvc: dispatchSvc,
		authToken:   authToken,
		logger:      logger,
	}
}

// Mount registers all API routes under the given router. Every route requires
// bearer-token authentication.
func (s *Server) Mount(r chi.Router) {
	r.Use(s.requireAuth)

	// User preferences CRUD
	r.Get("/users", s.handleListUsers)
	r.Post("/users", s.handleCreateUser)
	r.Put("/users", s.handleUpdateUserByEmail)
	r.Get("/users/{id}", s.handleGetUser)
	r.Put("/users/{id}", s.handleUpdateUser)
	r.Delete("/users/{id}", s.handleDeleteUser)

	// Notification dispatch
	r.Post("/notifications/send", s.handleSendNotification)
	r.Get("/notifications/log", s.handleListDeliveryLog)
}

// requireAuth rejects requests whose Authorization header does not carry the
// configured bearer token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid authorization format, use 'Bearer <token>'")
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid authorization token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ─── Shared helpers ───────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
