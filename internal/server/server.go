// Package server exposes the ledger over the HTTP+JSON API and serves the
// SPA shell for everything else.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/petrossemanhica07/app-poupanca/internal/auth"
	"github.com/petrossemanhica07/app-poupanca/internal/middleware"
	"github.com/petrossemanhica07/app-poupanca/internal/models"
	"github.com/petrossemanhica07/app-poupanca/internal/service"
	"github.com/petrossemanhica07/app-poupanca/internal/storage"
)

// Server wires the services to HTTP routes.
type Server struct {
	authSvc    *service.AuthService
	groupSvc   *service.GroupService
	ledgerSvc  *service.LedgerService
	reportSvc  *service.ReportService
	jwtManager *auth.JWTManager
	staticDir  string
}

// New creates a Server. staticDir is the directory the SPA shell is served
// from; it may be empty when only the API is needed (tests).
func New(
	authSvc *service.AuthService,
	groupSvc *service.GroupService,
	ledgerSvc *service.LedgerService,
	reportSvc *service.ReportService,
	jwtManager *auth.JWTManager,
	staticDir string,
) *Server {
	return &Server{
		authSvc:    authSvc,
		groupSvc:   groupSvc,
		ledgerSvc:  ledgerSvc,
		reportSvc:  reportSvc,
		jwtManager: jwtManager,
		staticDir:  staticDir,
	}
}

// Handler builds the route table and wraps it with the cross-cutting
// middleware (metrics innermost so it sees the matched route pattern).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("GET /me", s.protected(s.handleMe))
	mux.Handle("GET /me/balance", s.protected(s.handleMyBalance))
	mux.Handle("GET /me/transactions", s.protected(s.handleMyTransactions))

	mux.Handle("POST /groups", s.protected(s.handleCreateGroup, models.RoleAdmin))
	mux.Handle("GET /groups", s.protected(s.handleListGroups))
	mux.Handle("POST /groups/{id}/members", s.protected(s.handleAddMember, models.RoleAdmin, models.RoleGroupManager))
	mux.Handle("GET /groups/{id}/members", s.protected(s.handleListMembers))
	mux.Handle("POST /groups/{id}/meetings", s.protected(s.handleOpenMeeting, models.RoleAdmin, models.RoleGroupManager))
	mux.Handle("GET /groups/{id}/meetings", s.protected(s.handleListMeetings))
	mux.Handle("PATCH /meetings/{id}/close", s.protected(s.handleCloseMeeting, models.RoleAdmin, models.RoleGroupManager))

	mux.Handle("POST /transactions", s.protected(s.handleRecordTransaction, models.RoleAdmin, models.RoleGroupManager))
	mux.Handle("GET /groups/{id}/balance", s.protected(s.handleGroupBalance))
	mux.Handle("GET /members/{id}/balance", s.protected(s.handleMemberBalance))

	mux.Handle("GET /reports/overview", s.protected(s.handleOverview, models.RoleAdmin))
	mux.Handle("GET /reports/group/{id}", s.protected(s.handleGroupReport, models.RoleAdmin, models.RoleGroupManager))
	mux.Handle("GET /reports/reconciliation", s.protected(s.handleReconciliation, models.RoleAdmin))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Unmatched GET routes serve the SPA shell.
	mux.HandleFunc("GET /", s.handleStatic)

	return middleware.CORS(middleware.Logging(middleware.Metrics(mux)))
}

// protected chains authentication and an optional role allow-list in front
// of a handler.
func (s *Server) protected(h http.HandlerFunc, roles ...models.Role) http.Handler {
	var handler http.Handler = h
	if len(roles) > 0 {
		handler = middleware.RequireRole(roles...)(handler)
	}
	return middleware.RequireAuth(s.jwtManager)(handler)
}

// handleStatic serves the SPA shell: the requested file when it exists,
// index.html otherwise.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if s.staticDir == "" {
		http.NotFound(w, r)
		return
	}

	urlPath := r.URL.Path
	if urlPath == "/" {
		urlPath = "/index.html"
	}

	filePath := filepath.Join(s.staticDir, filepath.Clean(urlPath))
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
		return
	}
	http.ServeFile(w, r, filePath)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// respondError maps the error taxonomy to HTTP statuses.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, storage.ErrMeetingClosed):
		writeErr(w, http.StatusBadRequest, storage.ErrMeetingClosed.Error())
	case errors.Is(err, storage.ErrMeetingAlreadyOpen):
		writeErr(w, http.StatusConflict, storage.ErrMeetingAlreadyOpen.Error())
	case errors.Is(err, service.ErrInvalidInput):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("Unhandled request error",
			"error", err,
			"path", r.URL.Path,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

// decode parses a JSON request body into v.
func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
