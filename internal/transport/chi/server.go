// Package chi exposes the read-only HTTP API over a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	leadscope "github.com/signalworks/leadscope"
	"github.com/signalworks/leadscope/internal/domain"
	companyuc "github.com/signalworks/leadscope/internal/usecase/company"
	healthuc "github.com/signalworks/leadscope/internal/usecase/health"
	leaduc "github.com/signalworks/leadscope/internal/usecase/lead"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the request handlers for the query API.
type Server struct {
	leads         *leaduc.Service
	companies     *companyuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	leads *leaduc.Service,
	companies *companyuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		leads:     leads,
		companies: companies,
		health:    health,
		logger:    logger,
	}
	// Ordered: first match wins, everything unmatched is a 500 with the
	// underlying message.
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "Not found"),
	}
	return s
}

// Register mounts all routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Get("/leads", s.handleListLeads)
	r.Get("/leads/{id}", s.handleGetLead)
	r.Get("/companies", s.handleListCompanies)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Check(r.Context()); err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := s.leads.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if leads == nil {
		leads = []leadscope.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "id")
	l, err := s.leads.Resolve(r.Context(), token)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.companies.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if companies == nil {
		companies = []leadscope.Company{}
	}
	writeJSON(w, http.StatusOK, companies)
}

// handleDomainError walks the ordered handler chain; unmatched errors are
// internal failures surfaced with the underlying message.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
