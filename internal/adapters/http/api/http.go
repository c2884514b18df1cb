// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/okian/consultmatch/internal/adapters/http/swagger"
	"github.com/okian/consultmatch/pkg/logger"
)

const (
	maxBodyBytes   = 1 << 20
	requestTimeout = 60 * time.Second
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ConsultantDependencies
	ProjectDependencies
	AssignmentDependencies
	StatsProvider
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxShortlistLimit caps the shortlist limit parameter.
func WithMaxShortlistLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxShortlistLimit = n
		}
	}
}

// WithCORSOrigins sets the origins allowed to call the API.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	consultantsHandler *ConsultantsHandler
	projectsHandler    *ProjectsHandler
	assignmentsHandler *AssignmentsHandler

	maxShortlistLimit int
	corsOrigins       []string
	logger            logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		maxShortlistLimit: 50,
		corsOrigins:       []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("http")
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.consultantsHandler = NewConsultantsHandler(deps)
	s.projectsHandler = NewProjectsHandler(deps, s.maxShortlistLimit)
	s.assignmentsHandler = NewAssignmentsHandler(deps)
	return s
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", HeaderIdempotencyKey},
		ExposedHeaders: []string{"Location", HeaderReplayed},
		MaxAge:         300,
	}))

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", s.healthHandler.HandleMetrics)
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	swagger.Register(r)

	r.Route("/consultants", func(r chi.Router) {
		r.Get("/", MetricsMiddleware(s.consultantsHandler.HandleList, "consultants"))
		r.Post("/", MetricsMiddleware(s.consultantsHandler.HandleCreate, "consultants"))
		r.Get("/{id}", MetricsMiddleware(s.consultantsHandler.HandleGet, "consultant"))
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", MetricsMiddleware(s.projectsHandler.HandleList, "projects"))
		r.Post("/", MetricsMiddleware(s.projectsHandler.HandleCreate, "projects"))
		r.Get("/{id}", MetricsMiddleware(s.projectsHandler.HandleGet, "project"))
		r.Get("/{id}/shortlist", MetricsMiddleware(s.projectsHandler.HandleShortlist, "shortlist"))
		r.Post("/{id}/recommendation", MetricsMiddleware(s.assignmentsHandler.HandleRecommend, "recommendation"))
		r.Post("/{id}/assignments", MetricsMiddleware(s.assignmentsHandler.HandleStaff, "assignments"))
	})

	r.Get("/assignments/{id}", MetricsMiddleware(s.assignmentsHandler.HandleGetAssignment, "assignment"))
	r.Get("/jobs/{id}", MetricsMiddleware(s.assignmentsHandler.HandleGetJob, "job"))

	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure writes err with the status its kind maps to.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}
