package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/linklabel/internal/assets"
	"github.com/dgallion1/linklabel/internal/config"
	"github.com/dgallion1/linklabel/internal/pipeline"
	"github.com/dgallion1/linklabel/internal/settings"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for linklabel.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	store        settings.Store
	metrics      http.Handler
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. metricsHandler may be
// nil, in which case /metrics is not mounted.
func NewServer(orch *pipeline.Orchestrator, store settings.Store, metricsHandler http.Handler, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		store:        store,
		metrics:      metricsHandler,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Get("/assets/linklabel.css", assets.Handler(s.cfg.HiddenClass))
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/transform", s.handleTransform)
		r.Post("/api/transform/batch", s.handleBatchTransform)
		r.Get("/api/transform/{jobID}/status", s.handleTransformStatus)

		r.Get("/api/settings", s.handleGetSettings)
		r.Put("/api/settings", s.handlePutSettings)
		r.Delete("/api/settings", s.handleDeleteSettings)

		r.Get("/api/stats/transform", s.handleTransformStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
