package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"blocksearch/internal/automation"
	"blocksearch/internal/config"
	"blocksearch/internal/pipeline"
	"blocksearch/internal/searcher"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for blocksearch.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	engine *searcher.Engine
	auto   automation.Automator
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server. auto may be nil; the
// Noop automator is used then.
func NewServer(runner *pipeline.Runner, engine *searcher.Engine, auto automation.Automator, log *slog.Logger, cfg config.Config) *Server {
	if auto == nil {
		auto = automation.Noop{}
	}
	s := &Server{
		runner: runner,
		engine: engine,
		auto:   auto,
		log:    log,
		cfg:    cfg,
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

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/split", s.handleSplit)
		r.Get("/api/split/{jobID}", s.handleSplitStatus)
		r.Post("/api/split/{jobID}/cancel", s.handleSplitCancel)

		r.Post("/api/index/rebuild", s.handleIndexRebuild)
		r.Get("/api/search", s.handleSearch)
		r.Get("/api/documents/{stem}/context", s.handleContext)
		r.Post("/api/documents/{stem}/clipboard", s.handleClipboard)
		r.Get("/api/editor/documents", s.handleEditorDocuments)

		r.Get("/api/prefixes", s.handleListPrefixes)
		r.Post("/api/prefixes/{prefix}/folders", s.handleAddPrefixFolder)
		r.Delete("/api/prefixes/{prefix}/folders", s.handleRemovePrefixFolder)
		r.Post("/api/prefixes/verify", s.handleVerifyPrefixes)

		r.Get("/api/exclusions", s.handleListExclusions)
		r.Post("/api/exclusions", s.handleSetExclusion)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, status, map[string]string{"error": message})
}
