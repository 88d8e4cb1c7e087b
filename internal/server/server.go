// Package server exposes the exercise log over HTTP: query and entry
// endpoints for the web picker, CSV import behind an API key, and the
// embedded static frontend.
package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/claude/repsheet/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealthz)

	// Log API (no auth — tsnet handles access)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/exercises", s.handleListExercises)
		r.Get("/exercises/recent", s.handleRecentExercises)
		r.Post("/exercises", s.handleAddExercise)
		r.Post("/selection", s.handleSelection)
		r.Get("/bodyparts", s.handleBodyParts)
		r.Get("/imports", s.handleImportLogs)

		// Import endpoints (API key required)
		r.Route("/import", func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/csv", s.handleImportCSV)
		})
	})
}

// SetFrontend mounts the embedded picker page filesystem.
// Unmatched routes serve index.html.
func (s *Server) SetFrontend(webFS fs.FS) {
	fileServer := http.FileServerFS(webFS)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		// Try to serve the exact file first
		f, err := webFS.Open(r.URL.Path[1:]) // strip leading /
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		// Fallback to index.html
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
