package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"kv.dev/portfolio/internal/config"
	"kv.dev/portfolio/internal/logging"
	"kv.dev/portfolio/internal/middleware"
	"kv.dev/portfolio/internal/services"
)

// Deps carries everything the routes need
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Projects *services.ProjectService
	Themes   *services.ThemeService
	Remote   *services.RemoteService
	Sessions *middleware.Sessions
}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(deps Deps) http.Handler {
	logger := logging.OrNop(deps.Logger)
	cfg := deps.Config

	r := chi.NewRouter()

	// Middleware
	r.Use(chiMid.RequestID)
	r.Use(chiMid.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(chiMid.Compress(5))
	if cfg.Server.RequestTimeout > 0 {
		r.Use(chiMid.Timeout(cfg.Server.RequestTimeout))
	}

	// Initialize handlers
	pages := newPages(deps.Themes, logger)
	projectHandler := NewProjectHandler(deps.Projects, deps.Themes)
	cardHandler := NewCardHandler(deps.Projects, deps.Remote, pages, logger)
	adminHandler := NewAdminHandler(deps.Projects, pages)
	themeHandler := NewThemeHandler(deps.Themes, logger)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)
		r.Get("/theme", projectHandler.GetTheme)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	// Pages
	r.Get("/", cardHandler.Index)
	r.Get("/cards/local", cardHandler.Local)
	r.Get("/cards/remote", cardHandler.Remote)
	r.Post("/theme", themeHandler.Apply)

	r.Route("/admin", func(r chi.Router) {
		r.Use(deps.Sessions.Middleware)
		r.Get("/", adminHandler.Show)
		r.Post("/select", adminHandler.Select)
		r.Post("/submit", adminHandler.Submit)
		r.Post("/delete", adminHandler.Delete)
		r.Post("/clear", adminHandler.Clear)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Static files. Card markup uses relative asset paths, so the assets
	// folder is also reachable from the root.
	fileServer := http.FileServer(http.Dir(cfg.Static.Dir))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))
	r.Handle("/assets/*", fileServer)

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("error encoding JSON", zap.Error(err))
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// isFragment reports whether the request asked for a partial swap
func isFragment(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// noCache marks responses that depend on stored state
func noCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Expires", time.Unix(0, 0).UTC().Format(http.TimeFormat))
}
