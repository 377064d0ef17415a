package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kv.dev/portfolio/internal/services"
)

// ProjectHandler handles the JSON API endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
	themeService   *services.ThemeService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService, ts *services.ThemeService) *ProjectHandler {
	return &ProjectHandler{projectService: ps, themeService: ts}
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects := h.projectService.GetAll(r.Context())
	noCache(w)
	respondJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.projectService.GetByID(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load project")
		return
	}

	noCache(w)
	respondJSON(w, http.StatusOK, project)
}

// GetTheme handles GET /api/theme
func (h *ProjectHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	noCache(w)
	respondJSON(w, http.StatusOK, h.themeService.Current(r.Context()))
}
