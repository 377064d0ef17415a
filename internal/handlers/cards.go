package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"kv.dev/portfolio/internal/render"
	"kv.dev/portfolio/internal/services"
)

// CardHandler serves the portfolio page and its card grid fragments
type CardHandler struct {
	projectService *services.ProjectService
	remoteService  *services.RemoteService
	pages          *pages
	logger         *zap.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(ps *services.ProjectService, rs *services.RemoteService, p *pages, logger *zap.Logger) *CardHandler {
	return &CardHandler{projectService: ps, remoteService: rs, pages: p, logger: logger}
}

// Index handles GET /
func (h *CardHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := h.pages.data(r, "Projects")
	data.Grid = render.Grid(h.projectService.GetAll(r.Context()))
	h.pages.render(w, "index", "layout.html", data)
}

// Local handles GET /cards/local
func (h *CardHandler) Local(w http.ResponseWriter, r *http.Request) {
	h.pages.fragment(w, render.Grid(h.projectService.GetAll(r.Context())))
}

// Remote handles GET /cards/remote. A failed fetch leaves the grid as it was.
func (h *CardHandler) Remote(w http.ResponseWriter, r *http.Request) {
	projects, err := h.remoteService.Fetch(r.Context())
	if err != nil {
		h.logger.Warn("failed to load remote projects", zap.Error(err))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.pages.fragment(w, render.Grid(projects))
}
