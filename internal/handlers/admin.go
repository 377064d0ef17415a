package handlers

import (
	"net/http"

	"kv.dev/portfolio/internal/middleware"
	"kv.dev/portfolio/internal/services"
)

// AdminHandler serves the project edit page
type AdminHandler struct {
	projectService *services.ProjectService
	pages          *pages
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(ps *services.ProjectService, p *pages) *AdminHandler {
	return &AdminHandler{projectService: ps, pages: p}
}

// Show handles GET /admin
func (h *AdminHandler) Show(w http.ResponseWriter, r *http.Request) {
	res := h.projectService.View(r.Context(), middleware.GetSession(r))
	h.respond(w, r, res)
}

// Select handles POST /admin/select
func (h *AdminHandler) Select(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	res := h.projectService.Select(r.Context(), middleware.GetSession(r), r.PostForm.Get("project"))
	h.respond(w, r, res)
}

// Submit handles POST /admin/submit
func (h *AdminHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	res := h.projectService.Submit(r.Context(), middleware.GetSession(r), r.PostForm)
	h.respond(w, r, res)
}

// Delete handles POST /admin/delete
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	confirmed := r.PostForm.Get("confirm") == "yes"
	res := h.projectService.Delete(r.Context(), middleware.GetSession(r), confirmed)
	h.respond(w, r, res)
}

// Clear handles POST /admin/clear
func (h *AdminHandler) Clear(w http.ResponseWriter, r *http.Request) {
	res := h.projectService.Clear(r.Context(), middleware.GetSession(r))
	h.respond(w, r, res)
}

// respond renders the edit panel alone for fragment requests and the whole
// page otherwise
func (h *AdminHandler) respond(w http.ResponseWriter, r *http.Request, res services.Result) {
	data := h.pages.data(r, "Edit projects")
	data.Admin = res
	if isFragment(r) {
		h.pages.render(w, "admin", "admin-panel", data)
		return
	}
	h.pages.render(w, "admin", "layout.html", data)
}

// parseForm bounds and parses a posted form
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}
	return true
}
