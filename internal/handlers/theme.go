package handlers

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"kv.dev/portfolio/internal/models"
	"kv.dev/portfolio/internal/services"
)

// ThemeHandler applies theme changes
type ThemeHandler struct {
	themeService *services.ThemeService
	logger       *zap.Logger
}

// NewThemeHandler creates a new ThemeHandler
func NewThemeHandler(ts *services.ThemeService, logger *zap.Logger) *ThemeHandler {
	return &ThemeHandler{themeService: ts, logger: logger}
}

// Apply handles POST /theme
func (h *ThemeHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	mode := r.PostForm.Get("theme")
	var settings *models.CustomSettings
	if mode == models.ThemeCustom {
		settings = &models.CustomSettings{
			BackgroundKey: r.PostForm.Get("background"),
			AccentKey:     r.PostForm.Get("accent"),
			FontKey:       r.PostForm.Get("font"),
		}
	}

	if _, err := h.themeService.Apply(r.Context(), mode, settings); err != nil {
		h.logger.Error("failed to apply theme", zap.String("mode", mode), zap.Error(err))
	}

	if isFragment(r) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
}

// returnPath sends the visitor back to the page they came from, staying on
// this site
func returnPath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || ref.Path[0] != '/' {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	if len(ref.Path) > 1 && ref.Path[1] == '/' {
		return "/"
	}
	return ref.Path
}
