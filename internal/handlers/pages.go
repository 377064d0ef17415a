package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"kv.dev/portfolio/internal/catalog"
	"kv.dev/portfolio/internal/models"
	"kv.dev/portfolio/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	// themeStyle is safe to mark as CSS: every value comes from the preset catalogs
	"themeStyle": func(s models.ThemeState) template.CSS {
		return template.CSS(s.Style())
	},
}

var pageTemplates = map[string]*template.Template{
	"index": parsePage("templates/index.html"),
	"admin": parsePage("templates/admin.html"),
}

func parsePage(file string) *template.Template {
	return template.Must(template.New("layout.html").Funcs(templateFuncs).
		ParseFS(templateFS, "templates/layout.html", "templates/theme.html", file))
}

// pageData is shared by every full page render
type pageData struct {
	Title        string
	Theme        models.ThemeState
	Modes        []string
	Backgrounds  []string
	Accents      []string
	Fonts        []string
	FooterMargin int

	Grid   template.HTML
	Admin  services.Result
	Images []catalog.LibraryImage
}

// pages renders full pages and fragments
type pages struct {
	themes *services.ThemeService
	logger *zap.Logger
}

func newPages(themes *services.ThemeService, logger *zap.Logger) *pages {
	return &pages{themes: themes, logger: logger}
}

// data fills the fields every page needs
func (p *pages) data(r *http.Request, title string) pageData {
	return pageData{
		Title:        title,
		Theme:        p.themes.Current(r.Context()),
		Modes:        catalog.Modes(),
		Backgrounds:  catalog.BackgroundKeys(),
		Accents:      catalog.AccentKeys(),
		Fonts:        catalog.FontKeys(),
		FooterMargin: services.FooterMargin,
		Images:       catalog.Images(),
	}
}

// render executes a named template of a page into w. Output is buffered so a
// template error becomes a clean 500.
func (p *pages) render(w http.ResponseWriter, page, name string, data any) {
	tmpl, ok := pageTemplates[page]
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		p.logger.Error("failed to render template", zap.String("page", page), zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	noCache(w)
	_, _ = buf.WriteTo(w)
}

// fragment writes pre-rendered markup
func (p *pages) fragment(w http.ResponseWriter, html template.HTML) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	noCache(w)
	_, _ = w.Write([]byte(html))
}
