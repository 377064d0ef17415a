// Package render turns project records into HTML fragments.
package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"kv.dev/portfolio/internal/catalog"
	"kv.dev/portfolio/internal/models"
)

const svgType = "image/svg+xml"

// GridStagger is the animation delay added per card, in milliseconds
const GridStagger = 100

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))
	policy   = newDescriptionPolicy()
)

func newDescriptionPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	return p
}

const cardTemplate = `{{define "picture"}}<picture class="thumbnail">
  <source srcset="{{.Primary}}" type="{{.PrimaryType}}">
  <source srcset="{{.Fallback}}" type="{{.FallbackType}}">
  <img src="{{.Img}}" alt="{{.Alt}}" width="50" height="50">
</picture>{{end}}
{{define "card"}}{{template "picture" .Picture}}
<article>
  <h2>{{.Title}}</h2>
  <div class="project-description">{{.Description}}</div>
  <a href="{{.Link}}">Link to project</a>
  <ul class="project-tags">{{range .Tags}}
    <li>{{.}}</li>{{end}}
  </ul>
</article>{{end}}
{{define "grid"}}{{range .}}<li><project-card class="fade-in" style="animation-delay: {{.Delay}}ms">{{.Card}}</project-card></li>
{{end}}{{end}}`

var templates = template.Must(template.New("render").Parse(cardTemplate))

// picture is the three-step source chain of a thumbnail
type picture struct {
	Primary      string
	PrimaryType  string
	Fallback     string
	FallbackType string
	Img          string
	Alt          string
}

type cardView struct {
	Picture     picture
	Title       string
	Description template.HTML
	Link        string
	Tags        []string
}

type gridItem struct {
	Delay int
	Card  template.HTML
}

// Card renders one project. Library thumbnails win when the key resolves;
// otherwise the explicit image pair is used.
func Card(p models.Project) template.HTML {
	view := cardView{
		Picture:     resolvePicture(p.Thumbnail),
		Title:       p.Title,
		Description: Description(p.Description),
		Link:        p.Link,
		Tags:        p.Tags,
	}
	return execute("card", view)
}

// Grid renders a list item per project with staggered fade-in delays
func Grid(projects []models.Project) template.HTML {
	items := make([]gridItem, len(projects))
	for i, p := range projects {
		items[i] = gridItem{Delay: i * GridStagger, Card: Card(p)}
	}
	return execute("grid", items)
}

// Description renders markdown text to sanitized HTML
func Description(text string) template.HTML {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

func resolvePicture(t models.Thumbnail) picture {
	if img, ok := catalog.LookupImage(t.LibraryKey); ok {
		return picture{
			Primary:      img.Src,
			PrimaryType:  svgType,
			Fallback:     catalog.PlaceholderImage,
			FallbackType: svgType,
			Img:          img.Src,
			Alt:          img.Alt,
		}
	}

	pair := models.ImagePair{}
	if t.Image != nil {
		pair = *t.Image
	}
	return picture{
		Primary:      pair.WebpSrc,
		PrimaryType:  pair.WebpType,
		Fallback:     pair.FallbackSrc,
		FallbackType: pair.FallbackType,
		Img:          pair.FallbackSrc,
		Alt:          pair.Alt,
	}
}

func execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		// Only reachable through a template bug; render nothing rather than half a card.
		return ""
	}
	return template.HTML(buf.String())
}
